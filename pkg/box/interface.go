// Package box implements the focusbox core: schedule-driven mode
// resolution, the phone-presence gate, and the lock state machine.
//
// The package is pure with respect to time: every rate limit is computed
// from the timestamp the caller passes into Update, never from the wall
// clock. Hardware and audio are injected through the small interfaces
// below so the core can be exercised against fakes.
package box

// LockActuator drives the physical lid lock.
// LockEngaged must be an idempotent, side-effect-free query.
type LockActuator interface {
	EngageLock() error
	ReleaseLock() error
	LockEngaged() bool
}

// DistanceSampler reads one raw distance sample in centimeters.
type DistanceSampler interface {
	ReadDistance() (float64, error)
}

// ReflectanceSampler reads one raw sample of the three reflectance channels.
type ReflectanceSampler interface {
	ReadReflectance() ([3]float64, error)
}

// CuePlayer plays audio cues. Calls are fire-and-forget; playback
// failures are the player's problem, not the state machine's.
type CuePlayer interface {
	PlayLoop(cue string)
	PlayOnce(cue string)
	Stop()
}

// Detector turns raw sensor samples into a presence decision.
type Detector interface {
	Detect() (bool, error)
}
