package box

import (
	"sync"
)

// MockLock implements LockActuator for testing. Engage/Release behavior
// can be overridden via function fields; by default both succeed and
// flip the tracked state.
type MockLock struct {
	EngageFunc  func() error
	ReleaseFunc func() error

	mu       sync.Mutex
	engaged  bool
	Engages  int
	Releases int
}

// EngageLock records the call and engages unless EngageFunc fails.
func (l *MockLock) EngageLock() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Engages++
	if l.EngageFunc != nil {
		if err := l.EngageFunc(); err != nil {
			return err
		}
	}
	l.engaged = true
	return nil
}

// ReleaseLock records the call and releases unless ReleaseFunc fails.
func (l *MockLock) ReleaseLock() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Releases++
	if l.ReleaseFunc != nil {
		if err := l.ReleaseFunc(); err != nil {
			return err
		}
	}
	l.engaged = false
	return nil
}

// LockEngaged reports the tracked state.
func (l *MockLock) LockEngaged() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.engaged
}

// ForceState overrides the tracked state, simulating external tamper.
func (l *MockLock) ForceState(engaged bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.engaged = engaged
}

// MockCues implements CuePlayer for testing, recording every call.
type MockCues struct {
	mu    sync.Mutex
	Loops []string
	Once  []string
	Stops int
}

// PlayLoop records the loop cue.
func (c *MockCues) PlayLoop(cue string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Loops = append(c.Loops, cue)
}

// PlayOnce records the one-shot cue.
func (c *MockCues) PlayOnce(cue string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Once = append(c.Once, cue)
}

// Stop records the stop.
func (c *MockCues) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Stops++
}

// OnceCount returns how many one-shot cues with the given id played.
func (c *MockCues) OnceCount(cue string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.Once {
		if v == cue {
			n++
		}
	}
	return n
}

// MockDetector implements Detector via a function field.
type MockDetector struct {
	DetectFunc func() (bool, error)

	mu    sync.Mutex
	Calls int
}

// Detect records the call and delegates to DetectFunc.
// A nil DetectFunc reports absent.
func (d *MockDetector) Detect() (bool, error) {
	d.mu.Lock()
	d.Calls++
	d.mu.Unlock()
	if d.DetectFunc != nil {
		return d.DetectFunc()
	}
	return false, nil
}

// DistanceSamplerFunc adapts a function to the DistanceSampler interface.
type DistanceSamplerFunc func() (float64, error)

// ReadDistance calls f.
func (f DistanceSamplerFunc) ReadDistance() (float64, error) { return f() }

// ReflectanceSamplerFunc adapts a function to the ReflectanceSampler
// interface.
type ReflectanceSamplerFunc func() ([3]float64, error)

// ReadReflectance calls f.
func (f ReflectanceSamplerFunc) ReadReflectance() ([3]float64, error) { return f() }
