package box

import (
	"time"
)

// tickGate runs the lock gate for one tick. Caller holds m.mu and has
// already established the mode is FOCUS or SLEEP.
func (m *Machine) tickGate(now time.Time) error {
	if !m.cfg.RequirePresence {
		// No gating: lock as soon as the interval is active.
		if !m.lock.LockEngaged() {
			m.stopWaitCue()
			if err := m.lock.EngageLock(); err != nil {
				return &ActuatorError{Op: "engage", Err: err}
			}
		}
		m.gate = GateLocked
		return nil
	}

	if m.gate == GateLocked {
		// Reconcile against external tamper: the gate says locked, the
		// hardware must agree.
		if !m.lock.LockEngaged() {
			m.logger.Warn("lock disengaged externally, re-engaging")
			if err := m.lock.EngageLock(); err != nil {
				return &ActuatorError{Op: "re-engage", Err: err}
			}
		}
		return nil
	}

	// WAIT_PRESENCE: prompt, then poll at most once per PollPeriod.
	m.startWaitCue()

	if !m.lastPresenceCheck.IsZero() && now.Sub(m.lastPresenceCheck) < m.cfg.PollPeriod {
		return nil
	}
	m.lastPresenceCheck = now

	present, err := m.detector.Detect()
	if err != nil {
		// Fail closed toward not locking; retry at the next poll.
		m.logger.Warn("presence read failed, treating as absent", "error", err)
		present = false
	}
	if !present {
		return nil
	}

	m.logger.Info("phone confirmed, locking")
	m.stopWaitCue()
	m.cues.PlayOnce(m.cfg.ConfirmedCue)
	if err := m.lock.EngageLock(); err != nil {
		return &ActuatorError{Op: "engage", Err: err}
	}
	m.gate = GateLocked
	return nil
}

// startWaitCue begins the waiting loop cue once per WAIT_PRESENCE
// episode. Caller holds m.mu.
func (m *Machine) startWaitCue() {
	if m.waitCuePlaying {
		return
	}
	m.cues.PlayLoop(m.cfg.WaitCue)
	m.waitCuePlaying = true
}

// stopWaitCue stops the waiting loop cue if it is playing. Caller
// holds m.mu.
func (m *Machine) stopWaitCue() {
	if !m.waitCuePlaying {
		return
	}
	m.cues.Stop()
	m.waitCuePlaying = false
}
