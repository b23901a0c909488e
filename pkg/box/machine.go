package box

import (
	"log/slog"
	"sync"
	"time"
)

// Mode is the top-level operating mode.
type Mode string

// Operating modes.
const (
	ModeIdle      Mode = "IDLE"
	ModeFocus     Mode = "FOCUS"
	ModeSleep     Mode = "SLEEP"
	ModeEmergency Mode = "EMERGENCY"
)

// GateState is the lock gate sub-state, meaningful only while the mode
// is FOCUS or SLEEP.
type GateState string

// Gate states.
const (
	GateWaitPresence GateState = "WAIT_PRESENCE"
	GateLocked       GateState = "LOCKED"
)

// Config tunes the machine.
type Config struct {
	// PollPeriod rate-limits presence polling, measured between the
	// timestamps passed into successive Update calls. Zero defaults to
	// one second; values below 100ms are raised to 100ms.
	PollPeriod time.Duration

	// RequirePresence gates locking behind a confirmed presence read.
	// When false the box locks as soon as a FOCUS/SLEEP interval is
	// active.
	RequirePresence bool

	// Audio cue identifiers handed to the CuePlayer.
	WaitCue      string
	ConfirmedCue string
	ReleasedCue  string
}

// Status is a read-only snapshot for telemetry.
type Status struct {
	Mode   Mode      `json:"mode"`
	Gate   GateState `json:"gate"`
	Locked bool      `json:"locked"`
	Active *Interval `json:"active_interval,omitempty"`
}

// Machine is the schedule-driven lock state machine. It owns the only
// mutable state in the core; Update, Emergency and Reset serialize on
// one mutex so Emergency may be called from any goroutine (a panic
// button handler, an HTTP route).
type Machine struct {
	lock     LockActuator
	detector Detector
	cues     CuePlayer
	cfg      Config
	logger   *slog.Logger

	mu                sync.Mutex
	mode              Mode
	gate              GateState
	active            *Interval
	lastPresenceCheck time.Time // zero means never polled this gate
	waitCuePlaying    bool
}

// NewMachine builds a machine in IDLE. The detector may be nil only
// when cfg.RequirePresence is false. An unset PollPeriod defaults to
// one second; explicit values are floored at 100ms.
func NewMachine(lock LockActuator, detector Detector, cues CuePlayer, cfg Config) *Machine {
	if cfg.PollPeriod == 0 {
		cfg.PollPeriod = time.Second
	} else if cfg.PollPeriod < 100*time.Millisecond {
		cfg.PollPeriod = 100 * time.Millisecond
	}
	return &Machine{
		lock:     lock,
		detector: detector,
		cues:     cues,
		cfg:      cfg,
		logger:   slog.Default().With("component", "box.machine"),
		mode:     ModeIdle,
		gate:     GateWaitPresence,
	}
}

// Update runs one tick: resolve the active interval for now, transition
// the mode if it changed, then run the gate when a lock is required.
// Sensor failures are handled internally; actuator failures are
// returned because failing to move the lock needs outside attention.
func (m *Machine) Update(now time.Time, intervals []Interval) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Emergency holds until an explicit Reset. No schedule evaluation.
	if m.mode == ModeEmergency {
		return nil
	}

	active, ok := Resolve(now, intervals)

	switch {
	case !ok:
		m.enterMode(ModeIdle, nil)
	case active.Kind == KindFocus:
		m.enterMode(ModeFocus, &active)
	case active.Kind == KindSleep:
		m.enterMode(ModeSleep, &active)
	default:
		// Unknown kind in the schedule, treat as no interval.
		m.enterMode(ModeIdle, nil)
	}

	if m.mode == ModeFocus || m.mode == ModeSleep {
		return m.tickGate(now)
	}

	// IDLE: the lock must never stay engaged outside an active
	// interval. Releasing here rather than only on the transition
	// means a failed stroke is retried on the next tick.
	if m.lock.LockEngaged() {
		if err := m.lock.ReleaseLock(); err != nil {
			return &ActuatorError{Op: "release", Err: err}
		}
		m.cues.PlayOnce(m.cfg.ReleasedCue)
	}
	return nil
}

// Emergency unlocks unconditionally and parks the machine in EMERGENCY.
// The machine stays there, unlocked, until Reset is called; a schedule
// change never clears an emergency.
func (m *Machine) Emergency() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Warn("emergency unlock triggered")
	m.stopWaitCue()
	if err := m.lock.ReleaseLock(); err != nil {
		m.logger.Error("emergency release failed", "error", err)
	}
	m.mode = ModeEmergency
	m.active = nil
	m.gate = GateWaitPresence
	m.lastPresenceCheck = time.Time{}
}

// Reset returns the machine from EMERGENCY to IDLE. It is a no-op in
// any other mode. The next Update re-evaluates the schedule normally,
// so a still-active interval re-enters its mode through the usual gate.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mode != ModeEmergency {
		return
	}
	m.logger.Info("emergency cleared, returning to idle")
	m.mode = ModeIdle
	m.gate = GateWaitPresence
	m.active = nil
	m.lastPresenceCheck = time.Time{}
}

// Mode returns the current operating mode.
func (m *Machine) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// Gate returns the current gate state.
func (m *Machine) Gate() GateState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gate
}

// Locked reports whether the physical lock is engaged.
func (m *Machine) Locked() bool {
	return m.lock.LockEngaged()
}

// ActiveInterval returns the interval driving the current mode, if any.
func (m *Machine) ActiveInterval() (Interval, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return Interval{}, false
	}
	return *m.active, true
}

// Snapshot returns a consistent status view for telemetry.
func (m *Machine) Snapshot() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := Status{
		Mode:   m.mode,
		Gate:   m.gate,
		Locked: m.lock.LockEngaged(),
	}
	if m.active != nil {
		iv := *m.active
		st.Active = &iv
	}
	return st
}

// enterMode applies the transition table. Re-entering the same mode for
// the same interval is a no-op so side effects never repeat across
// ticks. Releasing the lock on the way to IDLE happens in Update, not
// here, so it is re-attempted every tick. Caller holds m.mu.
func (m *Machine) enterMode(mode Mode, iv *Interval) {
	if mode == m.mode && sameInterval(iv, m.active) {
		return
	}

	m.logger.Info("mode transition", "from", m.mode, "to", mode)

	if (m.mode == ModeFocus || m.mode == ModeSleep) && mode == ModeIdle {
		m.stopWaitCue()
	}

	m.mode = mode
	m.active = iv

	switch mode {
	case ModeIdle:
		m.gate = GateWaitPresence
	case ModeFocus, ModeSleep:
		m.gate = GateWaitPresence
		m.lastPresenceCheck = time.Time{}
	}
}

func sameInterval(a, b *Interval) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Kind == b.Kind && a.Label == b.Label &&
		a.Start.Equal(b.Start) && a.End.Equal(b.End)
}
