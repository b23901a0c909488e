package hardware

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
)

const pwmFrequency = 2 * physic.KiloHertz

// LockConfig wires the two drive motors that wind the lid string.
type LockConfig struct {
	LeftDirPin  string
	RightDirPin string
	LeftPWMPin  string
	RightPWMPin string

	// Speed is the drive strength, 0..100.
	Speed int

	// RunTime is how long the motors run for one lock or unlock stroke.
	RunTime time.Duration
}

// MotorLock drives the string lock. Positive drive winds the string in
// (lock), negative pays it out (unlock). The engaged flag tracks the
// last completed stroke; there is no limit switch on the lid.
type MotorLock struct {
	leftDir  gpio.PinOut
	rightDir gpio.PinOut
	leftPWM  gpio.PinOut
	rightPWM gpio.PinOut

	speed   int
	runTime time.Duration

	mu      sync.Mutex
	engaged bool
}

// NewMotorLock resolves the configured pins and returns an unlocked lock.
func NewMotorLock(cfg LockConfig) (*MotorLock, error) {
	if err := Init(); err != nil {
		return nil, err
	}

	pins := make([]gpio.PinIO, 4)
	for i, name := range []string{cfg.LeftDirPin, cfg.RightDirPin, cfg.LeftPWMPin, cfg.RightPWMPin} {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("hardware: no such pin %q", name)
		}
		pins[i] = p
	}

	speed := cfg.Speed
	if speed < 0 {
		speed = 0
	}
	if speed > 100 {
		speed = 100
	}

	return &MotorLock{
		leftDir:  pins[0],
		rightDir: pins[1],
		leftPWM:  pins[2],
		rightPWM: pins[3],
		speed:    speed,
		runTime:  cfg.RunTime,
	}, nil
}

// EngageLock winds the string in. Idempotent when already engaged.
func (l *MotorLock) EngageLock() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.engaged {
		return nil
	}
	if err := l.run(true); err != nil {
		return fmt.Errorf("hardware: engage: %w", err)
	}
	l.engaged = true
	slog.Info("lock engaged")
	return nil
}

// ReleaseLock pays the string out. Idempotent when already released.
func (l *MotorLock) ReleaseLock() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.engaged {
		return nil
	}
	if err := l.run(false); err != nil {
		return fmt.Errorf("hardware: release: %w", err)
	}
	l.engaged = false
	slog.Info("lock released")
	return nil
}

// SetEngaged overrides the tracked state without moving the motors.
// For manual tooling and recovery after a power cut mid-stroke.
func (l *MotorLock) SetEngaged(engaged bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.engaged = engaged
}

// LockEngaged reports the tracked lock state. Side-effect free.
func (l *MotorLock) LockEngaged() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.engaged
}

// run drives both motors for one stroke then stops them. Caller holds
// l.mu, so strokes never overlap.
func (l *MotorLock) run(forward bool) error {
	level := gpio.Low
	if !forward {
		level = gpio.High
	}
	if err := l.leftDir.Out(level); err != nil {
		return err
	}
	if err := l.rightDir.Out(level); err != nil {
		return err
	}

	duty := gpio.Duty(int64(gpio.DutyMax) * int64(l.speed) / 100)
	if err := l.leftPWM.PWM(duty, pwmFrequency); err != nil {
		return err
	}
	if err := l.rightPWM.PWM(duty, pwmFrequency); err != nil {
		l.stop()
		return err
	}

	time.Sleep(l.runTime)
	l.stop()
	return nil
}

func (l *MotorLock) stop() {
	// Run the stop twice; a single zero write has been seen to miss on
	// a busy MCU.
	for i := 0; i < 2; i++ {
		_ = l.leftPWM.PWM(0, pwmFrequency)
		_ = l.rightPWM.PWM(0, pwmFrequency)
		time.Sleep(2 * time.Millisecond)
	}
}
