package hardware

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// speed of sound at room temperature, cm/s, halved for the round trip
const cmPerSecond = 34300.0 / 2.0

// Ultrasonic reads distance from an HC-SR04 style sensor.
type Ultrasonic struct {
	trig    gpio.PinOut
	echo    gpio.PinIn
	timeout time.Duration
}

// NewUltrasonic resolves the trigger and echo pins. timeout bounds the
// wait for each echo edge; zero means 100ms, long enough for the
// sensor's full ~4m range.
func NewUltrasonic(trigPin, echoPin string, timeout time.Duration) (*Ultrasonic, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = 100 * time.Millisecond
	}

	trig := gpioreg.ByName(trigPin)
	if trig == nil {
		return nil, fmt.Errorf("hardware: no such pin %q", trigPin)
	}
	echo := gpioreg.ByName(echoPin)
	if echo == nil {
		return nil, fmt.Errorf("hardware: no such pin %q", echoPin)
	}
	if err := echo.In(gpio.PullDown, gpio.BothEdges); err != nil {
		return nil, fmt.Errorf("hardware: configure echo pin: %w", err)
	}
	if err := trig.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("hardware: configure trigger pin: %w", err)
	}

	return &Ultrasonic{trig: trig, echo: echo, timeout: timeout}, nil
}

// ReadDistance fires one ping and returns the distance in centimeters.
func (u *Ultrasonic) ReadDistance() (float64, error) {
	// 10µs trigger pulse
	if err := u.trig.Out(gpio.High); err != nil {
		return 0, fmt.Errorf("hardware: trigger: %w", err)
	}
	time.Sleep(10 * time.Microsecond)
	if err := u.trig.Out(gpio.Low); err != nil {
		return 0, fmt.Errorf("hardware: trigger: %w", err)
	}

	rise, err := u.waitLevel(gpio.High)
	if err != nil {
		return 0, err
	}
	fall, err := u.waitLevel(gpio.Low)
	if err != nil {
		return 0, err
	}

	return fall.Sub(rise).Seconds() * cmPerSecond, nil
}

// waitLevel blocks until the echo pin reads the wanted level and
// returns the timestamp of the transition.
func (u *Ultrasonic) waitLevel(want gpio.Level) (time.Time, error) {
	deadline := time.Now().Add(u.timeout)
	for u.echo.Read() != want {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return time.Time{}, fmt.Errorf("hardware: echo timeout waiting for %v", want)
		}
		u.echo.WaitForEdge(remaining)
	}
	return time.Now(), nil
}
