package box

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrInvalidInterval is returned for intervals whose end does not
	// follow their start.
	ErrInvalidInterval = errors.New("box: interval end must be after start")

	// ErrNoSampler is returned when a detector is built without its sampler.
	ErrNoSampler = errors.New("box: sampler required")
)

// SensorError wraps a failed presence-sample read. The gate recovers
// from it locally by treating the tick as "not present".
type SensorError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *SensorError) Error() string {
	return fmt.Sprintf("box: sensor %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *SensorError) Unwrap() error {
	return e.Err
}

// ActuatorError wraps a failed lock or unlock command. It is surfaced
// to the caller of Update: a lock that cannot move is safety-relevant
// and must not be swallowed.
type ActuatorError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *ActuatorError) Error() string {
	return fmt.Sprintf("box: actuator %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *ActuatorError) Unwrap() error {
	return e.Err
}
