// Package hardware is the Raspberry Pi driver glue for the focusbox:
// the dual-motor string lock, the ultrasonic distance sensor and the
// reflectance ADC. It implements the collaborator interfaces consumed
// by pkg/box.
package hardware

import (
	"fmt"
	"sync"

	"periph.io/x/host/v3"
)

var initOnce sync.Once
var initErr error

// Init loads the periph host drivers. Safe to call more than once;
// every constructor in this package calls it.
func Init() error {
	initOnce.Do(func() {
		if _, err := host.Init(); err != nil {
			initErr = fmt.Errorf("hardware: host init: %w", err)
		}
	})
	return initErr
}
