package hardware

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

// Grayscale reads the three-channel reflectance module through the HAT
// ADC over I2C. Channel registers follow the HAT convention: channel n
// lives at 0x10 | (7 - n), values are 12-bit big-endian.
type Grayscale struct {
	mu  sync.Mutex
	bus i2c.BusCloser
	dev i2c.Dev
}

// NewGrayscale opens the I2C bus ("" selects the first available) and
// addresses the ADC (typically 0x14).
func NewGrayscale(busName string, addr uint16) (*Grayscale, error) {
	if err := Init(); err != nil {
		return nil, err
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("hardware: open i2c bus: %w", err)
	}

	return &Grayscale{
		bus: bus,
		dev: i2c.Dev{Bus: bus, Addr: addr},
	}, nil
}

// ReadReflectance returns one sample of the three channels.
func (g *Grayscale) ReadReflectance() ([3]float64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var out [3]float64
	for ch := 0; ch < 3; ch++ {
		var buf [2]byte
		reg := byte(0x10 | (7 - ch))
		if err := g.dev.Tx([]byte{reg}, buf[:]); err != nil {
			return out, fmt.Errorf("hardware: adc channel %d: %w", ch, err)
		}
		out[ch] = float64(int(buf[0])<<8 | int(buf[1]))
	}
	return out, nil
}

// Close releases the I2C bus.
func (g *Grayscale) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.bus.Close()
}
