//go:build linux

package gpio

import (
	"fmt"

	"github.com/stianeikeland/go-rpio/v4"
)

type rpioPin struct {
	pin rpio.Pin
}

func (p rpioPin) Set(l Level) {
	if l == High {
		p.pin.High()
	} else {
		p.pin.Low()
	}
}

// Open memory-maps the GPIO range and configures the given BCM pin as an
// output. The returned closer unmaps the range; call it on shutdown.
func Open(number int, invert bool) (Pin, func() error, error) {
	if err := rpio.Open(); err != nil {
		return nil, nil, fmt.Errorf("gpio: open pin %d: %w", number, err)
	}
	p := rpio.Pin(number)
	p.Output()
	return WithPolarity(rpioPin{pin: p}, invert), rpio.Close, nil
}
