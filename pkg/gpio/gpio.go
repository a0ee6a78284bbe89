// Package gpio abstracts the single output pin driven by the PWM loop.
// The real backend memory-maps the Raspberry Pi GPIO range; Nop stands in
// on hosts without GPIO so the rest of the program runs unchanged.
package gpio

// Level is the logical output state. With an inverted pin the physical
// level is swapped, but callers only ever deal in logical High/Low.
type Level bool

const (
	High Level = true
	Low  Level = false
)

// Pin is a single writable output pin.
type Pin interface {
	Set(Level)
}

// Nop is a Pin wired to nothing. Used when no GPIO backend is available
// and in tests.
type Nop struct{}

func (Nop) Set(Level) {}

// invertPin swaps logical levels before handing them to the wrapped pin.
type invertPin struct {
	pin Pin
}

func (p invertPin) Set(l Level) { p.pin.Set(!l) }

// WithPolarity applies the configured polarity to a pin. With invert set,
// logical High drives the physical pin low and vice versa.
func WithPolarity(pin Pin, invert bool) Pin {
	if invert {
		return invertPin{pin: pin}
	}
	return pin
}
