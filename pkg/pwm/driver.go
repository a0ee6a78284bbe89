package pwm

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/usbled/usbled/pkg/gpio"
	"github.com/usbled/usbled/pkg/types"
	"github.com/usbled/usbled/pkg/usbmon"
)

// Driver is the PWM control loop: a two-state machine cycling High then Low
// forever, re-planning the split once per period from the bytes the monitor
// observed during the whole previous cycle.
type Driver struct {
	cfg Config
	mon *usbmon.Monitor
	pin gpio.Pin
	out io.Writer // telemetry destination, used when cfg.Logging is set
}

// NewDriver wires the loop together. cfg must already be validated and
// rate-scaled.
func NewDriver(cfg Config, mon *usbmon.Monitor, pin gpio.Pin, out io.Writer) *Driver {
	return &Driver{cfg: cfg, mon: mon, pin: pin, out: out}
}

// Run drives the pin until ctx is cancelled, then leaves it Low and returns
// the context's error. Nothing inside the loop can fail; every failure mode
// belongs to startup validation.
func (d *Driver) Run(ctx context.Context) error {
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			d.pin.Set(gpio.Low)
			return ctx.Err()
		default:
		}

		cycleStart := time.Now()

		// Everything counted since the last take happened during the
		// previous cycle's high and low phases; that is the window this
		// cycle's split is planned from.
		bytes := d.mon.TakeAccumulated()
		high, low := d.cfg.Durations(bytes)

		d.pin.Set(gpio.High)
		highReal := d.mon.AccumulateFor(high)
		d.pin.Set(gpio.Low)
		lowReal := d.mon.AccumulateFor(low)

		if d.cfg.Logging {
			// The rate divides by the measured wall time of the window the
			// bytes were counted over, not the nominal period.
			window := cycleStart.Sub(last).Seconds()
			fmt.Fprintf(d.out, "Rate: %9.3f kb/s   PWM: %6.3f s   [H: %6.3f s   L: %6.3f s]\n",
				safeDiv(types.Bytes(bytes).KiB(), window),
				window,
				highReal.Seconds(),
				lowReal.Seconds(),
			)
		}
		last = cycleStart
	}
}
