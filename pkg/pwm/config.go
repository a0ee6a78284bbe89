package pwm

import (
	"fmt"
	"time"

	"github.com/usbled/usbled/pkg/types"
	"github.com/usbled/usbled/pkg/usbmon"
)

// Config holds the duty-cycle parameters. Rate thresholds are expressed in
// bytes per second until ScaleRates converts them into bytes per period.
// A Config is built once at startup and never mutated afterwards.
type Config struct {
	Logging  bool
	Period   time.Duration
	OffRatio float64 // fraction of each period forced low, in [0,1]
	MaxRate  types.Bytes
	MinRate  types.Bytes
	Pin      int
	Invert   bool
	Device   string
	Policy   usbmon.CountPolicy
}

// Default returns the configuration the tool starts from before flags,
// environment and config file are applied.
func Default() Config {
	return Config{
		Logging:  false,
		Period:   100 * time.Millisecond,
		OffRatio: 0.1,
		MaxRate:  10 * 1024 * 1024, // 10Mbps
		MinRate:  0,
		Pin:      0,
		Invert:   false,
		Device:   usbmon.DefaultDevice,
		Policy:   usbmon.CountAll,
	}
}

// Validate rejects configurations the calculator cannot work with. This is
// the only place the MaxRate > MinRate division-by-zero guard lives; the
// loop itself never checks it again.
func (c Config) Validate() error {
	if c.Period <= 0 {
		return ErrBadPeriod
	}
	if c.OffRatio < 0 || c.OffRatio > 1 {
		return ErrBadOffRatio
	}
	if c.MaxRate <= c.MinRate {
		return ErrBadRange
	}
	return nil
}

// ScaleRates converts the per-second rate thresholds into bytes per period.
// Call exactly once, after Validate and before the loop starts.
func (c Config) ScaleRates() Config {
	sec := c.Period.Seconds()
	c.MaxRate = types.Bytes(float64(c.MaxRate) * sec)
	c.MinRate = types.Bytes(float64(c.MinRate) * sec)
	return c
}

// Durations splits Period into a high and a low share for the given byte
// count: the count is clamped into [MinRate, MaxRate], mapped linearly onto
// [0,1] and scaled down by (1 - OffRatio) so at least OffRatio of every
// period stays low. The high share is truncated toward zero at nanosecond
// resolution and the remainder assigned to low, so high+low always equals
// Period exactly.
func (c Config) Durations(bytes uint64) (high, low time.Duration) {
	b := types.Bytes(bytes)
	if b < c.MinRate {
		b = c.MinRate
	}
	if b > c.MaxRate {
		b = c.MaxRate
	}
	ratio := float64(b-c.MinRate) / float64(c.MaxRate-c.MinRate)
	on := ratio * (1.0 - c.OffRatio)
	high = time.Duration(float64(c.Period) * on)
	return high, c.Period - high
}

// String renders the startup banner, with rates still in bytes per second
// (call before ScaleRates).
func (c Config) String() string {
	return fmt.Sprintf(`Configuration:
-logging: %t
-period: %g s
-off_period_ratio: %g%%
-max_transfer_rate: %g kbps (%s/s)
-min_transfer_rate: %g kbps (%s/s)
-gpio: %d
-invert: %t
-device: %s
-count: %s`,
		c.Logging,
		c.Period.Seconds(),
		c.OffRatio*100.0,
		c.MaxRate.KiB(), c.MaxRate.Humanized(),
		c.MinRate.KiB(), c.MinRate.Humanized(),
		c.Pin,
		c.Invert,
		c.Device,
		c.Policy,
	)
}
