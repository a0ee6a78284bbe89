//go:build linux

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/usbled/usbled/pkg/gpio"
	"github.com/usbled/usbled/pkg/pwm"
	"github.com/usbled/usbled/pkg/usbmon"
)

func main() {
	o := defaultOpts()

	root := &cobra.Command{
		Use:   "usbled",
		Short: "Blink an LED in proportion to USB bus throughput",
		Long: `usbled reads transfer events from the kernel usbmon feed, accumulates
the transferred bytes over each PWM cycle and turns the observed throughput
into the LED's high/low duty cycle: an idle bus leaves the LED dark, a
saturated bus drives it at the brightest allowed blink.

Requires the usbmon kernel module (modprobe usbmon) and read access to the
monitoring device, which usually means root.

Examples:
  usbled --logging --period 100ms --off 10% --max 10Mbps --gpio 18
  usbled --device /dev/usbmon2 --count completions --config usbled.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, o)
		},
	}

	root.Flags().BoolVar(&o.logging, "logging", o.logging, "emit one telemetry line per PWM cycle")
	root.Flags().StringVar(&o.period, "period", o.period, "PWM period with unit suffix (e.g. 100ms, 1s)")
	root.Flags().StringVar(&o.off, "off", o.off, "enforced off share of each period (e.g. 10%)")
	root.Flags().StringVar(&o.max, "max", o.max, "max transfer rate with unit suffix (e.g. 10Mbps, 512kbps)")
	root.Flags().StringVar(&o.min, "min", o.min, "min transfer rate with unit suffix (e.g. 0kbps)")
	root.Flags().IntVar(&o.pin, "gpio", o.pin, "BCM GPIO pin driving the LED")
	root.Flags().BoolVar(&o.invert, "invert", o.invert, "swap the physical on/off levels (active-low LED)")
	root.Flags().StringVar(&o.device, "device", o.device, "usbmon device to monitor")
	root.Flags().StringVar(&o.count, "count", o.count, "which events count bytes: all or completions")
	root.Flags().StringVar(&o.config, "config", o.config, "YAML config file (flags win over file values)")

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, o opts) error {
	if o.config != "" {
		if err := applyFile(cmd.Flags(), o.config, &o); err != nil {
			return err
		}
	}

	cfg, err := buildConfig(o)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	fmt.Println(cfg)
	fmt.Println()

	// One-time bytes/sec -> bytes/period scaling; everything past this
	// point works in per-period units.
	cfg = cfg.ScaleRates()

	src, err := usbmon.OpenDevice(cfg.Device)
	if err != nil {
		return fmt.Errorf("%w (forgot sudo, or modprobe usbmon?)", err)
	}
	mon := usbmon.New(src, cfg.Policy)
	defer mon.Close()

	pin, closePin, err := gpio.Open(cfg.Pin, cfg.Invert)
	if err != nil {
		slog.Warn("gpio unavailable, driving a no-op pin", "err", err)
		pin = gpio.WithPolarity(gpio.Nop{}, cfg.Invert)
	} else {
		defer closePin()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := pwm.NewDriver(cfg, mon, pin, os.Stdout).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	slog.Info("interrupted")
	return nil
}
