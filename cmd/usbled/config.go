package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/usbled/usbled/pkg/pwm"
	"github.com/usbled/usbled/pkg/types"
	"github.com/usbled/usbled/pkg/usbmon"
)

// opts is the raw flag surface: suffixed values stay strings until
// buildConfig parses them, so the CLI grammar owns its own error messages.
type opts struct {
	logging bool
	period  string
	off     string
	max     string
	min     string
	pin     int
	invert  bool
	device  string
	count   string
	config  string
}

// defaultOpts seeds the flag defaults. A .env file in the working directory
// is honored, and USBLED_* variables override the built-in defaults before
// flag parsing.
func defaultOpts() opts {
	_ = godotenv.Load()
	return opts{
		logging: false,
		period:  "100ms",
		off:     "10%",
		max:     "10Mbps",
		min:     "0kbps",
		pin:     getEnvInt("USBLED_GPIO", 0),
		invert:  false,
		device:  getEnv("USBLED_DEVICE", usbmon.DefaultDevice),
		count:   getEnv("USBLED_COUNT", "all"),
	}
}

// fileConfig mirrors the flag surface in YAML. Pointer fields distinguish
// "absent" from zero values.
type fileConfig struct {
	Logging *bool   `yaml:"logging"`
	Period  *string `yaml:"period"`
	Off     *string `yaml:"off"`
	Max     *string `yaml:"max"`
	Min     *string `yaml:"min"`
	Gpio    *int    `yaml:"gpio"`
	Invert  *bool   `yaml:"invert"`
	Device  *string `yaml:"device"`
	Count   *string `yaml:"count"`
}

// applyFile overlays values from a YAML config file onto o. Flags set
// explicitly on the command line win over the file.
func applyFile(flags *pflag.FlagSet, path string, o *opts) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	if fc.Logging != nil && !flags.Changed("logging") {
		o.logging = *fc.Logging
	}
	if fc.Period != nil && !flags.Changed("period") {
		o.period = *fc.Period
	}
	if fc.Off != nil && !flags.Changed("off") {
		o.off = *fc.Off
	}
	if fc.Max != nil && !flags.Changed("max") {
		o.max = *fc.Max
	}
	if fc.Min != nil && !flags.Changed("min") {
		o.min = *fc.Min
	}
	if fc.Gpio != nil && !flags.Changed("gpio") {
		o.pin = *fc.Gpio
	}
	if fc.Invert != nil && !flags.Changed("invert") {
		o.invert = *fc.Invert
	}
	if fc.Device != nil && !flags.Changed("device") {
		o.device = *fc.Device
	}
	if fc.Count != nil && !flags.Changed("count") {
		o.count = *fc.Count
	}
	return nil
}

// buildConfig parses the suffixed string values into a pwm.Config. The
// result still carries per-second rates; the caller validates and scales.
func buildConfig(o opts) (pwm.Config, error) {
	cfg := pwm.Default()
	cfg.Logging = o.logging
	cfg.Pin = o.pin
	cfg.Invert = o.invert
	cfg.Device = o.device

	period, err := types.ParsePeriod(o.period)
	if err != nil {
		return pwm.Config{}, err
	}
	cfg.Period = period

	off, err := types.ParsePercent(o.off)
	if err != nil {
		return pwm.Config{}, err
	}
	cfg.OffRatio = off

	maxRate, err := types.ParseRate(o.max)
	if err != nil {
		return pwm.Config{}, err
	}
	cfg.MaxRate = maxRate

	minRate, err := types.ParseRate(o.min)
	if err != nil {
		return pwm.Config{}, err
	}
	cfg.MinRate = minRate

	policy, err := usbmon.ParseCountPolicy(o.count)
	if err != nil {
		return pwm.Config{}, err
	}
	cfg.Policy = policy

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
