package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usbled/usbled/pkg/pwm"
	"github.com/usbled/usbled/pkg/types"
	"github.com/usbled/usbled/pkg/usbmon"
)

func TestBuildConfig_Defaults(t *testing.T) {
	cfg, err := buildConfig(defaultOpts())
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 100*time.Millisecond, cfg.Period)
	assert.InDelta(t, 0.1, cfg.OffRatio, 1e-12)
	assert.Equal(t, types.Bytes(10*1024*1024), cfg.MaxRate)
	assert.Equal(t, types.Bytes(0), cfg.MinRate)
	assert.Equal(t, usbmon.CountAll, cfg.Policy)
	assert.Equal(t, usbmon.DefaultDevice, cfg.Device)
}

func TestBuildConfig_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*opts)
	}{
		{"period_no_suffix", func(o *opts) { o.period = "100" }},
		{"period_bad_suffix", func(o *opts) { o.period = "100us" }},
		{"off_out_of_range", func(o *opts) { o.off = "101%" }},
		{"off_no_suffix", func(o *opts) { o.off = "10" }},
		{"max_bad_suffix", func(o *opts) { o.max = "10MBps" }},
		{"min_no_value", func(o *opts) { o.min = "kbps" }},
		{"count_unknown", func(o *opts) { o.count = "submissions" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := defaultOpts()
			tc.mutate(&o)
			_, err := buildConfig(o)
			require.Error(t, err)
		})
	}
}

func TestBuildConfig_EqualRatesFailValidation(t *testing.T) {
	o := defaultOpts()
	o.max = "1Mbps"
	o.min = "1Mbps"
	cfg, err := buildConfig(o)
	require.NoError(t, err)
	require.ErrorIs(t, cfg.Validate(), pwm.ErrBadRange)
}

func testFlags(t *testing.T) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("usbled", pflag.ContinueOnError)
	o := defaultOpts()
	fs.BoolVar(&o.logging, "logging", o.logging, "")
	fs.StringVar(&o.period, "period", o.period, "")
	fs.StringVar(&o.off, "off", o.off, "")
	fs.StringVar(&o.max, "max", o.max, "")
	fs.StringVar(&o.min, "min", o.min, "")
	fs.IntVar(&o.pin, "gpio", o.pin, "")
	fs.BoolVar(&o.invert, "invert", o.invert, "")
	fs.StringVar(&o.device, "device", o.device, "")
	fs.StringVar(&o.count, "count", o.count, "")
	return fs
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "usbled.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestApplyFile_OverlaysUnsetFlags(t *testing.T) {
	path := writeConfigFile(t, `
logging: true
period: 200ms
off: 20%
gpio: 18
device: /dev/usbmon2
count: completions
`)
	fs := testFlags(t)
	require.NoError(t, fs.Parse(nil))

	o := defaultOpts()
	require.NoError(t, applyFile(fs, path, &o))

	assert.True(t, o.logging)
	assert.Equal(t, "200ms", o.period)
	assert.Equal(t, "20%", o.off)
	assert.Equal(t, 18, o.pin)
	assert.Equal(t, "/dev/usbmon2", o.device)
	assert.Equal(t, "completions", o.count)
	// Untouched keys keep their defaults.
	assert.Equal(t, "10Mbps", o.max)
}

func TestApplyFile_FlagsWinOverFile(t *testing.T) {
	path := writeConfigFile(t, "period: 200ms\ngpio: 18\n")
	fs := testFlags(t)
	require.NoError(t, fs.Parse([]string{"--period", "50ms"}))

	o := defaultOpts()
	o.period = "50ms"
	require.NoError(t, applyFile(fs, path, &o))

	assert.Equal(t, "50ms", o.period) // explicitly set, file must not override
	assert.Equal(t, 18, o.pin)        // not set, file applies
}

func TestApplyFile_Errors(t *testing.T) {
	fs := testFlags(t)
	o := defaultOpts()

	require.Error(t, applyFile(fs, filepath.Join(t.TempDir(), "missing.yaml"), &o))

	bad := writeConfigFile(t, "period: [not, a, string\n")
	require.Error(t, applyFile(fs, bad, &o))
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("USBLED_TEST_STR", "value")
	t.Setenv("USBLED_TEST_INT", "42")
	t.Setenv("USBLED_TEST_BADINT", "nope")

	assert.Equal(t, "value", getEnv("USBLED_TEST_STR", "fallback"))
	assert.Equal(t, "fallback", getEnv("USBLED_TEST_UNSET", "fallback"))
	assert.Equal(t, 42, getEnvInt("USBLED_TEST_INT", 7))
	assert.Equal(t, 7, getEnvInt("USBLED_TEST_BADINT", 7))
	assert.Equal(t, 7, getEnvInt("USBLED_TEST_UNSET", 7))
}
