package types

import (
	"fmt"
	"strings"
	"time"
)

// ParseRate parses a transfer-rate value with a required unit suffix:
// "10Mbps" or "512kbps". The result is in bytes per second using 1024
// multiples, matching the CLI grammar this tool has always used.
func ParseRate(s string) (Bytes, error) {
	v, suffix, err := splitValue(s)
	if err != nil {
		return 0, err
	}
	switch suffix {
	case "Mbps":
		return Bytes(v * 1024 * 1024), nil
	case "kbps":
		return Bytes(v * 1024), nil
	default:
		return 0, fmt.Errorf("types: unknown rate suffix %q in %q (want Mbps or kbps)", suffix, s)
	}
}

// ParsePeriod parses a time value with a required unit suffix: "100ms" or "1s".
func ParsePeriod(s string) (time.Duration, error) {
	v, suffix, err := splitValue(s)
	if err != nil {
		return 0, err
	}
	switch suffix {
	case "s":
		return time.Duration(v) * time.Second, nil
	case "ms":
		return time.Duration(v) * time.Millisecond, nil
	default:
		return 0, fmt.Errorf("types: unknown period suffix %q in %q (want s or ms)", suffix, s)
	}
}

// ParsePercent parses a percentage like "10%" and returns it as a fraction
// in [0,1]. Values outside 0-100 are rejected.
func ParsePercent(s string) (float64, error) {
	v, suffix, err := splitValue(s)
	if err != nil {
		return 0, err
	}
	if suffix != "%" {
		return 0, fmt.Errorf("types: unknown percent suffix %q in %q (want %%)", suffix, s)
	}
	if v > 100 {
		return 0, fmt.Errorf("types: percentage %q out of range [0,100]", s)
	}
	return float64(v) / 100.0, nil
}

// splitValue splits a string into its leading unsigned integer and the
// trailing unit suffix. Both parts must be present.
func splitValue(s string) (uint64, string, error) {
	i := 0
	var v uint64
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		v = v*10 + uint64(s[i]-'0')
		i++
	}
	if i == 0 {
		return 0, "", fmt.Errorf("types: no numeric value in %q", s)
	}
	suffix := strings.TrimSpace(s[i:])
	if suffix == "" {
		return 0, "", fmt.Errorf("types: missing unit suffix in %q", s)
	}
	return v, suffix, nil
}
