package types

import "fmt"

// Bytes is an unsigned byte quantity: a transfer-rate threshold or an
// accumulated per-window count.
type Bytes uint64

const (
	KB Bytes = 1 << (10 * (iota + 1))
	MB
	GB
	TB
)

// Humanized renders the quantity with an automatic 1024-based unit.
func (b Bytes) Humanized() string {
	switch {
	case b >= TB:
		return fmt.Sprintf("%.2f TB", b.div(TB))
	case b >= GB:
		return fmt.Sprintf("%.2f GB", b.div(GB))
	case b >= MB:
		return fmt.Sprintf("%.2f MB", b.div(MB))
	case b >= KB:
		return fmt.Sprintf("%.2f KB", b.div(KB))
	default:
		return fmt.Sprintf("%d B", uint64(b))
	}
}

// KiB returns the quantity in kilobytes (1024 base).
func (b Bytes) KiB() float64 { return b.div(KB) }

// MiB returns the quantity in megabytes (1024 base).
func (b Bytes) MiB() float64 { return b.div(MB) }

func (b Bytes) div(unit Bytes) float64 { return float64(b) / float64(unit) }
