package usbmon

import (
	"encoding/binary"
	"fmt"
)

// Binary record layout of the usbmon text/binary ABI. A full record is
// nominally 64 bytes, but the legacy read(2) path delivers only the first
// 48, which carry everything needed here.
const (
	// PacketSize is the nominal size of one usbmon binary record.
	PacketSize = 64
	// LegacySize is the payload actually delivered by legacy reads.
	LegacySize = 48
)

// Field offsets within a record.
const (
	offType   = 8  // event type tag, one byte
	offLength = 32 // urb length, uint32 native endian
)

// Event type tags.
const (
	tagSubmission = 'S'
	tagCallback   = 'C'
	tagError      = 'E'
)

// CountPolicy selects which usbmon event types contribute their transfer
// length to the accumulated byte count.
type CountPolicy int

const (
	// CountAll counts submission and callback events. In-flight transfers
	// are therefore counted once on submission and again on completion.
	CountAll CountPolicy = iota
	// CountCompletions counts callback events only.
	CountCompletions
)

// ParseCountPolicy maps the CLI spelling of a policy to its value.
func ParseCountPolicy(s string) (CountPolicy, error) {
	switch s {
	case "all":
		return CountAll, nil
	case "completions":
		return CountCompletions, nil
	default:
		return 0, fmt.Errorf("usbmon: unknown count policy %q (want all or completions)", s)
	}
}

func (p CountPolicy) String() string {
	switch p {
	case CountCompletions:
		return "completions"
	default:
		return "all"
	}
}

// DecodeLength extracts the transfer length from one raw usbmon record.
// Records shorter than LegacySize (short or failed reads) and records whose
// type tag falls outside the policy contribute zero; neither is an error.
func DecodeLength(rec []byte, policy CountPolicy) uint64 {
	if len(rec) < LegacySize {
		return 0
	}
	switch rec[offType] {
	case tagCallback:
	case tagSubmission:
		if policy == CountCompletions {
			return 0
		}
	default:
		return 0
	}
	return uint64(binary.NativeEndian.Uint32(rec[offLength:]))
}
