package usbmon

import "time"

// DefaultDevice is the all-buses usbmon character device.
const DefaultDevice = "/dev/usbmon0"

// Source is a readable handle yielding fixed-size usbmon records. Wait blocks
// until the source is readable or the timeout elapses; it must never block
// past the timeout. A Read after a positive Wait may still deliver fewer than
// LegacySize bytes, which callers treat as no data.
type Source interface {
	Wait(timeout time.Duration) (ready bool, err error)
	Read(buf []byte) (int, error)
	Close() error
}

// Monitor accumulates transferred byte counts from a usbmon Source. It keeps
// a running total across the whole process lifetime; the total is consumed
// via TakeAccumulated once per PWM cycle, so bytes observed during one cycle
// feed the next cycle's duty decision.
//
// A Monitor is owned by a single goroutine; it is not safe for concurrent use.
type Monitor struct {
	src         Source
	policy      CountPolicy
	buf         [PacketSize]byte
	accumulated uint64
}

// New wraps src with the given counting policy.
func New(src Source, policy CountPolicy) *Monitor {
	return &Monitor{src: src, policy: policy}
}

// AccumulateFor reads and decodes records from the source until window has
// elapsed, adding their transfer lengths to the running total. Each wait is
// bounded by the remaining window budget, so the call returns promptly once
// the window is spent; the overshoot is at most one wait granularity.
// Returns the actually elapsed wall-clock time.
func (m *Monitor) AccumulateFor(window time.Duration) time.Duration {
	start := time.Now()
	for {
		remaining := window - time.Since(start)
		if remaining <= 0 {
			break
		}
		ready, err := m.src.Wait(remaining)
		if err != nil {
			// A persistently failing source must not turn into a spin;
			// burn the remaining budget and keep the cycle timing intact.
			time.Sleep(remaining)
			break
		}
		if !ready {
			continue
		}
		n, err := m.src.Read(m.buf[:])
		if err != nil || n <= 0 {
			continue
		}
		m.accumulated += DecodeLength(m.buf[:n], m.policy)
	}
	return time.Since(start)
}

// TakeAccumulated returns the running byte total and resets it to zero.
func (m *Monitor) TakeAccumulated() uint64 {
	b := m.accumulated
	m.accumulated = 0
	return b
}

// Close releases the underlying source.
func (m *Monitor) Close() error { return m.src.Close() }
