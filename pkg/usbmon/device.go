//go:build linux

package usbmon

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// devSource reads usbmon records from a character device using non-blocking
// reads gated by poll(2).
type devSource struct {
	fd int
}

// OpenDevice opens a usbmon character device (e.g. /dev/usbmon0) for
// monitoring. Requires the usbmon kernel module and read permission on the
// device node, which usually means root.
func OpenDevice(path string) (Source, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpen, path, err)
	}
	return &devSource{fd: fd}, nil
}

// Wait polls the device for readability for at most timeout.
func (d *devSource) Wait(timeout time.Duration) (bool, error) {
	// poll(2) has millisecond resolution; round sub-millisecond budgets up
	// so the final slice of a window is a wait, not a spin.
	ms := int(timeout / time.Millisecond)
	if ms < 1 {
		ms = 1
	}
	fds := []unix.PollFd{{Fd: int32(d.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, ms)
	if err == unix.EINTR {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return n > 0 && fds[0].Revents&unix.POLLIN != 0, nil
}

func (d *devSource) Read(buf []byte) (int, error) {
	n, err := unix.Read(d.fd, buf)
	if err == unix.EAGAIN || err == unix.EINTR {
		return 0, nil
	}
	return n, err
}

func (d *devSource) Close() error { return unix.Close(d.fd) }
