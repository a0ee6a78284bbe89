package usbmon

import "errors"

var (
	// ErrOpen indicates that the usbmon device could not be opened
	// (usbmon module not loaded, or missing permissions).
	ErrOpen = errors.New("usbmon: cannot open monitoring device")
)
