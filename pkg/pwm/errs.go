package pwm

import "errors"

var (
	// ErrBadPeriod indicates a zero or negative PWM period.
	ErrBadPeriod = errors.New("pwm: period must be positive")

	// ErrBadOffRatio indicates an off ratio outside [0,1].
	ErrBadOffRatio = errors.New("pwm: off ratio must be within [0,1]")

	// ErrBadRange indicates max rate <= min rate, which would make the
	// duty-cycle interpolation divide by zero.
	ErrBadRange = errors.New("pwm: max transfer rate must exceed min transfer rate")
)
