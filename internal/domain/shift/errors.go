package shift

import "errors"

var (
	ErrShiftNotFound      = errors.New("shift not found")
	ErrNoActiveShift      = errors.New("no active shift configured")
	ErrInvalidShiftOrder  = errors.New("shift end time must not be before office end time")
	ErrShiftNameExists    = errors.New("shift with this name already exists")
	ErrInvalidRequestData = errors.New("invalid request data")
)
