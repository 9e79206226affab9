package attendance

import "errors"

// Attendance domain errors
var (
	ErrInvalidEventType   = errors.New("invalid attendance event type")
	ErrEventInFuture      = errors.New("attendance event timestamp is in the future")
	ErrEventsNotFound     = errors.New("no attendance events found for this date")
	ErrEmployeeIDRequired = errors.New("employee ID is required")
)
