package workstatus

import "errors"

var (
	ErrDailyStatusNotFound  = errors.New("daily work status not found")
	ErrInvalidStatus        = errors.New("invalid work status")
	ErrStatusNotSettable    = errors.New("status cannot be set manually")
	ErrNotManuallyUpdated   = errors.New("daily work status has no manual override")
	ErrInvalidDateRange     = errors.New("end date must not be before start date")
	ErrDateRangeTooLarge    = errors.New("date range must not exceed 93 days")
	ErrEmployeeIDRequired   = errors.New("employee id is required")
	ErrManualCheckOutBefore = errors.New("check_out must be after check_in")
)
