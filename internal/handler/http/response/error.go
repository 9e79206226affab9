package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/workstatus"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrEmployeeClaimMissing):
		Unauthorized(w, "Token is not bound to an employee")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Attendance
	case errors.Is(err, attendance.ErrInvalidEventType):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrEventInFuture):
		BadRequest(w, "Event timestamp is in the future", nil)
	case errors.Is(err, attendance.ErrEventsNotFound):
		NotFound(w, "No attendance events for this date")
	case errors.Is(err, attendance.ErrEmployeeIDRequired):
		BadRequest(w, err.Error(), nil)

	// Shift
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrNoActiveShift):
		NotFound(w, "No active shift configured")
	case errors.Is(err, shift.ErrShiftNameExists):
		Conflict(w, "Shift with this name already exists")
	case errors.Is(err, shift.ErrInvalidShiftOrder), errors.Is(err, shift.ErrInvalidRequestData):
		BadRequest(w, err.Error(), nil)

	// Settings
	case errors.Is(err, settings.ErrSettingsNotFound):
		NotFound(w, "Settings not found")
	case errors.Is(err, settings.ErrInvalidNightRule),
		errors.Is(err, settings.ErrInvalidPunchMode),
		errors.Is(err, settings.ErrInvalidTimezone),
		errors.Is(err, settings.ErrNegativeHourlyWage),
		errors.Is(err, settings.ErrInvalidOvertimeConfig),
		errors.Is(err, settings.ErrEmployeeIDRequired):
		BadRequest(w, err.Error(), nil)

	// Holiday
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayDateExists):
		Conflict(w, "A holiday already exists on this date")
	case errors.Is(err, holiday.ErrInvalidHolidayDate):
		BadRequest(w, err.Error(), nil)

	// Work status
	case errors.Is(err, workstatus.ErrDailyStatusNotFound):
		NotFound(w, "Daily work status not found")
	case errors.Is(err, workstatus.ErrNotManuallyUpdated):
		Conflict(w, "Daily work status has no manual override")
	case errors.Is(err, workstatus.ErrInvalidStatus),
		errors.Is(err, workstatus.ErrStatusNotSettable),
		errors.Is(err, workstatus.ErrInvalidDateRange),
		errors.Is(err, workstatus.ErrDateRangeTooLarge),
		errors.Is(err, workstatus.ErrEmployeeIDRequired),
		errors.Is(err, workstatus.ErrManualCheckOutBefore):
		BadRequest(w, err.Error(), nil)

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
