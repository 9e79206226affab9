package attendance

import (
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE EVENT DTOs
// ========================================

type RecordEventRequest struct {
	EmployeeID string  `json:"-"`
	Type       string  `json:"type"`
	Timestamp  *string `json:"timestamp,omitempty"` // RFC3339, defaults to now
	WorkDate   *string `json:"work_date,omitempty"` // YYYY-MM-DD, resolved when omitted
	Note       *string `json:"note,omitempty"`
}

func (r *RecordEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsInSlice(r.Type, EventTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of go_work, check_in, check_out, complete, punch",
		})
	}

	if r.Timestamp != nil {
		if _, ok := validator.IsValidDateTime(*r.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be a valid RFC3339 date-time",
			})
		}
	}

	if r.WorkDate != nil {
		if _, ok := validator.IsValidDate(*r.WorkDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "work_date",
				Message: "work_date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.Note != nil && len(*r.Note) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EventResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	WorkDate   string  `json:"work_date"`
	Type       string  `json:"type"`
	Timestamp  string  `json:"timestamp"`
	Note       *string `json:"note,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

type ListEventsFilter struct {
	EmployeeID string `json:"-"`
	Date       string `json:"date"` // YYYY-MM-DD
}

func (f *ListEventsFilter) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(f.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListEventsResponse struct {
	Date   string          `json:"date"`
	Total  int             `json:"total"`
	Events []EventResponse `json:"events"`
}
