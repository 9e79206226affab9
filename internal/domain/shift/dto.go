package shift

import (
	"errors"

	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	EmployeeID    string  `json:"-"`
	Name          string  `json:"name"`
	StartTime     string  `json:"start_time"`         // HH:MM format
	OfficeEndTime string  `json:"office_end_time"`    // HH:MM format
	EndTime       *string `json:"end_time,omitempty"` // HH:MM format, optional
	BreakMinutes  *int    `json:"break_minutes"`
	WorkDays      []int   `json:"work_days"`
	Activate      bool    `json:"activate"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if r.BreakMinutes == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "break_minutes",
			Message: "break_minutes is required",
		})
	}

	errs = append(errs, validateClocks(r.StartTime, r.OfficeEndTime, r.EndTime, r.BreakMinutes, r.WorkDays)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateShiftRequest struct {
	ID            string  `json:"-"`
	EmployeeID    string  `json:"-"`
	Name          *string `json:"name,omitempty"`
	StartTime     *string `json:"start_time,omitempty"`
	OfficeEndTime *string `json:"office_end_time,omitempty"`
	EndTime       *string `json:"end_time,omitempty"` // empty string clears it
	BreakMinutes  *int    `json:"break_minutes,omitempty"`
	WorkDays      []int   `json:"work_days,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.StartTime != nil {
		if _, ok := validator.IsValidTime(*r.StartTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time must be a valid time in HH:MM format",
			})
		}
	}

	if r.OfficeEndTime != nil {
		if _, ok := validator.IsValidTime(*r.OfficeEndTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "office_end_time",
				Message: "office_end_time must be a valid time in HH:MM format",
			})
		}
	}

	if r.EndTime != nil && *r.EndTime != "" {
		if _, ok := validator.IsValidTime(*r.EndTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be a valid time in HH:MM format",
			})
		}
	}

	if r.BreakMinutes != nil && (*r.BreakMinutes < 0 || *r.BreakMinutes > 24*60) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_minutes",
			Message: "break_minutes must be between 0 and 1440",
		})
	}

	errs = append(errs, validateWorkDays(r.WorkDays)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Apply copies the set fields onto s.
func (r *UpdateShiftRequest) Apply(s *Shift) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.StartTime != nil {
		s.StartTime = *r.StartTime
	}
	if r.OfficeEndTime != nil {
		s.OfficeEndTime = *r.OfficeEndTime
	}
	if r.EndTime != nil {
		if *r.EndTime == "" {
			s.EndTime = nil
		} else {
			endTime := *r.EndTime
			s.EndTime = &endTime
		}
	}
	if r.BreakMinutes != nil {
		s.BreakMinutes = *r.BreakMinutes
	}
	if r.WorkDays != nil {
		s.WorkDays = append([]int(nil), r.WorkDays...)
	}
}

func validateClocks(startTime, officeEndTime string, endTime *string, breakMinutes *int, workDays []int) validator.ValidationErrors {
	var errs validator.ValidationErrors

	_, validStart := validator.IsValidTime(startTime)
	if !validStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be a valid time in HH:MM format",
		})
	}

	_, validOfficeEnd := validator.IsValidTime(officeEndTime)
	if !validOfficeEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "office_end_time",
			Message: "office_end_time must be a valid time in HH:MM format",
		})
	}

	validEnd := true
	if endTime != nil {
		if _, validEnd = validator.IsValidTime(*endTime); !validEnd {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be a valid time in HH:MM format",
			})
		}
	}

	if validStart && validOfficeEnd && validEnd {
		s := Shift{StartTime: startTime, OfficeEndTime: officeEndTime, EndTime: endTime}
		if _, _, _, err := s.Clocks(); errors.Is(err, ErrInvalidShiftOrder) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must not be before office_end_time",
			})
		}
	}

	if breakMinutes != nil && (*breakMinutes < 0 || *breakMinutes > 24*60) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_minutes",
			Message: "break_minutes must be between 0 and 1440",
		})
	}

	errs = append(errs, validateWorkDays(workDays)...)
	return errs
}

func validateWorkDays(workDays []int) validator.ValidationErrors {
	seen := make(map[int]bool, len(workDays))
	for _, d := range workDays {
		if d < 1 || d > 7 {
			return validator.ValidationErrors{{
				Field:   "work_days",
				Message: "work_days entries must be between 1 (Monday) and 7 (Sunday)",
			}}
		}
		if seen[d] {
			return validator.ValidationErrors{{
				Field:   "work_days",
				Message: "work_days must not contain duplicates",
			}}
		}
		seen[d] = true
	}
	return nil
}

type ShiftResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	Name          string  `json:"name"`
	StartTime     string  `json:"start_time"`
	OfficeEndTime string  `json:"office_end_time"`
	EndTime       *string `json:"end_time,omitempty"`
	BreakMinutes  int     `json:"break_minutes"`
	WorkDays      []int   `json:"work_days"`
	IsActive      bool    `json:"is_active"`
	IsOvernight   bool    `json:"is_overnight"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}
