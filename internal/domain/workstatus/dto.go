package workstatus

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// MaxRangeDays bounds a single range request.
const MaxRangeDays = 93

type ManualStatusRequest struct {
	EmployeeID  string   `json:"-"`
	Date        string   `json:"-"` // YYYY-MM-DD, from the URL
	Status      string   `json:"status"`
	CheckIn     *string  `json:"check_in,omitempty"`  // RFC3339
	CheckOut    *string  `json:"check_out,omitempty"` // RFC3339
	WorkedHours *float64 `json:"worked_hours,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

func (r *ManualStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	}

	if status, err := ParseStatus(r.Status); err != nil {
		errs = append(errs, validator.ValidationError{Field: "status", Message: fmt.Sprintf("status must be one of %v", StatusValues())})
	} else if !status.IsManuallySettable() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: fmt.Sprintf("status %s cannot be set manually", status)})
	}

	var checkIn, checkOut time.Time
	var okIn, okOut bool
	if r.CheckIn != nil {
		if checkIn, okIn = validator.IsValidDateTime(*r.CheckIn); !okIn {
			errs = append(errs, validator.ValidationError{Field: "check_in", Message: "check_in must be an RFC3339 timestamp"})
		}
	}
	if r.CheckOut != nil {
		if checkOut, okOut = validator.IsValidDateTime(*r.CheckOut); !okOut {
			errs = append(errs, validator.ValidationError{Field: "check_out", Message: "check_out must be an RFC3339 timestamp"})
		}
	}
	if okIn && okOut && !checkOut.After(checkIn) {
		errs = append(errs, validator.ValidationError{Field: "check_out", Message: "check_out must be after check_in"})
	}

	if r.WorkedHours != nil && (*r.WorkedHours < 0 || *r.WorkedHours > 24) {
		errs = append(errs, validator.ValidationError{Field: "worked_hours", Message: "worked_hours must be between 0 and 24"})
	}

	if r.Notes != nil && len(*r.Notes) > 500 {
		errs = append(errs, validator.ValidationError{Field: "notes", Message: "notes must not exceed 500 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RangeStatusRequest struct {
	EmployeeID string `json:"-"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Recompute  bool   `json:"recompute"`
}

// Validate checks the request and returns the parsed bounds.
func (r *RangeStatusRequest) Validate() (time.Time, time.Time, error) {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}

	if okStart && okEnd {
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: ErrInvalidDateRange.Error()})
		} else if int(end.Sub(start).Hours()/24)+1 > MaxRangeDays {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: ErrDateRangeTooLarge.Error()})
		}
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return start, end, nil
}

type DailyWorkStatusResponse struct {
	ID                        string          `json:"id"`
	EmployeeID                string          `json:"employee_id"`
	Date                      string          `json:"date"`
	Status                    Status          `json:"status"`
	ShiftID                   *string         `json:"shift_id,omitempty"`
	CheckIn                   *string         `json:"check_in,omitempty"`
	CheckOut                  *string         `json:"check_out,omitempty"`
	DayType                   DayType         `json:"day_type"`
	WorkedHours               float64         `json:"worked_hours"`
	BreakMinutes              int             `json:"break_minutes"`
	LateMinutes               int             `json:"late_minutes"`
	EarlyMinutes              int             `json:"early_minutes"`
	StandardDayHours          float64         `json:"standard_day_hours"`
	StandardNightHours        float64         `json:"standard_night_hours"`
	Overtime                  OvertimeBuckets `json:"overtime"`
	TotalOvertimeHours        float64         `json:"total_overtime_hours"`
	TotalRoundedOvertimeHours float64         `json:"total_rounded_overtime_hours"`
	SundayHours               float64         `json:"sunday_hours"`
	NightHours                float64         `json:"night_hours"`
	OvertimeTiers             OvertimeTiers   `json:"overtime_tiers"`
	EstimatedOvertimePay      string          `json:"estimated_overtime_pay"`
	IsManuallyUpdated         bool            `json:"is_manually_updated"`
	Notes                     *string         `json:"notes,omitempty"`
	CalculatedAt              string          `json:"calculated_at"`
	UpdatedAt                 string          `json:"updated_at"`
}

func NewDailyWorkStatusResponse(d DailyWorkStatus) DailyWorkStatusResponse {
	resp := DailyWorkStatusResponse{
		ID:                        d.ID,
		EmployeeID:                d.EmployeeID,
		Date:                      d.Date.Format("2006-01-02"),
		Status:                    d.Status,
		ShiftID:                   d.ShiftID,
		DayType:                   d.DayType,
		WorkedHours:               d.WorkedHours,
		BreakMinutes:              d.BreakMinutes,
		LateMinutes:               d.LateMinutes,
		EarlyMinutes:              d.EarlyMinutes,
		StandardDayHours:          d.StandardDayHours,
		StandardNightHours:        d.StandardNightHours,
		Overtime:                  d.Overtime,
		TotalOvertimeHours:        d.TotalOvertimeHours,
		TotalRoundedOvertimeHours: d.TotalRoundedOvertimeHours,
		SundayHours:               d.SundayHours,
		NightHours:                d.NightHours,
		OvertimeTiers:             d.OvertimeTiers,
		EstimatedOvertimePay:      d.EstimatedOvertimePay.StringFixed(2),
		IsManuallyUpdated:         d.IsManuallyUpdated,
		Notes:                     d.Notes,
		CalculatedAt:              d.CalculatedAt.Format(time.RFC3339),
		UpdatedAt:                 d.UpdatedAt.Format(time.RFC3339),
	}
	if d.CheckIn != nil {
		s := d.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &s
	}
	if d.CheckOut != nil {
		s := d.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &s
	}
	return resp
}

type RangeStatusResponse struct {
	StartDate string                    `json:"start_date"`
	EndDate   string                    `json:"end_date"`
	Days      []DailyWorkStatusResponse `json:"days"`
	Summary   RangeSummary              `json:"summary"`
}

// RangeSummary totals a range for display.
type RangeSummary struct {
	WorkedHours          float64        `json:"worked_hours"`
	StandardHours        float64        `json:"standard_hours"`
	OvertimeHours        float64        `json:"overtime_hours"`
	NightHours           float64        `json:"night_hours"`
	SundayHours          float64        `json:"sunday_hours"`
	EstimatedOvertimePay string         `json:"estimated_overtime_pay"`
	StatusCounts         map[string]int `json:"status_counts"`
}

func NewRangeSummary(days []DailyWorkStatus) RangeSummary {
	summary := RangeSummary{StatusCounts: make(map[string]int)}
	pay := decimal.Zero
	for _, d := range days {
		summary.WorkedHours += d.WorkedHours
		summary.StandardHours += d.StandardHours()
		summary.OvertimeHours += d.TotalOvertimeHours
		summary.NightHours += d.NightHours
		summary.SundayHours += d.SundayHours
		pay = pay.Add(d.EstimatedOvertimePay)
		summary.StatusCounts[d.Status.String()]++
	}
	summary.EstimatedOvertimePay = pay.StringFixed(2)
	return summary
}

func NewRangeStatusResponse(start, end time.Time, days []DailyWorkStatus) RangeStatusResponse {
	resp := RangeStatusResponse{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Days:      make([]DailyWorkStatusResponse, 0, len(days)),
		Summary:   NewRangeSummary(days),
	}
	for _, d := range days {
		resp.Days = append(resp.Days, NewDailyWorkStatusResponse(d))
	}
	return resp
}
