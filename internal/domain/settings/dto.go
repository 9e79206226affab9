package settings

import (
	"fmt"

	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UpdateSettingsRequest struct {
	EmployeeID                 string           `json:"-"`
	NightStartTime             *string          `json:"night_start_time,omitempty"`
	NightEndTime               *string          `json:"night_end_time,omitempty"`
	LateThresholdMinutes       *int             `json:"late_threshold_minutes,omitempty"`
	EarlyThresholdMinutes      *int             `json:"early_threshold_minutes,omitempty"`
	OvertimeTieringEnabled     *bool            `json:"overtime_tiering_enabled,omitempty"`
	OvertimeRates              *OvertimeRates   `json:"overtime_rates,omitempty"`
	NightPremiumPercent        *float64         `json:"night_premium_percent,omitempty"`
	NightOvertimeRule          *string          `json:"night_overtime_rule,omitempty"`
	FixedRates                 *FixedRates      `json:"fixed_rates,omitempty"`
	QuickPunchThresholdSeconds *int             `json:"quick_punch_threshold_seconds,omitempty"`
	ForgotCheckoutHours        *int             `json:"forgot_checkout_hours,omitempty"`
	PunchMode                  *string          `json:"punch_mode,omitempty"`
	Timezone                   *string          `json:"timezone,omitempty"`
	HourlyWage                 *decimal.Decimal `json:"hourly_wage,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}

	if r.NightStartTime != nil {
		if _, ok := validator.IsValidTime(*r.NightStartTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "night_start_time", Message: "night_start_time must be a valid time in HH:MM format"})
		}
	}
	if r.NightEndTime != nil {
		if _, ok := validator.IsValidTime(*r.NightEndTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "night_end_time", Message: "night_end_time must be a valid time in HH:MM format"})
		}
	}

	if r.LateThresholdMinutes != nil && *r.LateThresholdMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "late_threshold_minutes", Message: "late_threshold_minutes must not be negative"})
	}
	if r.EarlyThresholdMinutes != nil && *r.EarlyThresholdMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "early_threshold_minutes", Message: "early_threshold_minutes must not be negative"})
	}
	if r.NightPremiumPercent != nil && *r.NightPremiumPercent < 0 {
		errs = append(errs, validator.ValidationError{Field: "night_premium_percent", Message: "night_premium_percent must not be negative"})
	}
	if r.QuickPunchThresholdSeconds != nil && *r.QuickPunchThresholdSeconds < 0 {
		errs = append(errs, validator.ValidationError{Field: "quick_punch_threshold_seconds", Message: "quick_punch_threshold_seconds must not be negative"})
	}
	if r.ForgotCheckoutHours != nil && (*r.ForgotCheckoutHours < 1 || *r.ForgotCheckoutHours > 72) {
		errs = append(errs, validator.ValidationError{Field: "forgot_checkout_hours", Message: "forgot_checkout_hours must be between 1 and 72"})
	}

	if r.NightOvertimeRule != nil && !validator.IsInSlice(*r.NightOvertimeRule, NightOvertimeRuleValues) {
		errs = append(errs, validator.ValidationError{Field: "night_overtime_rule", Message: fmt.Sprintf("night_overtime_rule must be one of %v", NightOvertimeRuleValues)})
	}
	if r.PunchMode != nil && !validator.IsInSlice(*r.PunchMode, PunchModeValues) {
		errs = append(errs, validator.ValidationError{Field: "punch_mode", Message: fmt.Sprintf("punch_mode must be one of %v", PunchModeValues)})
	}
	if r.Timezone != nil && !validator.IsValidTimezone(*r.Timezone) {
		errs = append(errs, validator.ValidationError{Field: "timezone", Message: "timezone must be a valid IANA location name"})
	}
	if r.HourlyWage != nil && r.HourlyWage.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hourly_wage", Message: "hourly_wage must not be negative"})
	}

	if r.OvertimeRates != nil {
		for name, rate := range map[string]OvertimeRate{
			"weekday":  r.OvertimeRates.Weekday,
			"saturday": r.OvertimeRates.Saturday,
			"sunday":   r.OvertimeRates.Sunday,
			"holiday":  r.OvertimeRates.Holiday,
		} {
			if rate.ThresholdHours < 0 || rate.BaseRatePercent < 0 || rate.Tier2RatePercent < 0 {
				errs = append(errs, validator.ValidationError{Field: "overtime_rates." + name, Message: "overtime rates must not be negative"})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply copies the set fields onto s.
func (r *UpdateSettingsRequest) Apply(s *UserSettings) {
	if r.NightStartTime != nil {
		s.NightStartTime = *r.NightStartTime
	}
	if r.NightEndTime != nil {
		s.NightEndTime = *r.NightEndTime
	}
	if r.LateThresholdMinutes != nil {
		s.LateThresholdMinutes = *r.LateThresholdMinutes
	}
	if r.EarlyThresholdMinutes != nil {
		s.EarlyThresholdMinutes = *r.EarlyThresholdMinutes
	}
	if r.OvertimeTieringEnabled != nil {
		s.OvertimeTieringEnabled = *r.OvertimeTieringEnabled
	}
	if r.OvertimeRates != nil {
		s.OvertimeRates = *r.OvertimeRates
	}
	if r.NightPremiumPercent != nil {
		s.NightPremiumPercent = *r.NightPremiumPercent
	}
	if r.NightOvertimeRule != nil {
		s.NightOvertimeRule = NightOvertimeRule(*r.NightOvertimeRule)
	}
	if r.FixedRates != nil {
		s.FixedRates = *r.FixedRates
	}
	if r.QuickPunchThresholdSeconds != nil {
		s.QuickPunchThresholdSeconds = *r.QuickPunchThresholdSeconds
	}
	if r.ForgotCheckoutHours != nil {
		s.ForgotCheckoutHours = *r.ForgotCheckoutHours
	}
	if r.PunchMode != nil {
		s.PunchMode = PunchMode(*r.PunchMode)
	}
	if r.Timezone != nil {
		s.Timezone = *r.Timezone
	}
	if r.HourlyWage != nil {
		s.HourlyWage = *r.HourlyWage
	}
}

type SettingsResponse struct {
	EmployeeID                 string        `json:"employee_id"`
	NightStartTime             string        `json:"night_start_time"`
	NightEndTime               string        `json:"night_end_time"`
	LateThresholdMinutes       int           `json:"late_threshold_minutes"`
	EarlyThresholdMinutes      int           `json:"early_threshold_minutes"`
	OvertimeTieringEnabled     bool          `json:"overtime_tiering_enabled"`
	OvertimeRates              OvertimeRates `json:"overtime_rates"`
	NightPremiumPercent        float64       `json:"night_premium_percent"`
	NightOvertimeRule          string        `json:"night_overtime_rule"`
	FixedRates                 FixedRates    `json:"fixed_rates"`
	QuickPunchThresholdSeconds int           `json:"quick_punch_threshold_seconds"`
	ForgotCheckoutHours        int           `json:"forgot_checkout_hours"`
	PunchMode                  string        `json:"punch_mode"`
	Timezone                   string        `json:"timezone"`
	HourlyWage                 string        `json:"hourly_wage"`
	IsDefault                  bool          `json:"is_default"`
}

func NewSettingsResponse(s UserSettings, isDefault bool) SettingsResponse {
	return SettingsResponse{
		EmployeeID:                 s.EmployeeID,
		NightStartTime:             s.NightStartTime,
		NightEndTime:               s.NightEndTime,
		LateThresholdMinutes:       s.LateThresholdMinutes,
		EarlyThresholdMinutes:      s.EarlyThresholdMinutes,
		OvertimeTieringEnabled:     s.OvertimeTieringEnabled,
		OvertimeRates:              s.OvertimeRates,
		NightPremiumPercent:        s.NightPremiumPercent,
		NightOvertimeRule:          string(s.NightOvertimeRule),
		FixedRates:                 s.FixedRates,
		QuickPunchThresholdSeconds: s.QuickPunchThresholdSeconds,
		ForgotCheckoutHours:        s.ForgotCheckoutHours,
		PunchMode:                  string(s.PunchMode),
		Timezone:                   s.Timezone,
		HourlyWage:                 s.HourlyWage.StringFixed(2),
		IsDefault:                  isDefault,
	}
}
