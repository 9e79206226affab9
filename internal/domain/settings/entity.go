package settings

import (
	"time"

	"github.com/shopspring/decimal"
)

type NightOvertimeRule string

const (
	NightRuleSum      NightOvertimeRule = "sum"
	NightRuleMultiply NightOvertimeRule = "multiply"
	NightRuleFixed    NightOvertimeRule = "fixed"
)

var NightOvertimeRuleValues = []string{
	string(NightRuleSum),
	string(NightRuleMultiply),
	string(NightRuleFixed),
}

type PunchMode string

const (
	// PunchModeSimple treats a single go-work tap as a full scheduled day
	PunchModeSimple PunchMode = "simple"
	PunchModeFull   PunchMode = "full"
)

var PunchModeValues = []string{string(PunchModeSimple), string(PunchModeFull)}

// OvertimeRate configures tiering for one day-type.
type OvertimeRate struct {
	ThresholdHours   float64 `json:"threshold_hours"`
	BaseRatePercent  float64 `json:"base_rate_percent"`
	Tier2RatePercent float64 `json:"tier2_rate_percent"`
}

type OvertimeRates struct {
	Weekday  OvertimeRate `json:"weekday"`
	Saturday OvertimeRate `json:"saturday"`
	Sunday   OvertimeRate `json:"sunday"`
	Holiday  OvertimeRate `json:"holiday"`
}

// FixedRate holds the percentages used by the fixed night rule.
type FixedRate struct {
	DayPercent   float64 `json:"day_percent"`
	NightPercent float64 `json:"night_percent"`
}

type FixedRates struct {
	Weekday  FixedRate `json:"weekday"`
	Saturday FixedRate `json:"saturday"`
	Sunday   FixedRate `json:"sunday"`
	Holiday  FixedRate `json:"holiday"`
}

type UserSettings struct {
	EmployeeID                 string
	NightStartTime             string
	NightEndTime               string
	LateThresholdMinutes       int
	EarlyThresholdMinutes      int
	OvertimeTieringEnabled     bool
	OvertimeRates              OvertimeRates
	NightPremiumPercent        float64
	NightOvertimeRule          NightOvertimeRule
	FixedRates                 FixedRates
	QuickPunchThresholdSeconds int
	ForgotCheckoutHours        int
	PunchMode                  PunchMode
	Timezone                   string
	HourlyWage                 decimal.Decimal
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

// DefaultUserSettings is used when an employee has nothing stored.
func DefaultUserSettings(employeeID string) UserSettings {
	return UserSettings{
		EmployeeID:             employeeID,
		NightStartTime:         "22:00",
		NightEndTime:           "05:00",
		LateThresholdMinutes:   5,
		EarlyThresholdMinutes:  5,
		OvertimeTieringEnabled: true,
		OvertimeRates: OvertimeRates{
			Weekday:  OvertimeRate{ThresholdHours: 2, BaseRatePercent: 150, Tier2RatePercent: 200},
			Saturday: OvertimeRate{ThresholdHours: 2, BaseRatePercent: 150, Tier2RatePercent: 200},
			Sunday:   OvertimeRate{ThresholdHours: 2, BaseRatePercent: 200, Tier2RatePercent: 200},
			Holiday:  OvertimeRate{ThresholdHours: 0, BaseRatePercent: 300, Tier2RatePercent: 300},
		},
		NightPremiumPercent: 30,
		NightOvertimeRule:   NightRuleSum,
		FixedRates: FixedRates{
			Weekday:  FixedRate{DayPercent: 150, NightPercent: 180},
			Saturday: FixedRate{DayPercent: 150, NightPercent: 180},
			Sunday:   FixedRate{DayPercent: 200, NightPercent: 230},
			Holiday:  FixedRate{DayPercent: 300, NightPercent: 330},
		},
		QuickPunchThresholdSeconds: 60,
		ForgotCheckoutHours:        16,
		PunchMode:                  PunchModeFull,
		Timezone:                   "UTC",
		HourlyWage:                 decimal.Zero,
	}
}

// Location resolves Timezone, falling back to UTC.
func (s UserSettings) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
