package workstatus

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the attendance classification of one work date.
type Status uint8

const (
	StatusNotUpdated Status = iota
	StatusFutureDay
	StatusComplete
	StatusLate
	StatusLeftEarly
	StatusLateAndEarly
	StatusMissingLog
	StatusForgotCheckout
	StatusDataError

	// Set only through a manual override.
	StatusLeave
	StatusSickLeave
	StatusHoliday
	StatusAbsent
)

var statusNames = [...]string{
	StatusNotUpdated:     "NOT_UPDATED",
	StatusFutureDay:      "FUTURE_DAY",
	StatusComplete:       "COMPLETE",
	StatusLate:           "LATE",
	StatusLeftEarly:      "LEFT_EARLY",
	StatusLateAndEarly:   "LATE_AND_EARLY",
	StatusMissingLog:     "MISSING_LOG",
	StatusForgotCheckout: "FORGOT_CHECKOUT",
	StatusDataError:      "DATA_ERROR",
	StatusLeave:          "LEAVE",
	StatusSickLeave:      "SICK_LEAVE",
	StatusHoliday:        "HOLIDAY",
	StatusAbsent:         "ABSENT",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// IsManualOnly reports whether the classifier can never produce s.
func (s Status) IsManualOnly() bool {
	switch s {
	case StatusLeave, StatusSickLeave, StatusHoliday, StatusAbsent:
		return true
	case StatusNotUpdated, StatusFutureDay, StatusComplete, StatusLate, StatusLeftEarly,
		StatusLateAndEarly, StatusMissingLog, StatusForgotCheckout, StatusDataError:
		return false
	}
	return false
}

// IsManuallySettable reports whether s may be written by a manual override. States
// that describe missing or broken input are reserved for the classifier.
func (s Status) IsManuallySettable() bool {
	switch s {
	case StatusNotUpdated, StatusFutureDay, StatusDataError:
		return false
	case StatusComplete, StatusLate, StatusLeftEarly, StatusLateAndEarly, StatusMissingLog,
		StatusForgotCheckout, StatusLeave, StatusSickLeave, StatusHoliday, StatusAbsent:
		return true
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	for i, name := range statusNames {
		if name == s {
			return Status(i), nil
		}
	}
	return StatusNotUpdated, fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

func (s Status) MarshalText() ([]byte, error) {
	if int(s) >= len(statusNames) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatus, uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// StatusValues lists every status name.
func StatusValues() []string {
	return append([]string(nil), statusNames[:]...)
}

type DayType string

const (
	DayTypeWeekday  DayType = "weekday"
	DayTypeSaturday DayType = "saturday"
	DayTypeSunday   DayType = "sunday"
	DayTypeHoliday  DayType = "holiday"
)

// ParseDayType falls back to weekday for anything unknown.
func ParseDayType(s string) DayType {
	switch DayType(s) {
	case DayTypeSaturday, DayTypeSunday, DayTypeHoliday:
		return DayType(s)
	}
	return DayTypeWeekday
}

// DayTypeOf classifies date; a holiday wins over the weekend.
func DayTypeOf(date time.Time, isHoliday bool) DayType {
	if isHoliday {
		return DayTypeHoliday
	}
	switch date.Weekday() {
	case time.Saturday:
		return DayTypeSaturday
	case time.Sunday:
		return DayTypeSunday
	}
	return DayTypeWeekday
}

// OvertimeBuckets holds overtime hours by day-type and day/night. Exactly one pair is
// non-zero for a computed date.
type OvertimeBuckets struct {
	WeekdayDay    float64 `json:"weekday_day"`
	WeekdayNight  float64 `json:"weekday_night"`
	SaturdayDay   float64 `json:"saturday_day"`
	SaturdayNight float64 `json:"saturday_night"`
	SundayDay     float64 `json:"sunday_day"`
	SundayNight   float64 `json:"sunday_night"`
	HolidayDay    float64 `json:"holiday_day"`
	HolidayNight  float64 `json:"holiday_night"`
}

// Set routes the pair to dayType's buckets, unknown day-types count as weekday.
func (b *OvertimeBuckets) Set(dayType DayType, day, night float64) {
	switch ParseDayType(string(dayType)) {
	case DayTypeSaturday:
		b.SaturdayDay, b.SaturdayNight = day, night
	case DayTypeSunday:
		b.SundayDay, b.SundayNight = day, night
	case DayTypeHoliday:
		b.HolidayDay, b.HolidayNight = day, night
	default:
		b.WeekdayDay, b.WeekdayNight = day, night
	}
}

// Pair returns dayType's day and night hours.
func (b OvertimeBuckets) Pair(dayType DayType) (day, night float64) {
	switch ParseDayType(string(dayType)) {
	case DayTypeSaturday:
		return b.SaturdayDay, b.SaturdayNight
	case DayTypeSunday:
		return b.SundayDay, b.SundayNight
	case DayTypeHoliday:
		return b.HolidayDay, b.HolidayNight
	}
	return b.WeekdayDay, b.WeekdayNight
}

func (b OvertimeBuckets) DayTotal() float64 {
	return b.WeekdayDay + b.SaturdayDay + b.SundayDay + b.HolidayDay
}

func (b OvertimeBuckets) NightTotal() float64 {
	return b.WeekdayNight + b.SaturdayNight + b.SundayNight + b.HolidayNight
}

func (b OvertimeBuckets) Total() float64 {
	return b.DayTotal() + b.NightTotal()
}

// OvertimeTiers is the rate split of a day's overtime.
type OvertimeTiers struct {
	BaseRateHours         float64 `json:"base_rate_hours"`
	Tier2RateHours        float64 `json:"tier2_rate_hours"`
	BaseDayRatePercent    float64 `json:"base_day_rate_percent"`
	BaseNightRatePercent  float64 `json:"base_night_rate_percent"`
	Tier2DayRatePercent   float64 `json:"tier2_day_rate_percent"`
	Tier2NightRatePercent float64 `json:"tier2_night_rate_percent"`
}

type DailyWorkStatus struct {
	ID                        string
	EmployeeID                string
	Date                      time.Time
	Status                    Status
	ShiftID                   *string
	CheckIn                   *time.Time
	CheckOut                  *time.Time
	DayType                   DayType
	WorkedHours               float64
	BreakMinutes              int
	LateMinutes               int
	EarlyMinutes              int
	StandardDayHours          float64
	StandardNightHours        float64
	Overtime                  OvertimeBuckets
	TotalOvertimeHours        float64
	TotalRoundedOvertimeHours float64
	SundayHours               float64
	NightHours                float64
	OvertimeTiers             OvertimeTiers
	EstimatedOvertimePay      decimal.Decimal
	IsManuallyUpdated         bool
	Notes                     *string
	CalculatedAt              time.Time
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// ZeroHours clears every hour and pay figure, keeping identity and timestamps.
func (d *DailyWorkStatus) ZeroHours() {
	d.WorkedHours = 0
	d.StandardDayHours = 0
	d.StandardNightHours = 0
	d.Overtime = OvertimeBuckets{}
	d.TotalOvertimeHours = 0
	d.TotalRoundedOvertimeHours = 0
	d.SundayHours = 0
	d.NightHours = 0
	d.OvertimeTiers = OvertimeTiers{}
	d.EstimatedOvertimePay = decimal.Zero
}

// StandardHours is standard day plus standard night time.
func (d DailyWorkStatus) StandardHours() float64 {
	return d.StandardDayHours + d.StandardNightHours
}
