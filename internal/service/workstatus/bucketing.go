package workstatus

import (
	"math"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/workstatus"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/timeinterval"
)

// BucketInput is everything the bucketing step needs for one date.
type BucketInput struct {
	Worked         timeinterval.Interval
	Shift          ResolvedShift
	DayType        workstatus.DayType
	NightStart     string
	NightEnd       string
	Location       *time.Location
	BreakMinutes   int
	PenaltyMinutes int
}

// Buckets is the hour partition of a worked interval.
type Buckets struct {
	StandardDay   float64
	StandardNight float64
	OvertimeDay   float64
	OvertimeNight float64

	Overtime        workstatus.OvertimeBuckets
	TotalOvertime   float64
	RoundedOvertime float64
}

func (b Buckets) Standard() float64 {
	return b.StandardDay + b.StandardNight
}

func (b Buckets) Night() float64 {
	return b.StandardNight + b.OvertimeNight
}

func (b Buckets) Total() float64 {
	return b.Standard() + b.TotalOvertime
}

// BucketHours partitions in.Worked into standard and overtime hours, each split into
// day and night. Break and penalty time come off standard hours only, proportionally.
func BucketHours(in BucketInput) Buckets {
	var b Buckets

	if actual, ok := timeinterval.Intersection(in.Worked, in.Shift.Standard); ok {
		b.StandardDay, b.StandardNight = splitDayNight(actual, in.NightStart, in.NightEnd, in.Location)
	}
	if actual, ok := timeinterval.Intersection(in.Worked, in.Shift.Overtime); ok {
		b.OvertimeDay, b.OvertimeNight = splitDayNight(actual, in.NightStart, in.NightEnd, in.Location)
	}

	b.StandardDay, b.StandardNight = deduct(b.StandardDay, b.StandardNight, float64(in.BreakMinutes+in.PenaltyMinutes)/60)

	b.Overtime.Set(in.DayType, b.OvertimeDay, b.OvertimeNight)
	b.TotalOvertime = b.OvertimeDay + b.OvertimeNight
	b.RoundedOvertime = RoundUpHalfHour(b.TotalOvertime)
	return b
}

// splitDayNight returns the day and night hours of span. An unusable night window
// counts everything as day.
func splitDayNight(span timeinterval.Interval, nightStart, nightEnd string, loc *time.Location) (day, night float64) {
	total := timeinterval.DurationHours(span)
	window, err := timeinterval.ParseNightWindow(nightStart, nightEnd)
	if err != nil {
		return total, 0
	}
	night = window.Hours(span, loc)
	return math.Max(total-night, 0), night
}

// deduct removes hours from day+night, floored at zero, keeping their ratio.
func deduct(day, night, hours float64) (float64, float64) {
	total := day + night
	if total <= 0 || hours <= 0 {
		return day, night
	}
	remaining := math.Max(total-hours, 0)
	factor := remaining / total
	return day * factor, night * factor
}

// RoundUpHalfHour rounds hours up to the next half hour. Float noise within 1e-9 of a
// boundary does not bump it.
func RoundUpHalfHour(hours float64) float64 {
	if hours <= 0 {
		return 0
	}
	return math.Ceil(hours*2-1e-9) / 2
}
