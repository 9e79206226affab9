package workstatus

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/workstatus"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/timeinterval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bucketInput(t *testing.T, worked timeinterval.Interval, start, officeEnd string, end *string, breakMinutes, penalty int, dayType workstatus.DayType) BucketInput {
	t.Helper()
	r, err := ResolveShift(mar(10, 0, 0), testShift(start, officeEnd, end, breakMinutes), time.UTC)
	require.NoError(t, err)
	return BucketInput{
		Worked:         worked,
		Shift:          r,
		DayType:        dayType,
		NightStart:     "22:00",
		NightEnd:       "05:00",
		Location:       time.UTC,
		BreakMinutes:   breakMinutes,
		PenaltyMinutes: penalty,
	}
}

func TestBucketHours_NightShiftScenario(t *testing.T) {
	worked := timeinterval.Interval{Start: mar(10, 22, 10), End: mar(11, 7, 10)}
	b := BucketHours(bucketInput(t, worked, "22:00", "06:00", strPtr("07:00"), 30, 0, workstatus.DayTypeWeekday))

	// 22:10-06:00 is 410 night minutes and 60 day minutes before the 30 minute break
	assert.InDelta(t, 410.0*440/470/60, b.StandardNight, 1e-9)
	assert.InDelta(t, 60.0*440/470/60, b.StandardDay, 1e-9)
	assert.InDelta(t, 440.0/60, b.Standard(), 1e-9)

	assert.InDelta(t, 1.0, b.Overtime.WeekdayDay, 1e-9)
	assert.Equal(t, 0.0, b.Overtime.WeekdayNight)
	assert.InDelta(t, 1.0, b.TotalOvertime, 1e-9)
	assert.Equal(t, 1.0, b.RoundedOvertime)
}

func TestBucketHours_Conservation(t *testing.T) {
	shifts := []struct {
		start, officeEnd string
		end              *string
		breakMinutes     int
	}{
		{"08:00", "17:00", strPtr("20:00"), 60},
		{"22:00", "06:00", strPtr("07:00"), 30},
		{"14:00", "22:00", strPtr("01:00"), 45},
		{"20:00", "04:00", nil, 0},
	}
	for _, s := range shifts {
		r, err := ResolveShift(mar(10, 0, 0), testShift(s.start, s.officeEnd, s.end, s.breakMinutes), time.UTC)
		require.NoError(t, err)
		scheduled := r.Scheduled()

		for inOffset := 0; inOffset <= 60; inOffset += 15 {
			for outOffset := 0; outOffset <= 90; outOffset += 30 {
				worked := timeinterval.Interval{
					Start: scheduled.Start.Add(time.Duration(inOffset) * time.Minute),
					End:   scheduled.End.Add(-time.Duration(outOffset) * time.Minute),
				}
				penalty := inOffset / 2

				in := BucketInput{
					Worked: worked, Shift: r, DayType: workstatus.DayTypeSaturday,
					NightStart: "22:00", NightEnd: "05:00", Location: time.UTC,
					BreakMinutes: s.breakMinutes, PenaltyMinutes: penalty,
				}
				b := BucketHours(in)

				want := timeinterval.DurationHours(worked) - float64(s.breakMinutes+penalty)/60
				got := b.StandardDay + b.StandardNight + b.Overtime.DayTotal() + b.Overtime.NightTotal()
				assert.InDelta(t, want, got, 1e-9, "%s-%s in+%d out-%d", s.start, s.officeEnd, inOffset, outOffset)
			}
		}
	}
}

func TestBucketHours_DeductionFloorsAtZero(t *testing.T) {
	worked := timeinterval.Interval{Start: mar(10, 16, 30), End: mar(10, 19, 0)}
	b := BucketHours(bucketInput(t, worked, "08:00", "17:00", strPtr("19:00"), 60, 0, workstatus.DayTypeWeekday))

	assert.Equal(t, 0.0, b.StandardDay)
	assert.Equal(t, 0.0, b.StandardNight)
	assert.InDelta(t, 2.0, b.Overtime.WeekdayDay, 1e-9)
}

func TestBucketHours_RoutesOvertimeToOneDayType(t *testing.T) {
	worked := timeinterval.Interval{Start: mar(10, 8, 0), End: mar(10, 23, 0)}
	for _, dt := range []workstatus.DayType{workstatus.DayTypeWeekday, workstatus.DayTypeSaturday, workstatus.DayTypeSunday, workstatus.DayTypeHoliday} {
		b := BucketHours(bucketInput(t, worked, "08:00", "17:00", strPtr("23:00"), 0, 0, dt))

		day, night := b.Overtime.Pair(dt)
		assert.InDelta(t, 5.0, day, 1e-9, dt)
		assert.InDelta(t, 1.0, night, 1e-9, dt)
		assert.InDelta(t, day, b.Overtime.DayTotal(), 1e-9, dt)
		assert.InDelta(t, night, b.Overtime.NightTotal(), 1e-9, dt)
	}

	b := BucketHours(bucketInput(t, worked, "08:00", "17:00", strPtr("23:00"), 0, 0, workstatus.DayType("festival")))
	assert.InDelta(t, 5.0, b.Overtime.WeekdayDay, 1e-9)
}

func TestBucketHours_WorkOutsideScheduleIsNotCredited(t *testing.T) {
	worked := timeinterval.Interval{Start: mar(10, 6, 0), End: mar(10, 18, 0)}
	b := BucketHours(bucketInput(t, worked, "08:00", "17:00", nil, 0, 0, workstatus.DayTypeWeekday))

	assert.InDelta(t, 9.0, b.Standard(), 1e-9)
	assert.Equal(t, 0.0, b.TotalOvertime)
}

func TestBucketHours_MalformedNightWindowCountsAsDay(t *testing.T) {
	worked := timeinterval.Interval{Start: mar(10, 22, 0), End: mar(11, 6, 0)}
	in := bucketInput(t, worked, "22:00", "06:00", nil, 0, 0, workstatus.DayTypeWeekday)
	in.NightStart = "late"

	b := BucketHours(in)
	assert.InDelta(t, 8.0, b.StandardDay, 1e-9)
	assert.Equal(t, 0.0, b.StandardNight)
	assert.Equal(t, 0.0, b.Night())
}

func TestRoundUpHalfHour(t *testing.T) {
	cases := map[float64]float64{
		0:    0,
		-1:   0,
		0.1:  0.5,
		0.5:  0.5,
		1:    1,
		1.01: 1.5,
		2.2:  2.5,
	}
	for in, want := range cases {
		assert.Equal(t, want, RoundUpHalfHour(in), "%v", in)
	}

	third := 1.0 / 3
	assert.Equal(t, 1.0, RoundUpHalfHour(third+third+third))
}
