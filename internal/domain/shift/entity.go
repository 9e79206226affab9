package shift

import (
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/timeinterval"
)

// Shift is a daily schedule in wall-clock terms. OfficeEndTime closes standard hours;
// EndTime, when set, is the latest end including pre-approved overtime. Either end may
// be earlier than StartTime on the clock face, which means the next calendar day.
type Shift struct {
	ID            string
	EmployeeID    string
	Name          string
	StartTime     string // HH:MM
	OfficeEndTime string // HH:MM
	EndTime       *string
	BreakMinutes  int
	WorkDays      []int // 1=Monday, ..., 7=Sunday
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// MaxEndTime returns EndTime, defaulting to OfficeEndTime.
func (s Shift) MaxEndTime() string {
	if s.EndTime == nil || *s.EndTime == "" {
		return s.OfficeEndTime
	}
	return *s.EndTime
}

// IsWorkDay reports whether date's weekday is one of WorkDays. An empty list means
// every day.
func (s Shift) IsWorkDay(date time.Time) bool {
	if len(s.WorkDays) == 0 {
		return true
	}
	day := isoWeekday(date)
	for _, d := range s.WorkDays {
		if d == day {
			return true
		}
	}
	return false
}

// Clocks parses the three wall-clock times and checks that they are ordered
// start <= office end <= max end once each end is rolled past start.
func (s Shift) Clocks() (start, officeEnd, maxEnd timeinterval.WallClock, err error) {
	if start, err = timeinterval.ParseWallClock(s.StartTime); err != nil {
		return
	}
	if officeEnd, err = timeinterval.ParseWallClock(s.OfficeEndTime); err != nil {
		return
	}
	if maxEnd, err = timeinterval.ParseWallClock(s.MaxEndTime()); err != nil {
		return
	}
	if offsetFrom(start, maxEnd) < offsetFrom(start, officeEnd) {
		err = ErrInvalidShiftOrder
	}
	return
}

// offsetFrom is the forward distance in minutes from start to end, where an end equal
// to start is a full day.
func offsetFrom(start, end timeinterval.WallClock) int {
	d := end.Minutes() - start.Minutes()
	if d <= 0 {
		d += 24 * 60
	}
	return d
}

func isoWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// WorkDayValues lists the accepted WorkDays entries.
var WorkDayValues = []int{1, 2, 3, 4, 5, 6, 7}
