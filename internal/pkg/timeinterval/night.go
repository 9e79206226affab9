package timeinterval

import (
	"fmt"
	"time"
)

// DefaultNightStart and DefaultNightEnd bound the night window when settings leave it unset.
const (
	DefaultNightStart = "22:00"
	DefaultNightEnd   = "05:00"
)

// NightWindow is a daily clock range, possibly wrapping midnight (22:00-05:00).
type NightWindow struct {
	Start WallClock
	End   WallClock
}

func ParseNightWindow(startTime, endTime string) (NightWindow, error) {
	start, err := ParseWallClock(startTime)
	if err != nil {
		return NightWindow{}, fmt.Errorf("night window start: %w", err)
	}
	end, err := ParseWallClock(endTime)
	if err != nil {
		return NightWindow{}, fmt.Errorf("night window end: %w", err)
	}
	return NightWindow{Start: start, End: end}, nil
}

// IsOvernight reports whether the window itself crosses midnight. This is unrelated to
// whether any shift does.
func (w NightWindow) IsOvernight() bool {
	return IsOvernightShift(w.Start, w.End)
}

// OnDay returns the window that opens on the calendar day of date.
func (w NightWindow) OnDay(date time.Time, loc *time.Location) Interval {
	return ResolveWindow(date, w.Start, w.End, loc)
}

// Intervals returns the night portions of span, one per calendar day whose window
// touches it, ordered by start. The scan begins the day before span.Start so the
// morning tail of the previous evening's window is included.
func (w NightWindow) Intervals(span Interval, loc *time.Location) []Interval {
	if span.IsEmpty() {
		return nil
	}

	first := StartOfDay(span.Start, loc)
	first = time.Date(first.Year(), first.Month(), first.Day()-1, 0, 0, 0, 0, first.Location())
	last := StartOfDay(span.End, loc)

	var out []Interval
	for day := first; !day.After(last); day = time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, day.Location()) {
		window := w.OnDay(day, loc)
		if overlap, ok := Intersection(span, window); ok && !overlap.IsEmpty() {
			out = append(out, overlap)
		}
	}
	Sort(out)
	return out
}

// Hours sums the night portions of span.
func (w NightWindow) Hours(span Interval, loc *time.Location) float64 {
	return SumDurationHours(w.Intervals(span, loc))
}

// Split divides span into its day and night parts.
func (w NightWindow) Split(span Interval, loc *time.Location) (day, night []Interval) {
	night = w.Intervals(span, loc)
	day = Subtract(span, night)
	return day, night
}

// NightHours is the string-configured form of NightWindow.Hours. A malformed start or
// end time yields zero so an otherwise valid day total is still produced.
func NightHours(span Interval, nightStart, nightEnd string, loc *time.Location) float64 {
	w, err := ParseNightWindow(nightStart, nightEnd)
	if err != nil {
		return 0
	}
	return w.Hours(span, loc)
}
