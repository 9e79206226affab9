package timeinterval

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrMalformedClock = errors.New("wall-clock time must be in HH:MM format")

// WallClock is a time of day with minute precision, e.g. 22:00.
type WallClock struct {
	Hour   int
	Minute int
}

// ParseWallClock parses "HH:MM" (a trailing ":SS" is accepted and ignored).
func ParseWallClock(s string) (WallClock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return WallClock{}, fmt.Errorf("%w: %q", ErrMalformedClock, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 || len(parts[0]) > 2 {
		return WallClock{}, fmt.Errorf("%w: %q", ErrMalformedClock, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 || len(parts[1]) != 2 {
		return WallClock{}, fmt.Errorf("%w: %q", ErrMalformedClock, s)
	}

	return WallClock{Hour: hour, Minute: minute}, nil
}

// MustParseWallClock is ParseWallClock for constants and tests.
func MustParseWallClock(s string) WallClock {
	c, err := ParseWallClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c WallClock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Minutes returns minutes since midnight.
func (c WallClock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// Before compares hour first, then minute.
func (c WallClock) Before(other WallClock) bool {
	if c.Hour != other.Hour {
		return c.Hour < other.Hour
	}
	return c.Minute < other.Minute
}

// On places the clock on the calendar day of date, in loc.
func (c WallClock) On(date time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	d := date.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour, c.Minute, 0, 0, loc)
}

// IsOvernightShift reports whether end falls on the next calendar day, i.e. end is
// strictly earlier than start on the clock face.
func IsOvernightShift(start, end WallClock) bool {
	return end.Before(start)
}

// IsOvernight is IsOvernightShift over raw "HH:MM" strings. Malformed input is never
// overnight.
func IsOvernight(startTime, endTime string) bool {
	start, err := ParseWallClock(startTime)
	if err != nil {
		return false
	}
	end, err := ParseWallClock(endTime)
	if err != nil {
		return false
	}
	return IsOvernightShift(start, end)
}

// ResolveWindow builds [start, end] on date. End is advanced one calendar day when it
// is not after start on the clock face, so equal clocks describe a 24h window.
func ResolveWindow(date time.Time, start, end WallClock, loc *time.Location) Interval {
	s := start.On(date, loc)
	e := end.On(date, loc)
	if !start.Before(end) {
		e = addDay(e, loc)
	}
	return Interval{Start: s, End: e}
}

// StartOfDay truncates t to local midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	d := t.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}

// addDay moves to the same wall clock on the next calendar day, which is not always
// 24h later across DST transitions.
func addDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	d := t.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day()+1, d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), loc)
}

// DateIn keeps d's calendar date and moves it to midnight in loc, without converting
// the instant first. Dates parsed as "2006-01-02" are UTC and would otherwise shift a
// day west of Greenwich.
func DateIn(d time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}
