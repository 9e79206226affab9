// Package timeinterval holds the interval arithmetic used by work-hour calculations:
// intersection, difference, durations, wall-clock windows and night-window portions.
package timeinterval

import (
	"errors"
	"sort"
	"time"
)

var ErrInvertedInterval = errors.New("interval end is before its start")

// Interval is a closed span [Start, End] with Start <= End.
type Interval struct {
	Start time.Time
	End   time.Time
}

// New returns ErrInvertedInterval when end is before start.
func New(start, end time.Time) (Interval, error) {
	if end.Before(start) {
		return Interval{}, ErrInvertedInterval
	}
	return Interval{Start: start, End: end}, nil
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

func (i Interval) IsEmpty() bool {
	return !i.End.After(i.Start)
}

// Contains reports whether t lies within the interval, bounds included.
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && !t.After(i.End)
}

// Covers reports whether other lies entirely within i.
func (i Interval) Covers(other Interval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

// Intersection returns the overlap of a and b. ok is false when
// max(a.Start, b.Start) > min(a.End, b.End).
func Intersection(a, b Interval) (Interval, bool) {
	start := a.Start
	if b.Start.After(start) {
		start = b.Start
	}
	end := a.End
	if b.End.Before(end) {
		end = b.End
	}
	if start.After(end) {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

// Difference returns the parts of a not covered by b: nothing, a "before" remainder,
// an "after" remainder, or both. Zero-length remainders are dropped.
func Difference(a, b Interval) []Interval {
	overlap, ok := Intersection(a, b)
	if !ok || overlap.IsEmpty() {
		if a.IsEmpty() {
			return nil
		}
		return []Interval{a}
	}

	var out []Interval
	if overlap.Start.After(a.Start) {
		out = append(out, Interval{Start: a.Start, End: overlap.Start})
	}
	if a.End.After(overlap.End) {
		out = append(out, Interval{Start: overlap.End, End: a.End})
	}
	return out
}

// Subtract removes every interval in bs from a.
func Subtract(a Interval, bs []Interval) []Interval {
	rest := []Interval{a}
	for _, b := range bs {
		next := make([]Interval, 0, len(rest)+1)
		for _, r := range rest {
			next = append(next, Difference(r, b)...)
		}
		rest = next
		if len(rest) == 0 {
			break
		}
	}
	return rest
}

// IntersectAll clips every interval in bs to a and drops the ones that miss it.
func IntersectAll(a Interval, bs []Interval) []Interval {
	out := make([]Interval, 0, len(bs))
	for _, b := range bs {
		if overlap, ok := Intersection(a, b); ok && !overlap.IsEmpty() {
			out = append(out, overlap)
		}
	}
	return out
}

// DurationHours is the interval length in fractional hours. An inverted interval is a
// caller error and yields a negative number; it is not corrected here.
func DurationHours(i Interval) float64 {
	return i.Duration().Hours()
}

func SumDurationHours(intervals []Interval) float64 {
	var total float64
	for _, i := range intervals {
		total += DurationHours(i)
	}
	return total
}

// Sort orders intervals by start, then end.
func Sort(intervals []Interval) {
	sort.Slice(intervals, func(i, j int) bool {
		if intervals[i].Start.Equal(intervals[j].Start) {
			return intervals[i].End.Before(intervals[j].End)
		}
		return intervals[i].Start.Before(intervals[j].Start)
	})
}
