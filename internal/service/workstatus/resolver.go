package workstatus

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/timeinterval"
)

// ResolvedShift is a shift placed on a concrete date.
type ResolvedShift struct {
	Start     time.Time
	OfficeEnd time.Time
	MaxEnd    time.Time

	// Standard is [Start, OfficeEnd], Overtime is [OfficeEnd, MaxEnd]
	Standard timeinterval.Interval
	Overtime timeinterval.Interval
}

// ResolveShift builds the shift's instants on date. Office end and max end each roll to
// the next day independently when they are not after the start time.
func ResolveShift(date time.Time, s shift.Shift, loc *time.Location) (ResolvedShift, error) {
	start, officeEnd, maxEnd, err := s.Clocks()
	if err != nil {
		return ResolvedShift{}, fmt.Errorf("resolve shift %q: %w", s.Name, err)
	}

	standard := timeinterval.ResolveWindow(date, start, officeEnd, loc)
	full := timeinterval.ResolveWindow(date, start, maxEnd, loc)

	return ResolvedShift{
		Start:     standard.Start,
		OfficeEnd: standard.End,
		MaxEnd:    full.End,
		Standard:  standard,
		Overtime:  timeinterval.Interval{Start: standard.End, End: full.End},
	}, nil
}

// Scheduled is the whole window from start to max end.
func (r ResolvedShift) Scheduled() timeinterval.Interval {
	return timeinterval.Interval{Start: r.Start, End: r.MaxEnd}
}
