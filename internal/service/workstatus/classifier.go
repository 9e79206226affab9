package workstatus

import (
	"math"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/workstatus"
)

// Punches is the event log of one date reduced to the instants the classifier uses.
type Punches struct {
	GoWork   *time.Time
	CheckIn  *time.Time
	CheckOut *time.Time

	// CheckInFromPunch is set when CheckIn came from a punch event
	CheckInFromPunch bool
	Count            int
}

// NormalizeEvents picks the earliest check_in (else the earliest punch) as check-in and
// the latest check_out or complete (else the latest punch after the first) as check-out.
func NormalizeEvents(events []attendance.Event) Punches {
	var p Punches
	var firstPunch, lastPunch *time.Time
	p.Count = len(events)

	for i := range events {
		ts := events[i].Timestamp
		switch events[i].Type {
		case attendance.EventGoWork:
			p.GoWork = earliest(p.GoWork, ts)
		case attendance.EventCheckIn:
			p.CheckIn = earliest(p.CheckIn, ts)
		case attendance.EventCheckOut, attendance.EventComplete:
			p.CheckOut = latest(p.CheckOut, ts)
		case attendance.EventPunch:
			firstPunch = earliest(firstPunch, ts)
			lastPunch = latest(lastPunch, ts)
		}
	}

	if p.CheckIn == nil && firstPunch != nil {
		p.CheckIn = firstPunch
		p.CheckInFromPunch = true
	}
	if p.CheckOut == nil && lastPunch != nil && firstPunch != nil && lastPunch.After(*firstPunch) {
		p.CheckOut = lastPunch
	}
	return p
}

func earliest(cur *time.Time, ts time.Time) *time.Time {
	if cur == nil || ts.Before(*cur) {
		return &ts
	}
	return cur
}

func latest(cur *time.Time, ts time.Time) *time.Time {
	if cur == nil || ts.After(*cur) {
		return &ts
	}
	return cur
}

// Classification is the classifier's verdict on a date with both punches present.
type Classification struct {
	Status       workstatus.Status
	LateMinutes  int
	EarlyMinutes int
	QuickPunch   bool
}

// ClassifyAttendance decides between DATA_ERROR, quick punch and the late/early states.
// Late and early minutes are only kept when they exceed their thresholds.
func ClassifyAttendance(checkIn, checkOut time.Time, shift ResolvedShift, s settings.UserSettings) Classification {
	if !checkOut.After(checkIn) {
		return Classification{Status: workstatus.StatusDataError}
	}

	gap := checkOut.Sub(checkIn)
	if gap <= time.Duration(s.QuickPunchThresholdSeconds)*time.Second {
		return Classification{Status: workstatus.StatusComplete, QuickPunch: true}
	}

	c := Classification{
		LateMinutes:  LateMinutes(checkIn, shift.Start, s.LateThresholdMinutes),
		EarlyMinutes: EarlyMinutes(checkOut, shift.OfficeEnd, s.EarlyThresholdMinutes),
	}

	switch late, early := c.LateMinutes > 0, c.EarlyMinutes > 0; {
	case late && early:
		c.Status = workstatus.StatusLateAndEarly
	case late:
		c.Status = workstatus.StatusLate
	case early:
		c.Status = workstatus.StatusLeftEarly
	default:
		c.Status = workstatus.StatusComplete
	}
	return c
}

// LateMinutes is whole minutes after scheduled start, or 0 within the threshold.
func LateMinutes(checkIn, scheduledStart time.Time, thresholdMinutes int) int {
	return minutesOver(checkIn.Sub(scheduledStart), thresholdMinutes)
}

// EarlyMinutes is whole minutes before office end, or 0 within the threshold.
func EarlyMinutes(checkOut, officeEnd time.Time, thresholdMinutes int) int {
	return minutesOver(officeEnd.Sub(checkOut), thresholdMinutes)
}

func minutesOver(d time.Duration, thresholdMinutes int) int {
	if d <= 0 {
		return 0
	}
	minutes := int(math.Floor(d.Minutes()))
	if minutes <= thresholdMinutes {
		return 0
	}
	return minutes
}
