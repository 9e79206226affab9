package workstatus

import (
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/workstatus"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/timeinterval"
	"github.com/shopspring/decimal"
)

// ComputeInput carries one date's inputs. Shift is nil when none is configured;
// Existing is the stored record, if any.
type ComputeInput struct {
	EmployeeID string
	Date       time.Time
	Now        time.Time
	Shift      *shift.Shift
	Events     []attendance.Event
	Settings   settings.UserSettings
	Existing   *workstatus.DailyWorkStatus
	IsHoliday  bool
}

// ComputeDailyStatus classifies and buckets one date. It has no side effects and never
// modifies its inputs. A stored manual override is returned unchanged.
func ComputeDailyStatus(in ComputeInput) workstatus.DailyWorkStatus {
	if in.Existing != nil && in.Existing.IsManuallyUpdated {
		return *in.Existing
	}

	loc := in.Settings.Location()
	date := timeinterval.DateIn(in.Date, loc)
	today := timeinterval.StartOfDay(in.Now, loc)

	result := workstatus.DailyWorkStatus{
		EmployeeID:           in.EmployeeID,
		Date:                 date,
		Status:               workstatus.StatusNotUpdated,
		DayType:              workstatus.DayTypeOf(date, in.IsHoliday),
		EstimatedOvertimePay: decimal.Zero,
		CalculatedAt:         in.Now,
	}
	if in.Existing != nil {
		result.ID = in.Existing.ID
		result.CreatedAt = in.Existing.CreatedAt
		result.Notes = in.Existing.Notes
	}
	if in.Shift != nil {
		shiftID := in.Shift.ID
		result.ShiftID = &shiftID
		result.BreakMinutes = in.Shift.BreakMinutes
	}

	if date.After(today) {
		result.Status = workstatus.StatusFutureDay
		return result
	}

	if len(in.Events) == 0 {
		return result
	}

	punches := NormalizeEvents(in.Events)
	result.CheckIn = punches.CheckIn
	result.CheckOut = punches.CheckOut

	simpleTap := in.Settings.PunchMode == settings.PunchModeSimple
	resolved, scheduled := resolveShift(date, in.Shift, loc)

	// rules that hold without a schedule
	switch {
	case punches.CheckIn != nil && punches.CheckOut != nil && !punches.CheckOut.After(*punches.CheckIn):
		result.Status = workstatus.StatusDataError
		return result
	case punches.CheckIn != nil && punches.CheckOut == nil && !(simpleTap && punches.CheckInFromPunch && scheduled):
		if in.Now.Sub(*punches.CheckIn) > time.Duration(in.Settings.ForgotCheckoutHours)*time.Hour {
			result.Status = workstatus.StatusForgotCheckout
		} else {
			result.Status = workstatus.StatusMissingLog
		}
		if scheduled {
			result.LateMinutes = LateMinutes(*punches.CheckIn, resolved.Start, in.Settings.LateThresholdMinutes)
		}
		return result
	}

	if !scheduled {
		result.Status = workstatus.StatusMissingLog
		return result
	}

	switch {
	case punches.CheckIn != nil && punches.CheckOut == nil:
		return completeScheduled(result, resolved, in)

	case punches.CheckIn == nil && punches.CheckOut == nil:
		if punches.GoWork != nil && simpleTap {
			result.CheckIn = punches.GoWork
			return completeScheduled(result, resolved, in)
		}
		result.Status = workstatus.StatusMissingLog
		return result

	case punches.CheckIn == nil:
		result.Status = workstatus.StatusMissingLog
		return result
	}

	verdict := ClassifyAttendance(*punches.CheckIn, *punches.CheckOut, resolved, in.Settings)
	result.Status = verdict.Status
	result.LateMinutes = verdict.LateMinutes
	result.EarlyMinutes = verdict.EarlyMinutes

	worked := timeinterval.Interval{Start: *punches.CheckIn, End: *punches.CheckOut}
	result.WorkedHours = timeinterval.DurationHours(worked)
	applyBuckets(&result, BucketInput{
		Worked:         worked,
		Shift:          resolved,
		DayType:        result.DayType,
		NightStart:     in.Settings.NightStartTime,
		NightEnd:       in.Settings.NightEndTime,
		Location:       loc,
		BreakMinutes:   in.Shift.BreakMinutes,
		PenaltyMinutes: verdict.LateMinutes + verdict.EarlyMinutes,
	}, in.Settings)
	return result
}

// resolveShift reports false when no shift is configured or its times do not resolve.
func resolveShift(date time.Time, sh *shift.Shift, loc *time.Location) (ResolvedShift, bool) {
	if sh == nil {
		return ResolvedShift{}, false
	}
	resolved, err := ResolveShift(date, *sh, loc)
	if err != nil {
		return ResolvedShift{}, false
	}
	return resolved, true
}

// completeScheduled credits the scheduled standard interval for a single-tap day.
func completeScheduled(result workstatus.DailyWorkStatus, resolved ResolvedShift, in ComputeInput) workstatus.DailyWorkStatus {
	result.Status = workstatus.StatusComplete
	result.WorkedHours = timeinterval.DurationHours(resolved.Standard)
	applyBuckets(&result, BucketInput{
		Worked:       resolved.Standard,
		Shift:        resolved,
		DayType:      result.DayType,
		NightStart:   in.Settings.NightStartTime,
		NightEnd:     in.Settings.NightEndTime,
		Location:     in.Settings.Location(),
		BreakMinutes: in.Shift.BreakMinutes,
	}, in.Settings)
	return result
}

func applyBuckets(result *workstatus.DailyWorkStatus, in BucketInput, s settings.UserSettings) {
	b := BucketHours(in)

	result.StandardDayHours = b.StandardDay
	result.StandardNightHours = b.StandardNight
	result.Overtime = b.Overtime
	result.TotalOvertimeHours = b.TotalOvertime
	result.TotalRoundedOvertimeHours = b.RoundedOvertime
	result.NightHours = b.Night()
	if result.DayType == workstatus.DayTypeSunday {
		result.SundayHours = b.Total()
	}

	result.OvertimeTiers = AssignRates(b.TotalOvertime, result.DayType, s)
	result.EstimatedOvertimePay = EstimateOvertimePay(b.OvertimeDay, b.OvertimeNight, result.OvertimeTiers, s.HourlyWage)
}
