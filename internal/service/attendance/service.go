package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/workstatus"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/timeinterval"
)

// allowedClockSkew is how far ahead of the server clock an event may be stamped
const allowedClockSkew = 5 * time.Minute

// StatusRefresher recomputes a date after its event log changes.
type StatusRefresher interface {
	ComputeDailyStatus(ctx context.Context, employeeID string, date time.Time) (workstatus.DailyWorkStatus, error)
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	settingsService settings.SettingsService
	refresher       StatusRefresher
	now             func() time.Time
}

func toEventResponse(e attendance.Event) attendance.EventResponse {
	return attendance.EventResponse{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		WorkDate:   e.WorkDate.Format("2006-01-02"),
		Type:       string(e.Type),
		Timestamp:  e.Timestamp.Format(time.RFC3339),
		Note:       e.Note,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
	}
}

// RecordEvent implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RecordEvent(ctx context.Context, req attendance.RecordEventRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}
	now := a.now()

	timestamp := now
	if req.Timestamp != nil {
		timestamp, _ = time.Parse(time.RFC3339, *req.Timestamp)
	}
	if timestamp.After(now.Add(allowedClockSkew)) {
		return attendance.EventResponse{}, attendance.ErrEventInFuture
	}

	userSettings, err := a.settingsService.Get(ctx, req.EmployeeID)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to get user settings: %w", err)
	}
	loc := userSettings.Location()
	eventType := attendance.EventType(req.Type)

	var workDate time.Time
	if req.WorkDate != nil {
		parsed, _ := time.Parse("2006-01-02", *req.WorkDate)
		workDate = timeinterval.DateIn(parsed, loc)
	} else {
		workDate, err = a.resolveWorkDate(ctx, req.EmployeeID, eventType, timestamp, loc)
		if err != nil {
			return attendance.EventResponse{}, err
		}
	}

	created, err := a.AttendanceRepository.AppendEvent(ctx, attendance.Event{
		EmployeeID: req.EmployeeID,
		WorkDate:   workDate,
		Type:       eventType,
		Timestamp:  timestamp.UTC(),
		Note:       req.Note,
	})
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to append attendance event: %w", err)
	}

	slog.Info("Attendance event recorded",
		"employee_id", req.EmployeeID,
		"type", req.Type,
		"work_date", workDate.Format("2006-01-02"),
		"timestamp", created.Timestamp,
	)

	if a.refresher != nil {
		if _, err := a.refresher.ComputeDailyStatus(ctx, req.EmployeeID, workDate); err != nil {
			slog.Warn("Failed to refresh work status after event", "employee_id", req.EmployeeID, "work_date", workDate.Format("2006-01-02"), "error", err)
		}
	}

	return toEventResponse(created), nil
}

// resolveWorkDate keeps a closing event on the date whose session it closes. A
// check-out after midnight belongs to yesterday when yesterday is still open and today
// is not.
func (a *AttendanceServiceImpl) resolveWorkDate(ctx context.Context, employeeID string, eventType attendance.EventType, timestamp time.Time, loc *time.Location) (time.Time, error) {
	today := timeinterval.StartOfDay(timestamp, loc)
	if !eventType.ClosesSession() {
		return today, nil
	}

	todayEvents, err := a.AttendanceRepository.GetEvents(ctx, employeeID, today)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get attendance events: %w", err)
	}
	if len(todayEvents) > 0 {
		return today, nil
	}

	yesterday := today.AddDate(0, 0, -1)
	yesterdayEvents, err := a.AttendanceRepository.GetEvents(ctx, employeeID, yesterday)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get attendance events: %w", err)
	}
	if hasOpenSession(yesterdayEvents) {
		return yesterday, nil
	}
	return today, nil
}

// hasOpenSession reports whether events start a session that nothing has closed yet.
func hasOpenSession(events []attendance.Event) bool {
	var opened, closed bool
	punches := 0
	for _, e := range events {
		switch e.Type {
		case attendance.EventCheckIn:
			opened = true
		case attendance.EventCheckOut, attendance.EventComplete:
			closed = true
		case attendance.EventPunch:
			punches++
		}
	}
	if opened {
		return !closed
	}
	return punches == 1 && !closed
}

// ListEvents implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListEvents(ctx context.Context, filter attendance.ListEventsFilter) (attendance.ListEventsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListEventsResponse{}, err
	}
	if filter.EmployeeID == "" {
		return attendance.ListEventsResponse{}, attendance.ErrEmployeeIDRequired
	}

	userSettings, err := a.settingsService.Get(ctx, filter.EmployeeID)
	if err != nil {
		return attendance.ListEventsResponse{}, fmt.Errorf("failed to get user settings: %w", err)
	}
	date, _ := time.Parse("2006-01-02", filter.Date)
	date = timeinterval.DateIn(date, userSettings.Location())

	events, err := a.AttendanceRepository.GetEvents(ctx, filter.EmployeeID, date)
	if err != nil {
		return attendance.ListEventsResponse{}, fmt.Errorf("failed to get attendance events: %w", err)
	}

	responses := make([]attendance.EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, toEventResponse(e))
	}

	return attendance.ListEventsResponse{
		Date:   filter.Date,
		Total:  len(responses),
		Events: responses,
	}, nil
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	settingsService settings.SettingsService,
	refresher StatusRefresher,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		settingsService:      settingsService,
		refresher:            refresher,
		now:                  time.Now,
	}
}
