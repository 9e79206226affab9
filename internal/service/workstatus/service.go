package workstatus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/workstatus"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/timeinterval"
	"golang.org/x/sync/errgroup"
)

type WorkStatusServiceImpl struct {
	attendanceRepo  attendance.AttendanceRepository
	dailyStatusRepo workstatus.DailyStatusRepository
	shiftRepo       shift.ShiftRepository
	holidayRepo     holiday.HolidayRepository
	settingsService settings.SettingsService

	concurrency  int
	lookbackDays int
	now          func() time.Time
}

// dayContext is what every date of one computation shares.
type dayContext struct {
	employeeID string
	now        time.Time
	shift      *shift.Shift
	settings   settings.UserSettings
	holidays   map[string]bool
}

// ComputeDailyStatus implements workstatus.WorkStatusService.
func (s *WorkStatusServiceImpl) ComputeDailyStatus(ctx context.Context, employeeID string, date time.Time) (workstatus.DailyWorkStatus, error) {
	if employeeID == "" {
		return workstatus.DailyWorkStatus{}, workstatus.ErrEmployeeIDRequired
	}

	dc, err := s.loadDayContext(ctx, employeeID, date, date)
	if err != nil {
		return workstatus.DailyWorkStatus{}, err
	}

	computed, changed, err := s.computeDay(ctx, dc, date)
	if err != nil {
		return workstatus.DailyWorkStatus{}, err
	}
	if !changed {
		return computed, nil
	}

	saved, err := s.dailyStatusRepo.SetDailyStatus(ctx, computed)
	if err != nil {
		return workstatus.DailyWorkStatus{}, fmt.Errorf("failed to save daily status: %w", err)
	}
	return saved, nil
}

// ComputeRangeStatus implements workstatus.WorkStatusService.
func (s *WorkStatusServiceImpl) ComputeRangeStatus(ctx context.Context, employeeID string, start, end time.Time) ([]workstatus.DailyWorkStatus, error) {
	if employeeID == "" {
		return nil, workstatus.ErrEmployeeIDRequired
	}
	if end.Before(start) {
		return nil, workstatus.ErrInvalidDateRange
	}

	dc, err := s.loadDayContext(ctx, employeeID, start, end)
	if err != nil {
		return nil, err
	}

	dates := datesBetween(start, end)
	results := make([]workstatus.DailyWorkStatus, len(dates))
	changed := make([]bool, len(dates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, date := range dates {
		i, date := i, date
		g.Go(func() error {
			computed, ok, err := s.computeDay(gctx, dc, date)
			if err != nil {
				return fmt.Errorf("compute %s: %w", date.Format("2006-01-02"), err)
			}
			results[i] = computed
			changed[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var toSave []workstatus.DailyWorkStatus
	var savedAt []int
	for i := range results {
		if changed[i] {
			toSave = append(toSave, results[i])
			savedAt = append(savedAt, i)
		}
	}
	if len(toSave) > 0 {
		saved, err := s.dailyStatusRepo.SetDailyStatuses(ctx, toSave)
		if err != nil {
			return nil, fmt.Errorf("failed to save daily statuses: %w", err)
		}
		for j, i := range savedAt {
			results[i] = saved[j]
		}
	}

	slog.Info("Computed work status range",
		"employee_id", employeeID,
		"start", start.Format("2006-01-02"),
		"end", end.Format("2006-01-02"),
		"days", len(dates),
		"saved", len(toSave),
	)
	return results, nil
}

// ListRange implements workstatus.WorkStatusService.
func (s *WorkStatusServiceImpl) ListRange(ctx context.Context, employeeID string, start, end time.Time) ([]workstatus.DailyWorkStatus, error) {
	if end.Before(start) {
		return nil, workstatus.ErrInvalidDateRange
	}
	statuses, err := s.dailyStatusRepo.ListRange(ctx, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily statuses: %w", err)
	}
	return statuses, nil
}

// ManuallySetStatus implements workstatus.WorkStatusService.
func (s *WorkStatusServiceImpl) ManuallySetStatus(ctx context.Context, req workstatus.ManualStatusRequest) (workstatus.DailyWorkStatus, error) {
	if err := req.Validate(); err != nil {
		return workstatus.DailyWorkStatus{}, err
	}
	date, _ := time.Parse("2006-01-02", req.Date)
	status, _ := workstatus.ParseStatus(req.Status)

	userSettings, err := s.settingsService.Get(ctx, req.EmployeeID)
	if err != nil {
		return workstatus.DailyWorkStatus{}, fmt.Errorf("failed to get user settings: %w", err)
	}
	loc := userSettings.Location()
	date = timeinterval.DateIn(date, loc)
	now := s.now()

	holidays, err := s.holidayRepo.ListBetween(ctx, dateOnly(date), dateOnly(date))
	if err != nil {
		return workstatus.DailyWorkStatus{}, fmt.Errorf("failed to list holidays: %w", err)
	}

	record := workstatus.DailyWorkStatus{
		EmployeeID: req.EmployeeID,
		Date:       date,
	}
	existing, err := s.dailyStatusRepo.GetDailyStatus(ctx, req.EmployeeID, date)
	switch {
	case err == nil:
		record = existing
	case !errors.Is(err, workstatus.ErrDailyStatusNotFound):
		return workstatus.DailyWorkStatus{}, fmt.Errorf("failed to get daily status: %w", err)
	}
	record.DayType = workstatus.DayTypeOf(date, len(holidays) > 0)

	// leave-type overrides carry no attendance
	if status.IsManualOnly() {
		record.ZeroHours()
		record.CheckIn = nil
		record.CheckOut = nil
		record.LateMinutes = 0
		record.EarlyMinutes = 0
	}

	if req.CheckIn != nil {
		checkIn, _ := time.Parse(time.RFC3339, *req.CheckIn)
		record.CheckIn = &checkIn
	}
	if req.CheckOut != nil {
		checkOut, _ := time.Parse(time.RFC3339, *req.CheckOut)
		record.CheckOut = &checkOut
	}
	if record.CheckIn != nil && record.CheckOut != nil && !record.CheckOut.After(*record.CheckIn) {
		return workstatus.DailyWorkStatus{}, workstatus.ErrManualCheckOutBefore
	}
	if req.WorkedHours != nil {
		record.WorkedHours = *req.WorkedHours
	} else if record.CheckIn != nil && record.CheckOut != nil && !status.IsManualOnly() {
		record.WorkedHours = record.CheckOut.Sub(*record.CheckIn).Hours()
	}
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	record.Status = status
	record.IsManuallyUpdated = true
	record.CalculatedAt = now

	saved, err := s.dailyStatusRepo.SetDailyStatus(ctx, record)
	if err != nil {
		return workstatus.DailyWorkStatus{}, fmt.Errorf("failed to save manual status: %w", err)
	}

	slog.Info("Manual work status set", "employee_id", req.EmployeeID, "date", req.Date, "status", status.String())
	return saved, nil
}

// ClearManualStatus implements workstatus.WorkStatusService.
func (s *WorkStatusServiceImpl) ClearManualStatus(ctx context.Context, employeeID string, date time.Time) (workstatus.DailyWorkStatus, error) {
	userSettings, err := s.settingsService.Get(ctx, employeeID)
	if err != nil {
		return workstatus.DailyWorkStatus{}, fmt.Errorf("failed to get user settings: %w", err)
	}
	date = timeinterval.DateIn(date, userSettings.Location())

	existing, err := s.dailyStatusRepo.GetDailyStatus(ctx, employeeID, date)
	if err != nil {
		return workstatus.DailyWorkStatus{}, fmt.Errorf("failed to get daily status: %w", err)
	}
	if !existing.IsManuallyUpdated {
		return workstatus.DailyWorkStatus{}, workstatus.ErrNotManuallyUpdated
	}

	if err := s.dailyStatusRepo.DeleteDailyStatus(ctx, employeeID, date); err != nil {
		return workstatus.DailyWorkStatus{}, fmt.Errorf("failed to delete daily status: %w", err)
	}

	slog.Info("Manual work status cleared", "employee_id", employeeID, "date", date.Format("2006-01-02"))
	return s.ComputeDailyStatus(ctx, employeeID, date)
}

// RecomputeAfterShiftChange implements workstatus.Recomputer.
func (s *WorkStatusServiceImpl) RecomputeAfterShiftChange(ctx context.Context, employeeID string) error {
	userSettings, err := s.settingsService.Get(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("failed to get user settings: %w", err)
	}
	loc := userSettings.Location()
	today := timeinterval.StartOfDay(s.now(), loc)
	start := today.AddDate(0, 0, -s.lookbackDays)

	if _, err := s.ComputeRangeStatus(ctx, employeeID, start, today); err != nil {
		return fmt.Errorf("failed to recompute after shift change: %w", err)
	}
	return nil
}

func (s *WorkStatusServiceImpl) loadDayContext(ctx context.Context, employeeID string, start, end time.Time) (dayContext, error) {
	dc := dayContext{
		employeeID: employeeID,
		now:        s.now(),
		holidays:   make(map[string]bool),
	}

	userSettings, err := s.settingsService.Get(ctx, employeeID)
	if err != nil {
		return dayContext{}, fmt.Errorf("failed to get user settings: %w", err)
	}
	dc.settings = userSettings

	activeShift, err := s.shiftRepo.GetActiveShift(ctx, employeeID)
	switch {
	case err == nil:
		dc.shift = &activeShift
	case errors.Is(err, shift.ErrNoActiveShift):
		slog.Debug("No active shift, computing without schedule", "employee_id", employeeID)
	default:
		return dayContext{}, fmt.Errorf("failed to get active shift: %w", err)
	}

	holidays, err := s.holidayRepo.ListBetween(ctx, dateOnly(start), dateOnly(end))
	if err != nil {
		return dayContext{}, fmt.Errorf("failed to list holidays: %w", err)
	}
	for _, h := range holidays {
		dc.holidays[h.Date.Format("2006-01-02")] = true
	}
	return dc, nil
}

// computeDay returns the record for date and whether it should be persisted.
// Manual overrides and eventless days off are left alone.
func (s *WorkStatusServiceImpl) computeDay(ctx context.Context, dc dayContext, date time.Time) (workstatus.DailyWorkStatus, bool, error) {
	loc := dc.settings.Location()
	date = timeinterval.DateIn(date, loc)

	var existing *workstatus.DailyWorkStatus
	stored, err := s.dailyStatusRepo.GetDailyStatus(ctx, dc.employeeID, date)
	switch {
	case err == nil:
		if stored.IsManuallyUpdated {
			return stored, false, nil
		}
		existing = &stored
	case !errors.Is(err, workstatus.ErrDailyStatusNotFound):
		return workstatus.DailyWorkStatus{}, false, fmt.Errorf("failed to get daily status: %w", err)
	}

	events, err := s.attendanceRepo.GetEvents(ctx, dc.employeeID, date)
	if err != nil {
		return workstatus.DailyWorkStatus{}, false, fmt.Errorf("failed to get attendance events: %w", err)
	}

	computed := ComputeDailyStatus(ComputeInput{
		EmployeeID: dc.employeeID,
		Date:       date,
		Now:        dc.now,
		Shift:      dc.shift,
		Events:     events,
		Settings:   dc.settings,
		Existing:   existing,
		IsHoliday:  dc.holidays[date.Format("2006-01-02")],
	})

	if len(events) == 0 && existing == nil && !isScheduledWorkDay(dc.shift, date) {
		return computed, false, nil
	}
	if computed.Status == workstatus.StatusDataError {
		slog.Warn("Attendance events out of order", "employee_id", dc.employeeID, "date", date.Format("2006-01-02"))
	}
	return computed, true, nil
}

func isScheduledWorkDay(s *shift.Shift, date time.Time) bool {
	return s != nil && s.IsWorkDay(date)
}

func datesBetween(start, end time.Time) []time.Time {
	start, end = dateOnly(start), dateOnly(end)
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

func dateOnly(t time.Time) time.Time {
	return timeinterval.DateIn(t, time.UTC)
}

type Option func(*WorkStatusServiceImpl)

// WithConcurrency bounds how many dates of a range are computed at once.
func WithConcurrency(n int) Option {
	return func(s *WorkStatusServiceImpl) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithLookbackDays sets how far back a shift change reaches.
func WithLookbackDays(days int) Option {
	return func(s *WorkStatusServiceImpl) {
		if days >= 0 {
			s.lookbackDays = days
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *WorkStatusServiceImpl) {
		if now != nil {
			s.now = now
		}
	}
}

func NewWorkStatusService(
	attendanceRepo attendance.AttendanceRepository,
	dailyStatusRepo workstatus.DailyStatusRepository,
	shiftRepo shift.ShiftRepository,
	holidayRepo holiday.HolidayRepository,
	settingsService settings.SettingsService,
	opts ...Option,
) workstatus.WorkStatusService {
	s := &WorkStatusServiceImpl{
		attendanceRepo:  attendanceRepo,
		dailyStatusRepo: dailyStatusRepo,
		shiftRepo:       shiftRepo,
		holidayRepo:     holidayRepo,
		settingsService: settingsService,
		concurrency:     4,
		lookbackDays:    31,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
