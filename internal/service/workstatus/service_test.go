package workstatus

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/workstatus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

type mockAttendanceRepo struct {
	mu     sync.Mutex
	events map[string][]attendance.Event

	// onGetEvents runs after the events are read and before they are returned
	onGetEvents func(workDate time.Time)
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{events: make(map[string][]attendance.Event)}
}

func (m *mockAttendanceRepo) AppendEvent(ctx context.Context, e attendance.Event) (attendance.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := dayKey(e.EmployeeID, e.WorkDate)
	m.events[key] = append(m.events[key], e)
	return e, nil
}

func (m *mockAttendanceRepo) GetEvents(ctx context.Context, employeeID string, workDate time.Time) ([]attendance.Event, error) {
	m.mu.Lock()
	events := append([]attendance.Event(nil), m.events[dayKey(employeeID, workDate)]...)
	hook := m.onGetEvents
	m.mu.Unlock()
	if hook != nil {
		hook(workDate)
	}
	return events, nil
}

func (m *mockAttendanceRepo) ListEmployeeIDsWithEventsSince(ctx context.Context, since time.Time) ([]string, error) {
	return nil, nil
}

type mockDailyStatusRepo struct {
	mu       sync.Mutex
	statuses map[string]workstatus.DailyWorkStatus
	setCalls int
}

func newMockDailyStatusRepo() *mockDailyStatusRepo {
	return &mockDailyStatusRepo{statuses: make(map[string]workstatus.DailyWorkStatus)}
}

func (m *mockDailyStatusRepo) GetDailyStatus(ctx context.Context, employeeID string, date time.Time) (workstatus.DailyWorkStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.statuses[dayKey(employeeID, date)]
	if !ok {
		return workstatus.DailyWorkStatus{}, workstatus.ErrDailyStatusNotFound
	}
	return s, nil
}

func (m *mockDailyStatusRepo) SetDailyStatus(ctx context.Context, s workstatus.DailyWorkStatus) (workstatus.DailyWorkStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	key := dayKey(s.EmployeeID, s.Date)
	if stored, ok := m.statuses[key]; ok && stored.IsManuallyUpdated && !s.IsManuallyUpdated {
		return stored, nil
	}
	if s.ID == "" {
		s.ID = fmt.Sprintf("status-%d", len(m.statuses)+1)
	}
	m.statuses[key] = s
	return s, nil
}

func (m *mockDailyStatusRepo) SetDailyStatuses(ctx context.Context, statuses []workstatus.DailyWorkStatus) ([]workstatus.DailyWorkStatus, error) {
	saved := make([]workstatus.DailyWorkStatus, 0, len(statuses))
	for _, s := range statuses {
		row, err := m.SetDailyStatus(ctx, s)
		if err != nil {
			return nil, err
		}
		saved = append(saved, row)
	}
	return saved, nil
}

func (m *mockDailyStatusRepo) ListRange(ctx context.Context, employeeID string, start, end time.Time) ([]workstatus.DailyWorkStatus, error) {
	var out []workstatus.DailyWorkStatus
	for _, d := range datesBetween(start, end) {
		if s, err := m.GetDailyStatus(ctx, employeeID, d); err == nil {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockDailyStatusRepo) DeleteDailyStatus(ctx context.Context, employeeID string, date time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := dayKey(employeeID, date)
	if _, ok := m.statuses[key]; !ok {
		return workstatus.ErrDailyStatusNotFound
	}
	delete(m.statuses, key)
	return nil
}

type mockShiftRepo struct {
	active map[string]shift.Shift
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{active: make(map[string]shift.Shift)}
}

func (m *mockShiftRepo) GetActiveShift(ctx context.Context, employeeID string) (shift.Shift, error) {
	s, ok := m.active[employeeID]
	if !ok {
		return shift.Shift{}, shift.ErrNoActiveShift
	}
	return s, nil
}

func (m *mockShiftRepo) GetByID(ctx context.Context, id, employeeID string) (shift.Shift, error) {
	s, ok := m.active[employeeID]
	if !ok || s.ID != id {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return s, nil
}

func (m *mockShiftRepo) List(ctx context.Context, employeeID string) ([]shift.Shift, error) {
	if s, ok := m.active[employeeID]; ok {
		return []shift.Shift{s}, nil
	}
	return nil, nil
}

func (m *mockShiftRepo) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	m.active[s.EmployeeID] = s
	return s, nil
}

func (m *mockShiftRepo) Update(ctx context.Context, s shift.Shift) error {
	m.active[s.EmployeeID] = s
	return nil
}

func (m *mockShiftRepo) Activate(ctx context.Context, id, employeeID string) error {
	return nil
}

type mockHolidayRepo struct {
	holidays []holiday.Holiday
}

func (m *mockHolidayRepo) ListBetween(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range m.holidays {
		if !h.Date.Before(start) && !h.Date.After(end) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *mockHolidayRepo) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	m.holidays = append(m.holidays, h)
	return h, nil
}

func (m *mockHolidayRepo) Delete(ctx context.Context, id string) error {
	return nil
}

type stubSettingsService struct {
	settings settings.UserSettings
}

func (s *stubSettingsService) Get(ctx context.Context, employeeID string) (settings.UserSettings, error) {
	return s.settings, nil
}

func (s *stubSettingsService) GetResponse(ctx context.Context, employeeID string) (settings.SettingsResponse, error) {
	return settings.NewSettingsResponse(s.settings, false), nil
}

func (s *stubSettingsService) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	req.Apply(&s.settings)
	return settings.NewSettingsResponse(s.settings, false), nil
}

type serviceFixture struct {
	svc        workstatus.WorkStatusService
	attendance *mockAttendanceRepo
	statuses   *mockDailyStatusRepo
	shifts     *mockShiftRepo
	holidays   *mockHolidayRepo
}

func newServiceFixture(now time.Time) serviceFixture {
	f := serviceFixture{
		attendance: newMockAttendanceRepo(),
		statuses:   newMockDailyStatusRepo(),
		shifts:     newMockShiftRepo(),
		holidays:   &mockHolidayRepo{},
	}
	sh := testShift("08:00", "17:00", strPtr("20:00"), 60)
	sh.EmployeeID = "emp"
	sh.WorkDays = []int{1, 2, 3, 4, 5}
	f.shifts.active["emp"] = sh

	f.svc = NewWorkStatusService(
		f.attendance, f.statuses, f.shifts, f.holidays,
		&stubSettingsService{settings: settings.DefaultUserSettings("emp")},
		WithClock(func() time.Time { return now }),
		WithConcurrency(3),
		WithLookbackDays(7),
	)
	return f
}

func (f serviceFixture) punch(t *testing.T, date, in, out time.Time) {
	t.Helper()
	_, err := f.attendance.AppendEvent(context.Background(), attendance.Event{EmployeeID: "emp", WorkDate: date, Type: attendance.EventCheckIn, Timestamp: in})
	require.NoError(t, err)
	_, err = f.attendance.AppendEvent(context.Background(), attendance.Event{EmployeeID: "emp", WorkDate: date, Type: attendance.EventCheckOut, Timestamp: out})
	require.NoError(t, err)
}

func TestWorkStatusService_ComputeDailyStatusPersists(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(mar(20, 12, 0))
	f.punch(t, mar(10, 0, 0), mar(10, 8, 30), mar(10, 18, 0))

	got, err := f.svc.ComputeDailyStatus(ctx, "emp", mar(10, 0, 0))
	require.NoError(t, err)

	assert.Equal(t, workstatus.StatusLate, got.Status)
	assert.Equal(t, 30, got.LateMinutes)
	assert.NotEmpty(t, got.ID)

	stored, err := f.statuses.GetDailyStatus(ctx, "emp", mar(10, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, got, stored)

	_, err = f.svc.ComputeDailyStatus(ctx, "", mar(10, 0, 0))
	assert.ErrorIs(t, err, workstatus.ErrEmployeeIDRequired)
}

func TestWorkStatusService_ComputeRangeSkipsManualDays(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(mar(20, 12, 0))
	for day := 10; day <= 14; day++ {
		f.punch(t, mar(day, 0, 0), mar(day, 8, 0), mar(day, 17, 0))
	}

	manual, err := f.svc.ManuallySetStatus(ctx, workstatus.ManualStatusRequest{
		EmployeeID: "emp",
		Date:       "2025-03-12",
		Status:     "SICK_LEAVE",
		Notes:      strPtr("flu"),
	})
	require.NoError(t, err)
	assert.True(t, manual.IsManuallyUpdated)
	assert.Equal(t, workstatus.StatusSickLeave, manual.Status)
	assert.Equal(t, 0.0, manual.WorkedHours)

	results, err := f.svc.ComputeRangeStatus(ctx, "emp", mar(10, 0, 0), mar(16, 0, 0))
	require.NoError(t, err)
	require.Len(t, results, 7)

	for i, r := range results {
		assert.Equal(t, mar(10+i, 0, 0).Format("2006-01-02"), r.Date.Format("2006-01-02"))
	}
	assert.Equal(t, workstatus.StatusComplete, results[0].Status)
	assert.Equal(t, manual, results[2])
	assert.Equal(t, workstatus.StatusComplete, results[4].Status)

	// weekend days off without events are not stored
	_, err = f.statuses.GetDailyStatus(ctx, "emp", mar(15, 0, 0))
	assert.ErrorIs(t, err, workstatus.ErrDailyStatusNotFound)
	assert.Equal(t, workstatus.StatusNotUpdated, results[5].Status)

	stored, err := f.statuses.GetDailyStatus(ctx, "emp", mar(12, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, workstatus.StatusSickLeave, stored.Status)
}

func TestWorkStatusService_ComputeRangeKeepsOverrideSetMidway(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(mar(20, 12, 0))
	for day := 10; day <= 14; day++ {
		f.punch(t, mar(day, 0, 0), mar(day, 8, 0), mar(day, 17, 0))
	}

	var once sync.Once
	f.attendance.onGetEvents = func(workDate time.Time) {
		if !workDate.Equal(mar(12, 0, 0)) {
			return
		}
		once.Do(func() {
			_, err := f.svc.ManuallySetStatus(ctx, workstatus.ManualStatusRequest{
				EmployeeID: "emp",
				Date:       "2025-03-12",
				Status:     "SICK_LEAVE",
			})
			assert.NoError(t, err)
		})
	}

	results, err := f.svc.ComputeRangeStatus(ctx, "emp", mar(10, 0, 0), mar(14, 0, 0))
	require.NoError(t, err)
	require.Len(t, results, 5)

	stored, err := f.statuses.GetDailyStatus(ctx, "emp", mar(12, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, workstatus.StatusSickLeave, stored.Status)
	assert.True(t, stored.IsManuallyUpdated)
	assert.Equal(t, stored, results[2])
	assert.Equal(t, workstatus.StatusComplete, results[3].Status)
}

func TestWorkStatusService_ComputeDailyKeepsOverrideSetMidway(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(mar(20, 12, 0))
	f.punch(t, mar(10, 0, 0), mar(10, 8, 0), mar(10, 17, 0))

	f.attendance.onGetEvents = func(time.Time) {
		f.attendance.onGetEvents = nil
		_, err := f.svc.ManuallySetStatus(ctx, workstatus.ManualStatusRequest{
			EmployeeID: "emp",
			Date:       "2025-03-10",
			Status:     "LEAVE",
		})
		assert.NoError(t, err)
	}

	got, err := f.svc.ComputeDailyStatus(ctx, "emp", mar(10, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, workstatus.StatusLeave, got.Status)
	assert.True(t, got.IsManuallyUpdated)
}

func TestWorkStatusService_ComputeRangeRejectsInvertedRange(t *testing.T) {
	f := newServiceFixture(mar(20, 12, 0))
	_, err := f.svc.ComputeRangeStatus(context.Background(), "emp", mar(12, 0, 0), mar(10, 0, 0))
	assert.ErrorIs(t, err, workstatus.ErrInvalidDateRange)
}

func TestWorkStatusService_HolidayDayType(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(mar(20, 12, 0))
	f.holidays.holidays = []holiday.Holiday{{ID: "h1", Date: mar(11, 0, 0), Name: "Founders Day"}}
	f.punch(t, mar(11, 0, 0), mar(11, 8, 0), mar(11, 19, 0))

	got, err := f.svc.ComputeDailyStatus(ctx, "emp", mar(11, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, workstatus.DayTypeHoliday, got.DayType)
	assert.InDelta(t, 2.0, got.Overtime.HolidayDay, 1e-9)
}

func TestWorkStatusService_ManualStatusOnHoliday(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(mar(20, 12, 0))
	f.holidays.holidays = []holiday.Holiday{{ID: "h1", Date: mar(11, 0, 0), Name: "Founders Day"}}

	got, err := f.svc.ManuallySetStatus(ctx, workstatus.ManualStatusRequest{
		EmployeeID: "emp",
		Date:       "2025-03-11",
		Status:     "ABSENT",
	})
	require.NoError(t, err)
	assert.Equal(t, workstatus.DayTypeHoliday, got.DayType)

	weekday, err := f.svc.ManuallySetStatus(ctx, workstatus.ManualStatusRequest{
		EmployeeID: "emp",
		Date:       "2025-03-12",
		Status:     "ABSENT",
	})
	require.NoError(t, err)
	assert.Equal(t, workstatus.DayTypeWeekday, weekday.DayType)
}

func TestWorkStatusService_ManualOverrideSurvivesRecompute(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(mar(20, 12, 0))
	f.punch(t, mar(10, 0, 0), mar(10, 8, 0), mar(10, 17, 0))

	manual, err := f.svc.ManuallySetStatus(ctx, workstatus.ManualStatusRequest{
		EmployeeID: "emp",
		Date:       "2025-03-10",
		Status:     "COMPLETE",
		CheckIn:    strPtr("2025-03-10T07:00:00Z"),
		CheckOut:   strPtr("2025-03-10T15:00:00Z"),
	})
	require.NoError(t, err)
	assert.InDelta(t, 8.0, manual.WorkedHours, 1e-9)

	for n := 0; n < 3; n++ {
		got, err := f.svc.ComputeDailyStatus(ctx, "emp", mar(10, 0, 0))
		require.NoError(t, err)
		assert.Equal(t, manual, got)
	}
}

func TestWorkStatusService_ManualStatusValidation(t *testing.T) {
	f := newServiceFixture(mar(20, 12, 0))

	for _, status := range []string{"DATA_ERROR", "FUTURE_DAY", "NOT_UPDATED", "ON_BREAK"} {
		_, err := f.svc.ManuallySetStatus(context.Background(), workstatus.ManualStatusRequest{
			EmployeeID: "emp",
			Date:       "2025-03-10",
			Status:     status,
		})
		assert.Error(t, err, status)
	}
}

func TestWorkStatusService_ClearManualStatus(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(mar(20, 12, 0))
	f.punch(t, mar(10, 0, 0), mar(10, 8, 0), mar(10, 17, 0))

	_, err := f.svc.ClearManualStatus(ctx, "emp", mar(10, 0, 0))
	assert.ErrorIs(t, err, workstatus.ErrDailyStatusNotFound)

	_, err = f.svc.ManuallySetStatus(ctx, workstatus.ManualStatusRequest{EmployeeID: "emp", Date: "2025-03-10", Status: "ABSENT"})
	require.NoError(t, err)

	got, err := f.svc.ClearManualStatus(ctx, "emp", mar(10, 0, 0))
	require.NoError(t, err)
	assert.False(t, got.IsManuallyUpdated)
	assert.Equal(t, workstatus.StatusComplete, got.Status)

	_, err = f.svc.ClearManualStatus(ctx, "emp", mar(10, 0, 0))
	assert.ErrorIs(t, err, workstatus.ErrNotManuallyUpdated)
}

func TestWorkStatusService_RecomputeAfterShiftChange(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(mar(14, 12, 0))
	f.punch(t, mar(13, 0, 0), mar(13, 9, 0), mar(13, 18, 0))

	before, err := f.svc.ComputeDailyStatus(ctx, "emp", mar(13, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, workstatus.StatusLate, before.Status)

	sh := f.shifts.active["emp"]
	sh.StartTime = "09:00"
	sh.OfficeEndTime = "18:00"
	sh.EndTime = nil
	f.shifts.active["emp"] = sh

	require.NoError(t, f.svc.RecomputeAfterShiftChange(ctx, "emp"))

	after, err := f.statuses.GetDailyStatus(ctx, "emp", mar(13, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, workstatus.StatusComplete, after.Status)
	assert.Equal(t, before.ID, after.ID)
}
