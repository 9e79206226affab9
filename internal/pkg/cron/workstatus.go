package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/workstatus"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/timeinterval"
)

// activeEmployeeLister finds employees with recent attendance.
type activeEmployeeLister interface {
	ListEmployeeIDsWithEventsSince(ctx context.Context, since time.Time) ([]string, error)
}

// rangeComputer is the part of the work status service the job drives.
type rangeComputer interface {
	ComputeRangeStatus(ctx context.Context, employeeID string, start, end time.Time) ([]workstatus.DailyWorkStatus, error)
}

// settingsGetter supplies each employee's timezone.
type settingsGetter interface {
	Get(ctx context.Context, employeeID string) (settings.UserSettings, error)
}

// WorkStatusJobs refreshes recent days so open sessions age into FORGOT_CHECKOUT
// without waiting for another event.
type WorkStatusJobs struct {
	employees  activeEmployeeLister
	computer   rangeComputer
	settings   settingsGetter
	windowDays int
	now        func() time.Time
}

func NewWorkStatusJobs(employees activeEmployeeLister, computer rangeComputer, userSettings settingsGetter, windowDays int) *WorkStatusJobs {
	if windowDays < 1 {
		windowDays = 1
	}
	return &WorkStatusJobs{
		employees:  employees,
		computer:   computer,
		settings:   userSettings,
		windowDays: windowDays,
		now:        time.Now,
	}
}

func (j *WorkStatusJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("recompute_recent_work_status", interval, j.RecomputeRecent)
}

// RecomputeRecent recomputes the last windowDays dates, today included, for every
// employee with events in that window. Dates follow each employee's timezone. One
// employee failing does not stop the rest.
func (j *WorkStatusJobs) RecomputeRecent(ctx context.Context) error {
	now := j.now()

	// a day of slack either side of UTC covers every timezone, and one more day finds
	// a night shift started before the window
	since := timeinterval.StartOfDay(now, time.UTC).AddDate(0, 0, -(j.windowDays + 1))
	employeeIDs, err := j.employees.ListEmployeeIDsWithEventsSince(ctx, since)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}
	if len(employeeIDs) == 0 {
		slog.Debug("Cron: No recent attendance to recompute")
		return nil
	}

	var failed []error
	for _, employeeID := range employeeIDs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := j.recomputeEmployee(ctx, employeeID, now); err != nil {
			slog.Error("Cron: Failed to recompute work status", "employee_id", employeeID, "error", err)
			failed = append(failed, fmt.Errorf("employee %s: %w", employeeID, err))
		}
	}

	slog.Info("Cron: Recomputed recent work status",
		"employees", len(employeeIDs),
		"failed", len(failed),
		"window_days", j.windowDays,
	)
	return errors.Join(failed...)
}

func (j *WorkStatusJobs) recomputeEmployee(ctx context.Context, employeeID string, now time.Time) error {
	userSettings, err := j.settings.Get(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("failed to get user settings: %w", err)
	}
	today := timeinterval.StartOfDay(now, userSettings.Location())
	start := today.AddDate(0, 0, -(j.windowDays - 1))

	_, err = j.computer.ComputeRangeStatus(ctx, employeeID, start, today)
	return err
}
