package workstatus

import (
	"context"
	"time"
)

type DailyStatusRepository interface {
	// GetDailyStatus returns ErrDailyStatusNotFound when nothing is stored for the date
	GetDailyStatus(ctx context.Context, employeeID string, date time.Time) (DailyWorkStatus, error)

	// SetDailyStatus inserts or replaces the record for (employee, date) and returns
	// the stored row. A stored manual override is only replaced by another manual
	// record; otherwise it is returned unchanged.
	SetDailyStatus(ctx context.Context, status DailyWorkStatus) (DailyWorkStatus, error)
	// SetDailyStatuses applies SetDailyStatus to every record atomically.
	SetDailyStatuses(ctx context.Context, statuses []DailyWorkStatus) ([]DailyWorkStatus, error)

	ListRange(ctx context.Context, employeeID string, start, end time.Time) ([]DailyWorkStatus, error)
	DeleteDailyStatus(ctx context.Context, employeeID string, date time.Time) error
}
