package attendance

import (
	"context"
	"time"
)

// AttendanceRepository is the append-only event log. All methods are scoped by
// employeeID.
type AttendanceRepository interface {
	// AppendEvent stores a new event and returns it with ID and CreatedAt populated
	AppendEvent(ctx context.Context, event Event) (Event, error)

	// GetEvents returns the events of one work date ordered by timestamp
	GetEvents(ctx context.Context, employeeID string, workDate time.Time) ([]Event, error)

	// ListEmployeeIDsWithEventsSince is used by the recompute job to find who to refresh
	ListEmployeeIDsWithEventsSince(ctx context.Context, since time.Time) ([]string, error)
}
