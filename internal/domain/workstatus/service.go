package workstatus

import (
	"context"
	"time"
)

type WorkStatusService interface {
	// ComputeDailyStatus classifies and buckets one date and persists the result.
	// A manual override is returned as stored.
	ComputeDailyStatus(ctx context.Context, employeeID string, date time.Time) (DailyWorkStatus, error)

	// ComputeRangeStatus runs ComputeDailyStatus for every date in [start, end]
	ComputeRangeStatus(ctx context.Context, employeeID string, start, end time.Time) ([]DailyWorkStatus, error)

	ListRange(ctx context.Context, employeeID string, start, end time.Time) ([]DailyWorkStatus, error)

	ManuallySetStatus(ctx context.Context, req ManualStatusRequest) (DailyWorkStatus, error)

	// ClearManualStatus drops the override and recomputes the date
	ClearManualStatus(ctx context.Context, employeeID string, date time.Time) (DailyWorkStatus, error)

	Recomputer
}

// Recomputer is what shift maintenance needs from the work status module.
type Recomputer interface {
	RecomputeAfterShiftChange(ctx context.Context, employeeID string) error
}
