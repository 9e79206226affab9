package shift

import "context"

type ShiftService interface {
	Create(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)

	// Update changes a shift and, when it is active, recomputes recent work statuses
	Update(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)

	GetActive(ctx context.Context, employeeID string) (ShiftResponse, error)
	List(ctx context.Context, employeeID string) ([]ShiftResponse, error)
	Activate(ctx context.Context, id string, employeeID string) (ShiftResponse, error)

	// CreateDefaults seeds the standard day and night shifts for a new employee
	CreateDefaults(ctx context.Context, employeeID string) ([]ShiftResponse, error)
}
