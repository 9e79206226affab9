package shift

import "context"

type ShiftRepository interface {
	// GetActiveShift returns the employee's active shift, or ErrNoActiveShift
	GetActiveShift(ctx context.Context, employeeID string) (Shift, error)

	GetByID(ctx context.Context, id string, employeeID string) (Shift, error)
	List(ctx context.Context, employeeID string) ([]Shift, error)
	Create(ctx context.Context, newShift Shift) (Shift, error)
	Update(ctx context.Context, s Shift) error

	// Activate marks the shift active and every other shift of the employee inactive
	Activate(ctx context.Context, id string, employeeID string) error
}
