package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

const shiftColumns = `
	id, employee_id, name, start_time, office_end_time, end_time,
	break_minutes, work_days, is_active, created_at, updated_at
`

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	var workDays []int32
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Name, &s.StartTime, &s.OfficeEndTime, &s.EndTime,
		&s.BreakMinutes, &workDays, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return shift.Shift{}, err
	}
	s.WorkDays = make([]int, len(workDays))
	for i, d := range workDays {
		s.WorkDays[i] = int(d)
	}
	return s, nil
}

func workDaysParam(days []int) []int32 {
	out := make([]int32, len(days))
	for i, d := range days {
		out[i] = int32(d)
	}
	return out
}

// GetActiveShift implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetActiveShift(ctx context.Context, employeeID string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE employee_id = $1 AND is_active`

	s, err := scanShift(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrNoActiveShift
		}
		return shift.Shift{}, fmt.Errorf("get active shift: %w", err)
	}
	return s, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string, employeeID string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1 AND employee_id = $2`

	s, err := scanShift(q.QueryRow(ctx, query, id, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("get shift: %w", err)
	}
	return s, nil
}

// List implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) List(ctx context.Context, employeeID string) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE employee_id = $1 ORDER BY created_at ASC, name ASC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	defer rows.Close()

	shifts := make([]shift.Shift, 0)
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return shifts, nil
}

// Create implements shift.ShiftRepository. The new shift is always stored inactive;
// use Activate to switch.
func (r *shiftRepositoryImpl) Create(ctx context.Context, newShift shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return shift.Shift{}, fmt.Errorf("generate shift id: %w", err)
	}

	query := `
		INSERT INTO shifts (
			id, employee_id, name, start_time, office_end_time, end_time,
			break_minutes, work_days, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, NOW(), NOW())
		RETURNING ` + shiftColumns

	created, err := scanShift(q.QueryRow(ctx, query,
		id.String(), newShift.EmployeeID, newShift.Name, newShift.StartTime, newShift.OfficeEndTime, newShift.EndTime,
		newShift.BreakMinutes, workDaysParam(newShift.WorkDays),
	))
	if err != nil {
		if isUniqueViolation(err) {
			return shift.Shift{}, shift.ErrShiftNameExists
		}
		return shift.Shift{}, fmt.Errorf("insert shift: %w", err)
	}
	return created, nil
}

// Update implements shift.ShiftRepository. The active flag is left untouched.
func (r *shiftRepositoryImpl) Update(ctx context.Context, s shift.Shift) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE shifts SET
			name = $3,
			start_time = $4,
			office_end_time = $5,
			end_time = $6,
			break_minutes = $7,
			work_days = $8,
			updated_at = NOW()
		WHERE id = $1 AND employee_id = $2
	`
	commandTag, err := q.Exec(ctx, query,
		s.ID, s.EmployeeID, s.Name, s.StartTime, s.OfficeEndTime, s.EndTime,
		s.BreakMinutes, workDaysParam(s.WorkDays),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return shift.ErrShiftNameExists
		}
		return fmt.Errorf("update shift: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrShiftNotFound
	}
	return nil
}

// Activate implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Activate(ctx context.Context, id string, employeeID string) error {
	return WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		// clear first so the partial unique index never sees two active rows
		if _, err := q.Exec(txCtx,
			`UPDATE shifts SET is_active = FALSE, updated_at = NOW() WHERE employee_id = $1 AND is_active AND id <> $2`,
			employeeID, id,
		); err != nil {
			return fmt.Errorf("deactivate shifts: %w", err)
		}

		commandTag, err := q.Exec(txCtx,
			`UPDATE shifts SET is_active = TRUE, updated_at = NOW() WHERE id = $1 AND employee_id = $2`,
			id, employeeID,
		)
		if err != nil {
			return fmt.Errorf("activate shift: %w", err)
		}
		if commandTag.RowsAffected() != 1 {
			return shift.ErrShiftNotFound
		}
		return nil
	})
}
