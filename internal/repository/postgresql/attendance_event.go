package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// AppendEvent implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) AppendEvent(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Event{}, fmt.Errorf("generate event id: %w", err)
	}
	event.ID = id.String()

	query := `
		INSERT INTO attendance_events (id, employee_id, work_date, type, occurred_at, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`
	err = q.QueryRow(ctx, query,
		event.ID, event.EmployeeID, event.WorkDate.Format("2006-01-02"),
		string(event.Type), event.Timestamp, event.Note,
	).Scan(&event.CreatedAt)
	if err != nil {
		return attendance.Event{}, fmt.Errorf("insert attendance event: %w", err)
	}

	return event, nil
}

// GetEvents implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetEvents(ctx context.Context, employeeID string, workDate time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, employee_id, work_date, type, occurred_at, note, created_at
		FROM attendance_events
		WHERE employee_id = $1 AND work_date = $2
		ORDER BY occurred_at ASC, created_at ASC
	`
	rows, err := q.Query(ctx, query, employeeID, workDate.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("query attendance events: %w", err)
	}
	defer rows.Close()

	events := make([]attendance.Event, 0)
	for rows.Next() {
		var e attendance.Event
		var eventType string
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.WorkDate, &eventType, &e.Timestamp, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attendance event: %w", err)
		}
		e.Type = attendance.EventType(eventType)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// ListEmployeeIDsWithEventsSince implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListEmployeeIDsWithEventsSince(ctx context.Context, since time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT DISTINCT employee_id
		FROM attendance_events
		WHERE work_date >= $1
		ORDER BY employee_id
	`
	rows, err := q.Query(ctx, query, since.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("query active employees: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
