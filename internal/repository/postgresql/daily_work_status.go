package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/workstatus"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type dailyStatusRepositoryImpl struct {
	db *database.DB
}

func NewDailyStatusRepository(db *database.DB) workstatus.DailyStatusRepository {
	return &dailyStatusRepositoryImpl{db: db}
}

const dailyStatusColumns = `
	id, employee_id, date, status, shift_id, check_in, check_out, day_type,
	worked_hours, break_minutes, late_minutes, early_minutes,
	standard_day_hours, standard_night_hours,
	ot_weekday_day, ot_weekday_night, ot_saturday_day, ot_saturday_night,
	ot_sunday_day, ot_sunday_night, ot_holiday_day, ot_holiday_night,
	total_overtime_hours, total_rounded_overtime_hours, sunday_hours, night_hours,
	ot_base_rate_hours, ot_tier2_rate_hours,
	ot_base_day_rate_percent, ot_base_night_rate_percent,
	ot_tier2_day_rate_percent, ot_tier2_night_rate_percent,
	estimated_overtime_pay, is_manually_updated, notes, calculated_at,
	created_at, updated_at
`

const upsertDailyStatusQuery = `
	INSERT INTO daily_work_statuses (` + dailyStatusColumns + `)
	VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8,
		$9, $10, $11, $12,
		$13, $14,
		$15, $16, $17, $18,
		$19, $20, $21, $22,
		$23, $24, $25, $26,
		$27, $28,
		$29, $30,
		$31, $32,
		$33, $34, $35, $36,
		NOW(), NOW()
	)
	ON CONFLICT (employee_id, date) DO UPDATE SET
		status = EXCLUDED.status,
		shift_id = EXCLUDED.shift_id,
		check_in = EXCLUDED.check_in,
		check_out = EXCLUDED.check_out,
		day_type = EXCLUDED.day_type,
		worked_hours = EXCLUDED.worked_hours,
		break_minutes = EXCLUDED.break_minutes,
		late_minutes = EXCLUDED.late_minutes,
		early_minutes = EXCLUDED.early_minutes,
		standard_day_hours = EXCLUDED.standard_day_hours,
		standard_night_hours = EXCLUDED.standard_night_hours,
		ot_weekday_day = EXCLUDED.ot_weekday_day,
		ot_weekday_night = EXCLUDED.ot_weekday_night,
		ot_saturday_day = EXCLUDED.ot_saturday_day,
		ot_saturday_night = EXCLUDED.ot_saturday_night,
		ot_sunday_day = EXCLUDED.ot_sunday_day,
		ot_sunday_night = EXCLUDED.ot_sunday_night,
		ot_holiday_day = EXCLUDED.ot_holiday_day,
		ot_holiday_night = EXCLUDED.ot_holiday_night,
		total_overtime_hours = EXCLUDED.total_overtime_hours,
		total_rounded_overtime_hours = EXCLUDED.total_rounded_overtime_hours,
		sunday_hours = EXCLUDED.sunday_hours,
		night_hours = EXCLUDED.night_hours,
		ot_base_rate_hours = EXCLUDED.ot_base_rate_hours,
		ot_tier2_rate_hours = EXCLUDED.ot_tier2_rate_hours,
		ot_base_day_rate_percent = EXCLUDED.ot_base_day_rate_percent,
		ot_base_night_rate_percent = EXCLUDED.ot_base_night_rate_percent,
		ot_tier2_day_rate_percent = EXCLUDED.ot_tier2_day_rate_percent,
		ot_tier2_night_rate_percent = EXCLUDED.ot_tier2_night_rate_percent,
		estimated_overtime_pay = EXCLUDED.estimated_overtime_pay,
		is_manually_updated = EXCLUDED.is_manually_updated,
		notes = EXCLUDED.notes,
		calculated_at = EXCLUDED.calculated_at,
		updated_at = NOW()
	WHERE daily_work_statuses.is_manually_updated = false OR EXCLUDED.is_manually_updated
	RETURNING ` + dailyStatusColumns

func upsertDailyStatusArgs(s workstatus.DailyWorkStatus) ([]any, error) {
	if s.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("generate daily status id: %w", err)
		}
		s.ID = id.String()
	}
	ot := s.Overtime
	tiers := s.OvertimeTiers
	return []any{
		s.ID, s.EmployeeID, s.Date.Format("2006-01-02"), s.Status.String(), s.ShiftID, s.CheckIn, s.CheckOut, string(s.DayType),
		s.WorkedHours, s.BreakMinutes, s.LateMinutes, s.EarlyMinutes,
		s.StandardDayHours, s.StandardNightHours,
		ot.WeekdayDay, ot.WeekdayNight, ot.SaturdayDay, ot.SaturdayNight,
		ot.SundayDay, ot.SundayNight, ot.HolidayDay, ot.HolidayNight,
		s.TotalOvertimeHours, s.TotalRoundedOvertimeHours, s.SundayHours, s.NightHours,
		tiers.BaseRateHours, tiers.Tier2RateHours,
		tiers.BaseDayRatePercent, tiers.BaseNightRatePercent,
		tiers.Tier2DayRatePercent, tiers.Tier2NightRatePercent,
		s.EstimatedOvertimePay.StringFixed(2), s.IsManuallyUpdated, s.Notes, s.CalculatedAt,
	}, nil
}

func scanDailyStatus(row pgx.Row) (workstatus.DailyWorkStatus, error) {
	var s workstatus.DailyWorkStatus
	var status, dayType, pay string
	ot := &s.Overtime
	tiers := &s.OvertimeTiers

	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Date, &status, &s.ShiftID, &s.CheckIn, &s.CheckOut, &dayType,
		&s.WorkedHours, &s.BreakMinutes, &s.LateMinutes, &s.EarlyMinutes,
		&s.StandardDayHours, &s.StandardNightHours,
		&ot.WeekdayDay, &ot.WeekdayNight, &ot.SaturdayDay, &ot.SaturdayNight,
		&ot.SundayDay, &ot.SundayNight, &ot.HolidayDay, &ot.HolidayNight,
		&s.TotalOvertimeHours, &s.TotalRoundedOvertimeHours, &s.SundayHours, &s.NightHours,
		&tiers.BaseRateHours, &tiers.Tier2RateHours,
		&tiers.BaseDayRatePercent, &tiers.BaseNightRatePercent,
		&tiers.Tier2DayRatePercent, &tiers.Tier2NightRatePercent,
		&pay, &s.IsManuallyUpdated, &s.Notes, &s.CalculatedAt,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return workstatus.DailyWorkStatus{}, err
	}

	if s.Status, err = workstatus.ParseStatus(status); err != nil {
		return workstatus.DailyWorkStatus{}, fmt.Errorf("stored status %q: %w", status, err)
	}
	s.DayType = workstatus.ParseDayType(dayType)
	if s.EstimatedOvertimePay, err = decimal.NewFromString(pay); err != nil {
		return workstatus.DailyWorkStatus{}, fmt.Errorf("stored overtime pay %q: %w", pay, err)
	}
	return s, nil
}

// GetDailyStatus implements workstatus.DailyStatusRepository.
func (r *dailyStatusRepositoryImpl) GetDailyStatus(ctx context.Context, employeeID string, date time.Time) (workstatus.DailyWorkStatus, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + dailyStatusColumns + ` FROM daily_work_statuses WHERE employee_id = $1 AND date = $2`

	s, err := scanDailyStatus(q.QueryRow(ctx, query, employeeID, date.Format("2006-01-02")))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return workstatus.DailyWorkStatus{}, workstatus.ErrDailyStatusNotFound
		}
		return workstatus.DailyWorkStatus{}, fmt.Errorf("get daily status: %w", err)
	}
	return s, nil
}

// SetDailyStatus implements workstatus.DailyStatusRepository.
func (r *dailyStatusRepositoryImpl) SetDailyStatus(ctx context.Context, status workstatus.DailyWorkStatus) (workstatus.DailyWorkStatus, error) {
	q := GetQuerier(ctx, r.db)

	args, err := upsertDailyStatusArgs(status)
	if err != nil {
		return workstatus.DailyWorkStatus{}, err
	}
	saved, err := scanDailyStatus(q.QueryRow(ctx, upsertDailyStatusQuery, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		// the stored row is a manual override
		return r.GetDailyStatus(ctx, status.EmployeeID, status.Date)
	}
	if err != nil {
		return workstatus.DailyWorkStatus{}, fmt.Errorf("upsert daily status: %w", err)
	}
	return saved, nil
}

// SetDailyStatuses writes all records in one transaction using a single batch round trip.
func (r *dailyStatusRepositoryImpl) SetDailyStatuses(ctx context.Context, statuses []workstatus.DailyWorkStatus) ([]workstatus.DailyWorkStatus, error) {
	if len(statuses) == 0 {
		return nil, nil
	}

	saved := make([]workstatus.DailyWorkStatus, len(statuses))
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		batch := &pgx.Batch{}
		for _, s := range statuses {
			args, err := upsertDailyStatusArgs(s)
			if err != nil {
				return err
			}
			batch.Queue(upsertDailyStatusQuery, args...)
		}

		var kept []int
		results := q.SendBatch(txCtx, batch)
		for i, s := range statuses {
			row, err := scanDailyStatus(results.QueryRow())
			switch {
			case errors.Is(err, pgx.ErrNoRows):
				kept = append(kept, i)
			case err != nil:
				results.Close()
				return fmt.Errorf("upsert daily status %s: %w", s.Date.Format("2006-01-02"), err)
			default:
				saved[i] = row
			}
		}
		if err := results.Close(); err != nil {
			return err
		}

		for _, i := range kept {
			row, err := r.GetDailyStatus(txCtx, statuses[i].EmployeeID, statuses[i].Date)
			if err != nil {
				return err
			}
			saved[i] = row
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// ListRange implements workstatus.DailyStatusRepository.
func (r *dailyStatusRepositoryImpl) ListRange(ctx context.Context, employeeID string, start, end time.Time) ([]workstatus.DailyWorkStatus, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + dailyStatusColumns + `
		FROM daily_work_statuses
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC
	`
	rows, err := q.Query(ctx, query, employeeID, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("list daily statuses: %w", err)
	}
	defer rows.Close()

	result := make([]workstatus.DailyWorkStatus, 0)
	for rows.Next() {
		s, err := scanDailyStatus(rows)
		if err != nil {
			return nil, fmt.Errorf("scan daily status: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteDailyStatus implements workstatus.DailyStatusRepository.
func (r *dailyStatusRepositoryImpl) DeleteDailyStatus(ctx context.Context, employeeID string, date time.Time) error {
	q := GetQuerier(ctx, r.db)
	query := `DELETE FROM daily_work_statuses WHERE employee_id = $1 AND date = $2`

	commandTag, err := q.Exec(ctx, query, employeeID, date.Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("delete daily status: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return workstatus.ErrDailyStatusNotFound
	}
	return nil
}
