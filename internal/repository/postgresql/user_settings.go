package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

const settingsColumns = `
	employee_id, night_start_time, night_end_time,
	late_threshold_minutes, early_threshold_minutes,
	overtime_tiering_enabled, overtime_rates, night_premium_percent,
	night_overtime_rule, fixed_rates,
	quick_punch_threshold_seconds, forgot_checkout_hours, punch_mode,
	timezone, hourly_wage, created_at, updated_at
`

func scanSettings(row pgx.Row) (settings.UserSettings, error) {
	var s settings.UserSettings
	var ratesJSON, fixedJSON []byte
	var rule, mode, wage string

	err := row.Scan(
		&s.EmployeeID, &s.NightStartTime, &s.NightEndTime,
		&s.LateThresholdMinutes, &s.EarlyThresholdMinutes,
		&s.OvertimeTieringEnabled, &ratesJSON, &s.NightPremiumPercent,
		&rule, &fixedJSON,
		&s.QuickPunchThresholdSeconds, &s.ForgotCheckoutHours, &mode,
		&s.Timezone, &wage, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return settings.UserSettings{}, err
	}

	s.NightOvertimeRule = settings.NightOvertimeRule(rule)
	s.PunchMode = settings.PunchMode(mode)
	if err := json.Unmarshal(ratesJSON, &s.OvertimeRates); err != nil {
		return settings.UserSettings{}, fmt.Errorf("decode overtime rates: %w", err)
	}
	if err := json.Unmarshal(fixedJSON, &s.FixedRates); err != nil {
		return settings.UserSettings{}, fmt.Errorf("decode fixed rates: %w", err)
	}
	if s.HourlyWage, err = decimal.NewFromString(wage); err != nil {
		return settings.UserSettings{}, fmt.Errorf("decode hourly wage: %w", err)
	}
	return s, nil
}

// GetUserSettings implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) GetUserSettings(ctx context.Context, employeeID string) (settings.UserSettings, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + settingsColumns + ` FROM user_settings WHERE employee_id = $1`

	s, err := scanSettings(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.UserSettings{}, settings.ErrSettingsNotFound
		}
		return settings.UserSettings{}, fmt.Errorf("get user settings: %w", err)
	}
	return s, nil
}

// Upsert implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Upsert(ctx context.Context, s settings.UserSettings) (settings.UserSettings, error) {
	q := GetQuerier(ctx, r.db)

	ratesJSON, err := json.Marshal(s.OvertimeRates)
	if err != nil {
		return settings.UserSettings{}, fmt.Errorf("encode overtime rates: %w", err)
	}
	fixedJSON, err := json.Marshal(s.FixedRates)
	if err != nil {
		return settings.UserSettings{}, fmt.Errorf("encode fixed rates: %w", err)
	}

	query := `
		INSERT INTO user_settings (` + settingsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
		ON CONFLICT (employee_id) DO UPDATE SET
			night_start_time = EXCLUDED.night_start_time,
			night_end_time = EXCLUDED.night_end_time,
			late_threshold_minutes = EXCLUDED.late_threshold_minutes,
			early_threshold_minutes = EXCLUDED.early_threshold_minutes,
			overtime_tiering_enabled = EXCLUDED.overtime_tiering_enabled,
			overtime_rates = EXCLUDED.overtime_rates,
			night_premium_percent = EXCLUDED.night_premium_percent,
			night_overtime_rule = EXCLUDED.night_overtime_rule,
			fixed_rates = EXCLUDED.fixed_rates,
			quick_punch_threshold_seconds = EXCLUDED.quick_punch_threshold_seconds,
			forgot_checkout_hours = EXCLUDED.forgot_checkout_hours,
			punch_mode = EXCLUDED.punch_mode,
			timezone = EXCLUDED.timezone,
			hourly_wage = EXCLUDED.hourly_wage,
			updated_at = NOW()
		RETURNING ` + settingsColumns

	saved, err := scanSettings(q.QueryRow(ctx, query,
		s.EmployeeID, s.NightStartTime, s.NightEndTime,
		s.LateThresholdMinutes, s.EarlyThresholdMinutes,
		s.OvertimeTieringEnabled, ratesJSON, s.NightPremiumPercent,
		string(s.NightOvertimeRule), fixedJSON,
		s.QuickPunchThresholdSeconds, s.ForgotCheckoutHours, string(s.PunchMode),
		s.Timezone, s.HourlyWage.String(),
	))
	if err != nil {
		return settings.UserSettings{}, fmt.Errorf("upsert user settings: %w", err)
	}
	return saved, nil
}
