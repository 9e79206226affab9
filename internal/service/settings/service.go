package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/settings"
)

type SettingsServiceImpl struct {
	settings.SettingsRepository
}

// Get implements settings.SettingsService.
func (s *SettingsServiceImpl) Get(ctx context.Context, employeeID string) (settings.UserSettings, error) {
	userSettings, _, err := s.load(ctx, employeeID)
	return userSettings, err
}

// GetResponse implements settings.SettingsService.
func (s *SettingsServiceImpl) GetResponse(ctx context.Context, employeeID string) (settings.SettingsResponse, error) {
	userSettings, isDefault, err := s.load(ctx, employeeID)
	if err != nil {
		return settings.SettingsResponse{}, err
	}
	return settings.NewSettingsResponse(userSettings, isDefault), nil
}

// Update implements settings.SettingsService.
func (s *SettingsServiceImpl) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	current, _, err := s.load(ctx, req.EmployeeID)
	if err != nil {
		return settings.SettingsResponse{}, err
	}
	req.Apply(&current)

	saved, err := s.SettingsRepository.Upsert(ctx, current)
	if err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to save user settings: %w", err)
	}

	slog.Info("User settings updated", "employee_id", req.EmployeeID, "timezone", saved.Timezone, "night_rule", saved.NightOvertimeRule)
	return settings.NewSettingsResponse(saved, false), nil
}

func (s *SettingsServiceImpl) load(ctx context.Context, employeeID string) (settings.UserSettings, bool, error) {
	if employeeID == "" {
		return settings.UserSettings{}, false, settings.ErrEmployeeIDRequired
	}

	userSettings, err := s.SettingsRepository.GetUserSettings(ctx, employeeID)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			return settings.DefaultUserSettings(employeeID), true, nil
		}
		return settings.UserSettings{}, false, fmt.Errorf("failed to get user settings: %w", err)
	}
	return userSettings, false, nil
}

func NewSettingsService(settingsRepo settings.SettingsRepository) settings.SettingsService {
	return &SettingsServiceImpl{
		SettingsRepository: settingsRepo,
	}
}
