package settings

import "context"

type SettingsRepository interface {
	// GetUserSettings returns ErrSettingsNotFound when nothing is stored
	GetUserSettings(ctx context.Context, employeeID string) (UserSettings, error)
	Upsert(ctx context.Context, s UserSettings) (UserSettings, error)
}
