package settings

import "context"

type SettingsService interface {
	// Get returns stored settings or the defaults
	Get(ctx context.Context, employeeID string) (UserSettings, error)
	GetResponse(ctx context.Context, employeeID string) (SettingsResponse, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
}
