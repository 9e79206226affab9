package settings

import "errors"

var (
	ErrSettingsNotFound      = errors.New("settings not found")
	ErrInvalidNightRule      = errors.New("invalid night overtime rule")
	ErrInvalidPunchMode      = errors.New("invalid punch mode")
	ErrInvalidTimezone       = errors.New("invalid timezone")
	ErrEmployeeIDRequired    = errors.New("employee id is required")
	ErrNegativeHourlyWage    = errors.New("hourly wage must not be negative")
	ErrInvalidOvertimeConfig = errors.New("invalid overtime configuration")
)
