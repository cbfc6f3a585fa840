package driving

import "github.com/custodia-labs/eddkit/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, filling unset values with defaults.
	Get() (*domain.Settings, error)

	// Save validates and persists settings.
	Save(settings *domain.Settings) error

	// Set stores a single value by its dotted key, e.g. "search.number".
	Set(key, value string) error

	// Keys returns every known settings key.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
