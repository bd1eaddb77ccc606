package driving

import "github.com/custodia-labs/traitdex/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, falling back to
	// defaults for keys absent from the config store.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetKey updates one setting by its config key, parsing the value
	// according to the key's type. Returns ErrNotFound for unknown keys
	// and ErrInvalidInput for unparseable values.
	SetKey(key, value string) error

	// GetKey returns one setting's current value rendered as a string.
	// Returns ErrNotFound for unknown keys.
	GetKey(key string) (string, error)

	// Keys returns all recognised config keys, sorted.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
