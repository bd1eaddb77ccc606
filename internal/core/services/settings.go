package services

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driven"
	"github.com/custodia-labs/traitdex/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyQueryLimit       = "query.default_limit"
	keyQuerySynthetic   = "query.include_synthetic"
	keyEmitFlavor       = "emit.flavor"
	keyWatchDebounceMS  = "watch.debounce_ms"
	keyRescanEnabled    = "rescan.enabled"
	keyRescanIntervalMn = "rescan.interval_minutes"
)

// SettingsService manages application settings on top of the config store.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Keys absent from the
// config store fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Query: domain.QuerySettings{
			DefaultLimit:     s.getInt(keyQueryLimit, defaults.Query.DefaultLimit),
			IncludeSynthetic: s.getBool(keyQuerySynthetic, defaults.Query.IncludeSynthetic),
		},
		Emit: domain.EmitSettings{
			Flavor: s.getFlavor(defaults.Emit.Flavor),
		},
		Watch: domain.WatchSettings{
			Debounce: time.Duration(s.getInt(keyWatchDebounceMS, int(defaults.Watch.Debounce/time.Millisecond))) * time.Millisecond,
		},
		Rescan: domain.RescanSettings{
			Enabled:  s.getBool(keyRescanEnabled, defaults.Rescan.Enabled),
			Interval: time.Duration(s.getInt(keyRescanIntervalMn, int(defaults.Rescan.Interval/time.Minute))) * time.Minute,
		},
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("stored settings invalid: %w", err)
	}
	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("validate settings: %w", err)
	}

	values := map[string]any{
		keyQueryLimit:       settings.Query.DefaultLimit,
		keyQuerySynthetic:   settings.Query.IncludeSynthetic,
		keyEmitFlavor:       string(settings.Emit.Flavor),
		keyWatchDebounceMS:  int(settings.Watch.Debounce / time.Millisecond),
		keyRescanEnabled:    settings.Rescan.Enabled,
		keyRescanIntervalMn: int(settings.Rescan.Interval / time.Minute),
	}
	for key, value := range values {
		if err := s.configStore.Set(key, value); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

// SetKey updates one setting by its config key.
func (s *SettingsService) SetKey(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case keyQueryLimit:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s wants an integer", domain.ErrInvalidInput, key)
		}
		settings.Query.DefaultLimit = n
	case keyQuerySynthetic:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s wants a boolean", domain.ErrInvalidInput, key)
		}
		settings.Query.IncludeSynthetic = b
	case keyEmitFlavor:
		settings.Emit.Flavor = domain.Flavor(value)
	case keyWatchDebounceMS:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s wants an integer", domain.ErrInvalidInput, key)
		}
		settings.Watch.Debounce = time.Duration(n) * time.Millisecond
	case keyRescanEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s wants a boolean", domain.ErrInvalidInput, key)
		}
		settings.Rescan.Enabled = b
	case keyRescanIntervalMn:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s wants an integer", domain.ErrInvalidInput, key)
		}
		settings.Rescan.Interval = time.Duration(n) * time.Minute
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrNotFound, key)
	}

	return s.Save(settings)
}

// GetKey returns one setting rendered as a string.
func (s *SettingsService) GetKey(key string) (string, error) {
	settings, err := s.Get()
	if err != nil {
		return "", err
	}

	switch key {
	case keyQueryLimit:
		return strconv.Itoa(settings.Query.DefaultLimit), nil
	case keyQuerySynthetic:
		return strconv.FormatBool(settings.Query.IncludeSynthetic), nil
	case keyEmitFlavor:
		return string(settings.Emit.Flavor), nil
	case keyWatchDebounceMS:
		return strconv.Itoa(int(settings.Watch.Debounce / time.Millisecond)), nil
	case keyRescanEnabled:
		return strconv.FormatBool(settings.Rescan.Enabled), nil
	case keyRescanIntervalMn:
		return strconv.Itoa(int(settings.Rescan.Interval / time.Minute)), nil
	default:
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrNotFound, key)
	}
}

// Keys returns all recognised config keys, sorted.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keyQueryLimit,
		keyQuerySynthetic,
		keyEmitFlavor,
		keyWatchDebounceMS,
		keyRescanEnabled,
		keyRescanIntervalMn,
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return *domain.DefaultAppSettings()
}

// getInt reads an int key with a fallback default.
func (s *SettingsService) getInt(key string, fallback int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return fallback
	}
	return s.configStore.GetInt(key)
}

// getBool reads a bool key with a fallback default.
func (s *SettingsService) getBool(key string, fallback bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return fallback
	}
	return s.configStore.GetBool(key)
}

// getFlavor reads the emit flavor with a fallback default.
func (s *SettingsService) getFlavor(fallback domain.Flavor) domain.Flavor {
	value := s.configStore.GetString(keyEmitFlavor)
	if value == "" {
		return fallback
	}
	return domain.Flavor(value)
}
