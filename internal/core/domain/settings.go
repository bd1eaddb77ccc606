package domain

import "time"

// Default values applied when a setting is absent from the config store.
const (
	DefaultQueryLimit    = 50
	DefaultWatchDebounce = 2 * time.Second
)

// QuerySettings controls lookup behaviour.
type QuerySettings struct {
	// DefaultLimit caps result sets when the caller gives no limit.
	DefaultLimit int

	// IncludeSynthetic includes compiler-generated impls in results.
	IncludeSynthetic bool
}

// EmitSettings controls fragment output.
type EmitSettings struct {
	// Flavor is the default output format for emit operations.
	Flavor Flavor
}

// WatchSettings controls live fragment watching.
type WatchSettings struct {
	// Debounce is how long to wait after a filesystem event before
	// reprocessing, so editors that write in bursts trigger one scan.
	Debounce time.Duration
}

// RescanSettings controls background periodic rescans for sources
// whose connector cannot watch.
type RescanSettings struct {
	// Enabled turns the background scheduler on or off.
	Enabled bool

	// Interval is the default time between rescans of one source.
	Interval time.Duration
}

// AppSettings holds all user-configurable application settings.
type AppSettings struct {
	Query  QuerySettings
	Emit   EmitSettings
	Watch  WatchSettings
	Rescan RescanSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() *AppSettings {
	return &AppSettings{
		Query: QuerySettings{
			DefaultLimit:     DefaultQueryLimit,
			IncludeSynthetic: true,
		},
		Emit: EmitSettings{
			Flavor: FlavorModernJS,
		},
		Watch: WatchSettings{
			Debounce: DefaultWatchDebounce,
		},
		Rescan: RescanSettings{
			Enabled:  false,
			Interval: DefaultRescanInterval,
		},
	}
}

// Validate checks the settings for consistency.
func (s *AppSettings) Validate() error {
	if s.Query.DefaultLimit < 0 {
		return ErrInvalidInput
	}
	switch s.Emit.Flavor {
	case FlavorLegacyJS, FlavorModernJS, FlavorJSON:
	default:
		return ErrInvalidInput
	}
	if s.Watch.Debounce < 0 {
		return ErrInvalidInput
	}
	if s.Rescan.Interval < 0 {
		return ErrInvalidInput
	}
	return nil
}
