package domain

// ConnectorType describes a supported connector.
type ConnectorType struct {
	// ID is the unique identifier (e.g., "filesystem", "github").
	ID string

	// Name is the human-readable display name.
	Name string

	// Description provides a brief explanation of the connector.
	Description string

	// RequiresAuth indicates the connector needs a token to operate.
	RequiresAuth bool

	// ConfigKeys lists the configuration fields required by this connector.
	ConfigKeys []ConfigKey

	// WebURLResolver converts fragment URIs to web-openable URLs.
	// If nil, URIs are shown as-is.
	WebURLResolver WebURLResolver
}

// WebURLResolver converts a fragment URI to a web-openable URL.
// Returns empty string if the URI cannot be resolved.
// Parameters:
//   - uri: The fragment URI (e.g., "github://owner/repo/blob/gh-pages/...")
//   - metadata: Fragment metadata (may contain pre-stored web links)
type WebURLResolver func(uri string, metadata map[string]any) string

// ConfigKey describes a configuration field for a connector.
type ConfigKey struct {
	// Key is the configuration key name.
	Key string

	// Label is the human-readable label for UI display.
	Label string

	// Description explains what this field is for.
	Description string

	// Default is the default value for this field (shown in placeholder).
	Default string

	// Required indicates whether this field must be provided.
	Required bool

	// Secret indicates whether this field should be masked in UI (e.g., tokens).
	Secret bool
}
