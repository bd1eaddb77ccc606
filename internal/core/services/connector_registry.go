package services

import (
	"github.com/custodia-labs/traitdex/internal/connectors/filesystem"
	"github.com/custodia-labs/traitdex/internal/connectors/github"
	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driving"
)

// Ensure ConnectorRegistry implements the interface.
var _ driving.ConnectorRegistry = (*ConnectorRegistry)(nil)

// ConnectorRegistry provides information about available connector types.
type ConnectorRegistry struct {
	connectors map[string]domain.ConnectorType
}

// NewConnectorRegistry creates a new connector registry with built-in connectors.
func NewConnectorRegistry() *ConnectorRegistry {
	r := &ConnectorRegistry{
		connectors: make(map[string]domain.ConnectorType),
	}
	r.registerBuiltinConnectors()
	return r
}

func (r *ConnectorRegistry) registerBuiltinConnectors() {
	r.registerFilesystem()
	r.registerGitHub()
}

func (r *ConnectorRegistry) registerFilesystem() {
	r.connectors["filesystem"] = domain.ConnectorType{
		ID:             "filesystem",
		Name:           "Local Filesystem",
		Description:    "Scan registry fragments from a local rustdoc output tree",
		RequiresAuth:   false,
		ConfigKeys:     filesystemConfigKeys(),
		WebURLResolver: filesystem.ResolveWebURL,
	}
}

func filesystemConfigKeys() []domain.ConfigKey {
	return []domain.ConfigKey{
		{
			Key:         "path",
			Label:       "Documentation Path",
			Description: "Path to the rustdoc output directory (e.g., target/doc)",
			Required:    true,
		},
	}
}

func (r *ConnectorRegistry) registerGitHub() {
	r.connectors["github"] = domain.ConnectorType{
		ID:             "github",
		Name:           "GitHub Pages",
		Description:    "Scan registry fragments from a published docs branch on GitHub",
		RequiresAuth:   false,
		ConfigKeys:     githubConfigKeys(),
		WebURLResolver: github.ResolveWebURL,
	}
}

func githubConfigKeys() []domain.ConfigKey {
	return []domain.ConfigKey{
		{
			Key:         "owner",
			Label:       "Repository Owner",
			Description: "GitHub user or organisation that owns the repository",
			Required:    true,
		},
		{
			Key:         "repo",
			Label:       "Repository Name",
			Description: "Repository holding the published documentation",
			Required:    true,
		},
		{
			Key:         "branch",
			Label:       "Branch",
			Description: "Branch holding the docs tree",
			Default:     github.DefaultBranch,
		},
		{
			Key:         "root",
			Label:       "Tree Root",
			Description: "Subdirectory of the tree to scan (optional)",
		},
		{
			Key:         "token",
			Label:       "Access Token",
			Description: "Personal access token for private repositories or higher rate limits",
			Secret:      true,
		},
	}
}

// List returns all available connector types.
func (r *ConnectorRegistry) List() []domain.ConnectorType {
	result := make([]domain.ConnectorType, 0, len(r.connectors))
	for _, c := range r.connectors {
		result = append(result, c)
	}
	return result
}

// Get returns a specific connector type by ID.
func (r *ConnectorRegistry) Get(id string) (*domain.ConnectorType, error) {
	c, ok := r.connectors[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}
