package connectors

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/traitdex/internal/connectors/filesystem"
	"github.com/custodia-labs/traitdex/internal/connectors/github"
	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.ConnectorFactory = (*Factory)(nil)

// Factory creates connectors from source configuration.
type Factory struct {
	mu       sync.RWMutex
	builders map[string]driven.ConnectorBuilder
}

// NewFactory creates an empty connector factory.
func NewFactory() *Factory {
	return &Factory{
		builders: make(map[string]driven.ConnectorBuilder),
	}
}

// NewDefaultFactory creates a factory with the built-in connector types
// registered.
func NewDefaultFactory() *Factory {
	f := NewFactory()
	f.Register("filesystem", buildFilesystem)
	f.Register("github", buildGitHub)
	return f
}

// Create returns a Connector for the given source.
func (f *Factory) Create(_ context.Context, source domain.Source) (driven.Connector, error) {
	f.mu.RLock()
	builder, ok := f.builders[source.Type]
	f.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedType, source.Type)
	}
	return builder(source)
}

// Register adds a connector builder for the given type.
func (f *Factory) Register(connectorType string, builder driven.ConnectorBuilder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builders[connectorType] = builder
}

// SupportedTypes returns all registered connector types, sorted.
func (f *Factory) SupportedTypes() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	types := make([]string, 0, len(f.builders))
	for t := range f.builders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func buildFilesystem(source domain.Source) (driven.Connector, error) {
	path := source.Config["path"]
	if path == "" {
		return nil, fmt.Errorf("%w: filesystem source needs a path", domain.ErrConnectorValidation)
	}
	return filesystem.New(source.ID, path), nil
}

func buildGitHub(source domain.Source) (driven.Connector, error) {
	cfg, err := github.ParseConfig(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConnectorValidation, err)
	}
	client := github.NewClient(context.Background(), source.Config["token"])
	return github.New(source.ID, cfg, client), nil
}
