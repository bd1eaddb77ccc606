package github

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driven"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector scans published rustdoc trees hosted on GitHub.
type Connector struct {
	sourceID string
	config   *Config
	client   *Client
	mu       sync.Mutex
	closed   bool
}

// New creates a GitHub docs-tree connector.
func New(sourceID string, cfg *Config, client *Client) *Connector {
	return &Connector{
		sourceID: sourceID,
		config:   cfg,
		client:   client,
	}
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return "github"
}

// SourceID returns the source identifier.
func (c *Connector) SourceID() string {
	return c.sourceID
}

// Capabilities returns the connector's capabilities.
func (c *Connector) Capabilities() driven.ConnectorCapabilities {
	return driven.ConnectorCapabilities{
		SupportsIncremental:  true,
		SupportsWatch:        false, // No webhooks in CLI
		RequiresAuth:         false, // Public trees scan anonymously; a token lifts the quota
		SupportsValidation:   true,
		SupportsCursorReturn: true, // Branch head SHA
		SupportsRateLimiting: true,
		SupportsPagination:   false, // Recursive tree fetch is a single call
	}
}

// Validate checks the configured repository is reachable.
func (c *Connector) Validate(ctx context.Context) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return domain.ErrConnectorClosed
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := c.client.ValidateAccess(ctx, c.config.Owner, c.config.Repo); err != nil {
		if IsUnauthorized(err) {
			return fmt.Errorf("%w: %w", domain.ErrAuthRequired, err)
		}
		return fmt.Errorf("%w: %w", domain.ErrConnectorValidation, err)
	}

	return nil
}

// FullScan fetches every registry fragment in the documentation tree. The
// error channel carries a ScanComplete sentinel with the branch head SHA as
// the cursor.
func (c *Connector) FullScan(ctx context.Context) (<-chan domain.RawFragment, <-chan error) {
	fragsChan := make(chan domain.RawFragment)
	errsChan := make(chan error, 1)

	go func() {
		defer close(fragsChan)
		defer close(errsChan)

		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			errsChan <- domain.ErrConnectorClosed
			return
		}
		c.mu.Unlock()

		head, err := c.headSHA(ctx)
		if err != nil {
			errsChan <- err
			return
		}

		frags, err := FetchFragments(ctx, c.client, c.config, head)
		if err != nil {
			errsChan <- err
			return
		}

		for _, frag := range frags {
			frag.SourceID = c.sourceID
			select {
			case <-ctx.Done():
				return
			case fragsChan <- frag:
			}
		}

		errsChan <- &driven.ScanComplete{NewCursor: head}
	}()

	return fragsChan, errsChan
}

// IncrementalScan compares the branch head against the cursor and rescans
// the tree only when it has moved.
func (c *Connector) IncrementalScan(
	ctx context.Context, state domain.ScanState,
) (<-chan domain.FragmentChange, <-chan error) {
	changesChan := make(chan domain.FragmentChange)
	errsChan := make(chan error, 1)

	go func() {
		defer close(changesChan)
		defer close(errsChan)

		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			errsChan <- domain.ErrConnectorClosed
			return
		}
		c.mu.Unlock()

		head, err := c.headSHA(ctx)
		if err != nil {
			errsChan <- err
			return
		}

		// Unchanged head means an unchanged tree.
		if head == state.Cursor {
			errsChan <- &driven.ScanComplete{NewCursor: head}
			return
		}

		frags, err := FetchFragments(ctx, c.client, c.config, head)
		if err != nil {
			errsChan <- err
			return
		}

		for _, frag := range frags {
			frag.SourceID = c.sourceID
			select {
			case <-ctx.Done():
				return
			case changesChan <- domain.FragmentChange{
				Type:     domain.ChangeUpdated,
				Fragment: frag,
			}:
			}
		}

		errsChan <- &driven.ScanComplete{NewCursor: head}
	}()

	return changesChan, errsChan
}

// Watch is not supported for GitHub (no webhooks in CLI).
func (c *Connector) Watch(_ context.Context) (<-chan domain.FragmentChange, error) {
	return nil, domain.ErrNotImplemented
}

// Close releases resources.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// headSHA resolves the head commit of the configured branch.
func (c *Connector) headSHA(ctx context.Context) (string, error) {
	head, err := c.client.BranchHead(ctx, c.config.Owner, c.config.Repo, c.config.Branch)
	if err != nil {
		if IsNotFound(err) {
			return "", fmt.Errorf("%w: %s", ErrBranchNotFound, c.config.Branch)
		}
		return "", fmt.Errorf("get branch head: %w", err)
	}
	return head, nil
}
