// Package filesystem implements the Connector interface for rustdoc output
// trees on the local filesystem. It walks a documentation root, emits every
// implementor registry fragment it finds, and can watch the tree for changes
// via fsnotify.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driven"
)

// JSONSuffix is the filename suffix for registry interchange files.
const JSONSuffix = ".traitdex.json"

// writeDebounce is the window in which repeated writes to the same
// fragment are coalesced into one event. rustdoc rewrites fragments in
// bursts during a doc build.
const writeDebounce = 100 * time.Millisecond

// staticAssetsDir holds rustdoc's shared JS/CSS. It never contains fragments.
const staticAssetsDir = "static.files"

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector scans a rustdoc output root for implementor registry fragments.
type Connector struct {
	sourceID string
	rootPath string

	mu         sync.Mutex
	closed     bool
	watcher    *fsnotify.Watcher
	lastWrites map[string]time.Time
}

// New creates a filesystem connector rooted at rootPath.
func New(sourceID, rootPath string) *Connector {
	return &Connector{
		sourceID:   sourceID,
		rootPath:   rootPath,
		lastWrites: make(map[string]time.Time),
	}
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return "filesystem"
}

// SourceID returns the source identifier.
func (c *Connector) SourceID() string {
	return c.sourceID
}

// Capabilities returns the connector's capabilities.
func (c *Connector) Capabilities() driven.ConnectorCapabilities {
	return driven.ConnectorCapabilities{
		SupportsIncremental:  true,
		SupportsWatch:        true, // fsnotify
		RequiresAuth:         false,
		SupportsValidation:   true,
		SupportsCursorReturn: true, // max mtime cursor
		SupportsRateLimiting: false,
		SupportsPagination:   false,
	}
}

// Validate checks that the root path exists and is a directory.
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

	return c.checkRoot()
}

// FullScan walks the documentation tree and streams every registry fragment.
// The error channel carries a ScanComplete sentinel with the max-mtime cursor
// once the walk finishes.
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

		if err := c.checkRoot(); err != nil {
			errsChan <- err
			return
		}

		var maxMod time.Time
		walkErr := filepath.WalkDir(c.rootPath, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable entries are skipped, not fatal.
				return nil
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if d.IsDir() {
				if path != c.rootPath && skipDir(path) {
					return filepath.SkipDir
				}
				return nil
			}

			if isHidden(c.relPath(path)) || !isRegistryFile(path) {
				return nil
			}

			frag, modTime, err := c.readFragment(path)
			if err != nil {
				// File vanished between listing and reading.
				return nil
			}
			if modTime.After(maxMod) {
				maxMod = modTime
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case fragsChan <- frag:
			}
			return nil
		})
		if walkErr != nil {
			if ctx.Err() != nil {
				return
			}
			errsChan <- fmt.Errorf("walk %s: %w", c.rootPath, walkErr)
			return
		}

		errsChan <- &driven.ScanComplete{NewCursor: encodeCursor(maxMod)}
	}()

	return fragsChan, errsChan
}

// IncrementalScan streams fragments modified at or after the cursor time.
// Files touched exactly at the cursor boundary are included so nothing is
// missed at the scan edge.
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

		since, err := decodeCursor(state.Cursor)
		if err != nil {
			errsChan <- err
			return
		}

		if err := c.checkRoot(); err != nil {
			errsChan <- err
			return
		}

		maxMod := since
		walkErr := filepath.WalkDir(c.rootPath, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if d.IsDir() {
				if path != c.rootPath && skipDir(path) {
					return filepath.SkipDir
				}
				return nil
			}

			if isHidden(c.relPath(path)) || !isRegistryFile(path) {
				return nil
			}

			info, err := d.Info()
			if err != nil || info.ModTime().Before(since) {
				return nil
			}

			frag, modTime, err := c.readFragment(path)
			if err != nil {
				return nil
			}
			if modTime.After(maxMod) {
				maxMod = modTime
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case changesChan <- domain.FragmentChange{
				Type:     domain.ChangeUpdated,
				Fragment: frag,
			}:
			}
			return nil
		})
		if walkErr != nil {
			if ctx.Err() != nil {
				return
			}
			errsChan <- fmt.Errorf("walk %s: %w", c.rootPath, walkErr)
			return
		}

		errsChan <- &driven.ScanComplete{NewCursor: encodeCursor(maxMod)}
	}()

	return changesChan, errsChan
}

// Watch streams a change event for every registry fragment created,
// rewritten, or removed under the root. Repeated writes to the same file
// inside the debounce window collapse into one event.
func (c *Connector) Watch(ctx context.Context) (<-chan domain.FragmentChange, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, domain.ErrConnectorClosed
	}
	c.mu.Unlock()

	if err := c.checkRoot(); err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Watch the root and every non-hidden subdirectory. fsnotify is not
	// recursive on its own.
	walkErr := filepath.WalkDir(c.rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != c.rootPath && skipDir(path) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
	if walkErr != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", c.rootPath, walkErr)
	}

	c.mu.Lock()
	c.watcher = watcher
	c.mu.Unlock()

	changesChan := make(chan domain.FragmentChange)

	go func() {
		defer close(changesChan)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				// Newly created directories join the watch set.
				if event.Op.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if !skipDir(event.Name) {
							_ = watcher.Add(event.Name)
						}
						continue
					}
				}

				change := c.handleFsEvent(event)
				if change == nil {
					continue
				}

				select {
				case <-ctx.Done():
					return
				case changesChan <- *change:
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return changesChan, nil
}

// Close releases the watcher. Safe to call multiple times.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if c.watcher != nil {
		_ = c.watcher.Close()
		c.watcher = nil
	}
	return nil
}

// handleFsEvent converts a filesystem notification into a fragment change.
// Returns nil for events that do not touch a registry fragment.
func (c *Connector) handleFsEvent(event fsnotify.Event) *domain.FragmentChange {
	path := event.Name
	if isHidden(c.relPath(path)) || !isRegistryFile(path) {
		return nil
	}

	switch {
	case event.Op.Has(fsnotify.Create):
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			return nil
		}
		frag, _, err := c.readFragment(path)
		if err != nil {
			return nil
		}
		return &domain.FragmentChange{Type: domain.ChangeCreated, Fragment: frag}

	case event.Op.Has(fsnotify.Write):
		if c.suppressWrite(path) {
			return nil
		}
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			return nil
		}
		frag, _, err := c.readFragment(path)
		if err != nil {
			return nil
		}
		return &domain.FragmentChange{Type: domain.ChangeUpdated, Fragment: frag}

	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		return &domain.FragmentChange{
			Type: domain.ChangeDeleted,
			Fragment: domain.RawFragment{
				SourceID:  c.sourceID,
				URI:       path,
				TraitPath: domain.TraitPathFromURI(path),
			},
		}

	default:
		return nil
	}
}

// suppressWrite reports whether a write arrived inside the debounce window
// of the previous write to the same path.
func (c *Connector) suppressWrite(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if last, ok := c.lastWrites[path]; ok && now.Sub(last) < writeDebounce {
		return true
	}
	c.lastWrites[path] = now
	return false
}

// readFragment loads a registry file into a RawFragment.
func (c *Connector) readFragment(path string) (domain.RawFragment, time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.RawFragment{}, time.Time{}, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.RawFragment{}, time.Time{}, err
	}

	frag := domain.RawFragment{
		SourceID:  c.sourceID,
		URI:       path,
		TraitPath: domain.TraitPathFromURI(path),
		Content:   content,
		Metadata: map[string]any{
			"filename":  filepath.Base(path),
			"extension": strings.TrimPrefix(filepath.Ext(path), "."),
			"modified":  info.ModTime().UnixNano(),
			"size":      info.Size(),
		},
	}
	return frag, info.ModTime(), nil
}

// checkRoot verifies the root path exists and is a directory.
func (c *Connector) checkRoot() error {
	info, err := os.Stat(c.rootPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("root path does not exist: %s", c.rootPath)
	}
	if err != nil {
		return fmt.Errorf("stat root path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root path is not a directory: %s", c.rootPath)
	}
	return nil
}

// relPath returns path relative to the root. Hidden-segment checks use the
// relative form so a dotted directory above the root does not mask the
// whole tree.
func (c *Connector) relPath(path string) string {
	rel, err := filepath.Rel(c.rootPath, path)
	if err != nil {
		return path
	}
	return rel
}

// encodeCursor renders a max modification time as a cursor string. A zero
// time (empty tree) yields the current time so the next incremental scan
// starts from now.
func encodeCursor(t time.Time) string {
	if t.IsZero() {
		return strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	return strconv.FormatInt(t.UnixNano(), 10)
}

// decodeCursor parses a cursor back into a time. Empty cursors yield the
// zero time so the scan covers everything.
func decodeCursor(cursor string) (time.Time, error) {
	if cursor == "" {
		return time.Time{}, nil
	}
	nanos, err := strconv.ParseInt(cursor, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cursor format: %q", cursor)
	}
	return time.Unix(0, nanos), nil
}

// isRegistryFile reports whether a path looks like a rustdoc implementor
// registry fragment or a traitdex interchange file.
func isRegistryFile(path string) bool {
	name := filepath.Base(path)
	if strings.HasSuffix(name, JSONSuffix) {
		return true
	}
	if filepath.Ext(name) != ".js" {
		return false
	}
	return underRegistryDir(path)
}

// underRegistryDir reports whether any path segment is a registry root.
func underRegistryDir(path string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(path), "/") {
		if seg == domain.LegacyRegistryDir || seg == domain.ModernRegistryDir {
			return true
		}
	}
	return false
}

// skipDir reports whether a directory should be pruned from the walk.
// Hidden directories and rustdoc static assets never hold fragments.
func skipDir(path string) bool {
	name := filepath.Base(path)
	if name == staticAssetsDir {
		return true
	}
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// isHidden reports whether any path segment is a dotfile. The "." and ".."
// segments do not count.
func isHidden(path string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(path), "/") {
		if seg == "." || seg == ".." {
			continue
		}
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}
