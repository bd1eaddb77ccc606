package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driven"
)

const legacyFragment = `(function() {var implementors = {};
implementors["actix_web"] = [{"text":"impl Send for HttpServer","synthetic":false,"types":["actix_web::server::HttpServer"]}];
if (window.register_implementors) {window.register_implementors(implementors);} else {window.pending_implementors = implementors;}})()`

// writeFragment creates a registry file beneath root, creating parent
// directories as needed. Returns the absolute path.
func writeFragment(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// drainScan collects all fragments and the completion cursor from a scan.
func drainScan(t *testing.T, frags <-chan domain.RawFragment, errs <-chan error) ([]domain.RawFragment, *driven.ScanComplete) {
	t.Helper()
	var collected []domain.RawFragment
	for frag := range frags {
		collected = append(collected, frag)
	}
	var complete *driven.ScanComplete
	for err := range errs {
		if sc, ok := driven.IsScanComplete(err); ok {
			complete = sc
			continue
		}
		require.NoError(t, err)
	}
	return collected, complete
}

func TestNew(t *testing.T) {
	t.Run("creates connector with valid parameters", func(t *testing.T) {
		connector := New("test-source-123", "/tmp/docs")

		require.NotNil(t, connector)
		assert.Equal(t, "test-source-123", connector.sourceID)
		assert.Equal(t, "/tmp/docs", connector.rootPath)
	})

	t.Run("implements Connector interface", func(t *testing.T) {
		connector := New("test", "/tmp")
		var _ driven.Connector = connector
	})
}

func TestConnector_Type(t *testing.T) {
	connector := New("test-source", "/tmp/docs")
	assert.Equal(t, "filesystem", connector.Type())
}

func TestConnector_SourceID(t *testing.T) {
	connector := New("my-source-id", "/tmp/docs")
	assert.Equal(t, "my-source-id", connector.SourceID())
}

func TestConnector_Capabilities(t *testing.T) {
	connector := New("test-source", "/tmp/docs")

	caps := connector.Capabilities()

	assert.True(t, caps.SupportsIncremental, "should support incremental scans")
	assert.True(t, caps.SupportsWatch, "should support watch")
	assert.True(t, caps.SupportsCursorReturn, "should return cursors")
	assert.True(t, caps.SupportsValidation)
	assert.False(t, caps.RequiresAuth)
	assert.False(t, caps.SupportsRateLimiting)
}

func TestConnector_Validate(t *testing.T) {
	tests := []struct {
		name          string
		setup         func(t *testing.T) string
		expectError   bool
		errorContains string
	}{
		{
			name: "valid directory succeeds",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			expectError: false,
		},
		{
			name: "non-existent path returns error",
			setup: func(t *testing.T) string {
				return "/non/existent/path/12345"
			},
			expectError:   true,
			errorContains: "does not exist",
		},
		{
			name: "file instead of directory returns error",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				path := filepath.Join(dir, "file.txt")
				require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))
				return path
			},
			expectError:   true,
			errorContains: "not a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			connector := New("test-source", tt.setup(t))

			err := connector.Validate(context.Background())

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("context cancellation", func(t *testing.T) {
		connector := New("test-source", t.TempDir())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := connector.Validate(ctx)

		assert.Equal(t, context.Canceled, err)
	})

	t.Run("closed connector", func(t *testing.T) {
		connector := New("test-source", t.TempDir())
		require.NoError(t, connector.Close())

		err := connector.Validate(context.Background())

		assert.ErrorIs(t, err, domain.ErrConnectorClosed)
	})
}

func TestConnector_FullScan(t *testing.T) {
	t.Run("streams registry fragments", func(t *testing.T) {
		root := t.TempDir()
		writeFragment(t, root, "implementors/core/marker/trait.Send.js", legacyFragment)
		writeFragment(t, root, "trait.impl/core/marker/trait.Sync.js", legacyFragment)
		writeFragment(t, root, "index.html", "<html></html>")
		writeFragment(t, root, "search-index.js", "var searchIndex = {};")

		connector := New("test-source", root)
		fragsChan, errsChan := connector.FullScan(context.Background())
		frags, complete := drainScan(t, fragsChan, errsChan)

		require.Len(t, frags, 2)
		require.NotNil(t, complete)

		paths := map[string]string{}
		for _, frag := range frags {
			paths[frag.TraitPath] = frag.URI
			assert.Equal(t, "test-source", frag.SourceID)
			assert.NotEmpty(t, frag.Content)
		}
		assert.Contains(t, paths, "core::marker::Send")
		assert.Contains(t, paths, "core::marker::Sync")
	})

	t.Run("matches interchange files anywhere in the tree", func(t *testing.T) {
		root := t.TempDir()
		writeFragment(t, root, "exports/send.traitdex.json", `{"trait":"core::marker::Send","crates":{}}`)

		connector := New("test-source", root)
		fragsChan, errsChan := connector.FullScan(context.Background())
		frags, _ := drainScan(t, fragsChan, errsChan)

		require.Len(t, frags, 1)
		assert.Contains(t, frags[0].URI, "send.traitdex.json")
	})

	t.Run("skips hidden files and directories", func(t *testing.T) {
		root := t.TempDir()
		writeFragment(t, root, "implementors/core/marker/trait.Send.js", legacyFragment)
		writeFragment(t, root, "implementors/.git/trait.Send.js", legacyFragment)
		writeFragment(t, root, "implementors/core/marker/.trait.Hidden.js", legacyFragment)

		connector := New("test-source", root)
		fragsChan, errsChan := connector.FullScan(context.Background())
		frags, _ := drainScan(t, fragsChan, errsChan)

		require.Len(t, frags, 1)
		assert.Contains(t, frags[0].URI, "trait.Send.js")
	})

	t.Run("skips rustdoc static assets", func(t *testing.T) {
		root := t.TempDir()
		writeFragment(t, root, "implementors/core/marker/trait.Send.js", legacyFragment)
		writeFragment(t, root, "implementors/static.files/main.js", "(function(){})()")

		connector := New("test-source", root)
		fragsChan, errsChan := connector.FullScan(context.Background())
		frags, _ := drainScan(t, fragsChan, errsChan)

		assert.Len(t, frags, 1)
	})

	t.Run("includes fragment metadata", func(t *testing.T) {
		root := t.TempDir()
		path := writeFragment(t, root, "implementors/core/marker/trait.Send.js", legacyFragment)

		connector := New("test-source", root)
		fragsChan, errsChan := connector.FullScan(context.Background())
		frags, _ := drainScan(t, fragsChan, errsChan)

		require.Len(t, frags, 1)
		frag := frags[0]

		info, err := os.Stat(path)
		require.NoError(t, err)

		assert.Equal(t, path, frag.URI)
		assert.Equal(t, "trait.Send.js", frag.Metadata["filename"])
		assert.Equal(t, "js", frag.Metadata["extension"])
		assert.Equal(t, info.Size(), frag.Metadata["size"])
		assert.Equal(t, info.ModTime().UnixNano(), frag.Metadata["modified"])
	})

	t.Run("emits completion cursor from max mtime", func(t *testing.T) {
		root := t.TempDir()
		path := writeFragment(t, root, "implementors/core/marker/trait.Send.js", legacyFragment)

		connector := New("test-source", root)
		fragsChan, errsChan := connector.FullScan(context.Background())
		_, complete := drainScan(t, fragsChan, errsChan)

		require.NotNil(t, complete)
		nanos, err := strconv.ParseInt(complete.NewCursor, 10, 64)
		require.NoError(t, err)

		info, statErr := os.Stat(path)
		require.NoError(t, statErr)
		assert.Equal(t, info.ModTime().UnixNano(), nanos)
	})

	t.Run("empty tree yields a current-time cursor", func(t *testing.T) {
		before := time.Now()
		connector := New("test-source", t.TempDir())

		fragsChan, errsChan := connector.FullScan(context.Background())
		frags, complete := drainScan(t, fragsChan, errsChan)

		assert.Empty(t, frags)
		require.NotNil(t, complete)
		nanos, err := strconv.ParseInt(complete.NewCursor, 10, 64)
		require.NoError(t, err)
		assert.False(t, time.Unix(0, nanos).Before(before))
	})

	t.Run("handles non-existent directory", func(t *testing.T) {
		connector := New("test-source", "/non/existent/path")

		fragsChan, errsChan := connector.FullScan(context.Background())
		for range fragsChan {
		}

		select {
		case err := <-errsChan:
			require.Error(t, err)
			assert.Contains(t, err.Error(), "does not exist")
		case <-time.After(100 * time.Millisecond):
			t.Fatal("expected error for non-existent directory")
		}
	})

	t.Run("root path is a file", func(t *testing.T) {
		root := t.TempDir()
		path := filepath.Join(root, "notadir.txt")
		require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))

		connector := New("test-source", path)
		fragsChan, errsChan := connector.FullScan(context.Background())
		for range fragsChan {
		}

		select {
		case err := <-errsChan:
			require.Error(t, err)
			assert.Contains(t, err.Error(), "not a directory")
		case <-time.After(100 * time.Millisecond):
			t.Fatal("expected error for file root")
		}
	})

	t.Run("handles cancelled context", func(t *testing.T) {
		root := t.TempDir()
		writeFragment(t, root, "implementors/core/marker/trait.Send.js", legacyFragment)

		connector := New("test-source", root)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		fragsChan, errsChan := connector.FullScan(ctx)

		// Channels close without hanging.
		for range fragsChan {
		}
		for range errsChan {
		}
	})

	t.Run("errors after close", func(t *testing.T) {
		connector := New("test-source", t.TempDir())
		require.NoError(t, connector.Close())

		fragsChan, errsChan := connector.FullScan(context.Background())
		for range fragsChan {
		}

		select {
		case err := <-errsChan:
			assert.ErrorIs(t, err, domain.ErrConnectorClosed)
		case <-time.After(100 * time.Millisecond):
			t.Fatal("expected closed connector error")
		}
	})
}

func TestConnector_IncrementalScan(t *testing.T) {
	t.Run("returns only fragments modified after cursor", func(t *testing.T) {
		root := t.TempDir()
		writeFragment(t, root, "implementors/core/marker/trait.Send.js", legacyFragment)

		time.Sleep(50 * time.Millisecond)
		cursor := strconv.FormatInt(time.Now().UnixNano(), 10)
		time.Sleep(50 * time.Millisecond)

		writeFragment(t, root, "implementors/core/marker/trait.Sync.js", legacyFragment)

		connector := New("test-source", root)
		changesChan, errsChan := connector.IncrementalScan(context.Background(), domain.ScanState{
			SourceID: "test-source",
			Cursor:   cursor,
		})

		var changes []domain.FragmentChange
		for change := range changesChan {
			changes = append(changes, change)
		}
		for range errsChan {
		}

		require.Len(t, changes, 1)
		assert.Contains(t, changes[0].Fragment.URI, "trait.Sync.js")
		assert.Equal(t, domain.ChangeUpdated, changes[0].Type)
	})

	t.Run("empty cursor scans everything", func(t *testing.T) {
		root := t.TempDir()
		writeFragment(t, root, "implementors/core/marker/trait.Send.js", legacyFragment)
		writeFragment(t, root, "trait.impl/core/marker/trait.Sync.js", legacyFragment)

		connector := New("test-source", root)
		changesChan, errsChan := connector.IncrementalScan(context.Background(), domain.ScanState{
			SourceID: "test-source",
			Cursor:   "",
		})

		var changes []domain.FragmentChange
		for change := range changesChan {
			changes = append(changes, change)
		}
		for range errsChan {
		}

		assert.Len(t, changes, 2)
	})

	t.Run("handles invalid cursor format", func(t *testing.T) {
		connector := New("test-source", t.TempDir())

		changesChan, errsChan := connector.IncrementalScan(context.Background(), domain.ScanState{
			SourceID: "test-source",
			Cursor:   "invalid-cursor-format",
		})

		for range changesChan {
		}

		select {
		case err := <-errsChan:
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid cursor format")
		case <-time.After(100 * time.Millisecond):
			t.Fatal("expected error for invalid cursor")
		}
	})

	t.Run("returns ScanComplete with advanced cursor", func(t *testing.T) {
		root := t.TempDir()
		connector := New("test-source", root)

		before := time.Now()
		changesChan, errsChan := connector.IncrementalScan(context.Background(), domain.ScanState{
			SourceID: "test-source",
			Cursor:   "",
		})

		for range changesChan {
		}

		var gotComplete bool
		for err := range errsChan {
			if sc, ok := driven.IsScanComplete(err); ok {
				gotComplete = true
				require.NotEmpty(t, sc.NewCursor)

				nanos, parseErr := strconv.ParseInt(sc.NewCursor, 10, 64)
				require.NoError(t, parseErr)
				assert.False(t, time.Unix(0, nanos).Before(before))
			}
		}

		assert.True(t, gotComplete, "should receive ScanComplete")
	})

	t.Run("handles non-existent directory", func(t *testing.T) {
		connector := New("test-source", "/non/existent/path")

		changesChan, errsChan := connector.IncrementalScan(context.Background(), domain.ScanState{
			SourceID: "test-source",
			Cursor:   strconv.FormatInt(time.Now().UnixNano(), 10),
		})

		for range changesChan {
		}

		select {
		case err := <-errsChan:
			require.Error(t, err)
			assert.Contains(t, err.Error(), "does not exist")
		case <-time.After(100 * time.Millisecond):
			t.Fatal("expected error for non-existent directory")
		}
	})

	t.Run("fragment modified exactly at cursor is included", func(t *testing.T) {
		root := t.TempDir()
		path := writeFragment(t, root, "implementors/core/marker/trait.Send.js", legacyFragment)

		info, err := os.Stat(path)
		require.NoError(t, err)

		connector := New("test-source", root)
		changesChan, errsChan := connector.IncrementalScan(context.Background(), domain.ScanState{
			SourceID: "test-source",
			Cursor:   strconv.FormatInt(info.ModTime().UnixNano(), 10),
		})

		var changes []domain.FragmentChange
		for change := range changesChan {
			changes = append(changes, change)
		}
		for range errsChan {
		}

		require.Len(t, changes, 1)
		assert.Equal(t, path, changes[0].Fragment.URI)
	})
}

func TestConnector_Watch(t *testing.T) {
	t.Run("streams fragment creation", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "implementors", "core", "marker"), 0o755))

		connector := New("test-source", root)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changesChan, err := connector.Watch(ctx)
		require.NoError(t, err)
		require.NotNil(t, changesChan)

		path := filepath.Join(root, "implementors", "core", "marker", "trait.Send.js")
		go func() {
			time.Sleep(50 * time.Millisecond)
			_ = os.WriteFile(path, []byte(legacyFragment), 0o644)
		}()

		select {
		case change := <-changesChan:
			assert.Equal(t, domain.ChangeCreated, change.Type)
			assert.Equal(t, path, change.Fragment.URI)
			assert.Equal(t, "core::marker::Send", change.Fragment.TraitPath)
		case <-time.After(500 * time.Millisecond):
			t.Fatal("timeout waiting for fragment creation event")
		}

		cancel()
		connector.Close()
	})

	t.Run("detects fragment rewrites", func(t *testing.T) {
		root := t.TempDir()
		path := writeFragment(t, root, "implementors/core/marker/trait.Send.js", legacyFragment)

		connector := New("test-source", root)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changesChan, err := connector.Watch(ctx)
		require.NoError(t, err)

		go func() {
			time.Sleep(50 * time.Millisecond)
			_ = os.WriteFile(path, []byte(legacyFragment+"\n"), 0o644)
		}()

		select {
		case change := <-changesChan:
			assert.Equal(t, domain.ChangeUpdated, change.Type)
			assert.Equal(t, path, change.Fragment.URI)
		case <-time.After(500 * time.Millisecond):
			t.Fatal("timeout waiting for fragment rewrite event")
		}

		cancel()
		connector.Close()
	})

	t.Run("detects fragment deletion", func(t *testing.T) {
		root := t.TempDir()
		path := writeFragment(t, root, "implementors/core/marker/trait.Send.js", legacyFragment)

		connector := New("test-source", root)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changesChan, err := connector.Watch(ctx)
		require.NoError(t, err)

		go func() {
			time.Sleep(50 * time.Millisecond)
			_ = os.Remove(path)
		}()

		select {
		case change := <-changesChan:
			assert.Equal(t, domain.ChangeDeleted, change.Type)
			assert.Equal(t, path, change.Fragment.URI)
			assert.Equal(t, "core::marker::Send", change.Fragment.TraitPath)
		case <-time.After(500 * time.Millisecond):
			t.Fatal("timeout waiting for fragment deletion event")
		}

		cancel()
		connector.Close()
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		connector := New("test-source", "/non/existent/path")

		changesChan, err := connector.Watch(context.Background())

		require.Error(t, err)
		assert.Nil(t, changesChan)
		assert.Contains(t, err.Error(), "root path error")
	})

	t.Run("returns error when connector is closed", func(t *testing.T) {
		connector := New("test-source", t.TempDir())
		connector.Close()

		changesChan, err := connector.Watch(context.Background())

		require.Error(t, err)
		assert.Nil(t, changesChan)
		assert.ErrorIs(t, err, domain.ErrConnectorClosed)
	})

	t.Run("closes channel when context is cancelled", func(t *testing.T) {
		connector := New("test-source", t.TempDir())
		ctx, cancel := context.WithCancel(context.Background())

		changesChan, err := connector.Watch(ctx)
		require.NoError(t, err)

		cancel()

		select {
		case _, ok := <-changesChan:
			if ok {
				for range changesChan {
				}
			}
		case <-time.After(200 * time.Millisecond):
			t.Fatal("channel did not close after context cancellation")
		}

		connector.Close()
	})
}

func TestConnector_Close(t *testing.T) {
	t.Run("close succeeds", func(t *testing.T) {
		connector := New("test-source", "/tmp/docs")
		assert.NoError(t, connector.Close())
	})

	t.Run("close is idempotent", func(t *testing.T) {
		connector := New("test-source", "/tmp/docs")

		assert.NoError(t, connector.Close())
		assert.NoError(t, connector.Close())
		assert.NoError(t, connector.Close())
	})

	t.Run("accessors still work after close", func(t *testing.T) {
		connector := New("test-source", "/tmp/docs")
		require.NoError(t, connector.Close())

		assert.Equal(t, "filesystem", connector.Type())
		assert.Equal(t, "test-source", connector.SourceID())
		assert.NotNil(t, connector.Capabilities())
	})
}

// TestHandleFsEvent exercises event-to-change conversion for each event type.
func TestHandleFsEvent(t *testing.T) {
	tests := []struct {
		name           string
		rel            string
		setupFile      bool
		operation      fsnotify.Op
		expectedChange bool
		expectedType   domain.ChangeType
	}{
		{
			name:           "create fragment event",
			rel:            "implementors/core/marker/trait.Send.js",
			setupFile:      true,
			operation:      fsnotify.Create,
			expectedChange: true,
			expectedType:   domain.ChangeCreated,
		},
		{
			name:           "write fragment event",
			rel:            "implementors/core/marker/trait.Send.js",
			setupFile:      true,
			operation:      fsnotify.Write,
			expectedChange: true,
			expectedType:   domain.ChangeUpdated,
		},
		{
			name:           "remove fragment event",
			rel:            "implementors/core/marker/trait.Send.js",
			setupFile:      false, // Already removed
			operation:      fsnotify.Remove,
			expectedChange: true,
			expectedType:   domain.ChangeDeleted,
		},
		{
			name:           "rename fragment event",
			rel:            "trait.impl/core/marker/trait.Sync.js",
			setupFile:      false,
			operation:      fsnotify.Rename,
			expectedChange: true,
			expectedType:   domain.ChangeDeleted,
		},
		{
			name:           "chmod event is ignored",
			rel:            "implementors/core/marker/trait.Send.js",
			setupFile:      true,
			operation:      fsnotify.Chmod,
			expectedChange: false,
		},
		{
			name:           "non-registry file is ignored",
			rel:            "src/lib.rs.html",
			setupFile:      true,
			operation:      fsnotify.Create,
			expectedChange: false,
		},
		{
			name:           "hidden fragment is ignored",
			rel:            "implementors/core/marker/.trait.Send.js",
			setupFile:      true,
			operation:      fsnotify.Write,
			expectedChange: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			path := filepath.Join(root, filepath.FromSlash(tt.rel))
			if tt.setupFile {
				require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
				require.NoError(t, os.WriteFile(path, []byte(legacyFragment), 0o644))
			}

			connector := New("test-source", root)
			event := fsnotify.Event{Name: path, Op: tt.operation}

			change := connector.handleFsEvent(event)

			if tt.expectedChange {
				require.NotNil(t, change, "expected change but got nil")
				assert.Equal(t, tt.expectedType, change.Type)
				assert.Equal(t, path, change.Fragment.URI)
				assert.Equal(t, "test-source", change.Fragment.SourceID)
				if tt.expectedType != domain.ChangeDeleted {
					assert.NotEmpty(t, change.Fragment.Content)
				}
			} else {
				assert.Nil(t, change, "expected no change but got one")
			}
		})
	}

	t.Run("combined write and chmod", func(t *testing.T) {
		root := t.TempDir()
		path := writeFragment(t, root, "implementors/core/marker/trait.Send.js", legacyFragment)

		connector := New("test-source", root)
		event := fsnotify.Event{Name: path, Op: fsnotify.Write | fsnotify.Chmod}

		change := connector.handleFsEvent(event)

		require.NotNil(t, change)
		assert.Equal(t, domain.ChangeUpdated, change.Type)
	})

	t.Run("burst writes collapse into one event", func(t *testing.T) {
		root := t.TempDir()
		path := writeFragment(t, root, "implementors/core/marker/trait.Send.js", legacyFragment)

		connector := New("test-source", root)
		event := fsnotify.Event{Name: path, Op: fsnotify.Write}

		first := connector.handleFsEvent(event)
		second := connector.handleFsEvent(event)

		require.NotNil(t, first)
		assert.Nil(t, second, "write inside debounce window should be suppressed")
	})
}

func TestIsRegistryFile(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"doc/implementors/core/marker/trait.Send.js", true},
		{"doc/trait.impl/core/marker/trait.Sync.js", true},
		{"implementors/trait.Unpin.js", true},
		{"doc/exports/send.traitdex.json", true},
		{"send.traitdex.json", true},
		{"doc/search-index.js", false},
		{"doc/static.files/main.js", false},
		{"doc/implementors/core/marker/trait.Send.html", false},
		{"doc/index.html", false},
		{"implementors.js", false},
		{"doc/settings.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, isRegistryFile(filepath.FromSlash(tt.path)))
		})
	}
}

func TestIsHidden(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{".hidden", true},
		{"path/to/.hidden", true},
		{"dir/.git/config", true},
		{".config/.cache/data", true},
		{"file.txt", false},
		{"path/to/file.txt", false},
		{"file.hidden", false},
		{"directory.name/file", false},
		{".", false},
		{"..", false},
		{"path/./file", false},
		{"path/../file", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, isHidden(tt.path))
		})
	}
}

func TestSkipDir(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"doc/static.files", true},
		{"doc/.git", true},
		{".cache", true},
		{"doc/implementors", false},
		{"doc/trait.impl", false},
		{".", false},
		{"..", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, skipDir(filepath.FromSlash(tt.path)))
		})
	}
}

func TestCursorRoundTrip(t *testing.T) {
	t.Run("round trips a timestamp", func(t *testing.T) {
		now := time.Now()

		cursor := encodeCursor(now)
		decoded, err := decodeCursor(cursor)

		require.NoError(t, err)
		assert.Equal(t, now.UnixNano(), decoded.UnixNano())
	})

	t.Run("empty cursor decodes to zero time", func(t *testing.T) {
		decoded, err := decodeCursor("")

		require.NoError(t, err)
		assert.True(t, decoded.IsZero())
	})

	t.Run("invalid cursor errors", func(t *testing.T) {
		_, err := decodeCursor("not-a-number")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid cursor format")
	})

	t.Run("zero time encodes to the present", func(t *testing.T) {
		before := time.Now()

		cursor := encodeCursor(time.Time{})

		nanos, err := strconv.ParseInt(cursor, 10, 64)
		require.NoError(t, err)
		assert.False(t, time.Unix(0, nanos).Before(before))
	})
}
