package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/traitdex/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all index store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.traitdex/data/index.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".traitdex", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "index.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SourceStore returns a SourceStore interface backed by this store.
func (s *Store) SourceStore() driven.SourceStore {
	return &sourceStore{store: s}
}

// ImplementorStore returns an ImplementorStore interface backed by this store.
func (s *Store) ImplementorStore() driven.ImplementorStore {
	return &implementorStore{store: s}
}

// ScanStateStore returns a ScanStateStore interface backed by this store.
func (s *Store) ScanStateStore() driven.ScanStateStore {
	return &scanStateStore{store: s}
}

// ExclusionStore returns an ExclusionStore interface backed by this store.
func (s *Store) ExclusionStore() driven.ExclusionStore {
	return &exclusionStore{store: s}
}

// SchedulerStore returns a SchedulerStore interface backed by this store.
func (s *Store) SchedulerStore() driven.SchedulerStore {
	return &schedulerStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Source Store ====================

// sourceStore implements driven.SourceStore.
type sourceStore struct {
	store *Store
}

var _ driven.SourceStore = (*sourceStore)(nil)

// Save stores or updates a source.
func (s *sourceStore) Save(ctx context.Context, source domain.Source) error {
	configJSON, err := json.Marshal(source.Config)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	now := time.Now().UTC()
	if source.CreatedAt.IsZero() {
		source.CreatedAt = now
	}
	source.UpdatedAt = now

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO sources (id, type, name, config, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			name = excluded.name,
			config = excluded.config,
			updated_at = excluded.updated_at
	`, source.ID, source.Type, source.Name, string(configJSON),
		source.CreatedAt, source.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving source: %w", err)
	}
	return nil
}

// Get retrieves a source by ID.
func (s *sourceStore) Get(ctx context.Context, id string) (*domain.Source, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, type, name, config, created_at, updated_at
		FROM sources WHERE id = ?
	`, id)

	var source domain.Source
	var configJSON string
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&source.ID, &source.Type, &source.Name, &configJSON,
		&createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning source: %w", err)
	}

	if err := json.Unmarshal([]byte(configJSON), &source.Config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if createdAt.Valid {
		source.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		source.UpdatedAt = updatedAt.Time
	}

	return &source, nil
}

// Delete removes a source.
func (s *sourceStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM sources WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting source: %w", err)
	}
	return nil
}

// List returns all configured sources, ordered by name.
func (s *sourceStore) List(ctx context.Context) ([]domain.Source, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, type, name, config, created_at, updated_at
		FROM sources ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	var sources []domain.Source //nolint:prealloc // size unknown from query
	for rows.Next() {
		var source domain.Source
		var configJSON string
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&source.ID, &source.Type, &source.Name, &configJSON,
			&createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning source: %w", err)
		}

		if err := json.Unmarshal([]byte(configJSON), &source.Config); err != nil {
			return nil, fmt.Errorf("unmarshaling config: %w", err)
		}

		if createdAt.Valid {
			source.CreatedAt = createdAt.Time
		}
		if updatedAt.Valid {
			source.UpdatedAt = updatedAt.Time
		}
		sources = append(sources, source)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sources: %w", err)
	}

	return sources, nil
}

// ==================== Implementor Store ====================

// implementorColumns is the select list shared by implementor queries.
const implementorColumns = `id, source_id, uri, trait_path, crate, text,
	signature_key, synthetic, applicability, type_paths, generics,
	created_at, updated_at`

// implementorStore implements driven.ImplementorStore.
type implementorStore struct {
	store *Store
}

var _ driven.ImplementorStore = (*implementorStore)(nil)

// ReplaceFragment atomically swaps the records decoded from a fragment.
func (s *implementorStore) ReplaceFragment(ctx context.Context, sourceID, uri string, imps []domain.Implementor) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM implementors WHERE source_id = ? AND uri = ?", sourceID, uri); err != nil {
		return fmt.Errorf("clearing fragment records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO implementors (id, source_id, uri, trait_path, crate, text,
			signature_key, synthetic, applicability, type_paths, generics,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i := range imps {
		imp := &imps[i]

		typePathsJSON, err := json.Marshal(imp.TypePaths)
		if err != nil {
			return fmt.Errorf("marshalling type paths: %w", err)
		}
		genericsJSON, err := json.Marshal(imp.Generics)
		if err != nil {
			return fmt.Errorf("marshalling generics: %w", err)
		}

		createdAt := imp.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		updatedAt := imp.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = now
		}

		// The fragment key parameters are authoritative over whatever
		// provenance the record carries.
		if _, err := stmt.ExecContext(ctx, imp.ID, sourceID, uri,
			imp.TraitPath, imp.Crate, imp.Text, imp.SignatureKey(),
			boolToInt(imp.Synthetic), string(imp.Applicability),
			string(typePathsJSON), string(genericsJSON),
			createdAt, updatedAt); err != nil {
			return fmt.Errorf("saving implementor: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get retrieves a record by ID.
func (s *implementorStore) Get(ctx context.Context, id string) (*domain.Implementor, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+implementorColumns+" FROM implementors WHERE id = ?", id)

	return scanImplementor(row)
}

// Query returns records matching the options, ordered by crate then signature.
func (s *implementorStore) Query(ctx context.Context, opts domain.QueryOptions) ([]domain.Implementor, error) {
	query := "SELECT " + implementorColumns + " FROM implementors WHERE 1=1"
	var args []any

	if opts.TraitPath != "" {
		query += " AND trait_path = ?"
		args = append(args, opts.TraitPath)
	}
	if len(opts.Crates) > 0 {
		query += " AND crate IN (" + placeholders(len(opts.Crates)) + ")"
		for _, crate := range opts.Crates {
			args = append(args, crate)
		}
	}
	if opts.Applicability != "" {
		query += " AND applicability = ?"
		args = append(args, string(opts.Applicability))
	}
	if !opts.IncludeSynthetic {
		query += " AND synthetic = 0"
	}

	query += " ORDER BY crate, text, id"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	} else if opts.Offset > 0 {
		// SQLite requires a LIMIT clause before OFFSET.
		query += " LIMIT -1"
	}
	if opts.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying implementors: %w", err)
	}
	defer rows.Close()

	return scanImplementors(rows)
}

// ListByCrate returns all records for a crate within a trait registry.
func (s *implementorStore) ListByCrate(ctx context.Context, traitPath, crate string) ([]domain.Implementor, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+implementorColumns+` FROM implementors
		WHERE trait_path = ? AND crate = ?
		ORDER BY text, id`, traitPath, crate)
	if err != nil {
		return nil, fmt.Errorf("querying crate implementors: %w", err)
	}
	defer rows.Close()

	return scanImplementors(rows)
}

// CrateCounts returns per-crate record counts across all traits.
func (s *implementorStore) CrateCounts(ctx context.Context) ([]driven.CrateCount, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT crate, COUNT(*), COUNT(DISTINCT trait_path)
		FROM implementors
		GROUP BY crate
		ORDER BY crate
	`)
	if err != nil {
		return nil, fmt.Errorf("querying crate counts: %w", err)
	}
	defer rows.Close()

	var counts []driven.CrateCount //nolint:prealloc // size unknown from query
	for rows.Next() {
		var c driven.CrateCount
		if err := rows.Scan(&c.Crate, &c.Records, &c.Traits); err != nil {
			return nil, fmt.Errorf("scanning crate count: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating crate counts: %w", err)
	}

	return counts, nil
}

// TraitCounts returns per-trait record counts.
func (s *implementorStore) TraitCounts(ctx context.Context) ([]driven.TraitCount, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT trait_path, COUNT(*), COUNT(DISTINCT crate)
		FROM implementors
		GROUP BY trait_path
		ORDER BY trait_path
	`)
	if err != nil {
		return nil, fmt.Errorf("querying trait counts: %w", err)
	}
	defer rows.Close()

	var counts []driven.TraitCount //nolint:prealloc // size unknown from query
	for rows.Next() {
		var c driven.TraitCount
		if err := rows.Scan(&c.TraitPath, &c.Records, &c.Crates); err != nil {
			return nil, fmt.Errorf("scanning trait count: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating trait counts: %w", err)
	}

	return counts, nil
}

// DeleteBySource removes all records produced by a source.
func (s *implementorStore) DeleteBySource(ctx context.Context, sourceID string) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM implementors WHERE source_id = ?", sourceID)
	if err != nil {
		return fmt.Errorf("deleting source implementors: %w", err)
	}
	return nil
}

// DeleteFragment removes the records decoded from one fragment.
func (s *implementorStore) DeleteFragment(ctx context.Context, sourceID, uri string) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM implementors WHERE source_id = ? AND uri = ?", sourceID, uri)
	if err != nil {
		return fmt.Errorf("deleting fragment implementors: %w", err)
	}
	return nil
}

// ==================== Scan State Store ====================

// scanStateStore implements driven.ScanStateStore.
type scanStateStore struct {
	store *Store
}

var _ driven.ScanStateStore = (*scanStateStore)(nil)

// Save stores or updates scan state.
func (s *scanStateStore) Save(ctx context.Context, state domain.ScanState) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO scan_states (source_id, cursor, last_scan)
		VALUES (?, ?, ?)
		ON CONFLICT(source_id) DO UPDATE SET
			cursor = excluded.cursor,
			last_scan = excluded.last_scan
	`, state.SourceID, state.Cursor, state.LastScan)

	if err != nil {
		return fmt.Errorf("saving scan state: %w", err)
	}
	return nil
}

// Get retrieves scan state for a source.
func (s *scanStateStore) Get(ctx context.Context, sourceID string) (*domain.ScanState, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT source_id, cursor, last_scan
		FROM scan_states WHERE source_id = ?
	`, sourceID)

	var state domain.ScanState
	var lastScan sql.NullTime
	if err := row.Scan(&state.SourceID, &state.Cursor, &lastScan); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning scan state: %w", err)
	}

	if lastScan.Valid {
		state.LastScan = lastScan.Time
	}

	return &state, nil
}

// Delete removes scan state for a source.
func (s *scanStateStore) Delete(ctx context.Context, sourceID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM scan_states WHERE source_id = ?", sourceID)
	if err != nil {
		return fmt.Errorf("deleting scan state: %w", err)
	}
	return nil
}

// ==================== Exclusion Store ====================

// exclusionStore implements driven.ExclusionStore.
type exclusionStore struct {
	store *Store
}

var _ driven.ExclusionStore = (*exclusionStore)(nil)

// Add creates a new exclusion.
func (s *exclusionStore) Add(ctx context.Context, exclusion *domain.Exclusion) error {
	if exclusion == nil {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO exclusions (id, source_id, uri, crate, reason, excluded_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, exclusion.ID, exclusion.SourceID, exclusion.URI, exclusion.Crate,
		exclusion.Reason, exclusion.ExcludedAt)

	if err != nil {
		return fmt.Errorf("adding exclusion: %w", err)
	}
	return nil
}

// Remove deletes an exclusion by ID.
func (s *exclusionStore) Remove(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM exclusions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("removing exclusion: %w", err)
	}
	return nil
}

// GetBySourceID returns all exclusions for a source.
func (s *exclusionStore) GetBySourceID(ctx context.Context, sourceID string) ([]domain.Exclusion, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, source_id, uri, crate, reason, excluded_at
		FROM exclusions WHERE source_id = ?
		ORDER BY excluded_at, id
	`, sourceID)
	if err != nil {
		return nil, fmt.Errorf("querying exclusions: %w", err)
	}
	defer rows.Close()

	return scanExclusions(rows)
}

// IsExcluded checks if a fragment URI is excluded for a source.
func (s *exclusionStore) IsExcluded(ctx context.Context, sourceID, uri string) (bool, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM exclusions
		WHERE source_id = ? AND uri = ? AND uri != ''
	`, sourceID, uri).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking exclusion: %w", err)
	}
	return count > 0, nil
}

// ExcludedCrates returns the crates excluded for a source, sorted.
func (s *exclusionStore) ExcludedCrates(ctx context.Context, sourceID string) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT DISTINCT crate FROM exclusions
		WHERE source_id = ? AND crate != ''
		ORDER BY crate
	`, sourceID)
	if err != nil {
		return nil, fmt.Errorf("querying excluded crates: %w", err)
	}
	defer rows.Close()

	var crates []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var crate string
		if err := rows.Scan(&crate); err != nil {
			return nil, fmt.Errorf("scanning excluded crate: %w", err)
		}
		crates = append(crates, crate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating excluded crates: %w", err)
	}

	return crates, nil
}

// List returns all exclusions.
func (s *exclusionStore) List(ctx context.Context) ([]domain.Exclusion, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, source_id, uri, crate, reason, excluded_at
		FROM exclusions
		ORDER BY excluded_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying exclusions: %w", err)
	}
	defer rows.Close()

	return scanExclusions(rows)
}

// ==================== Helper Functions ====================

// placeholders builds an n-element "?, ?, ?" list for IN clauses.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// scanImplementor scans a single implementor row.
func scanImplementor(row *sql.Row) (*domain.Implementor, error) {
	var imp domain.Implementor
	var signatureKey, applicability string
	var synthetic int
	var typePathsJSON, genericsJSON string

	if err := row.Scan(&imp.ID, &imp.SourceID, &imp.URI, &imp.TraitPath,
		&imp.Crate, &imp.Text, &signatureKey, &synthetic, &applicability,
		&typePathsJSON, &genericsJSON, &imp.CreatedAt, &imp.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning implementor: %w", err)
	}

	imp.Synthetic = synthetic == 1
	imp.Applicability = domain.Applicability(applicability)

	if err := json.Unmarshal([]byte(typePathsJSON), &imp.TypePaths); err != nil {
		return nil, fmt.Errorf("unmarshaling type paths: %w", err)
	}
	if err := json.Unmarshal([]byte(genericsJSON), &imp.Generics); err != nil {
		return nil, fmt.Errorf("unmarshaling generics: %w", err)
	}

	return &imp, nil
}

// scanImplementors scans implementor rows into a slice.
func scanImplementors(rows *sql.Rows) ([]domain.Implementor, error) {
	var imps []domain.Implementor //nolint:prealloc // size unknown from query
	for rows.Next() {
		var imp domain.Implementor
		var signatureKey, applicability string
		var synthetic int
		var typePathsJSON, genericsJSON string

		if err := rows.Scan(&imp.ID, &imp.SourceID, &imp.URI, &imp.TraitPath,
			&imp.Crate, &imp.Text, &signatureKey, &synthetic, &applicability,
			&typePathsJSON, &genericsJSON, &imp.CreatedAt, &imp.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning implementor: %w", err)
		}

		imp.Synthetic = synthetic == 1
		imp.Applicability = domain.Applicability(applicability)

		if err := json.Unmarshal([]byte(typePathsJSON), &imp.TypePaths); err != nil {
			return nil, fmt.Errorf("unmarshaling type paths: %w", err)
		}
		if err := json.Unmarshal([]byte(genericsJSON), &imp.Generics); err != nil {
			return nil, fmt.Errorf("unmarshaling generics: %w", err)
		}

		imps = append(imps, imp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating implementors: %w", err)
	}

	return imps, nil
}

// scanExclusions scans multiple exclusion rows.
func scanExclusions(rows *sql.Rows) ([]domain.Exclusion, error) {
	var exclusions []domain.Exclusion //nolint:prealloc // size unknown from query
	for rows.Next() {
		var e domain.Exclusion
		if err := rows.Scan(&e.ID, &e.SourceID, &e.URI, &e.Crate, &e.Reason, &e.ExcludedAt); err != nil {
			return nil, fmt.Errorf("scanning exclusion: %w", err)
		}
		exclusions = append(exclusions, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exclusions: %w", err)
	}

	return exclusions, nil
}
