// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - SourceStore: Source configuration persistence
//   - ImplementorStore: Decoded implementor record persistence
//   - ScanStateStore: Incremental scan cursor persistence
//   - ExclusionStore: Fragment and crate exclusion persistence
//   - SchedulerStore: Rescan schedule and history persistence
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// Duplicate signatures within a crate are deliberately storable: the index
// holds what fragments actually contain, and lint reports the violations.
//
// # Data Location
//
// By default, the database is stored at ~/.traitdex/data/index.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
