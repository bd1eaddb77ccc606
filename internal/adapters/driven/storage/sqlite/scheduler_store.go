package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driven"
)

// schedulerStore implements driven.SchedulerStore.
type schedulerStore struct {
	store *Store
}

var _ driven.SchedulerStore = (*schedulerStore)(nil)

// GetTask retrieves the rescan task for a source.
// Returns nil and no error if no task exists.
func (s *schedulerStore) GetTask(ctx context.Context, sourceID string) (*domain.RescanTask, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT source_id, interval_seconds, last_run, next_run, last_error, last_success, enabled
		FROM rescan_tasks WHERE source_id = ?
	`, sourceID)

	task, err := scanRescanTask(row)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil // Per interface: return nil and no error if not found
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks returns all rescan tasks.
func (s *schedulerStore) ListTasks(ctx context.Context) ([]domain.RescanTask, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT source_id, interval_seconds, last_run, next_run, last_error, last_success, enabled
		FROM rescan_tasks ORDER BY source_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying rescan tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.RescanTask //nolint:prealloc // size unknown from query
	for rows.Next() {
		task, err := scanRescanTaskRows(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rescan tasks: %w", err)
	}

	return tasks, nil
}

// SaveTask persists a task's state.
// Creates or updates the task based on source ID.
func (s *schedulerStore) SaveTask(ctx context.Context, task *domain.RescanTask) error {
	if task == nil || task.SourceID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO rescan_tasks (source_id, interval_seconds, last_run, next_run, last_error, last_success, enabled)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_id) DO UPDATE SET
			interval_seconds = excluded.interval_seconds,
			last_run = excluded.last_run,
			next_run = excluded.next_run,
			last_error = excluded.last_error,
			last_success = excluded.last_success,
			enabled = excluded.enabled
	`, task.SourceID, int64(task.Interval.Seconds()),
		formatNullableTime(task.LastRun), formatNullableTime(task.NextRun),
		nullString(task.LastError), formatNullableTime(task.LastSuccess),
		boolToInt(task.Enabled))

	if err != nil {
		return fmt.Errorf("saving rescan task: %w", err)
	}
	return nil
}

// DeleteTask removes a source's task from storage.
func (s *schedulerStore) DeleteTask(ctx context.Context, sourceID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM rescan_tasks WHERE source_id = ?", sourceID)
	if err != nil {
		return fmt.Errorf("deleting rescan task: %w", err)
	}
	return nil
}

// RecordResult logs a rescan execution result.
func (s *schedulerStore) RecordResult(ctx context.Context, result *domain.RescanResult) error {
	if result == nil {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO rescan_results (source_id, started_at, ended_at, success, error, records_indexed)
		VALUES (?, ?, ?, ?, ?, ?)
	`, result.SourceID,
		result.StartedAt.Format(time.RFC3339),
		result.EndedAt.Format(time.RFC3339),
		boolToInt(result.Success),
		nullString(result.Error),
		result.RecordsIndexed)

	if err != nil {
		return fmt.Errorf("recording rescan result: %w", err)
	}
	return nil
}

// GetTaskHistory returns recent results for a source.
// Results are ordered by start time descending (most recent first).
func (s *schedulerStore) GetTaskHistory(ctx context.Context, sourceID string, limit int) ([]domain.RescanResult, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT source_id, started_at, ended_at, success, error, records_indexed
		FROM rescan_results
		WHERE source_id = ?
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, sourceID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying rescan history: %w", err)
	}
	defer rows.Close()

	var results []domain.RescanResult //nolint:prealloc // size unknown from query
	for rows.Next() {
		result, err := scanRescanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rescan history: %w", err)
	}

	return results, nil
}

// PruneHistory removes old rescan results beyond the retention limit.
// Keeps the most recent 'keep' results per source.
func (s *schedulerStore) PruneHistory(ctx context.Context, keep int) error {
	// Delete all results except the most recent 'keep' per source
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM rescan_results
		WHERE id NOT IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (PARTITION BY source_id ORDER BY started_at DESC, id DESC) as rn
				FROM rescan_results
			) WHERE rn <= ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning rescan history: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// scanRescanTask scans a single rescan task row.
func scanRescanTask(row *sql.Row) (*domain.RescanTask, error) {
	var task domain.RescanTask
	var intervalSeconds int64
	var lastRun, nextRun, lastError, lastSuccess sql.NullString
	var enabled int

	if err := row.Scan(&task.SourceID, &intervalSeconds,
		&lastRun, &nextRun, &lastError, &lastSuccess, &enabled); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning rescan task: %w", err)
	}

	task.Interval = time.Duration(intervalSeconds) * time.Second
	task.LastRun = parseNullableTime(lastRun)
	task.NextRun = parseNullableTime(nextRun)
	if lastError.Valid {
		task.LastError = lastError.String
	}
	task.LastSuccess = parseNullableTime(lastSuccess)
	task.Enabled = enabled == 1

	return &task, nil
}

// scanRescanTaskRows scans a rescan task from *sql.Rows.
func scanRescanTaskRows(rows *sql.Rows) (*domain.RescanTask, error) {
	var task domain.RescanTask
	var intervalSeconds int64
	var lastRun, nextRun, lastError, lastSuccess sql.NullString
	var enabled int

	if err := rows.Scan(&task.SourceID, &intervalSeconds,
		&lastRun, &nextRun, &lastError, &lastSuccess, &enabled); err != nil {
		return nil, fmt.Errorf("scanning rescan task: %w", err)
	}

	task.Interval = time.Duration(intervalSeconds) * time.Second
	task.LastRun = parseNullableTime(lastRun)
	task.NextRun = parseNullableTime(nextRun)
	if lastError.Valid {
		task.LastError = lastError.String
	}
	task.LastSuccess = parseNullableTime(lastSuccess)
	task.Enabled = enabled == 1

	return &task, nil
}

// scanRescanResult scans a rescan result from *sql.Rows.
func scanRescanResult(rows *sql.Rows) (*domain.RescanResult, error) {
	var result domain.RescanResult
	var startedAt, endedAt string
	var success int
	var errMsg sql.NullString

	if err := rows.Scan(&result.SourceID, &startedAt, &endedAt,
		&success, &errMsg, &result.RecordsIndexed); err != nil {
		return nil, fmt.Errorf("scanning rescan result: %w", err)
	}

	if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
		result.StartedAt = t
	}
	if t, err := time.Parse(time.RFC3339, endedAt); err == nil {
		result.EndedAt = t
	}
	result.Success = success == 1
	if errMsg.Valid {
		result.Error = errMsg.String
	}

	return &result, nil
}

// formatNullableTime formats a time to RFC3339 string, or returns nil for zero time.
func formatNullableTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339)
}

// parseNullableTime parses a nullable RFC3339 string to time.Time.
// Returns zero time if the string is empty or invalid.
func parseNullableTime(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return time.Time{} // Return zero time on parse error
	}
	return t
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// boolToInt converts a bool to 1 (true) or 0 (false).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
