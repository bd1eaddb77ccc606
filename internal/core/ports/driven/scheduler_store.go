package driven

import (
	"context"

	"github.com/custodia-labs/traitdex/internal/core/domain"
)

// SchedulerStore persists rescan schedules for crash recovery.
// It stores per-source task state and execution history.
type SchedulerStore interface {
	// GetTask retrieves the rescan task for a source.
	// Returns nil and no error if no task exists.
	GetTask(ctx context.Context, sourceID string) (*domain.RescanTask, error)

	// ListTasks returns all rescan tasks.
	ListTasks(ctx context.Context) ([]domain.RescanTask, error)

	// SaveTask persists a task's state.
	// Creates or updates the task based on source ID.
	SaveTask(ctx context.Context, task *domain.RescanTask) error

	// DeleteTask removes a source's task from storage.
	DeleteTask(ctx context.Context, sourceID string) error

	// RecordResult logs a rescan execution result.
	RecordResult(ctx context.Context, result *domain.RescanResult) error

	// GetTaskHistory returns recent results for a source.
	// Results are ordered by start time descending (most recent first).
	GetTaskHistory(ctx context.Context, sourceID string, limit int) ([]domain.RescanResult, error)

	// PruneHistory removes old rescan results beyond the retention limit.
	// Keeps the most recent 'keep' results per source.
	PruneHistory(ctx context.Context, keep int) error
}
