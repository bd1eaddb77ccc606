package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driven"
	"github.com/custodia-labs/traitdex/internal/core/ports/driving"
	"github.com/custodia-labs/traitdex/internal/logger"
)

// Ensure RescanScheduler implements the interface.
var _ driving.Scheduler = (*RescanScheduler)(nil)

// historyKeep is how many rescan results are retained per source.
const historyKeep = 100

// RescanScheduler periodically rescans configured sources so the index
// follows documentation trees that are regenerated out of band.
// It is a pure core service with no external control API.
type RescanScheduler struct {
	settings    domain.RescanSettings
	store       driven.SchedulerStore
	sourceStore driven.SourceStore
	scanOrch    driving.ScanOrchestrator

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewRescanScheduler creates a scheduler with the given rescan settings.
func NewRescanScheduler(
	settings domain.RescanSettings,
	store driven.SchedulerStore,
	sourceStore driven.SourceStore,
	scanOrch driving.ScanOrchestrator,
) *RescanScheduler {
	return &RescanScheduler{
		settings:    settings,
		store:       store,
		sourceStore: sourceStore,
		scanOrch:    scanOrch,
	}
}

// Start begins the scheduler loop. This method blocks until Stop is
// called or the context is cancelled.
func (s *RescanScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	if err := s.initialiseTasks(ctx); err != nil {
		logger.Warn("scheduler: failed to initialise tasks: %v", err)
	}

	return s.run(ctx)
}

// Stop gracefully shuts down the scheduler.
func (s *RescanScheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	// Wait for in-flight rescans to complete
	s.wg.Wait()

	return nil
}

// initialiseTasks ensures every configured source has a rescan task.
func (s *RescanScheduler) initialiseTasks(ctx context.Context) error {
	if !s.settings.Enabled {
		return nil
	}

	sources, err := s.sourceStore.List(ctx)
	if err != nil {
		return err
	}

	for _, source := range sources {
		if err := s.ensureTask(ctx, source.ID); err != nil {
			return err
		}
	}
	return nil
}

// ensureTask creates or updates the task for one source.
func (s *RescanScheduler) ensureTask(ctx context.Context, sourceID string) error {
	task, err := s.store.GetTask(ctx, sourceID)
	if err != nil {
		return err
	}

	interval := s.settings.Interval
	if interval <= 0 {
		interval = domain.DefaultRescanInterval
	}

	if task == nil {
		task = &domain.RescanTask{
			SourceID: sourceID,
			Interval: interval,
			Enabled:  true,
			NextRun:  time.Now().Add(interval),
		}
	} else {
		if task.Interval != interval {
			task.Interval = interval
			// Recalculate next run from now
			task.NextRun = time.Now().Add(interval)
		}
		task.Enabled = s.settings.Enabled
	}

	return s.store.SaveTask(ctx, task)
}

// run is the main scheduler loop.
func (s *RescanScheduler) run(ctx context.Context) error {
	// Check for due tasks immediately on startup
	s.checkAndRunDueTasks(ctx)

	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopCh:
			return nil
		case <-ticker.C:
			s.checkAndRunDueTasks(ctx)
		}
	}
}

// checkAndRunDueTasks finds and executes tasks that are due.
func (s *RescanScheduler) checkAndRunDueTasks(ctx context.Context) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		logger.Warn("scheduler: failed to list tasks: %v", err)
		return
	}

	now := time.Now()
	for i := range tasks {
		task := &tasks[i]
		if task.Due(now) {
			s.runTask(ctx, task)
		}
	}
}

// runTask rescans a single source.
func (s *RescanScheduler) runTask(ctx context.Context, task *domain.RescanTask) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		result := &domain.RescanResult{
			SourceID:  task.SourceID,
			StartedAt: time.Now(),
		}

		err := s.scanOrch.Scan(ctx, task.SourceID)

		result.EndedAt = time.Now()
		result.Success = err == nil
		if err != nil {
			result.Error = err.Error()
		} else if status, statusErr := s.scanOrch.Status(ctx, task.SourceID); statusErr == nil {
			result.RecordsIndexed = status.RecordsIndexed
		}

		task.Advance(result.StartedAt, err)

		if saveErr := s.store.SaveTask(ctx, task); saveErr != nil {
			logger.Warn("scheduler: failed to save task %s: %v", task.SourceID, saveErr)
		}

		if recordErr := s.store.RecordResult(ctx, result); recordErr != nil {
			logger.Warn("scheduler: failed to record result for %s: %v", task.SourceID, recordErr)
		}

		if pruneErr := s.store.PruneHistory(ctx, historyKeep); pruneErr != nil {
			logger.Warn("scheduler: failed to prune history: %v", pruneErr)
		}
	}()
}
