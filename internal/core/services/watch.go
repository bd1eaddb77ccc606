package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driven"
	"github.com/custodia-labs/traitdex/internal/core/ports/driving"
	"github.com/custodia-labs/traitdex/internal/logger"
)

// Ensure WatchService implements the interface.
var _ driving.WatchService = (*WatchService)(nil)

// WatchService keeps the index current while fragments change.
// Watch-capable connectors push events; the rest fall back to
// periodic rescans.
type WatchService struct {
	orch *ScanOrchestrator

	// pollInterval is the rescan period for sources whose connector
	// cannot watch.
	pollInterval time.Duration
}

// NewWatchService creates a watch service sharing the orchestrator's
// decode-and-index pipeline.
func NewWatchService(orch *ScanOrchestrator, pollInterval time.Duration) *WatchService {
	if pollInterval <= 0 {
		pollInterval = domain.DefaultRescanInterval
	}
	return &WatchService{
		orch:         orch,
		pollInterval: pollInterval,
	}
}

// Watch follows a source until the context is cancelled.
func (s *WatchService) Watch(ctx context.Context, sourceID string) (<-chan driving.WatchEvent, error) {
	source, err := s.orch.sourceStore.Get(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("get source: %w", err)
	}

	connector, err := s.orch.factory.Create(ctx, *source)
	if err != nil {
		return nil, fmt.Errorf("create connector: %w", err)
	}

	caps := connector.Capabilities()
	if caps.SupportsValidation {
		if err := connector.Validate(ctx); err != nil {
			connector.Close() //nolint:errcheck
			return nil, fmt.Errorf("%w: %w", domain.ErrConnectorValidation, err)
		}
	}

	events := make(chan driving.WatchEvent)

	if caps.SupportsWatch {
		changes, err := connector.Watch(ctx)
		if err != nil {
			connector.Close() //nolint:errcheck
			return nil, fmt.Errorf("start watch: %w", err)
		}
		go func() {
			defer close(events)
			defer connector.Close() //nolint:errcheck
			s.relayChanges(ctx, source, changes, events)
		}()
		return events, nil
	}

	// Interval fallback: rescan the whole source periodically.
	logger.Info("Source %s does not support watching, rescanning every %s", sourceID, s.pollInterval)
	go func() {
		defer close(events)
		defer connector.Close() //nolint:errcheck
		s.pollLoop(ctx, source, events)
	}()
	return events, nil
}

// relayChanges indexes each connector change and reports it downstream.
func (s *WatchService) relayChanges(
	ctx context.Context,
	source *domain.Source,
	changes <-chan domain.FragmentChange,
	events chan<- driving.WatchEvent,
) {
	for {
		select {
		case <-ctx.Done():
			return

		case change, ok := <-changes:
			if !ok {
				return
			}

			event := driving.WatchEvent{
				SourceID:  source.ID,
				Type:      change.Type,
				URI:       change.Fragment.URI,
				TraitPath: change.Fragment.TraitPath,
				At:        time.Now(),
			}

			switch change.Type {
			case domain.ChangeCreated, domain.ChangeUpdated:
				indexed, err := s.orch.processOneFragment(ctx, source, &change.Fragment)
				if err != nil && !errors.Is(err, domain.ErrUnknownFlavor) {
					event.Err = err
				}
				event.Records = indexed

			case domain.ChangeDeleted:
				if err := s.orch.implStore.DeleteFragment(ctx, source.ID, change.Fragment.URI); err != nil {
					event.Err = err
				}
			}

			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}

// pollLoop rescans the source on an interval, reporting one event per
// processed fragment.
func (s *WatchService) pollLoop(ctx context.Context, source *domain.Source, events chan<- driving.WatchEvent) {
	// First pass immediately so the watcher starts current.
	s.rescanOnce(ctx, source, events)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.rescanOnce(ctx, source, events)
		}
	}
}

// rescanOnce runs a full scan pass through a fresh connector,
// emitting an event per fragment.
func (s *WatchService) rescanOnce(ctx context.Context, source *domain.Source, events chan<- driving.WatchEvent) {
	connector, err := s.orch.factory.Create(ctx, *source)
	if err != nil {
		s.emit(ctx, events, driving.WatchEvent{SourceID: source.ID, At: time.Now(), Err: err})
		return
	}
	defer connector.Close() //nolint:errcheck

	fragsCh, errsCh := connector.FullScan(ctx)
	for {
		select {
		case <-ctx.Done():
			return

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			if _, done := driven.IsScanComplete(err); done {
				continue
			}
			if err != nil {
				s.emit(ctx, events, driving.WatchEvent{SourceID: source.ID, At: time.Now(), Err: err})
			}

		case frag, ok := <-fragsCh:
			if !ok {
				return
			}

			event := driving.WatchEvent{
				SourceID:  source.ID,
				Type:      domain.ChangeUpdated,
				URI:       frag.URI,
				TraitPath: frag.TraitPath,
				At:        time.Now(),
			}
			indexed, err := s.orch.processOneFragment(ctx, source, &frag)
			if err != nil && !errors.Is(err, domain.ErrUnknownFlavor) {
				event.Err = err
			}
			event.Records = indexed
			s.emit(ctx, events, event)
		}
	}
}

// emit sends an event unless the watcher is shutting down.
func (s *WatchService) emit(ctx context.Context, events chan<- driving.WatchEvent, event driving.WatchEvent) {
	select {
	case events <- event:
	case <-ctx.Done():
	}
}
