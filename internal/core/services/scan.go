package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driven"
	"github.com/custodia-labs/traitdex/internal/core/ports/driving"
	"github.com/custodia-labs/traitdex/internal/logger"
)

// Ensure ScanOrchestrator implements the interface.
var _ driving.ScanOrchestrator = (*ScanOrchestrator)(nil)

// ScanOrchestrator coordinates fragment scanning and indexing.
type ScanOrchestrator struct {
	sourceStore    driven.SourceStore
	scanStore      driven.ScanStateStore
	implStore      driven.ImplementorStore
	exclusionStore driven.ExclusionStore
	factory        driven.ConnectorFactory
	decoders       driven.DecoderRegistry
	pipeline       driven.RecordPipeline

	// Status tracking
	mu          sync.RWMutex
	activeScans map[string]*driving.ScanStatus
}

// NewScanOrchestrator creates a new scan orchestrator.
func NewScanOrchestrator(
	sourceStore driven.SourceStore,
	scanStore driven.ScanStateStore,
	implStore driven.ImplementorStore,
	exclusionStore driven.ExclusionStore,
	factory driven.ConnectorFactory,
	decoders driven.DecoderRegistry,
	pipeline driven.RecordPipeline,
) *ScanOrchestrator {
	return &ScanOrchestrator{
		sourceStore:    sourceStore,
		scanStore:      scanStore,
		implStore:      implStore,
		exclusionStore: exclusionStore,
		factory:        factory,
		decoders:       decoders,
		pipeline:       pipeline,
		activeScans:    make(map[string]*driving.ScanStatus),
	}
}

// Scan triggers a scan for a source.
//
//nolint:gocyclo // Orchestration function with necessary sequential steps
func (o *ScanOrchestrator) Scan(ctx context.Context, sourceID string) error {
	// 1. Get source configuration
	source, err := o.sourceStore.Get(ctx, sourceID)
	if err != nil {
		return fmt.Errorf("get source: %w", err)
	}

	// 2. Create connector from source
	if o.factory == nil {
		return fmt.Errorf("create connector: connector factory not configured")
	}
	connector, err := o.factory.Create(ctx, *source)
	if err != nil {
		return fmt.Errorf("create connector: %w", err)
	}
	defer connector.Close()

	// 3. Validate connector (check auth, configuration, doc root)
	caps := connector.Capabilities()
	if caps.SupportsValidation {
		if err := connector.Validate(ctx); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrConnectorValidation, err)
		}
	}

	// 4. Get scan state (for incremental scans)
	scanState, err := o.scanStore.Get(ctx, sourceID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("get scan state: %w", err)
	}

	// 5. Initialise status tracking, rejecting concurrent scans
	status := &driving.ScanStatus{
		SourceID: sourceID,
		Running:  true,
	}
	if err := o.beginScan(sourceID, status); err != nil {
		return err
	}
	defer o.clearStatus(sourceID)

	logger.Info("Starting scan for source %s", sourceID)

	// 6. Choose scan strategy based on connector capabilities
	var newCursor string

	if caps.SupportsIncremental && scanState != nil && scanState.Cursor != "" {
		// Incremental scan
		changesCh, errsCh := connector.IncrementalScan(ctx, *scanState)
		newCursor, err = o.processChanges(ctx, source, changesCh, errsCh, status)
	} else {
		// Full scan
		fragsCh, errsCh := connector.FullScan(ctx)
		newCursor, err = o.processFragments(ctx, source, fragsCh, errsCh, status)
		// For full scans, fall back to current time if no cursor was returned
		if err == nil && newCursor == "" && caps.SupportsCursorReturn {
			newCursor = fmt.Sprintf("%d", time.Now().UnixNano())
		}
	}

	if err != nil {
		return err
	}

	// 7. Update scan state with new cursor
	newState := domain.ScanState{
		SourceID: sourceID,
		Cursor:   newCursor,
		LastScan: time.Now(),
	}
	if err := o.scanStore.Save(ctx, newState); err != nil {
		return fmt.Errorf("save scan state: %w", err)
	}

	logger.Info("Scan complete: %d fragments, %d records, %d errors",
		status.FragmentsProcessed, status.RecordsIndexed, status.ErrorCount)
	status.Running = false
	return nil
}

// ScanAll triggers a scan for all configured sources.
func (o *ScanOrchestrator) ScanAll(ctx context.Context) error {
	sources, err := o.sourceStore.List(ctx)
	if err != nil {
		return fmt.Errorf("list sources: %w", err)
	}

	var errs []error
	for _, source := range sources {
		if err := o.Scan(ctx, source.ID); err != nil {
			errs = append(errs, fmt.Errorf("scan %s: %w", source.ID, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Status returns scan status for a source.
func (o *ScanOrchestrator) Status(_ context.Context, sourceID string) (*driving.ScanStatus, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if status, ok := o.activeScans[sourceID]; ok {
		// Return a copy to avoid race conditions
		return &driving.ScanStatus{
			SourceID:           status.SourceID,
			Running:            status.Running,
			FragmentsProcessed: status.FragmentsProcessed,
			RecordsIndexed:     status.RecordsIndexed,
			ErrorCount:         status.ErrorCount,
		}, nil
	}

	// Not running - return idle status
	return &driving.ScanStatus{
		SourceID: sourceID,
		Running:  false,
	}, nil
}

// processFragments handles full scans - processes every fragment from the
// connector. Returns the new cursor from ScanComplete if the connector
// provides one.
//
//nolint:gocognit // Orchestration function coordinating multiple async operations
func (o *ScanOrchestrator) processFragments(
	ctx context.Context,
	source *domain.Source,
	fragsCh <-chan domain.RawFragment,
	errsCh <-chan error,
	status *driving.ScanStatus,
) (string, error) {
	var newCursor string

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			// Check if this is a ScanComplete (successful completion with cursor)
			if sc, isScanComplete := driven.IsScanComplete(err); isScanComplete {
				newCursor = sc.NewCursor
				continue
			}
			if err != nil {
				return "", fmt.Errorf("connector error: %w", err)
			}

		case frag, ok := <-fragsCh:
			if !ok {
				return newCursor, nil // Done - channel closed
			}

			logger.Debug("Processing: %s", frag.URI)
			indexed, err := o.processOneFragment(ctx, source, &frag)
			if err != nil {
				status.ErrorCount++
				if errors.Is(err, domain.ErrUnknownFlavor) {
					logger.Debug("Skipping %s: %v", frag.URI, err)
				} else {
					logger.Debug("Failed to process %s: %v", frag.URI, err)
				}
				continue
			}
			status.FragmentsProcessed++
			status.RecordsIndexed += indexed
		}
	}
}

// processChanges handles incremental scans - processes fragment changes.
// Returns the new cursor from ScanComplete if the connector provides one.
//
//nolint:gocognit // Orchestration function coordinating multiple async operations
func (o *ScanOrchestrator) processChanges(
	ctx context.Context,
	source *domain.Source,
	changesCh <-chan domain.FragmentChange,
	errsCh <-chan error,
	status *driving.ScanStatus,
) (string, error) {
	var newCursor string

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			// Check if this is a ScanComplete (successful completion with cursor)
			if sc, isScanComplete := driven.IsScanComplete(err); isScanComplete {
				newCursor = sc.NewCursor
				continue
			}
			if err != nil {
				return "", fmt.Errorf("connector error: %w", err)
			}

		case change, ok := <-changesCh:
			if !ok {
				return newCursor, nil // Done - channel closed
			}

			switch change.Type {
			case domain.ChangeCreated, domain.ChangeUpdated:
				logger.Debug("Processing: %s", change.Fragment.URI)
				indexed, err := o.processOneFragment(ctx, source, &change.Fragment)
				if err != nil {
					status.ErrorCount++
					if errors.Is(err, domain.ErrUnknownFlavor) {
						logger.Debug("Skipping %s: %v", change.Fragment.URI, err)
					} else {
						logger.Debug("Failed to process %s: %v", change.Fragment.URI, err)
					}
					continue
				}
				status.RecordsIndexed += indexed

			case domain.ChangeDeleted:
				logger.Debug("Deleting: %s", change.Fragment.URI)
				if err := o.implStore.DeleteFragment(ctx, source.ID, change.Fragment.URI); err != nil {
					status.ErrorCount++
					logger.Debug("Failed to delete %s: %v", change.Fragment.URI, err)
					continue
				}
			}
			status.FragmentsProcessed++
		}
	}
}

// processOneFragment handles the decode-and-index pipeline for a single
// registry fragment. Returns the number of records indexed.
func (o *ScanOrchestrator) processOneFragment(
	ctx context.Context,
	source *domain.Source,
	frag *domain.RawFragment,
) (int, error) {
	// 1. CHECK EXCLUSION
	excluded, err := o.exclusionStore.IsExcluded(ctx, source.ID, frag.URI)
	if err != nil {
		return 0, fmt.Errorf("check exclusion: %w", err)
	}
	if excluded {
		return 0, nil // Skip silently
	}

	// 2. DECODE (produces implementor records without IDs)
	result, err := o.decoders.Decode(ctx, frag)
	if err != nil {
		return 0, fmt.Errorf("decode: %w", err)
	}
	for _, warning := range result.Warnings {
		logger.Warn("%s", warning)
	}

	// 3. RUN RECORD PIPELINE (annotation, pruning)
	imps := result.Implementors
	if o.pipeline != nil {
		imps, err = o.pipeline.Process(ctx, frag, imps)
		if err != nil {
			return 0, fmt.Errorf("post-process: %w", err)
		}
	}

	// 4. DROP RECORDS FROM EXCLUDED CRATES
	dropCrates, err := o.exclusionStore.ExcludedCrates(ctx, source.ID)
	if err != nil {
		return 0, fmt.Errorf("excluded crates: %w", err)
	}
	if len(dropCrates) > 0 {
		imps = dropExcludedCrates(imps, dropCrates)
	}

	// 5. ASSIGN IDENTITY AND PROVENANCE
	now := time.Now()
	for i := range imps {
		if imps[i].ID == "" {
			imps[i].ID = uuid.NewString()
		}
		imps[i].SourceID = source.ID
		imps[i].URI = frag.URI
		imps[i].CreatedAt = now
		imps[i].UpdatedAt = now
	}

	// 6. REPLACE FRAGMENT RECORDS IN STORE
	if err := o.implStore.ReplaceFragment(ctx, source.ID, frag.URI, imps); err != nil {
		return 0, fmt.Errorf("save records: %w", err)
	}

	return len(imps), nil
}

// dropExcludedCrates filters out records belonging to excluded crates.
func dropExcludedCrates(imps []domain.Implementor, crates []string) []domain.Implementor {
	drop := make(map[string]struct{}, len(crates))
	for _, c := range crates {
		drop[c] = struct{}{}
	}

	kept := imps[:0]
	for _, imp := range imps {
		if _, excluded := drop[imp.Crate]; !excluded {
			kept = append(kept, imp)
		}
	}
	return kept
}

// beginScan registers status tracking for a source, rejecting a second
// concurrent scan of the same source.
func (o *ScanOrchestrator) beginScan(sourceID string, status *driving.ScanStatus) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if existing, ok := o.activeScans[sourceID]; ok && existing.Running {
		return domain.ErrScanInProgress
	}
	o.activeScans[sourceID] = status
	return nil
}

// clearStatus removes the scan status for a source.
func (o *ScanOrchestrator) clearStatus(sourceID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.activeScans, sourceID)
}
