package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driven"
)

// Ensure ScanStateStore implements the interface.
var _ driven.ScanStateStore = (*ScanStateStore)(nil)

// ScanStateStore is an in-memory implementation of driven.ScanStateStore.
type ScanStateStore struct {
	mu     sync.RWMutex
	states map[string]domain.ScanState
}

// NewScanStateStore creates a new in-memory scan state store.
func NewScanStateStore() *ScanStateStore {
	return &ScanStateStore{
		states: make(map[string]domain.ScanState),
	}
}

// Save stores or updates scan state.
func (s *ScanStateStore) Save(_ context.Context, state domain.ScanState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.SourceID] = state
	return nil
}

// Get retrieves scan state for a source.
func (s *ScanStateStore) Get(_ context.Context, sourceID string) (*domain.ScanState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[sourceID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &state, nil
}

// Delete removes scan state for a source.
func (s *ScanStateStore) Delete(_ context.Context, sourceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, sourceID)
	return nil
}
