package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/btts-tracker/internal/domain/tracking"
)

type StateRepository struct {
	mu    sync.RWMutex
	items map[string]tracking.ObservedState
}

func NewStateRepository() *StateRepository {
	return &StateRepository{items: make(map[string]tracking.ObservedState)}
}

func (r *StateRepository) Get(_ context.Context, participant string) (tracking.ObservedState, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.items[participant]
	if !ok {
		return tracking.ObservedState{}, false, nil
	}

	return state, true, nil
}

func (r *StateRepository) Put(_ context.Context, participant string, state tracking.ObservedState) error {
	r.mu.Lock()
	r.items[participant] = state
	r.mu.Unlock()

	return nil
}

func (r *StateRepository) Delete(_ context.Context, participant string) error {
	r.mu.Lock()
	delete(r.items, participant)
	r.mu.Unlock()

	return nil
}
