package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/btts-tracker/internal/domain/manualmatch"
)

type ManualMatchRepository struct {
	mu    sync.RWMutex
	items map[string]manualmatch.ManualMatch
}

func NewManualMatchRepository() *ManualMatchRepository {
	return &ManualMatchRepository{items: make(map[string]manualmatch.ManualMatch)}
}

func (r *ManualMatchRepository) List(_ context.Context) ([]manualmatch.ManualMatch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]manualmatch.ManualMatch, 0, len(r.items))
	for _, m := range r.items {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventID < out[j].EventID })

	return out, nil
}

func (r *ManualMatchRepository) Add(_ context.Context, m manualmatch.ManualMatch) error {
	r.mu.Lock()
	r.items[m.EventID] = m
	r.mu.Unlock()

	return nil
}

func (r *ManualMatchRepository) Remove(_ context.Context, eventID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[eventID]; !ok {
		return false, nil
	}
	delete(r.items, eventID)

	return true, nil
}
