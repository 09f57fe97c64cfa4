package cache

import (
	"context"

	"github.com/riskibarqy/btts-tracker/internal/domain/manualmatch"
	basecache "github.com/riskibarqy/btts-tracker/internal/platform/cache"
)

const manualMatchListKey = "manualmatch:list"

// ManualMatchRepository caches List reads in front of a persistent
// repository. The poll loop lists manual fixtures every pass, so the
// cache spares the database without making edits stale: writes
// invalidate the cached list immediately.
type ManualMatchRepository struct {
	next  manualmatch.Repository
	cache *basecache.Store
}

func NewManualMatchRepository(next manualmatch.Repository, cache *basecache.Store) *ManualMatchRepository {
	return &ManualMatchRepository{next: next, cache: cache}
}

func (r *ManualMatchRepository) List(ctx context.Context) ([]manualmatch.ManualMatch, error) {
	v, err := r.cache.GetOrLoad(ctx, manualMatchListKey, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]manualmatch.ManualMatch(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, ok := v.([]manualmatch.ManualMatch)
	if !ok {
		return r.next.List(ctx)
	}
	return append([]manualmatch.ManualMatch(nil), items...), nil
}

func (r *ManualMatchRepository) Add(ctx context.Context, m manualmatch.ManualMatch) error {
	if err := r.next.Add(ctx, m); err != nil {
		return err
	}
	r.cache.Delete(ctx, manualMatchListKey)
	return nil
}

func (r *ManualMatchRepository) Remove(ctx context.Context, eventID string) (bool, error) {
	existed, err := r.next.Remove(ctx, eventID)
	if err != nil {
		return false, err
	}
	r.cache.Delete(ctx, manualMatchListKey)
	return existed, nil
}
