package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/btts-tracker/internal/domain/manualmatch"
	basecache "github.com/riskibarqy/btts-tracker/internal/platform/cache"
)

type countingManualRepo struct {
	items     []manualmatch.ManualMatch
	listCalls int
}

func (r *countingManualRepo) List(context.Context) ([]manualmatch.ManualMatch, error) {
	r.listCalls++
	return append([]manualmatch.ManualMatch(nil), r.items...), nil
}

func (r *countingManualRepo) Add(_ context.Context, m manualmatch.ManualMatch) error {
	r.items = append(r.items, m)
	return nil
}

func (r *countingManualRepo) Remove(_ context.Context, eventID string) (bool, error) {
	for i, item := range r.items {
		if item.EventID == eventID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func TestManualMatchRepository_CachesListUntilWrite(t *testing.T) {
	ctx := context.Background()
	next := &countingManualRepo{}
	repo := NewManualMatchRepository(next, basecache.NewStore(time.Minute))

	_, err := repo.List(ctx)
	require.NoError(t, err)
	_, err = repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, next.listCalls, "second read should come from the cache")

	entry := manualmatch.ManualMatch{EventID: "eng.1:20260823:fulham-v-brentford"}
	require.NoError(t, repo.Add(ctx, entry))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, next.listCalls, "write should invalidate the cached list")
	require.Len(t, items, 1)
	require.Equal(t, entry.EventID, items[0].EventID)

	existed, err := repo.Remove(ctx, entry.EventID)
	require.NoError(t, err)
	require.True(t, existed)

	items, err = repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, items)
}
