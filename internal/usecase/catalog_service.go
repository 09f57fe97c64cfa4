package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/btts-tracker/internal/domain/league"
	"github.com/riskibarqy/btts-tracker/internal/domain/match"
	"github.com/riskibarqy/btts-tracker/internal/domain/source"
	"github.com/riskibarqy/btts-tracker/internal/platform/cache"
	"github.com/riskibarqy/btts-tracker/internal/platform/logging"
)

const defaultCatalogConcurrency = 6

// CatalogService aggregates fixtures from every configured provider
// into one deduplicated snapshot per date. Snapshots are cached; the
// index of the most recent snapshot serves point lookups by event id.
type CatalogService struct {
	leagueRepo  league.Repository
	adapters    []source.Adapter
	cache       *cache.Store
	logger      *logging.Logger
	concurrency int

	mu    sync.RWMutex
	index map[string]match.Record
}

func NewCatalogService(
	leagueRepo league.Repository,
	adapters []source.Adapter,
	store *cache.Store,
	logger *logging.Logger,
	concurrency int,
) *CatalogService {
	if concurrency <= 0 {
		concurrency = defaultCatalogConcurrency
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &CatalogService{
		leagueRepo:  leagueRepo,
		adapters:    adapters,
		cache:       store,
		logger:      logger,
		concurrency: concurrency,
		index:       make(map[string]match.Record),
	}
}

// Snapshot returns the deduplicated fixture list for one calendar date
// (YYYYMMDD). Concurrent callers share one aggregation; a provider
// failure degrades to zero records from that provider, never an error.
func (s *CatalogService) Snapshot(ctx context.Context, date string) ([]match.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.Snapshot")
	defer span.End()

	date = strings.TrimSpace(date)
	if !validSnapshotDate(date) {
		return nil, fmt.Errorf("%w: date must be YYYYMMDD, got %q", ErrInvalidInput, date)
	}

	value, err := s.cache.GetOrLoad(ctx, "catalog:"+date, func(ctx context.Context) (any, error) {
		return s.aggregate(ctx, date)
	})
	if err != nil {
		return nil, err
	}

	records, ok := value.([]match.Record)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected catalog cache payload", ErrDependencyUnavailable)
	}
	return records, nil
}

// Refresh drops the cached snapshot for date and rebuilds it.
func (s *CatalogService) Refresh(ctx context.Context, date string) ([]match.Record, error) {
	s.cache.Delete(ctx, "catalog:"+strings.TrimSpace(date))
	return s.Snapshot(ctx, date)
}

// GetMatch resolves one fixture by event id within a date's snapshot.
func (s *CatalogService) GetMatch(ctx context.Context, date, eventID string) (match.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.GetMatch")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return match.Record{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	if rec, ok := s.Lookup(eventID); ok {
		return rec, nil
	}

	// The index only covers snapshots already taken; force one for the
	// requested date before giving up.
	if _, err := s.Snapshot(ctx, date); err != nil {
		return match.Record{}, err
	}
	if rec, ok := s.Lookup(eventID); ok {
		return rec, nil
	}
	return match.Record{}, fmt.Errorf("%w: match=%s", ErrNotFound, eventID)
}

// Lookup serves a point read from the index without touching providers.
func (s *CatalogService) Lookup(eventID string) (match.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.index[eventID]
	return rec, ok
}

func (s *CatalogService) aggregate(ctx context.Context, date string) ([]match.Record, error) {
	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	var mu sync.Mutex
	collected := make([]match.Record, 0, 64)

	p := pool.New().WithMaxGoroutines(s.concurrency).WithContext(ctx)
	for _, adapter := range s.adapters {
		for _, lg := range leagues {
			adapter, lg := adapter, lg
			p.Go(func(ctx context.Context) error {
				raws, err := adapter.Fetch(ctx, lg.Code, date)
				if err != nil {
					// One provider failing for one league never spoils
					// the snapshot.
					s.logger.WarnContext(ctx, "source fetch failed",
						"source", string(adapter.ID()),
						"league", lg.Code,
						"date", date,
						"error", err,
					)
					return nil
				}

				records := make([]match.Record, 0, len(raws))
				for _, raw := range raws {
					records = append(records, match.FromRaw(raw))
				}

				mu.Lock()
				collected = append(collected, records...)
				mu.Unlock()
				return nil
			})
		}
	}
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("aggregate fixtures date=%s: %w", date, err)
	}

	deduped := match.Dedup(collected)
	s.reindex(deduped)
	return deduped, nil
}

// reindex merges a snapshot into the event index. Entries are replaced,
// never removed, so a fixture briefly missing from one poll stays
// resolvable by id.
func (s *CatalogService) reindex(records []match.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		s.index[rec.EventID] = rec
	}
}

// validSnapshotDate reports whether date is exactly eight digits.
func validSnapshotDate(date string) bool {
	if len(date) != 8 {
		return false
	}
	for _, r := range date {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CatalogDate formats a wall-clock instant as the YYYYMMDD snapshot key.
func CatalogDate(t time.Time) string {
	return t.Format("20060102")
}
