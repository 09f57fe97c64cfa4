package usecase

import (
	"context"
	"sync"

	"github.com/riskibarqy/btts-tracker/internal/domain/assignment"
	"github.com/riskibarqy/btts-tracker/internal/domain/league"
	"github.com/riskibarqy/btts-tracker/internal/domain/source"
	"github.com/riskibarqy/btts-tracker/internal/domain/tracking"
	"github.com/riskibarqy/btts-tracker/internal/platform/cache"
	"github.com/riskibarqy/btts-tracker/internal/platform/logging"
)

type stubLeagueRepo struct {
	leagues []league.League
}

func (s *stubLeagueRepo) List(context.Context) ([]league.League, error) {
	return s.leagues, nil
}

func (s *stubLeagueRepo) GetByCode(_ context.Context, code string) (league.League, bool, error) {
	for _, lg := range s.leagues {
		if lg.Code == code {
			return lg, true, nil
		}
	}
	return league.League{}, false, nil
}

type stubAdapter struct {
	id source.ID

	mu    sync.Mutex
	raws  []source.RawMatch
	err   error
	calls int
}

func (a *stubAdapter) ID() source.ID { return a.id }

func (a *stubAdapter) Fetch(_ context.Context, leagueKey, _ string) ([]source.RawMatch, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls++
	if a.err != nil {
		return nil, a.err
	}
	out := make([]source.RawMatch, 0, len(a.raws))
	for _, raw := range a.raws {
		if raw.LeagueKey == leagueKey {
			out = append(out, raw)
		}
	}
	return out, nil
}

func (a *stubAdapter) setRaws(raws []source.RawMatch) {
	a.mu.Lock()
	a.raws = raws
	a.mu.Unlock()
}

type memAssignmentRepo struct {
	mu    sync.Mutex
	items map[string]assignment.Assignment
}

func newMemAssignmentRepo() *memAssignmentRepo {
	return &memAssignmentRepo{items: make(map[string]assignment.Assignment)}
}

func (r *memAssignmentRepo) List(context.Context) ([]assignment.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]assignment.Assignment, 0, len(r.items))
	for _, a := range r.items {
		out = append(out, a)
	}
	return out, nil
}

func (r *memAssignmentRepo) Get(_ context.Context, participant string) (assignment.Assignment, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[participant]
	return a, ok, nil
}

func (r *memAssignmentRepo) Set(_ context.Context, a assignment.Assignment) error {
	r.mu.Lock()
	r.items[a.Participant] = a
	r.mu.Unlock()
	return nil
}

func (r *memAssignmentRepo) Replace(_ context.Context, assignments []assignment.Assignment) error {
	r.mu.Lock()
	r.items = make(map[string]assignment.Assignment, len(assignments))
	for _, a := range assignments {
		r.items[a.Participant] = a
	}
	r.mu.Unlock()
	return nil
}

type memStateRepo struct {
	mu    sync.Mutex
	items map[string]tracking.ObservedState
}

func newMemStateRepo() *memStateRepo {
	return &memStateRepo{items: make(map[string]tracking.ObservedState)}
}

func (r *memStateRepo) Get(_ context.Context, participant string) (tracking.ObservedState, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.items[participant]
	return state, ok, nil
}

func (r *memStateRepo) Put(_ context.Context, participant string, state tracking.ObservedState) error {
	r.mu.Lock()
	r.items[participant] = state
	r.mu.Unlock()
	return nil
}

func (r *memStateRepo) Delete(_ context.Context, participant string) error {
	r.mu.Lock()
	delete(r.items, participant)
	r.mu.Unlock()
	return nil
}

type captureSink struct {
	mu     sync.Mutex
	events []tracking.Event
	fail   func(tracking.Event) error
}

func (s *captureSink) Deliver(_ context.Context, event tracking.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		if err := s.fail(event); err != nil {
			return err
		}
	}
	s.events = append(s.events, event)
	return nil
}

func (s *captureSink) delivered() []tracking.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]tracking.Event, len(s.events))
	copy(out, s.events)
	return out
}

func newTestCatalog(adapters ...source.Adapter) *CatalogService {
	repo := &stubLeagueRepo{leagues: []league.League{
		{Code: "eng.1", Name: "Premier League"},
		{Code: "sco.3", Name: "Scottish League One"},
	}}
	return NewCatalogService(repo, adapters, cache.NewStore(0), logging.NewNop(), 2)
}
