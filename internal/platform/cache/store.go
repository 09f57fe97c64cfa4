package cache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

type inflight struct {
	done  chan struct{}
	value any
	err   error
}

// Store is a process-local TTL cache. Concurrent loads of the same key
// are coalesced so one poll tick triggers at most one upstream fetch
// per (league, date).
type Store struct {
	mu       sync.Mutex
	entries  map[string]entry
	loading  map[string]*inflight
	ttl      time.Duration
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]entry),
		loading: make(map[string]*inflight),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(key)
}

func (s *Store) getLocked(key string) (any, bool) {
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && !e.expiresAt.After(s.now()) {
		delete(s.entries, key)
		return nil, false
	}
	return e.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	expiresAt := time.Time{}
	if s.ttl > 0 {
		expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry{value: value, expiresAt: expiresAt}
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

// GetOrLoad returns the cached value for key, or runs loader once for
// all concurrent callers and caches the result. Loader errors are not
// cached.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	s.mu.Lock()
	if value, ok := s.getLocked(key); ok {
		s.mu.Unlock()
		return value, nil
	}
	if fl, ok := s.loading[key]; ok {
		s.mu.Unlock()
		select {
		case <-fl.done:
			return fl.value, fl.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	fl := &inflight{done: make(chan struct{})}
	s.loading[key] = fl
	s.mu.Unlock()

	fl.value, fl.err = loader(ctx)

	s.mu.Lock()
	delete(s.loading, key)
	if fl.err == nil {
		expiresAt := time.Time{}
		if s.ttl > 0 {
			expiresAt = s.now().Add(s.ttl)
		}
		s.entries[key] = entry{value: fl.value, expiresAt: expiresAt}
	}
	s.mu.Unlock()

	close(fl.done)
	return fl.value, fl.err
}
