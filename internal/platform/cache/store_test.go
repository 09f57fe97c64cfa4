package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_ExpiresAfterTTL(t *testing.T) {
	s := NewStore(30 * time.Second)
	now := time.Unix(1_700_000_000, 0)
	s.now = func() time.Time { return now }

	ctx := context.Background()
	s.Set(ctx, "k", "v")

	if got, ok := s.Get(ctx, "k"); !ok || got != "v" {
		t.Fatalf("expected hit, got %v ok=%v", got, ok)
	}

	now = now.Add(31 * time.Second)
	if _, ok := s.Get(ctx, "k"); ok {
		t.Fatal("expected miss after ttl")
	}
}

func TestStore_GetOrLoadCoalesces(t *testing.T) {
	s := NewStore(time.Minute)
	ctx := context.Background()

	var calls atomic.Int32
	release := make(chan struct{})
	loader := func(context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "loaded", nil
	}

	var wg sync.WaitGroup
	results := make([]any, 8)
	for i := 0; i < 8; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := s.GetOrLoad(ctx, "k", loader)
			if err != nil {
				t.Errorf("GetOrLoad: %v", err)
				return
			}
			results[i] = v
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one loader call, got %d", got)
	}
	for i, v := range results {
		if v != "loaded" {
			t.Fatalf("caller %d got %v", i, v)
		}
	}
}

func TestStore_GetOrLoadDoesNotCacheErrors(t *testing.T) {
	s := NewStore(time.Minute)
	ctx := context.Background()

	wantErr := errors.New("upstream down")
	if _, err := s.GetOrLoad(ctx, "k", func(context.Context) (any, error) {
		return nil, wantErr
	}); !errors.Is(err, wantErr) {
		t.Fatalf("expected loader error, got %v", err)
	}

	v, err := s.GetOrLoad(ctx, "k", func(context.Context) (any, error) {
		return "ok", nil
	})
	if err != nil || v != "ok" {
		t.Fatalf("second load should succeed, got %v err=%v", v, err)
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	s := NewStore(time.Minute)
	ctx := context.Background()

	s.Set(ctx, "catalog:eng.1:20260101", 1)
	s.Set(ctx, "catalog:eng.1:20260102", 2)
	s.Set(ctx, "catalog:sco.4:20260101", 3)

	s.DeletePrefix(ctx, "catalog:eng.1:")

	if _, ok := s.Get(ctx, "catalog:eng.1:20260101"); ok {
		t.Fatal("expected prefix-deleted key to be gone")
	}
	if _, ok := s.Get(ctx, "catalog:sco.4:20260101"); !ok {
		t.Fatal("unrelated key must survive")
	}
}
