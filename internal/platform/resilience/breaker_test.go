package resilience

import (
	"errors"
	"testing"
	"time"
)

var errBoom = errors.New("boom")

func newTestBreaker(threshold int, openTimeout time.Duration, halfOpenMax int) (*Breaker, *time.Time) {
	b := NewBreaker(BreakerConfig{
		Enabled:          true,
		FailureThreshold: threshold,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpenMax,
	})
	now := time.Unix(1_700_000_000, 0)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	b, _ := newTestBreaker(3, 10*time.Second, 1)

	for i := 0; i < 3; i++ {
		if err := b.Do(func() error { return errBoom }); !errors.Is(err, errBoom) {
			t.Fatalf("call %d: expected wrapped failure, got %v", i, err)
		}
	}

	if err := b.Do(func() error { return nil }); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if got := b.State(); got != BreakerOpen {
		t.Fatalf("expected open state, got %s", got)
	}
}

func TestBreaker_HalfOpenRecovers(t *testing.T) {
	b, now := newTestBreaker(1, 10*time.Second, 1)

	if err := b.Do(func() error { return errBoom }); !errors.Is(err, errBoom) {
		t.Fatalf("expected failure, got %v", err)
	}

	*now = now.Add(11 * time.Second)
	if got := b.State(); got != BreakerHalfOpen {
		t.Fatalf("expected half-open after timeout, got %s", got)
	}

	if err := b.Do(func() error { return nil }); err != nil {
		t.Fatalf("probe should pass: %v", err)
	}
	if got := b.State(); got != BreakerClosed {
		t.Fatalf("expected closed after successful probe, got %s", got)
	}
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	b, now := newTestBreaker(1, 10*time.Second, 1)

	_ = b.Do(func() error { return errBoom })
	*now = now.Add(11 * time.Second)

	if err := b.Do(func() error { return errBoom }); !errors.Is(err, errBoom) {
		t.Fatalf("expected probe failure, got %v", err)
	}
	if err := b.Do(func() error { return nil }); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected reopened breaker, got %v", err)
	}
}

func TestBreaker_DisabledRunsThrough(t *testing.T) {
	b := NewBreaker(BreakerConfig{Enabled: false, FailureThreshold: 1})

	for i := 0; i < 5; i++ {
		_ = b.Do(func() error { return errBoom })
	}
	if err := b.Do(func() error { return nil }); err != nil {
		t.Fatalf("disabled breaker must never reject: %v", err)
	}
}
