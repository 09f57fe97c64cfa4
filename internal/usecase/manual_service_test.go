package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/riskibarqy/btts-tracker/internal/domain/league"
	"github.com/riskibarqy/btts-tracker/internal/domain/manualmatch"
)

type memManualRepo struct {
	mu    sync.Mutex
	items map[string]manualmatch.ManualMatch
}

func newMemManualRepo() *memManualRepo {
	return &memManualRepo{items: make(map[string]manualmatch.ManualMatch)}
}

func (r *memManualRepo) List(context.Context) ([]manualmatch.ManualMatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]manualmatch.ManualMatch, 0, len(r.items))
	for _, m := range r.items {
		out = append(out, m)
	}
	return out, nil
}

func (r *memManualRepo) Add(_ context.Context, m manualmatch.ManualMatch) error {
	r.mu.Lock()
	r.items[m.EventID] = m
	r.mu.Unlock()
	return nil
}

func (r *memManualRepo) Remove(_ context.Context, eventID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[eventID]; !ok {
		return false, nil
	}
	delete(r.items, eventID)
	return true, nil
}

func newManualService() (*ManualMatchService, *memManualRepo) {
	repo := newMemManualRepo()
	leagues := &stubLeagueRepo{leagues: []league.League{{Code: "eng.1", Name: "Premier League"}}}
	return NewManualMatchService(repo, leagues, nil), repo
}

func TestManualAddDerivesEventID(t *testing.T) {
	svc, _ := newManualService()
	entry, err := svc.Add(context.Background(), AddManualMatchInput{
		LeagueKey: "ENG.1",
		HomeTeam:  "Arsenal",
		AwayTeam:  "Chelsea",
		Date:      "20260823",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if entry.EventID != "eng.1:20260823:arsenal-v-chelsea" {
		t.Fatalf("event id = %q", entry.EventID)
	}
	if entry.CreatedAt.IsZero() {
		t.Fatal("created at must be stamped")
	}
}

func TestManualAddIsIdempotentPerFixture(t *testing.T) {
	svc, repo := newManualService()
	input := AddManualMatchInput{LeagueKey: "eng.1", HomeTeam: "Arsenal", AwayTeam: "Chelsea", Date: "20260823"}

	if _, err := svc.Add(context.Background(), input); err != nil {
		t.Fatalf("Add: %v", err)
	}
	input.KickoffText = "Sat, August 23 at 3:00 PM UK"
	if _, err := svc.Add(context.Background(), input); err != nil {
		t.Fatalf("re-Add: %v", err)
	}

	items, _ := repo.List(context.Background())
	if len(items) != 1 {
		t.Fatalf("got %d entries, want 1", len(items))
	}
	if items[0].KickoffText == "" {
		t.Fatal("re-add must overwrite the previous entry")
	}
}

func TestManualAddRejectsBadInput(t *testing.T) {
	svc, _ := newManualService()
	tests := []struct {
		name  string
		input AddManualMatchInput
	}{
		{"missing teams", AddManualMatchInput{LeagueKey: "eng.1", Date: "20260823"}},
		{"dashed date", AddManualMatchInput{LeagueKey: "eng.1", HomeTeam: "A", AwayTeam: "B", Date: "2026-08-23"}},
		{"unknown league", AddManualMatchInput{LeagueKey: "mars.1", HomeTeam: "A", AwayTeam: "B", Date: "20260823"}},
		{"same team twice", AddManualMatchInput{LeagueKey: "eng.1", HomeTeam: "Arsenal", AwayTeam: "Arsenal FC", Date: "20260823"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Add(context.Background(), tt.input); err == nil {
				t.Fatal("want error")
			}
		})
	}
}

func TestManualRemove(t *testing.T) {
	svc, _ := newManualService()
	entry, err := svc.Add(context.Background(), AddManualMatchInput{
		LeagueKey: "eng.1", HomeTeam: "Arsenal", AwayTeam: "Chelsea", Date: "20260823",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := svc.Remove(context.Background(), entry.EventID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := svc.Remove(context.Background(), entry.EventID); err == nil {
		t.Fatal("second remove must report not found")
	}
}
