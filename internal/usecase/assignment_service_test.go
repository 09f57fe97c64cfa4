package usecase

import (
	"context"
	"testing"

	"github.com/riskibarqy/btts-tracker/internal/domain/tracking"
)

func newAssignmentFixture() (*AssignmentService, *memAssignmentRepo, *memStateRepo) {
	assignments := newMemAssignmentRepo()
	states := newMemStateRepo()
	svc := NewAssignmentService(assignments, states, []string{"Kenz", "Tartz", "Coypoo"})
	return svc, assignments, states
}

func TestAssignmentListCoversWholeRoster(t *testing.T) {
	svc, _, _ := newAssignmentFixture()
	if err := svc.Set(context.Background(), "Tartz", "eng.1:20260823:arsenal-v-chelsea"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	rows, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want the full roster of 3", len(rows))
	}
	if rows[0].Participant != "Kenz" || rows[0].EventID != "" {
		t.Fatalf("unassigned participant must appear empty, got %+v", rows[0])
	}
	if rows[1].Participant != "Tartz" || rows[1].EventID == "" {
		t.Fatalf("assignment missing, got %+v", rows[1])
	}
}

func TestAssignmentSetRejectsUnknownParticipant(t *testing.T) {
	svc, _, _ := newAssignmentFixture()
	if err := svc.Set(context.Background(), "Nobody", "eng.1:20260823:arsenal-v-chelsea"); err == nil {
		t.Fatal("unknown participant must be rejected")
	}
}

func TestAssignmentChangeResetsObservedState(t *testing.T) {
	svc, _, states := newAssignmentFixture()
	ctx := context.Background()

	if err := svc.Set(ctx, "Kenz", "eng.1:20260823:arsenal-v-chelsea"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := states.Put(ctx, "Kenz", tracking.ObservedState{
		EventID:       "eng.1:20260823:arsenal-v-chelsea",
		LastHomeScore: 2,
		BTTSNotified:  true,
	}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := svc.Set(ctx, "Kenz", "sco.3:20260823:stirling-albion-v-elgin-city"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := states.Get(ctx, "Kenz"); ok {
		t.Fatal("observed state must be cleared on reassignment")
	}
}

func TestAssignmentSetSameFixtureKeepsState(t *testing.T) {
	svc, _, states := newAssignmentFixture()
	ctx := context.Background()
	eventID := "eng.1:20260823:arsenal-v-chelsea"

	if err := svc.Set(ctx, "Kenz", eventID); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := states.Put(ctx, "Kenz", tracking.ObservedState{EventID: eventID, LastHomeScore: 1}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := svc.Set(ctx, "Kenz", eventID); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := states.Get(ctx, "Kenz"); !ok {
		t.Fatal("re-setting the same fixture must not reset state")
	}
}

func TestAssignmentReplace(t *testing.T) {
	svc, _, states := newAssignmentFixture()
	ctx := context.Background()

	if err := svc.Set(ctx, "Kenz", "eng.1:20260823:arsenal-v-chelsea"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := states.Put(ctx, "Kenz", tracking.ObservedState{EventID: "eng.1:20260823:arsenal-v-chelsea"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	err := svc.Replace(ctx, map[string]string{
		"Kenz":  "sco.3:20260823:stirling-albion-v-elgin-city",
		"Tartz": "eng.1:20260823:arsenal-v-chelsea",
	})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}

	rows, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if rows[0].EventID != "sco.3:20260823:stirling-albion-v-elgin-city" {
		t.Fatalf("Kenz = %+v", rows[0])
	}
	if rows[2].EventID != "" {
		t.Fatalf("Coypoo must be unassigned, got %+v", rows[2])
	}
	if _, ok, _ := states.Get(ctx, "Kenz"); ok {
		t.Fatal("moved participant's state must be cleared")
	}

	if err := svc.Replace(ctx, map[string]string{"Nobody": "x"}); err == nil {
		t.Fatal("unknown participant in replace must be rejected")
	}
}
