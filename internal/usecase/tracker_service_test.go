package usecase

import (
	"context"
	"testing"

	"github.com/riskibarqy/btts-tracker/internal/domain/assignment"
	"github.com/riskibarqy/btts-tracker/internal/domain/match"
	"github.com/riskibarqy/btts-tracker/internal/domain/source"
	"github.com/riskibarqy/btts-tracker/internal/domain/tracking"
	"github.com/riskibarqy/btts-tracker/internal/platform/logging"
)

type trackerFixture struct {
	adapter     *stubAdapter
	catalog     *CatalogService
	assignments *memAssignmentRepo
	states      *memStateRepo
	tracker     *TrackerService
}

func newTrackerFixture(t *testing.T) *trackerFixture {
	t.Helper()
	adapter := &stubAdapter{id: source.ESPN}
	catalog := newTestCatalog(adapter)
	assignments := newMemAssignmentRepo()
	states := newMemStateRepo()
	return &trackerFixture{
		adapter:     adapter,
		catalog:     catalog,
		assignments: assignments,
		states:      states,
		tracker:     NewTrackerService(assignments, states, catalog, logging.NewNop()),
	}
}

func (f *trackerFixture) assign(t *testing.T, participant, eventID string) {
	t.Helper()
	if err := f.assignments.Set(context.Background(), assignment.Assignment{Participant: participant, EventID: eventID}); err != nil {
		t.Fatalf("assign: %v", err)
	}
}

// poll swaps in a fresh provider reading and runs one detection pass.
func (f *trackerFixture) poll(t *testing.T, raws ...source.RawMatch) []tracking.Event {
	t.Helper()
	f.adapter.setRaws(raws)
	if _, err := f.catalog.Refresh(context.Background(), testDate); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	events, err := f.tracker.Observe(context.Background(), testDate)
	if err != nil {
		t.Fatalf("observe: %v", err)
	}
	return events
}

func kinds(events []tracking.Event) []tracking.EventKind {
	out := make([]tracking.EventKind, 0, len(events))
	for _, e := range events {
		out = append(out, e.Kind)
	}
	return out
}

func countKind(events []tracking.Event, kind tracking.EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestObserveEmitsHomeGoalBeforeAway(t *testing.T) {
	f := newTrackerFixture(t)
	eventID := match.EventID("eng.1", "Arsenal", "Chelsea", testDate)
	f.assign(t, "Kenz", eventID)

	f.poll(t, rawLive(source.ESPN, "eng.1", "Arsenal", "Chelsea", "12'", 0, 0))
	events := f.poll(t, rawLive(source.ESPN, "eng.1", "Arsenal", "Chelsea", "47'", 1, 1))

	if len(events) != 3 {
		t.Fatalf("got %d events %v, want 3", len(events), kinds(events))
	}
	if events[0].Kind != tracking.KindGoal || events[0].ScoringSide != tracking.SideHome {
		t.Fatalf("first event = %+v, want home goal", events[0])
	}
	if events[1].Kind != tracking.KindGoal || events[1].ScoringSide != tracking.SideAway {
		t.Fatalf("second event = %+v, want away goal", events[1])
	}
	if events[2].Kind != tracking.KindBTTS {
		t.Fatalf("third event = %+v, want both-teams-scored", events[2])
	}
}

func TestObserveBTTSFiresOnce(t *testing.T) {
	f := newTrackerFixture(t)
	eventID := match.EventID("eng.1", "Arsenal", "Chelsea", testDate)
	f.assign(t, "Tartz", eventID)

	f.poll(t, rawLive(source.ESPN, "eng.1", "Arsenal", "Chelsea", "30'", 1, 1))
	events := f.poll(t, rawLive(source.ESPN, "eng.1", "Arsenal", "Chelsea", "60'", 2, 1))

	if countKind(events, tracking.KindBTTS) != 0 {
		t.Fatalf("both-teams-scored fired again: %v", kinds(events))
	}
	if countKind(events, tracking.KindGoal) != 1 {
		t.Fatalf("got %v, want exactly one goal", kinds(events))
	}
}

func TestObserveFullTimeFiresOnce(t *testing.T) {
	f := newTrackerFixture(t)
	eventID := match.EventID("eng.1", "Arsenal", "Chelsea", testDate)
	f.assign(t, "Coypoo", eventID)

	f.poll(t, rawLive(source.ESPN, "eng.1", "Arsenal", "Chelsea", "90'", 2, 0))
	first := f.poll(t, rawLive(source.ESPN, "eng.1", "Arsenal", "Chelsea", "FT", 2, 0))
	second := f.poll(t, rawLive(source.ESPN, "eng.1", "Arsenal", "Chelsea", "FT", 2, 0))

	if countKind(first, tracking.KindFullTime) != 1 {
		t.Fatalf("first finished poll = %v, want one full-time event", kinds(first))
	}
	if len(second) != 0 {
		t.Fatalf("second finished poll emitted %v, want nothing", kinds(second))
	}
}

func TestObserveDiscardsScoreRegression(t *testing.T) {
	f := newTrackerFixture(t)
	eventID := match.EventID("eng.1", "Arsenal", "Chelsea", testDate)
	f.assign(t, "Ginger", eventID)

	var goals int
	for _, scores := range [][2]int{{0, 0}, {1, 0}, {0, 0}, {2, 0}} {
		events := f.poll(t, rawLive(source.ESPN, "eng.1", "Arsenal", "Chelsea", "55'", scores[0], scores[1]))
		goals += countKind(events, tracking.KindGoal)
	}
	if goals != 2 {
		t.Fatalf("got %d goal events across the sequence, want 2", goals)
	}

	state, ok, err := f.states.Get(context.Background(), "Ginger")
	if err != nil || !ok {
		t.Fatalf("state missing: %v", err)
	}
	if state.LastHomeScore != 2 || state.LastAwayScore != 0 {
		t.Fatalf("final state = %d-%d, want 2-0", state.LastHomeScore, state.LastAwayScore)
	}
}

func TestObserveScheduledProducesNothing(t *testing.T) {
	f := newTrackerFixture(t)
	eventID := match.EventID("eng.1", "Arsenal", "Chelsea", testDate)
	f.assign(t, "Kooks", eventID)

	events := f.poll(t, rawFixture(source.ESPN, "eng.1", "Arsenal", "Chelsea", "3:00 PM"))
	if len(events) != 0 {
		t.Fatalf("scheduled fixture emitted %v, want nothing", kinds(events))
	}
}

func TestObserveRetainsStateWhenMatchDisappears(t *testing.T) {
	f := newTrackerFixture(t)
	eventID := match.EventID("eng.1", "Arsenal", "Chelsea", testDate)
	f.assign(t, "Doxy", eventID)

	f.poll(t, rawLive(source.ESPN, "eng.1", "Arsenal", "Chelsea", "20'", 1, 0))
	// Every source drops the fixture for one poll.
	if events := f.poll(t); len(events) != 0 {
		t.Fatalf("missing fixture emitted %v, want nothing", kinds(events))
	}
	// It returns with the same score; no replayed goal.
	events := f.poll(t, rawLive(source.ESPN, "eng.1", "Arsenal", "Chelsea", "35'", 1, 0))
	if len(events) != 0 {
		t.Fatalf("reappearance emitted %v, want nothing", kinds(events))
	}
}

func TestObserveResetsStateAfterReassignment(t *testing.T) {
	f := newTrackerFixture(t)
	first := match.EventID("eng.1", "Arsenal", "Chelsea", testDate)
	second := match.EventID("sco.3", "Stirling Albion", "Elgin City", testDate)
	f.assign(t, "Kenz", first)

	f.poll(t,
		rawLive(source.ESPN, "eng.1", "Arsenal", "Chelsea", "70'", 2, 1),
		rawLive(source.ESPN, "sco.3", "Stirling Albion", "Elgin City", "70'", 1, 0),
	)

	f.assign(t, "Kenz", second)
	events := f.poll(t,
		rawLive(source.ESPN, "eng.1", "Arsenal", "Chelsea", "75'", 2, 1),
		rawLive(source.ESPN, "sco.3", "Stirling Albion", "Elgin City", "75'", 1, 0),
	)

	// The new fixture's 1-0 counts as a fresh sighting, not a goal; the
	// old fixture's state no longer applies.
	for _, e := range events {
		if e.EventID == first {
			t.Fatalf("event for abandoned fixture: %+v", e)
		}
	}
	if countKind(events, tracking.KindGoal) != 1 {
		t.Fatalf("got %v, want one home goal for the new fixture", kinds(events))
	}
	if events[0].ScoringSide != tracking.SideHome || events[0].EventID != second {
		t.Fatalf("unexpected first event %+v", events[0])
	}
}
