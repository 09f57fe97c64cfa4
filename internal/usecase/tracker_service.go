package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/btts-tracker/internal/domain/assignment"
	"github.com/riskibarqy/btts-tracker/internal/domain/match"
	"github.com/riskibarqy/btts-tracker/internal/domain/tracking"
	"github.com/riskibarqy/btts-tracker/internal/platform/logging"
)

// TrackerService detects score and state transitions for every
// assigned fixture by comparing the current catalog snapshot against
// the state remembered from the previous poll.
type TrackerService struct {
	assignmentRepo assignment.Repository
	stateRepo      tracking.StateRepository
	catalog        *CatalogService
	logger         *logging.Logger
	now            func() time.Time
}

func NewTrackerService(
	assignmentRepo assignment.Repository,
	stateRepo tracking.StateRepository,
	catalog *CatalogService,
	logger *logging.Logger,
) *TrackerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TrackerService{
		assignmentRepo: assignmentRepo,
		stateRepo:      stateRepo,
		catalog:        catalog,
		logger:         logger,
		now:            time.Now,
	}
}

// Observe runs one detection pass over the given date's snapshot and
// returns the transitions to notify, in a deterministic order: per
// participant, goals first (home side before away), then both-teams-
// scored, then full time. Each BTTS and full-time transition fires at
// most once per assignment.
func (s *TrackerService) Observe(ctx context.Context, date string) ([]tracking.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TrackerService.Observe")
	defer span.End()

	if _, err := s.catalog.Snapshot(ctx, date); err != nil {
		return nil, fmt.Errorf("snapshot catalog: %w", err)
	}

	assignments, err := s.assignmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	events := make([]tracking.Event, 0, len(assignments))
	for _, a := range assignments {
		if a.EventID == "" {
			continue
		}

		emitted, err := s.observeOne(ctx, a)
		if err != nil {
			// One participant's broken state must not block the rest.
			s.logger.ErrorContext(ctx, "observe assignment failed",
				"participant", a.Participant,
				"match", a.EventID,
				"error", err,
			)
			continue
		}
		events = append(events, emitted...)
	}
	return events, nil
}

func (s *TrackerService) observeOne(ctx context.Context, a assignment.Assignment) ([]tracking.Event, error) {
	rec, found := s.catalog.Lookup(a.EventID)
	if !found {
		// The fixture dropped out of every source this poll. Keep the
		// remembered state so notifications resume if it comes back.
		return nil, nil
	}

	state, ok, err := s.stateRepo.Get(ctx, a.Participant)
	if err != nil {
		return nil, fmt.Errorf("get observed state: %w", err)
	}
	if !ok || state.EventID != a.EventID {
		// First sighting of this assignment, or the participant was
		// moved to a new fixture. Start clean.
		state = tracking.ObservedState{EventID: a.EventID}
	}

	events, next, changed := s.transition(a.Participant, rec, state)
	if changed {
		next.UpdatedAt = s.now()
		if err := s.stateRepo.Put(ctx, a.Participant, next); err != nil {
			return nil, fmt.Errorf("put observed state: %w", err)
		}
	}
	return events, nil
}

// transition applies one catalog reading to the remembered state and
// returns the events it produces.
func (s *TrackerService) transition(
	participant string,
	rec match.Record,
	state tracking.ObservedState,
) ([]tracking.Event, tracking.ObservedState, bool) {
	changed := !state.SeenLive && rec.State != match.StateScheduled
	if changed {
		state.SeenLive = true
	}

	var events []tracking.Event

	home, away, haveScores := rec.Scores()
	if haveScores {
		if home+away < state.LastHomeScore+state.LastAwayScore {
			// A lower total than last poll is a provider glitch, not a
			// real score. Drop the whole reading and wait for the next
			// poll; the remembered scores stay authoritative.
			s.logger.Warn("score regression discarded",
				"participant", participant,
				"match", rec.EventID,
				"previous", fmt.Sprintf("%d-%d", state.LastHomeScore, state.LastAwayScore),
				"read", fmt.Sprintf("%d-%d", home, away),
			)
			return nil, state, changed
		}

		if home > state.LastHomeScore {
			events = append(events, s.goalEvent(participant, rec, tracking.SideHome, home, away))
		}
		if away > state.LastAwayScore {
			events = append(events, s.goalEvent(participant, rec, tracking.SideAway, home, away))
		}
		if home != state.LastHomeScore || away != state.LastAwayScore {
			state.LastHomeScore = home
			state.LastAwayScore = away
			changed = true
		}

		if home > 0 && away > 0 && !state.BTTSNotified {
			state.BTTSNotified = true
			changed = true
			events = append(events, tracking.Event{
				Kind:        tracking.KindBTTS,
				Participant: participant,
				EventID:     rec.EventID,
				HomeTeam:    rec.HomeTeam,
				AwayTeam:    rec.AwayTeam,
				HomeScore:   home,
				AwayScore:   away,
				Minute:      rec.StatusText,
			})
		}
	}

	if rec.State == match.StateFinished && !state.FinishedNotified {
		state.FinishedNotified = true
		changed = true
		events = append(events, tracking.Event{
			Kind:        tracking.KindFullTime,
			Participant: participant,
			EventID:     rec.EventID,
			HomeTeam:    rec.HomeTeam,
			AwayTeam:    rec.AwayTeam,
			HomeScore:   state.LastHomeScore,
			AwayScore:   state.LastAwayScore,
			Minute:      rec.StatusText,
		})
	}

	return events, state, changed
}

func (s *TrackerService) goalEvent(
	participant string,
	rec match.Record,
	side tracking.Side,
	home, away int,
) tracking.Event {
	return tracking.Event{
		Kind:        tracking.KindGoal,
		Participant: participant,
		EventID:     rec.EventID,
		HomeTeam:    rec.HomeTeam,
		AwayTeam:    rec.AwayTeam,
		HomeScore:   home,
		AwayScore:   away,
		ScoringSide: side,
		Minute:      rec.StatusText,
	}
}

// Tracked describes one participant's fixture as currently observed.
type Tracked struct {
	Participant string          `json:"participant"`
	EventID     string          `json:"eventId"`
	Match       *match.Record   `json:"match,omitempty"`
	State       *trackedScores  `json:"observed,omitempty"`
}

type trackedScores struct {
	HomeScore        int  `json:"homeScore"`
	AwayScore        int  `json:"awayScore"`
	BTTSNotified     bool `json:"bttsNotified"`
	FinishedNotified bool `json:"finishedNotified"`
}

// ListTracked reports every assignment with its current catalog record
// and remembered state, for the dashboard.
func (s *TrackerService) ListTracked(ctx context.Context) ([]Tracked, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TrackerService.ListTracked")
	defer span.End()

	assignments, err := s.assignmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	out := make([]Tracked, 0, len(assignments))
	for _, a := range assignments {
		row := Tracked{Participant: a.Participant, EventID: a.EventID}
		if a.EventID != "" {
			if rec, ok := s.catalog.Lookup(a.EventID); ok {
				rec := rec
				row.Match = &rec
			}
			if state, ok, err := s.stateRepo.Get(ctx, a.Participant); err == nil && ok && state.EventID == a.EventID {
				row.State = &trackedScores{
					HomeScore:        state.LastHomeScore,
					AwayScore:        state.LastAwayScore,
					BTTSNotified:     state.BTTSNotified,
					FinishedNotified: state.FinishedNotified,
				}
			}
		}
		out = append(out, row)
	}
	return out, nil
}
