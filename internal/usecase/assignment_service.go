package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/btts-tracker/internal/domain/assignment"
	"github.com/riskibarqy/btts-tracker/internal/domain/tracking"
)

// AssignmentService manages which fixture each participant follows.
// The participant roster is fixed at startup; assignments change freely.
type AssignmentService struct {
	assignmentRepo assignment.Repository
	stateRepo      tracking.StateRepository
	participants   map[string]struct{}
	roster         []string
}

func NewAssignmentService(
	assignmentRepo assignment.Repository,
	stateRepo tracking.StateRepository,
	participants []string,
) *AssignmentService {
	set := make(map[string]struct{}, len(participants))
	roster := make([]string, 0, len(participants))
	for _, name := range participants {
		name = assignment.NormalizeParticipant(name)
		if name == "" {
			continue
		}
		if _, ok := set[name]; ok {
			continue
		}
		set[name] = struct{}{}
		roster = append(roster, name)
	}
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		stateRepo:      stateRepo,
		participants:   set,
		roster:         roster,
	}
}

// Roster returns the configured participant names in display order.
func (s *AssignmentService) Roster() []string {
	out := make([]string, len(s.roster))
	copy(out, s.roster)
	return out
}

// List returns one row per roster participant, unassigned ones with an
// empty event id, in roster order.
func (s *AssignmentService) List(ctx context.Context) ([]assignment.Assignment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AssignmentService.List")
	defer span.End()

	stored, err := s.assignmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	byName := make(map[string]string, len(stored))
	for _, a := range stored {
		byName[a.Participant] = a.EventID
	}

	out := make([]assignment.Assignment, 0, len(s.roster))
	for _, name := range s.roster {
		out = append(out, assignment.Assignment{Participant: name, EventID: byName[name]})
	}
	return out, nil
}

// Set points one participant at a fixture. Changing fixtures resets
// the participant's remembered score state so notifications restart
// from scratch for the new match. An empty event id unassigns.
func (s *AssignmentService) Set(ctx context.Context, participant, eventID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AssignmentService.Set")
	defer span.End()

	participant = assignment.NormalizeParticipant(participant)
	if participant == "" {
		return fmt.Errorf("%w: participant is required", ErrInvalidInput)
	}
	if _, ok := s.participants[participant]; !ok {
		return fmt.Errorf("%w: unknown participant=%s", ErrNotFound, participant)
	}
	eventID = strings.TrimSpace(eventID)

	previous, had, err := s.assignmentRepo.Get(ctx, participant)
	if err != nil {
		return fmt.Errorf("get assignment: %w", err)
	}
	if err := s.assignmentRepo.Set(ctx, assignment.Assignment{Participant: participant, EventID: eventID}); err != nil {
		return fmt.Errorf("set assignment: %w", err)
	}

	if !had || previous.EventID == eventID {
		return nil
	}
	if err := s.stateRepo.Delete(ctx, participant); err != nil {
		return fmt.Errorf("reset observed state: %w", err)
	}
	return nil
}

// Replace swaps the whole assignment map in one call, the shape the
// dashboard submits. Unknown participants are rejected before any
// write happens.
func (s *AssignmentService) Replace(ctx context.Context, desired map[string]string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AssignmentService.Replace")
	defer span.End()

	next := make([]assignment.Assignment, 0, len(s.roster))
	for _, name := range s.roster {
		next = append(next, assignment.Assignment{
			Participant: name,
			EventID:     strings.TrimSpace(desired[name]),
		})
	}
	for name := range desired {
		if _, ok := s.participants[assignment.NormalizeParticipant(name)]; !ok {
			return fmt.Errorf("%w: unknown participant=%s", ErrNotFound, name)
		}
	}

	current, err := s.assignmentRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list assignments: %w", err)
	}
	previousByName := make(map[string]string, len(current))
	for _, a := range current {
		previousByName[a.Participant] = a.EventID
	}

	if err := s.assignmentRepo.Replace(ctx, next); err != nil {
		return fmt.Errorf("replace assignments: %w", err)
	}

	for _, a := range next {
		if previous, ok := previousByName[a.Participant]; ok && previous != a.EventID {
			if err := s.stateRepo.Delete(ctx, a.Participant); err != nil {
				return fmt.Errorf("reset observed state participant=%s: %w", a.Participant, err)
			}
		}
	}
	return nil
}
