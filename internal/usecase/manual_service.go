package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/btts-tracker/internal/domain/league"
	"github.com/riskibarqy/btts-tracker/internal/domain/manualmatch"
	"github.com/riskibarqy/btts-tracker/internal/domain/match"
)

// ManualMatchService manages operator-entered fixtures. Entries are
// picked up by the next catalog aggregation like any other source.
type ManualMatchService struct {
	manualRepo manualmatch.Repository
	leagueRepo league.Repository
	catalog    *CatalogService
	validate   *validator.Validate
	now        func() time.Time
}

func NewManualMatchService(
	manualRepo manualmatch.Repository,
	leagueRepo league.Repository,
	catalog *CatalogService,
) *ManualMatchService {
	return &ManualMatchService{
		manualRepo: manualRepo,
		leagueRepo: leagueRepo,
		catalog:    catalog,
		validate:   validator.New(),
		now:        time.Now,
	}
}

type AddManualMatchInput struct {
	LeagueKey   string `json:"leagueKey" validate:"required"`
	HomeTeam    string `json:"homeTeam" validate:"required"`
	AwayTeam    string `json:"awayTeam" validate:"required"`
	KickoffText string `json:"kickoffText"`
	Date        string `json:"date" validate:"required,len=8,numeric"`
}

// Add stores one operator-entered fixture. The event id is derived
// from the fixture's identity, so re-adding the same fixture
// overwrites instead of duplicating.
func (s *ManualMatchService) Add(ctx context.Context, input AddManualMatchInput) (manualmatch.ManualMatch, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManualMatchService.Add")
	defer span.End()

	input.LeagueKey = league.NormalizeCode(input.LeagueKey)
	input.HomeTeam = strings.TrimSpace(input.HomeTeam)
	input.AwayTeam = strings.TrimSpace(input.AwayTeam)
	input.Date = strings.TrimSpace(input.Date)

	if err := s.validate.Struct(input); err != nil {
		return manualmatch.ManualMatch{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if match.NormalizeTeamName(input.HomeTeam) == match.NormalizeTeamName(input.AwayTeam) {
		return manualmatch.ManualMatch{}, fmt.Errorf("%w: home and away teams must differ", ErrInvalidInput)
	}

	_, exists, err := s.leagueRepo.GetByCode(ctx, input.LeagueKey)
	if err != nil {
		return manualmatch.ManualMatch{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return manualmatch.ManualMatch{}, fmt.Errorf("%w: league=%s", ErrNotFound, input.LeagueKey)
	}

	entry := manualmatch.ManualMatch{
		EventID:     match.EventID(input.LeagueKey, input.HomeTeam, input.AwayTeam, input.Date),
		LeagueKey:   input.LeagueKey,
		HomeTeam:    input.HomeTeam,
		AwayTeam:    input.AwayTeam,
		KickoffText: strings.TrimSpace(input.KickoffText),
		Date:        input.Date,
		CreatedAt:   s.now(),
	}
	if err := s.manualRepo.Add(ctx, entry); err != nil {
		return manualmatch.ManualMatch{}, fmt.Errorf("add manual match: %w", err)
	}

	// Invalidate the affected snapshot so the entry shows up without
	// waiting out the cache TTL.
	if s.catalog != nil {
		s.catalog.cache.Delete(ctx, "catalog:"+entry.Date)
	}
	return entry, nil
}

func (s *ManualMatchService) List(ctx context.Context) ([]manualmatch.ManualMatch, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManualMatchService.List")
	defer span.End()

	items, err := s.manualRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list manual matches: %w", err)
	}
	return items, nil
}

func (s *ManualMatchService) Remove(ctx context.Context, eventID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManualMatchService.Remove")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	removed, err := s.manualRepo.Remove(ctx, eventID)
	if err != nil {
		return fmt.Errorf("remove manual match: %w", err)
	}
	if !removed {
		return fmt.Errorf("%w: manual match=%s", ErrNotFound, eventID)
	}
	if s.catalog != nil {
		s.catalog.cache.DeletePrefix(ctx, "catalog:")
	}
	return nil
}
