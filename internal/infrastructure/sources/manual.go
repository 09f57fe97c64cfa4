package sources

import (
	"context"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/btts-tracker/internal/domain/manualmatch"
	"github.com/riskibarqy/btts-tracker/internal/domain/source"
)

// ManualAdapter exposes operator-entered fixtures through the same
// adapter interface as the remote providers, so they flow through
// normalization and dedup like everything else. Manual entries carry
// no scores; a higher-priority source that sees the match live
// supplies them during merge.
type ManualAdapter struct {
	repo manualmatch.Repository
}

func NewManualAdapter(repo manualmatch.Repository) *ManualAdapter {
	return &ManualAdapter{repo: repo}
}

func (a *ManualAdapter) ID() source.ID { return source.Manual }

func (a *ManualAdapter) Fetch(ctx context.Context, leagueKey, date string) ([]source.RawMatch, error) {
	items, err := a.repo.List(ctx)
	if err != nil {
		return nil, crerr.Wrapf(source.ErrUnreachable, "list manual matches: %v", err)
	}

	out := make([]source.RawMatch, 0, len(items))
	for _, item := range items {
		if item.LeagueKey != leagueKey || item.Date != date {
			continue
		}
		out = append(out, source.RawMatch{
			Source:      source.Manual,
			LeagueKey:   item.LeagueKey,
			Date:        item.Date,
			HomeTeam:    item.HomeTeam,
			AwayTeam:    item.AwayTeam,
			KickoffText: item.KickoffText,
		})
	}

	return out, nil
}
