package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/btts-tracker/internal/domain/manualmatch"
)

type ManualMatchRepository struct {
	db *sqlx.DB
}

func NewManualMatchRepository(db *sqlx.DB) *ManualMatchRepository {
	return &ManualMatchRepository{db: db}
}

func (r *ManualMatchRepository) List(ctx context.Context) ([]manualmatch.ManualMatch, error) {
	var rows []manualMatchTableModel
	err := r.db.SelectContext(ctx, &rows,
		`SELECT event_id, league_key, home_team, away_team, kickoff_text, match_date, created_at
		 FROM manual_matches ORDER BY event_id`)
	if err != nil {
		return nil, fmt.Errorf("select manual matches: %w", err)
	}

	out := make([]manualmatch.ManualMatch, 0, len(rows))
	for _, row := range rows {
		out = append(out, manualmatch.ManualMatch{
			EventID:     row.EventID,
			LeagueKey:   row.LeagueKey,
			HomeTeam:    row.HomeTeam,
			AwayTeam:    row.AwayTeam,
			KickoffText: row.KickoffText,
			Date:        row.MatchDate,
			CreatedAt:   row.CreatedAt,
		})
	}

	return out, nil
}

func (r *ManualMatchRepository) Add(ctx context.Context, m manualmatch.ManualMatch) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO manual_matches (event_id, league_key, home_team, away_team, kickoff_text, match_date, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (event_id) DO UPDATE SET
		   league_key = EXCLUDED.league_key,
		   home_team = EXCLUDED.home_team,
		   away_team = EXCLUDED.away_team,
		   kickoff_text = EXCLUDED.kickoff_text,
		   match_date = EXCLUDED.match_date`,
		m.EventID, m.LeagueKey, m.HomeTeam, m.AwayTeam, m.KickoffText, m.Date, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert manual match: %w", err)
	}

	return nil
}

func (r *ManualMatchRepository) Remove(ctx context.Context, eventID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM manual_matches WHERE event_id = $1`, eventID)
	if err != nil {
		return false, fmt.Errorf("delete manual match: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read affected rows: %w", err)
	}

	return affected > 0, nil
}
