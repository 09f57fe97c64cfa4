package postgres

import "time"

type manualMatchTableModel struct {
	EventID     string    `db:"event_id"`
	LeagueKey   string    `db:"league_key"`
	HomeTeam    string    `db:"home_team"`
	AwayTeam    string    `db:"away_team"`
	KickoffText string    `db:"kickoff_text"`
	MatchDate   string    `db:"match_date"`
	CreatedAt   time.Time `db:"created_at"`
}
