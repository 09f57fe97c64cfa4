package manualmatch

import "time"

// ManualMatch is an operator-entered fixture. It participates in
// aggregation like any provider record and outranks every automated
// source except the primary one.
type ManualMatch struct {
	EventID     string    `json:"eventId" db:"event_id"`
	LeagueKey   string    `json:"leagueKey" db:"league_key" validate:"required"`
	HomeTeam    string    `json:"homeTeam" db:"home_team" validate:"required"`
	AwayTeam    string    `json:"awayTeam" db:"away_team" validate:"required"`
	KickoffText string    `json:"kickoffText" db:"kickoff_text"`
	Date        string    `json:"date" db:"match_date" validate:"required,len=8,numeric"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
