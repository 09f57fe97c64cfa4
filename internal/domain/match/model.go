package match

import (
	"github.com/riskibarqy/btts-tracker/internal/domain/source"
)

const (
	StateScheduled = "SCHEDULED"
	StateLive      = "LIVE"
	StateFinished  = "FINISHED"
)

// Record is the canonical, deduplicated description of one fixture.
type Record struct {
	// EventID is derived from (league, normalized teams, date) and is
	// stable across polls even when a provider regenerates its own ids
	// per fetch.
	EventID   string
	LeagueKey string
	// Date is the fixture's calendar date in YYYYMMDD.
	Date           string
	HomeTeam       string
	AwayTeam       string
	NormalizedHome string
	NormalizedAway string
	KickoffText    string
	State          string
	// Scores are present only when State != SCHEDULED.
	HomeScore    *int
	AwayScore    *int
	HomeRedCards int
	AwayRedCards int
	StatusText   string
	// Source is the adapter that won the dedup tie-break for this
	// fixture, even when some fields were merged from others.
	Source source.ID
}

func (r Record) Title() string {
	return r.HomeTeam + " vs " + r.AwayTeam
}

// BTTS reports whether both teams have scored. It is always derived
// from the current scores, never stored.
func (r Record) BTTS() bool {
	return r.HomeScore != nil && r.AwayScore != nil && *r.HomeScore > 0 && *r.AwayScore > 0
}

// Scores returns the current score pair and whether a reading exists.
func (r Record) Scores() (home, away int, ok bool) {
	if r.HomeScore == nil || r.AwayScore == nil {
		return 0, 0, false
	}
	return *r.HomeScore, *r.AwayScore, true
}
