package source

import (
	"context"

	crerr "github.com/cockroachdb/errors"
)

// ID names one data provider.
type ID string

const (
	ESPN         ID = "espn"
	Manual       ID = "manual"
	FootballData ID = "football-data"
	BBC          ID = "bbc"
)

// Priority returns the dedup tie-break rank for a provider; lower wins.
// Operator-entered manual records rank above automated secondary and
// scraped sources so operators can correct provider mistakes.
func Priority(id ID) int {
	switch id {
	case ESPN:
		return 0
	case Manual:
		return 1
	case FootballData:
		return 2
	case BBC:
		return 3
	default:
		return 99
	}
}

// Adapter failure taxonomy. Every adapter error wraps exactly one of
// these; callers degrade to "zero records from this source" and never
// let an adapter failure abort aggregation.
var (
	ErrUnreachable  = crerr.New("source unreachable")
	ErrParseFailure = crerr.New("source payload not parseable")
	ErrRateLimited  = crerr.New("source rate limited")
)

// RawMatch is one provider's ephemeral description of a fixture. It is
// never retained past normalization.
type RawMatch struct {
	Source    ID
	LeagueKey string
	// Date is the fixture's calendar date in YYYYMMDD.
	Date     string
	HomeTeam string
	AwayTeam string
	// StateHint is the provider's own SCHEDULED/LIVE/FINISHED signal
	// when it has one; empty means classify from StatusText.
	StateHint    string
	StatusText   string
	KickoffText  string
	HomeScore    *int
	AwayScore    *int
	HomeRedCards int
	AwayRedCards int
}

// Adapter fetches raw fixtures for one (league, date) from one
// provider. Implementations are stateless, carry their own timeout and
// return typed errors instead of panicking or blocking indefinitely.
type Adapter interface {
	ID() ID
	Fetch(ctx context.Context, leagueKey, date string) ([]RawMatch, error)
}
