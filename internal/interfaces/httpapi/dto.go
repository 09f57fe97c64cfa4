package httpapi

import (
	"github.com/riskibarqy/btts-tracker/internal/domain/league"
	"github.com/riskibarqy/btts-tracker/internal/domain/match"
)

type matchDTO struct {
	EventID      string `json:"eventId"`
	LeagueKey    string `json:"leagueKey"`
	Date         string `json:"date"`
	HomeTeam     string `json:"homeTeam"`
	AwayTeam     string `json:"awayTeam"`
	KickoffText  string `json:"kickoffText,omitempty"`
	State        string `json:"state"`
	HomeScore    *int   `json:"homeScore,omitempty"`
	AwayScore    *int   `json:"awayScore,omitempty"`
	HomeRedCards int    `json:"homeRedCards,omitempty"`
	AwayRedCards int    `json:"awayRedCards,omitempty"`
	StatusText   string `json:"statusText,omitempty"`
	BTTS         bool   `json:"btts"`
	Source       string `json:"source"`
}

func matchToDTO(rec match.Record) matchDTO {
	return matchDTO{
		EventID:      rec.EventID,
		LeagueKey:    rec.LeagueKey,
		Date:         rec.Date,
		HomeTeam:     rec.HomeTeam,
		AwayTeam:     rec.AwayTeam,
		KickoffText:  rec.KickoffText,
		State:        rec.State,
		HomeScore:    rec.HomeScore,
		AwayScore:    rec.AwayScore,
		HomeRedCards: rec.HomeRedCards,
		AwayRedCards: rec.AwayRedCards,
		StatusText:   rec.StatusText,
		BTTS:         rec.BTTS(),
		Source:       string(rec.Source),
	}
}

type leagueDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func leagueToDTO(l league.League) leagueDTO {
	return leagueDTO{Code: l.Code, Name: l.Name}
}

type assignmentDTO struct {
	Participant string `json:"participant"`
	EventID     string `json:"eventId"`
}

type replaceAssignmentsRequest struct {
	Assignments map[string]string `json:"assignments"`
}

type setAssignmentRequest struct {
	EventID string `json:"eventId"`
}
