package espn

import (
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/btts-tracker/internal/domain/match"
	"github.com/riskibarqy/btts-tracker/internal/domain/source"
)

const (
	statePre  = "pre"
	stateIn   = "in"
	statePost = "post"
)

type scoreboardEnvelope struct {
	Events []scoreboardEvent `json:"events"`
}

type scoreboardEvent struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Competitions []competition `json:"competitions"`
}

type competition struct {
	Competitors []competitor `json:"competitors"`
	Status      eventStatus  `json:"status"`
}

type competitor struct {
	HomeAway string `json:"homeAway"`
	Score    string `json:"score"`
	Team     struct {
		DisplayName string `json:"displayName"`
	} `json:"team"`
}

type eventStatus struct {
	DisplayClock string `json:"displayClock"`
	Type         struct {
		State       string `json:"state"`
		ShortDetail string `json:"shortDetail"`
	} `json:"type"`
}

type summaryEnvelope struct {
	KeyEvents []struct {
		RedCard bool `json:"redCard"`
		Team    struct {
			HomeAway string `json:"homeAway"`
		} `json:"team"`
	} `json:"keyEvents"`
}

func parseScoreboard(leagueKey, date string, envelope scoreboardEnvelope, loc *time.Location) []source.RawMatch {
	out := make([]source.RawMatch, 0, len(envelope.Events))
	for _, event := range envelope.Events {
		if len(event.Competitions) == 0 {
			continue
		}
		comp := event.Competitions[0]
		home, away := competitorNames(comp)
		if home == "" || away == "" {
			continue
		}

		raw := source.RawMatch{
			Source:      source.ESPN,
			LeagueKey:   leagueKey,
			Date:        date,
			HomeTeam:    home,
			AwayTeam:    away,
			StateHint:   mapState(comp.Status.Type.State),
			StatusText:  statusText(comp.Status),
			KickoffText: kickoffText(event.Date, loc),
		}
		if raw.StateHint != match.StateScheduled {
			raw.HomeScore, raw.AwayScore = competitorScores(comp)
		}
		out = append(out, raw)
	}
	return out
}

func competitorNames(comp competition) (home, away string) {
	for _, c := range comp.Competitors {
		switch c.HomeAway {
		case "home":
			home = strings.TrimSpace(c.Team.DisplayName)
		case "away":
			away = strings.TrimSpace(c.Team.DisplayName)
		}
	}
	return home, away
}

func competitorScores(comp competition) (home, away *int) {
	for _, c := range comp.Competitors {
		value, err := strconv.Atoi(strings.TrimSpace(c.Score))
		if err != nil {
			continue
		}
		score := value
		switch c.HomeAway {
		case "home":
			home = &score
		case "away":
			away = &score
		}
	}
	if home == nil || away == nil {
		return nil, nil
	}
	return home, away
}

func mapState(state string) string {
	switch state {
	case stateIn:
		return match.StateLive
	case statePost:
		return match.StateFinished
	case statePre:
		return match.StateScheduled
	default:
		return ""
	}
}

// statusText prefers the running clock for live fixtures so the
// notification carries the minute.
func statusText(status eventStatus) string {
	if status.Type.State == stateIn {
		clock := strings.TrimSpace(status.DisplayClock)
		if clock != "" && clock != "0'" {
			return clock
		}
	}
	return strings.TrimSpace(status.Type.ShortDetail)
}

// kickoffText renders the provider's UTC kickoff instant as a friendly
// UK wall-clock line. Malformed dates yield an empty string.
func kickoffText(isoDate string, loc *time.Location) string {
	isoDate = strings.TrimSpace(isoDate)
	if isoDate == "" {
		return ""
	}
	parsed, err := time.Parse("2006-01-02T15:04Z", isoDate)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, isoDate)
		if err != nil {
			return ""
		}
	}
	local := parsed.In(loc)
	return local.Format("Mon, January 2 at 3:04 PM") + " UK"
}

func countRedCards(envelope summaryEnvelope) (home, away int) {
	for _, item := range envelope.KeyEvents {
		if !item.RedCard {
			continue
		}
		switch item.Team.HomeAway {
		case "home":
			home++
		case "away":
			away++
		}
	}
	return home, away
}
