package match

import (
	"strings"
	"unicode"

	"github.com/riskibarqy/btts-tracker/internal/domain/source"
)

// Club-suffix tokens stripped from the end of a team name before
// comparison. Display names keep the suffix; only the dedup key drops
// it, so "Stirling Albion FC" and "Stirling Albion" collide.
var clubSuffixTokens = map[string]struct{}{
	"fc":  {},
	"afc": {},
}

// NormalizeTeamName folds a display name into a comparison key:
// lower-cased, club suffixes stripped, whitespace collapsed. It is
// total: any input yields a usable (possibly empty) key.
func NormalizeTeamName(name string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	for len(fields) > 1 {
		last := strings.TrimFunc(fields[len(fields)-1], unicode.IsPunct)
		if _, ok := clubSuffixTokens[last]; !ok {
			break
		}
		fields = fields[:len(fields)-1]
	}
	return strings.Join(fields, " ")
}

// EventID derives the stable fixture identifier from semantic identity
// rather than any provider's native id.
func EventID(leagueKey, homeTeam, awayTeam, date string) string {
	return leagueKey + ":" + date + ":" + slug(NormalizeTeamName(homeTeam)) + "-v-" + slug(NormalizeTeamName(awayTeam))
}

func slug(normalized string) string {
	return strings.ReplaceAll(normalized, " ", "-")
}

// ClassifyState maps a provider status string onto the three canonical
// fixture states. Anything unrecognized is treated as SCHEDULED, the
// only state with no side effects downstream.
func ClassifyState(statusText string) string {
	status := strings.ToUpper(strings.TrimSpace(statusText))
	switch status {
	case "":
		return StateScheduled
	case "FT", "AET", "PEN", "FULL TIME", "FULL-TIME", "FINISHED", "FINAL":
		return StateFinished
	case "HT", "HALF TIME", "HALF-TIME", "IN PROGRESS", "IN PLAY", "IN_PLAY", "LIVE", "PAUSED":
		return StateLive
	}
	// Minute markers like "73'" or "45'+2" mean the match is underway.
	if strings.ContainsRune(status, '\'') && strings.IndexFunc(status, unicode.IsDigit) == 0 {
		return StateLive
	}
	return StateScheduled
}

// FromRaw normalizes one provider record into canonical shape. Scores
// reported for a fixture still classified as SCHEDULED are dropped;
// providers occasionally send a placeholder 0-0 before kickoff.
func FromRaw(raw source.RawMatch) Record {
	state := strings.ToUpper(strings.TrimSpace(raw.StateHint))
	switch state {
	case StateScheduled, StateLive, StateFinished:
	default:
		state = ClassifyState(raw.StatusText)
	}

	rec := Record{
		EventID:        EventID(raw.LeagueKey, raw.HomeTeam, raw.AwayTeam, raw.Date),
		LeagueKey:      raw.LeagueKey,
		Date:           raw.Date,
		HomeTeam:       strings.TrimSpace(raw.HomeTeam),
		AwayTeam:       strings.TrimSpace(raw.AwayTeam),
		NormalizedHome: NormalizeTeamName(raw.HomeTeam),
		NormalizedAway: NormalizeTeamName(raw.AwayTeam),
		KickoffText:    strings.TrimSpace(raw.KickoffText),
		State:          state,
		HomeRedCards:   maxInt(raw.HomeRedCards, 0),
		AwayRedCards:   maxInt(raw.AwayRedCards, 0),
		StatusText:     strings.TrimSpace(raw.StatusText),
		Source:         raw.Source,
	}

	if state != StateScheduled && raw.HomeScore != nil && raw.AwayScore != nil {
		rec.HomeScore = intPtr(maxInt(*raw.HomeScore, 0))
		rec.AwayScore = intPtr(maxInt(*raw.AwayScore, 0))
	}

	return rec
}

func intPtr(v int) *int { return &v }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
