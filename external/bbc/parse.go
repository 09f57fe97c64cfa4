package bbc

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/riskibarqy/btts-tracker/internal/domain/match"
	"github.com/riskibarqy/btts-tracker/internal/domain/source"
)

var (
	minuteRegex  = regexp.MustCompile(`^(\d{1,3})\s*(?:mins?|')$`)
	kickoffRegex = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
)

// parseScoresPage walks the visible text of a scores-and-fixtures page.
// The rendered list alternates team names with optional scores and a
// trailing status line per fixture:
//
//	Stirling Albion
//	1
//	Elgin City
//	0
//	HT
//
// Scheduled fixtures carry a kick-off time instead of scores. Anything
// that does not fit the shape is skipped; scraping is best effort.
func parseScoresPage(leagueKey, date, text string) []source.RawMatch {
	lines := make([]string, 0, 256)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	out := make([]source.RawMatch, 0, 16)
	for i := 0; i < len(lines); {
		raw, consumed := parseFixtureAt(leagueKey, date, lines, i)
		if consumed == 0 {
			i++
			continue
		}
		out = append(out, raw)
		i += consumed
	}
	return out
}

// parseFixtureAt tries to read one fixture starting at lines[i] and
// reports how many lines it consumed, zero when the shape does not
// match.
func parseFixtureAt(leagueKey, date string, lines []string, i int) (source.RawMatch, int) {
	// Played or in-play: name, score, name, score, status.
	if i+4 < len(lines) {
		homeScore, homeOK := parseScore(lines[i+1])
		awayScore, awayOK := parseScore(lines[i+3])
		if isTeamName(lines[i]) && homeOK && isTeamName(lines[i+2]) && awayOK {
			status, ok := parseStatus(lines[i+4])
			if !ok {
				// No status line; treat the read as live with an
				// unknown clock rather than dropping the scores.
				status = ""
			}
			raw := source.RawMatch{
				Source:     source.BBC,
				LeagueKey:  leagueKey,
				Date:       date,
				HomeTeam:   lines[i],
				AwayTeam:   lines[i+2],
				StateHint:  classifyStatus(status),
				StatusText: status,
				HomeScore:  &homeScore,
				AwayScore:  &awayScore,
			}
			if raw.StateHint == "" {
				raw.StateHint = match.StateLive
			}
			consumed := 4
			if ok {
				consumed = 5
			}
			return raw, consumed
		}
	}

	// Scheduled: name, name, kick-off time.
	if i+2 < len(lines) &&
		isTeamName(lines[i]) && isTeamName(lines[i+1]) && kickoffRegex.MatchString(lines[i+2]) {
		return source.RawMatch{
			Source:      source.BBC,
			LeagueKey:   leagueKey,
			Date:        date,
			HomeTeam:    lines[i],
			AwayTeam:    lines[i+1],
			StateHint:   match.StateScheduled,
			StatusText:  lines[i+2],
			KickoffText: lines[i+2],
		}, 3
	}

	return source.RawMatch{}, 0
}

func parseScore(line string) (int, bool) {
	if len(line) > 2 {
		return 0, false
	}
	value, err := strconv.Atoi(line)
	if err != nil || value < 0 {
		return 0, false
	}
	return value, true
}

func isTeamName(line string) bool {
	if line == "" || len(line) > 40 {
		return false
	}
	if _, ok := parseScore(line); ok {
		return false
	}
	if kickoffRegex.MatchString(line) || minuteRegex.MatchString(line) {
		return false
	}
	switch strings.ToUpper(line) {
	case "FT", "HT", "AET", "LIVE", "POSTPONED", "FULL TIME", "HALF TIME":
		return false
	}
	// Team names start with a letter; navigation chrome like dates and
	// section headers is longer or numeric.
	r := rune(line[0])
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func parseStatus(line string) (string, bool) {
	upper := strings.ToUpper(line)
	switch upper {
	case "FT", "HT", "AET", "LIVE", "FULL TIME", "HALF TIME":
		return upper, true
	}
	if m := minuteRegex.FindStringSubmatch(line); m != nil {
		return m[1] + "'", true
	}
	return "", false
}

func classifyStatus(status string) string {
	if status == "" {
		return ""
	}
	return match.ClassifyState(status)
}
