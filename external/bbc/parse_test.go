package bbc

import (
	"testing"

	"github.com/riskibarqy/btts-tracker/internal/domain/match"
)

const scoresPageText = `Scores & Fixtures
Saturday 23rd August
Stirling Albion
1
Elgin City
0
HT
Peterhead
2
Kelty Hearts
2
FT
Alloa Athletic
Cove Rangers
15:00
Follow live text coverage`

func TestParseScoresPage(t *testing.T) {
	matches := parseScoresPage("sco.3", "20260823", scoresPageText)
	if len(matches) != 3 {
		t.Fatalf("got %d matches, want 3: %+v", len(matches), matches)
	}

	ht := matches[0]
	if ht.HomeTeam != "Stirling Albion" || ht.AwayTeam != "Elgin City" {
		t.Fatalf("first fixture = %+v", ht)
	}
	if ht.StateHint != match.StateLive || ht.StatusText != "HT" {
		t.Fatalf("first fixture state = %+v", ht)
	}
	if *ht.HomeScore != 1 || *ht.AwayScore != 0 {
		t.Fatalf("first fixture scores = %+v", ht)
	}

	ft := matches[1]
	if ft.StateHint != match.StateFinished {
		t.Fatalf("second fixture = %+v", ft)
	}

	scheduled := matches[2]
	if scheduled.StateHint != match.StateScheduled || scheduled.KickoffText != "15:00" {
		t.Fatalf("third fixture = %+v", scheduled)
	}
	if scheduled.HomeScore != nil {
		t.Fatal("scheduled fixture must carry no scores")
	}
}

func TestParseScoresPageWithMinuteClock(t *testing.T) {
	text := "Arsenal\n2\nChelsea\n1\n73 mins"
	matches := parseScoresPage("eng.1", "20260823", text)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].StatusText != "73'" || matches[0].StateHint != match.StateLive {
		t.Fatalf("fixture = %+v", matches[0])
	}
}

func TestParseScoresPageIgnoresChrome(t *testing.T) {
	text := "Latest football news\nTables\nGossip\nTop scorers"
	if matches := parseScoresPage("eng.1", "20260823", text); len(matches) != 0 {
		t.Fatalf("navigation text parsed as fixtures: %+v", matches)
	}
}
