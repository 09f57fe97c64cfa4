package footballdata

import (
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/btts-tracker/internal/domain/match"
)

const matchesPayload = `{
  "matches": [
    {
      "utcDate": "2026-08-23T14:00:00Z",
      "status": "IN_PLAY",
      "minute": 71,
      "homeTeam": {"name": "Arsenal FC"},
      "awayTeam": {"name": "Chelsea FC"},
      "score": {"fullTime": {"home": 2, "away": 1}}
    },
    {
      "utcDate": "2026-08-23T16:30:00Z",
      "status": "TIMED",
      "minute": null,
      "homeTeam": {"name": "Leeds United FC"},
      "awayTeam": {"name": "Burnley FC"},
      "score": {"fullTime": {"home": null, "away": null}}
    }
  ]
}`

func TestParseMatches(t *testing.T) {
	var envelope matchesEnvelope
	if err := sonic.Unmarshal([]byte(matchesPayload), &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	matches := parseMatches("eng.1", "20260823", envelope)
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}

	live := matches[0]
	if live.StateHint != match.StateLive || live.StatusText != "71'" {
		t.Fatalf("live fixture = %+v", live)
	}
	if live.HomeScore == nil || *live.HomeScore != 2 || *live.AwayScore != 1 {
		t.Fatalf("live scores = %+v", live)
	}

	scheduled := matches[1]
	if scheduled.StateHint != match.StateScheduled || scheduled.HomeScore != nil {
		t.Fatalf("scheduled fixture = %+v", scheduled)
	}
}

func TestMapStatus(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"IN_PLAY", match.StateLive},
		{"PAUSED", match.StateLive},
		{"FINISHED", match.StateFinished},
		{"TIMED", match.StateScheduled},
		{"POSTPONED", match.StateScheduled},
		{"SOMETHING_NEW", ""},
	}
	for _, tt := range tests {
		if got := mapStatus(tt.status); got != tt.want {
			t.Fatalf("mapStatus(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestToISODate(t *testing.T) {
	got, err := toISODate("20260823")
	if err != nil {
		t.Fatalf("toISODate: %v", err)
	}
	if got != "2026-08-23" {
		t.Fatalf("got %q", got)
	}
	if _, err := toISODate("2026-08-23"); err == nil {
		t.Fatal("dashed input must be rejected")
	}
}
