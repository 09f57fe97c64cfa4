package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeLeaguesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leagues.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write leagues file: %v", err)
	}
	return path
}

func TestLoadLeagues_EmptyPathMeansNoOverride(t *testing.T) {
	leagues, err := LoadLeagues("")
	if err != nil {
		t.Fatalf("load leagues: %v", err)
	}
	if leagues != nil {
		t.Fatalf("expected nil override, got %v", leagues)
	}
}

func TestLoadLeagues_ParsesYAML(t *testing.T) {
	path := writeLeaguesFile(t, `
leagues:
  - code: ENG.1
    name: Premier League
    football_data_code: PL
    bbc_slug: premier-league
  - code: sco.1
    name: Scottish Premiership
`)

	leagues, err := LoadLeagues(path)
	if err != nil {
		t.Fatalf("load leagues: %v", err)
	}
	if len(leagues) != 2 {
		t.Fatalf("expected 2 leagues, got %d", len(leagues))
	}
	if leagues[0].Code != "eng.1" {
		t.Fatalf("expected normalized code eng.1, got %q", leagues[0].Code)
	}
	if leagues[0].FootballDataCode != "PL" || leagues[0].BBCSlug != "premier-league" {
		t.Fatalf("unexpected provider mappings: %+v", leagues[0])
	}
}

func TestLoadLeagues_RejectsEntryWithoutCode(t *testing.T) {
	path := writeLeaguesFile(t, `
leagues:
  - name: Nameless
`)

	if _, err := LoadLeagues(path); err == nil {
		t.Fatalf("expected error for entry without code")
	}
}
