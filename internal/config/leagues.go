package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/btts-tracker/internal/domain/league"
)

type leaguesFile struct {
	Leagues []league.League `yaml:"leagues"`
}

// LoadLeagues reads a league table override from a YAML file. An empty
// path means no override and returns nil so the caller can fall back
// to the built-in table.
func LoadLeagues(path string) ([]league.League, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read leagues file %s: %w", path, err)
	}

	var parsed leaguesFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse leagues file %s: %w", path, err)
	}

	out := make([]league.League, 0, len(parsed.Leagues))
	for i, l := range parsed.Leagues {
		l.Code = league.NormalizeCode(l.Code)
		if l.Code == "" {
			return nil, fmt.Errorf("leagues file %s: entry %d has no code", path, i)
		}
		if strings.TrimSpace(l.Name) == "" {
			return nil, fmt.Errorf("leagues file %s: entry %q has no name", path, l.Code)
		}
		out = append(out, l)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("leagues file %s: no leagues defined", path)
	}

	return out, nil
}
