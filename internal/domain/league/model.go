package league

import "strings"

// League describes one tracked competition and how each provider
// addresses it. Empty provider fields mean the provider does not
// carry the competition.
type League struct {
	Code             string `yaml:"code"`
	Name             string `yaml:"name"`
	FootballDataCode string `yaml:"football_data_code"`
	BBCSlug          string `yaml:"bbc_slug"`
}

func NormalizeCode(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
