package memory

import (
	"github.com/riskibarqy/btts-tracker/internal/domain/league"
)

// SeedLeagues is the default competition set: the English and Scottish
// pyramids, the Welsh top flight, domestic cups and the UEFA
// competitions. Codes follow the primary provider's league keys.
// Secondary provider codes and scrape slugs are filled in only where
// the provider actually carries the competition.
func SeedLeagues() []league.League {
	return []league.League{
		{Code: "eng.1", Name: "Premier League", FootballDataCode: "PL", BBCSlug: "premier-league"},
		{Code: "eng.2", Name: "Championship", FootballDataCode: "ELC", BBCSlug: "championship"},
		{Code: "eng.3", Name: "League One", FootballDataCode: "EL1", BBCSlug: "league-one"},
		{Code: "eng.4", Name: "League Two", FootballDataCode: "EL2", BBCSlug: "league-two"},
		{Code: "eng.5", Name: "National League", BBCSlug: "national-league"},
		{Code: "eng.6", Name: "National League North"},
		{Code: "eng.7", Name: "National League South"},
		{Code: "sco.1", Name: "Scottish Premiership", BBCSlug: "scottish-premiership"},
		{Code: "sco.2", Name: "Scottish Championship", BBCSlug: "scottish-championship"},
		{Code: "sco.3", Name: "Scottish League One", BBCSlug: "scottish-league-one"},
		{Code: "sco.4", Name: "Scottish League Two", BBCSlug: "scottish-league-two"},
		{Code: "wal.1", Name: "Cymru Premier", BBCSlug: "welsh-premier-league"},
		{Code: "eng.fa", Name: "FA Cup", BBCSlug: "fa-cup"},
		{Code: "eng.faq", Name: "FA Cup Qualifying"},
		{Code: "eng.league_cup", Name: "EFL Cup", BBCSlug: "league-cup"},
		{Code: "eng.charity", Name: "FA Community Shield"},
		{Code: "eng.trophy", Name: "EFL Trophy"},
		{Code: "sco.tennents", Name: "Scottish Cup", BBCSlug: "scottish-cup"},
		{Code: "sco.cis", Name: "Scottish League Cup", BBCSlug: "scottish-league-cup"},
		{Code: "sco.challenge", Name: "Scottish Challenge Cup"},
		{Code: "uefa.champions", Name: "UEFA Champions League", FootballDataCode: "CL", BBCSlug: "champions-league"},
		{Code: "uefa.champions_qual", Name: "Champions League Qualifying"},
		{Code: "uefa.europa", Name: "UEFA Europa League", BBCSlug: "europa-league"},
		{Code: "uefa.europa_qual", Name: "Europa League Qualifying"},
		{Code: "uefa.europa.conf", Name: "UEFA Conference League"},
		{Code: "uefa.europa.conf_qual", Name: "Conference League Qualifying"},
		{Code: "uefa.super_cup", Name: "UEFA Super Cup"},
	}
}

// SeedParticipants is the default tracker roster, overridable through
// configuration.
func SeedParticipants() []string {
	return []string{"Kenz", "Tartz", "Coypoo", "Ginger", "Kooks", "Doxy"}
}
