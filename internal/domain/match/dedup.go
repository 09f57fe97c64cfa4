package match

import (
	"sort"

	"github.com/riskibarqy/btts-tracker/internal/domain/source"
)

type dedupKey struct {
	leagueKey string
	normHome  string
	normAway  string
	date      string
}

// Dedup collapses records describing the same fixture into one. The
// record from the highest-priority source wins; fields the winner lacks
// are adopted from the best remaining donor. Output order is
// deterministic regardless of input order.
func Dedup(records []Record) []Record {
	groups := make(map[dedupKey][]Record, len(records))
	for _, rec := range records {
		key := dedupKey{rec.LeagueKey, rec.NormalizedHome, rec.NormalizedAway, rec.Date}
		groups[key] = append(groups[key], rec)
	}

	out := make([]Record, 0, len(groups))
	for _, group := range groups {
		out = append(out, merge(group))
	}
	SortByTitle(out)
	return out
}

// merge picks the priority winner of one group and fills its gaps from
// the other members, best source first.
func merge(group []Record) Record {
	sort.SliceStable(group, func(i, j int) bool {
		return source.Priority(group[i].Source) < source.Priority(group[j].Source)
	})

	winner := group[0]
	for _, donor := range group[1:] {
		// A donor that saw the match underway outranks a winner still
		// reporting SCHEDULED; otherwise donor scores would be dropped
		// to keep scores consistent with state.
		if winner.State == StateScheduled && donor.State != StateScheduled {
			winner.State = donor.State
			winner.StatusText = donor.StatusText
		}
		if winner.HomeScore == nil && donor.HomeScore != nil && donor.AwayScore != nil && winner.State != StateScheduled {
			winner.HomeScore = donor.HomeScore
			winner.AwayScore = donor.AwayScore
		}
		if winner.HomeRedCards == 0 && winner.AwayRedCards == 0 {
			winner.HomeRedCards = donor.HomeRedCards
			winner.AwayRedCards = donor.AwayRedCards
		}
		if winner.KickoffText == "" {
			winner.KickoffText = donor.KickoffText
		}
		if winner.StatusText == "" {
			winner.StatusText = donor.StatusText
		}
	}
	return winner
}

// SortByTitle orders records by display title, then event id for
// fixtures with identical titles in different leagues.
func SortByTitle(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		ti, tj := records[i].Title(), records[j].Title()
		if ti != tj {
			return ti < tj
		}
		return records[i].EventID < records[j].EventID
	})
}
