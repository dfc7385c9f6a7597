package models

import "sort"

// Canonical orderings. Every persistence backend and every handler that
// assembles records applies these, so callers see identical sequences no
// matter where the records came from. All sorts are stable.

// SortProjects orders by title ascending.
func SortProjects(ps []Project) {
	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].Title < ps[j].Title
	})
}

// SortHighlights orders by the explicit order field, ties broken by title.
func SortHighlights(hs []Highlight) {
	sort.SliceStable(hs, func(i, j int) bool {
		if hs[i].Order != hs[j].Order {
			return hs[i].Order < hs[j].Order
		}
		return hs[i].Title < hs[j].Title
	})
}

// SortPowerStones orders by slot ascending.
func SortPowerStones(ss []PowerStone) {
	sort.SliceStable(ss, func(i, j int) bool {
		return ss[i].Slot < ss[j].Slot
	})
}

// SortBulletins orders newest first: publication date descending, creation
// time breaking ties. Dates are ISO YYYY-MM-DD strings, so the
// lexicographic comparison is the chronological one.
func SortBulletins(bs []Bulletin) {
	sort.SliceStable(bs, func(i, j int) bool {
		if bs[i].Date != bs[j].Date {
			return bs[i].Date > bs[j].Date
		}
		return bs[i].CreatedAt.After(bs[j].CreatedAt)
	})
}

// SortLeaderboard ranks by score descending, newer entries first on ties.
func SortLeaderboard(es []LeaderboardEntry) {
	sort.SliceStable(es, func(i, j int) bool {
		if es[i].Score != es[j].Score {
			return es[i].Score > es[j].Score
		}
		return es[i].CreatedAt.After(es[j].CreatedAt)
	})
}
