package rank

import (
	"sort"
	"strings"

	"recruitin-engine/internal/domain"
)

// TopProspects returns the n highest-scoring prospects, tier_score descending.
// Equal scores keep their CSV order. n <= 0 or n >= len means everything.
func TopProspects(rows []domain.Prospect, n int) []domain.Prospect {
	out := make([]domain.Prospect, len(rows))
	copy(out, rows)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TierScore > out[j].TierScore
	})

	if n <= 0 || n >= len(out) {
		return out
	}
	return out[:n]
}

// FilterProspectsByIndustry keeps prospects whose industry contains the
// sector term, case-insensitive. Empty or "all" keeps everything.
func FilterProspectsByIndustry(rows []domain.Prospect, sector string) []domain.Prospect {
	if matchAll(sector) {
		return rows
	}
	needle := strings.ToLower(sector)
	var out []domain.Prospect
	for _, p := range rows {
		if strings.Contains(strings.ToLower(p.Industry), needle) {
			out = append(out, p)
		}
	}
	return out
}

// FilterMarketBySector keeps market rows whose sector contains the term,
// case-insensitive. Empty or "all" keeps everything.
func FilterMarketBySector(rows []domain.MarketRow, sector string) []domain.MarketRow {
	if matchAll(sector) {
		return rows
	}
	needle := strings.ToLower(sector)
	var out []domain.MarketRow
	for _, m := range rows {
		if strings.Contains(strings.ToLower(m.Sector), needle) {
			out = append(out, m)
		}
	}
	return out
}

func matchAll(sector string) bool {
	s := strings.ToLower(strings.TrimSpace(sector))
	return s == "" || s == "all"
}
