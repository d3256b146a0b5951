package service

import (
	"sort"

	"github.com/hbollon/go-edlib"

	"psutier/internal/tier/model"
)

const (
	maxSuggestions = 3
	// ниже этого порога подсказка только шумит
	minSuggestionScore = 0.6
)

// suggest: ближайшие серии бренда по Jaro-Winkler, когда ничего не совпало.
// Только для explain: на результат Resolve не влияет.
func suggest(cands []model.SeriesEntry, cleanName string, limit int) []model.Suggestion {
	if cleanName == "" || len(cands) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(cands))
	out := make([]model.Suggestion, 0, limit)
	for _, e := range cands {
		n := Normalize(e.MatchSeries)
		if _, dup := seen[n]; dup || n == "" {
			continue
		}
		seen[n] = struct{}{}
		score := edlib.JaroWinklerSimilarity(cleanName, n)
		if score < minSuggestionScore {
			continue
		}
		out = append(out, model.Suggestion{MatchSeries: e.MatchSeries, Tier: e.Tier, Score: score})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
