package heatmap

import (
	"sort"

	"dexd/pkg/types"
)

// Aggregate groups per-pair 24h percentage changes into the fixed taxonomy
// and averages per bucket. Pairs still loading or errored contribute
// nothing; a category with no contributing pairs reports 0, never NaN.
func Aggregate(stats map[string]types.PairStats24h) []types.CategoryChange {
	sums := make(map[Category]float64)
	pairsByCategory := make(map[Category][]string)

	for pair, s := range stats {
		if s.Loading || s.Error != "" {
			continue
		}
		category := Classify(pair)
		sums[category] += s.PercentageChange
		pairsByCategory[category] = append(pairsByCategory[category], pair)
	}

	out := make([]types.CategoryChange, 0, len(Categories))
	for _, category := range Categories {
		pairs := pairsByCategory[category]
		sort.Strings(pairs)
		change := 0.0
		if len(pairs) > 0 {
			change = sums[category] / float64(len(pairs))
		}
		out = append(out, types.CategoryChange{
			Category: string(category),
			Change:   change,
			Pairs:    pairs,
		})
	}
	return out
}
