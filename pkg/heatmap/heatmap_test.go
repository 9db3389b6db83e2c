package heatmap

import (
	"testing"

	"dexd/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()
	assert.Equal(t, CategoryLayer1, Classify("BTC/USD"))
	assert.Equal(t, CategoryLayer2, Classify("ARB/USD"))
	assert.Equal(t, CategoryMeme, Classify("DOGE/USD"))
	assert.Equal(t, CategoryIndicesFx, Classify("USD/JPY"))
	assert.Equal(t, CategoryOther, Classify("FOO/USD"))
}

func TestAggregate(t *testing.T) {
	t.Parallel()
	stats := map[string]types.PairStats24h{
		"BTC/USD":  {Pair: "BTC/USD", PercentageChange: 10},
		"ETH/USD":  {Pair: "ETH/USD", PercentageChange: 20},
		"DOGE/USD": {Pair: "DOGE/USD", PercentageChange: 99, Loading: true},
		"SOL/USD":  {Pair: "SOL/USD", PercentageChange: 99, Error: "Base price not available"},
	}

	out := Aggregate(stats)
	require.Len(t, out, len(Categories))

	byCategory := make(map[string]types.CategoryChange, len(out))
	for _, c := range out {
		byCategory[c.Category] = c
	}

	// contributing pairs average; loading and errored pairs are excluded
	layer1 := byCategory[string(CategoryLayer1)]
	assert.InDelta(t, 15, layer1.Change, 1e-9)
	assert.Equal(t, []string{"BTC/USD", "ETH/USD"}, layer1.Pairs)

	// an empty bucket reports zero, never NaN
	meme := byCategory[string(CategoryMeme)]
	assert.Zero(t, meme.Change)
	assert.Empty(t, meme.Pairs)
}

func TestAggregateDisplayOrder(t *testing.T) {
	t.Parallel()
	out := Aggregate(nil)
	require.Len(t, out, len(Categories))
	for i, category := range Categories {
		assert.Equal(t, string(category), out[i].Category)
	}
}
