package funding

import (
	"testing"

	"dexd/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRows(t *testing.T) {
	t.Parallel()
	formatted := map[string]map[string]string{
		"ETH/USD": {types.PlatformFundingKey: "0.0100%"},
		"BTC/USD": {types.PlatformFundingKey: "0.0200%", ExchangeBinance: "0.0300%"},
	}

	rows, columns := buildRows(formatted)

	// only sources with data survive, platform leading
	assert.Equal(t, []string{types.PlatformFundingKey, ExchangeBinance}, columns)

	require.Len(t, rows, 2)
	assert.Equal(t, "BTC/USD", rows[0].Pair)
	assert.Equal(t, "ETH/USD", rows[1].Pair)

	// missing cells are filled with N/A, not dropped
	assert.Equal(t, "0.0300%", rows[0].Rates[ExchangeBinance])
	assert.Equal(t, notAvailable, rows[1].Rates[ExchangeBinance])
}

func TestBuildRowsColumnPriority(t *testing.T) {
	t.Parallel()
	formatted := map[string]map[string]string{
		"BTC/USD": {ExchangeGmx: "0.0100%", ExchangeBinance: "0.0200%", ExchangeKraken: "0.0300%"},
	}

	_, columns := buildRows(formatted)
	assert.Equal(t, []string{ExchangeBinance, ExchangeKraken, ExchangeGmx}, columns)
}

func TestBuildRowsSkipsEmptyPairs(t *testing.T) {
	t.Parallel()
	formatted := map[string]map[string]string{
		"BTC/USD": {ExchangeBinance: "0.0100%"},
		"SOL/USD": {},
	}

	rows, _ := buildRows(formatted)
	require.Len(t, rows, 1)
	assert.Equal(t, "BTC/USD", rows[0].Pair)
}

func TestBuildRowsEmpty(t *testing.T) {
	t.Parallel()
	rows, columns := buildRows(map[string]map[string]string{})
	assert.Empty(t, rows)
	assert.Empty(t, columns)
}

func TestApiSymbolPairs(t *testing.T) {
	t.Parallel()
	// the reverse map must round-trip every canonical pair
	for pair, symbol := range pairApiSymbols {
		assert.Equal(t, pair, apiSymbolPairs[symbol])
	}
}
