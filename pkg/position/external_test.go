package position

import (
	"testing"

	"dexd/pkg/types"

	"github.com/stretchr/testify/assert"
)

func TestTransformExternal(t *testing.T) {
	t.Parallel()
	raw := rawExternalPosition{
		Id:              7,
		Pair:            "BTC/USD",
		Side:            "short",
		Notional:        1000,
		EntryPrice:      100,
		Leverage:        10,
		AccruedInterest: 4,
	}

	p := transformExternal(raw, 90, true)
	assert.Equal(t, "g-7", p.Id)
	assert.Equal(t, types.PositionSourceExternal, p.Source)
	assert.False(t, p.IsLong)
	assert.InDelta(t, 100, p.Margin, 1e-9)
	assert.InDelta(t, 0.6, p.Fees.PositionFee, 1e-9) // 0.06% of notional
	assert.InDelta(t, 4, p.Fees.BorrowFee, 1e-9)
	assert.Zero(t, p.Fees.FundingFee)

	// short from 100 to 90 earns 10% of notional, minus both fee legs
	assert.True(t, p.PriceReady)
	assert.InDelta(t, 95.4, p.PnlValue, 1e-9)
	assert.Equal(t, "+95.40", p.Pnl)
	assert.InDelta(t, 108.54, p.LiquidationPrice, 1e-9)
}

func TestTransformExternalNoPrice(t *testing.T) {
	t.Parallel()
	raw := rawExternalPosition{Id: 1, Pair: "BTC/USD", Side: "long", Notional: 500, EntryPrice: 100, Leverage: 5}

	p := transformExternal(raw, 0, false)
	assert.False(t, p.PriceReady)
	assert.Zero(t, p.MarkPrice)
	assert.Empty(t, p.Pnl)
	assert.Zero(t, p.PnlValue)
	assert.Zero(t, p.LiquidationPrice)
	// static fields are still populated
	assert.InDelta(t, 100, p.Margin, 1e-9)
}

func TestTransformExternalZeroLeverage(t *testing.T) {
	t.Parallel()
	raw := rawExternalPosition{Id: 2, Pair: "ETH/USD", Side: "long", Notional: 500, EntryPrice: 100}
	p := transformExternal(raw, 100, true)
	assert.Zero(t, p.Margin)
}
