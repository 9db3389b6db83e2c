package position

import (
	"testing"

	"dexd/pkg/types"

	"github.com/stretchr/testify/assert"
)

func TestPnlValue(t *testing.T) {
	t.Parallel()
	noFees := types.FeeBreakdown{}

	// long gains when price rises, short gains when it falls
	assert.InDelta(t, 100, PnlValue(true, 100, 110, 1000, noFees), 1e-9)
	assert.InDelta(t, -100, PnlValue(false, 100, 110, 1000, noFees), 1e-9)
	assert.InDelta(t, -100, PnlValue(true, 100, 90, 1000, noFees), 1e-9)
	assert.InDelta(t, 100, PnlValue(false, 100, 90, 1000, noFees), 1e-9)

	// every fee leg is deducted
	fees := types.FeeBreakdown{PositionFee: 5, BorrowFee: 3, FundingFee: 2}
	assert.InDelta(t, 90, PnlValue(true, 100, 110, 1000, fees), 1e-9)

	// an unchanged mark still pays fees
	assert.InDelta(t, -10, PnlValue(true, 100, 100, 1000, fees), 1e-9)

	// zero entry price never divides
	assert.Zero(t, PnlValue(true, 0, 110, 1000, fees))
}

func TestLiquidationPrice(t *testing.T) {
	t.Parallel()
	noFees := types.FeeBreakdown{}

	// 10x long: price may fall 9% of entry before 90% of margin is gone
	assert.InDelta(t, 91, LiquidationPrice(true, 100, 1000, 100, noFees), 1e-9)
	assert.InDelta(t, 109, LiquidationPrice(false, 100, 1000, 100, noFees), 1e-9)

	// accrued fees pull the liquidation price closer to entry
	fees := types.FeeBreakdown{PositionFee: 5, BorrowFee: 3, FundingFee: 2}
	assert.InDelta(t, 92, LiquidationPrice(true, 100, 1000, 100, fees), 1e-9)
	assert.InDelta(t, 108, LiquidationPrice(false, 100, 1000, 100, fees), 1e-9)

	// degenerate inputs
	assert.Zero(t, LiquidationPrice(true, 100, 0, 100, noFees))
	assert.Zero(t, LiquidationPrice(true, 0, 1000, 100, noFees))
}

func TestFormatPnl(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "+95.40", FormatPnl(95.4))
	assert.Equal(t, "-0.50", FormatPnl(-0.5))
	assert.Equal(t, "+0.00", FormatPnl(0))
}
