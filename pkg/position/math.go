package position

import (
	"fmt"

	"dexd/pkg/types"
)

// PnlValue computes position PnL in USD with fees deducted:
// sign*(mark-entry)*size/entry - totalFees, sign(long)=+1, sign(short)=-1.
func PnlValue(isLong bool, entryPrice, markPrice, size float64, fees types.FeeBreakdown) float64 {
	if entryPrice == 0 {
		return 0
	}
	priceDiff := markPrice - entryPrice
	if !isLong {
		priceDiff = entryPrice - markPrice
	}
	return priceDiff*size/entryPrice - totalFees(fees)
}

// LiquidationPrice solves for the mark price at which cumulative loss equals
// 90% of margin net of fees already accrued at calculation time:
// targetPnl = -0.9*margin + totalFees, requiredDiff = targetPnl*entry/size.
func LiquidationPrice(isLong bool, entryPrice, size, margin float64, fees types.FeeBreakdown) float64 {
	if size == 0 || entryPrice == 0 {
		return 0
	}
	targetPnl := -0.9*margin + totalFees(fees)
	requiredDiff := targetPnl * entryPrice / size
	if isLong {
		return entryPrice + requiredDiff
	}
	return entryPrice - requiredDiff
}

// FormatPnl renders the sign-prefixed display string.
func FormatPnl(v float64) string {
	return fmt.Sprintf("%+.2f", v)
}

func totalFees(fees types.FeeBreakdown) float64 {
	return fees.PositionFee + fees.BorrowFee + fees.FundingFee
}
