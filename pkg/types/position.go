package types

type PositionSource string

const (
	PositionSourceNative   = PositionSource("native")
	PositionSourceExternal = PositionSource("external") // aggregated venue, id prefixed "g-"
)

// FeeBreakdown holds the independently accrued fee legs of a position.
// All values are in USD and already deducted from Pnl.
type FeeBreakdown struct {
	PositionFee float64 `json:"positionFee"`
	BorrowFee   float64 `json:"borrowFee"`
	FundingFee  float64 `json:"fundingFee"`
}

// Position is the unified view model across the native contract and the
// external venue. Id namespaces are disjoint: native ids are numeric strings,
// external ids carry a "g-" prefix.
type Position struct {
	Id     string         `json:"positionId"`
	Source PositionSource `json:"source"`
	Pair   string         `json:"pair"`
	IsLong bool           `json:"isLong"`

	Size       float64      `json:"size"` // notional in USD
	EntryPrice float64      `json:"entryPrice"`
	Margin     float64      `json:"margin"`
	Leverage   float64      `json:"leverage"`
	Fees       FeeBreakdown `json:"fees"`

	// PriceReady is false while no live price exists for the pair; the
	// fields below are then left unset rather than computed against zero.
	PriceReady       bool    `json:"priceReady"`
	MarkPrice        float64 `json:"markPrice"`
	Pnl              string  `json:"pnl"` // sign-prefixed, fees already deducted
	PnlValue         float64 `json:"pnlValue"`
	LiquidationPrice float64 `json:"liquidationPrice"`
}
