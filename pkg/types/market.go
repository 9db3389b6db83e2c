package types

// Market is the derived view of one tradable pair, rebuilt atomically on
// every market-data poll tick.
type Market struct {
	AssetId int64  `json:"assetId"`
	Pair    string `json:"pair"` // universal pair e.g. "BTC/USD"

	FundingRate     float64 `json:"fundingRate"` // signed %, per 1h native interval
	BorrowRateLong  float64 `json:"borrowRateLong"`
	BorrowRateShort float64 `json:"borrowRateShort"`

	LongOpenInterest     float64 `json:"longOpenInterest"`
	ShortOpenInterest    float64 `json:"shortOpenInterest"`
	MaxLongOpenInterest  float64 `json:"maxLongOpenInterest"`
	MaxShortOpenInterest float64 `json:"maxShortOpenInterest"`

	TradingFeeLong  float64 `json:"tradingFeeLong"`
	TradingFeeShort float64 `json:"tradingFeeShort"`
	MaxLeverage     float64 `json:"maxLeverage"`

	// derived per tick
	Utilization      float64 `json:"utilization"`     // 0-100, max of long/short OI ratio
	LongPercentage   float64 `json:"longPercentage"`  // LongPercentage + ShortPercentage == 100
	ShortPercentage  float64 `json:"shortPercentage"` // 50/50 when no OI exists
	AvailableLongOI  float64 `json:"availableLongOI"` // cap - OI, floored at 0
	AvailableShortOI float64 `json:"availableShortOI"`

	Precision int  `json:"precision"` // display decimals for this pair's prices
	IsOpen    bool `json:"isOpen"`    // false while FX/metals markets are closed
}
