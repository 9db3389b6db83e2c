package types

// PlatformFundingKey is the reserved column under which the platform's own
// funding rate appears; it is always the first column when present.
const PlatformFundingKey = "dexd"

// FundingRateRow maps exchange name -> normalized rate formatted to 4 decimal
// places with a "%" suffix, always on an 8-hour basis. Missing data is "N/A".
type FundingRateRow struct {
	Pair  string            `json:"pair"`
	Rates map[string]string `json:"rates"`
}

// FundingHistoryPoint is one sample of the platform funding-rate history.
// Timestamps are unix milliseconds.
type FundingHistoryPoint struct {
	Timestamp int64   `json:"timestamp"`
	Rate      float64 `json:"rate"`
	UsdmPrice float64 `json:"usdmPrice"`
}
