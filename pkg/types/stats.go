package types

// PairStats24h is the running 24h state for one tracked pair. High/low widen
// monotonically as ticks arrive and only reset when the pair changes or the
// daily base price refreshes.
type PairStats24h struct {
	Pair      string  `json:"pair"`
	BasePrice float64 `json:"basePrice"`
	Current   float64 `json:"currentPrice"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`

	AbsoluteChange   float64 `json:"absoluteChange"`
	PercentageChange float64 `json:"percentageChange"`

	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// CategoryChange is the averaged 24h percentage change of one taxonomy bucket.
type CategoryChange struct {
	Category string   `json:"category"`
	Change   float64  `json:"change"`
	Pairs    []string `json:"pairs"`
}
