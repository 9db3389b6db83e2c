package types

type OrderType string

const (
	OrderTypeLimit      = OrderType("Limit")
	OrderTypeStop       = OrderType("Stop")
	OrderTypeStopLimit  = OrderType("StopLimit")
	OrderTypeTakeProfit = OrderType("TakeProfit")
)

// Order is one pending limit/stop order. Immutable once created except for
// cancellation, which removes it from the pending set.
type Order struct {
	Id        string    `json:"orderId"`
	Pair      string    `json:"pair"`
	OrderType OrderType `json:"orderType"`
	IsLong    bool      `json:"isLong"`

	Size       float64 `json:"size"`
	LimitPrice float64 `json:"limitPrice"`
	StopPrice  float64 `json:"stopPrice"`
	MarkPrice  float64 `json:"markPrice"`
	Margin     float64 `json:"margin"`
	CreatedAt  int64   `json:"createdAt"` // unix seconds
}
