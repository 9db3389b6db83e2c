package types

type TriggerStatus int64

const (
	TriggerStatusNone TriggerStatus = iota
	TriggerStatusPending
	TriggerStatusOpen
	TriggerStatusTriggered
	TriggerStatusCancelled
)

func (s TriggerStatus) String() string {
	switch s {
	case TriggerStatusNone:
		return "NONE"
	case TriggerStatusPending:
		return "PENDING"
	case TriggerStatusOpen:
		return "OPEN"
	case TriggerStatusTriggered:
		return "TRIGGERED"
	case TriggerStatusCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// Trigger is one take-profit or stop-loss instruction bound to a position,
// from the detailed status-aware contract view. Only OPEN triggers are
// surfaced as active.
type Trigger struct {
	Id           string        `json:"triggerId"`
	PositionId   string        `json:"positionId"`
	IsTakeProfit bool          `json:"isTakeProfit"`
	Price        float64       `json:"price"`
	SizePercent  float64       `json:"sizePercent"` // fraction of position closed on trigger
	Status       TriggerStatus `json:"status"`
}

// LegacyTriggerBundle is the older contract view bundling at most one TP and
// one SL per position. Consulted only when the detailed view returned nothing
// at all for the position.
type LegacyTriggerBundle struct {
	PositionId     string  `json:"positionId"`
	TakeProfit     float64 `json:"takeProfit"` // 0 = unset
	StopLoss       float64 `json:"stopLoss"`   // 0 = unset
	TakeProfitSize float64 `json:"takeProfitSize"`
	StopLossSize   float64 `json:"stopLossSize"`
}
