package orders

import (
	"strconv"

	"dexd/pkg/types"
)

// DeriveOrderType maps the contract's numeric type+step code pair onto the
// display order type. Unknown codes degrade to Limit.
func DeriveOrderType(orderType, stepType int64) types.OrderType {
	switch {
	case orderType == 0:
		return types.OrderTypeLimit
	case orderType == 1 && stepType == 0:
		return types.OrderTypeStop
	case orderType == 1 && stepType == 1:
		return types.OrderTypeStopLimit
	case orderType == 2:
		return types.OrderTypeTakeProfit
	default:
		return types.OrderTypeLimit
	}
}

// ActiveTriggers is the single normalization point for the two overlapping
// trigger shapes. The detailed status-aware list is authoritative whenever
// the source returned data at all — even when filtering to OPEN leaves it
// empty. The legacy one-TP/one-SL bundle is a fallback used only when the
// detailed source was entirely unavailable (detailedOK == false), never when
// it was merely empty.
func ActiveTriggers(positionId string, detailed []types.Trigger, detailedOK bool, legacy map[string]types.LegacyTriggerBundle) []types.Trigger {
	if detailedOK {
		active := make([]types.Trigger, 0, len(detailed))
		for _, t := range detailed {
			if t.PositionId == positionId && t.Status == types.TriggerStatusOpen {
				active = append(active, t)
			}
		}
		return active
	}

	bundle, ok := legacy[positionId]
	if !ok {
		return nil
	}
	var active []types.Trigger
	if bundle.TakeProfit > 0 {
		active = append(active, types.Trigger{
			Id:           "tp-" + positionId,
			PositionId:   positionId,
			IsTakeProfit: true,
			Price:        bundle.TakeProfit,
			SizePercent:  bundle.TakeProfitSize,
			Status:       types.TriggerStatusOpen,
		})
	}
	if bundle.StopLoss > 0 {
		active = append(active, types.Trigger{
			Id:           "sl-" + positionId,
			PositionId:   positionId,
			IsTakeProfit: false,
			Price:        bundle.StopLoss,
			SizePercent:  bundle.StopLossSize,
			Status:       types.TriggerStatusOpen,
		})
	}
	return active
}

func parseTriggerStatus(code int64) types.TriggerStatus {
	if code < int64(types.TriggerStatusNone) || code > int64(types.TriggerStatusCancelled) {
		return types.TriggerStatusNone
	}
	return types.TriggerStatus(code)
}

func formatId(id int64) string {
	return strconv.FormatInt(id, 10)
}
