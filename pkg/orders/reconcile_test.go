package orders

import (
	"testing"

	"dexd/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveOrderType(t *testing.T) {
	t.Parallel()
	assert.Equal(t, types.OrderTypeLimit, DeriveOrderType(0, 0))
	assert.Equal(t, types.OrderTypeLimit, DeriveOrderType(0, 1))
	assert.Equal(t, types.OrderTypeStop, DeriveOrderType(1, 0))
	assert.Equal(t, types.OrderTypeStopLimit, DeriveOrderType(1, 1))
	assert.Equal(t, types.OrderTypeTakeProfit, DeriveOrderType(2, 0))
	assert.Equal(t, types.OrderTypeTakeProfit, DeriveOrderType(2, 9))

	// unknown codes degrade to limit
	assert.Equal(t, types.OrderTypeLimit, DeriveOrderType(1, 5))
	assert.Equal(t, types.OrderTypeLimit, DeriveOrderType(7, 0))
}

func TestActiveTriggersDetailed(t *testing.T) {
	t.Parallel()
	detailed := []types.Trigger{
		{Id: "1", PositionId: "42", Status: types.TriggerStatusOpen, IsTakeProfit: true, Price: 110},
		{Id: "2", PositionId: "42", Status: types.TriggerStatusCancelled, Price: 90},
		{Id: "3", PositionId: "42", Status: types.TriggerStatusTriggered, Price: 80},
		{Id: "4", PositionId: "99", Status: types.TriggerStatusOpen, Price: 70},
	}

	active := ActiveTriggers("42", detailed, true, nil)
	require.Len(t, active, 1)
	assert.Equal(t, "1", active[0].Id)
}

func TestActiveTriggersDetailedEmptyBeatsLegacy(t *testing.T) {
	t.Parallel()
	legacy := map[string]types.LegacyTriggerBundle{
		"42": {PositionId: "42", TakeProfit: 110, StopLoss: 90},
	}

	// the detailed view answered; an empty result is authoritative and the
	// legacy bundle must not resurface
	active := ActiveTriggers("42", nil, true, legacy)
	assert.Empty(t, active)
}

func TestActiveTriggersLegacyFallback(t *testing.T) {
	t.Parallel()
	legacy := map[string]types.LegacyTriggerBundle{
		"42": {PositionId: "42", TakeProfit: 110, StopLoss: 90, TakeProfitSize: 100, StopLossSize: 50},
	}

	active := ActiveTriggers("42", nil, false, legacy)
	require.Len(t, active, 2)

	tp, sl := active[0], active[1]
	assert.True(t, tp.IsTakeProfit)
	assert.InDelta(t, 110, tp.Price, 1e-9)
	assert.InDelta(t, 100, tp.SizePercent, 1e-9)
	assert.Equal(t, types.TriggerStatusOpen, tp.Status)

	assert.False(t, sl.IsTakeProfit)
	assert.InDelta(t, 90, sl.Price, 1e-9)
	assert.InDelta(t, 50, sl.SizePercent, 1e-9)
}

func TestActiveTriggersLegacyUnsetLegs(t *testing.T) {
	t.Parallel()
	legacy := map[string]types.LegacyTriggerBundle{
		"42": {PositionId: "42", StopLoss: 90},
	}

	active := ActiveTriggers("42", nil, false, legacy)
	require.Len(t, active, 1)
	assert.False(t, active[0].IsTakeProfit)

	// no bundle at all
	assert.Empty(t, ActiveTriggers("7", nil, false, legacy))
}

func TestParseTriggerStatus(t *testing.T) {
	t.Parallel()
	assert.Equal(t, types.TriggerStatusOpen, parseTriggerStatus(2))
	assert.Equal(t, types.TriggerStatusCancelled, parseTriggerStatus(4))
	assert.Equal(t, types.TriggerStatusNone, parseTriggerStatus(-1))
	assert.Equal(t, types.TriggerStatusNone, parseTriggerStatus(11))
}
