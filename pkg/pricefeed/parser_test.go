package pricefeed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceMessage(t *testing.T) {
	t.Parallel()
	msg := []byte(`{"channel":"prices","ts":1700000000000,"data":{"btc":{"price":50000},"eth":{"price":3000}}}`)

	ticks, err := parsePriceMessage(msg)
	require.NoError(t, err)
	require.Len(t, ticks, 2)

	bymSymbol := map[string]float64{}
	for _, tick := range ticks {
		bymSymbol[tick.Symbol] = tick.Price
		assert.Equal(t, time.UnixMilli(1700000000000), tick.Time)
		assert.False(t, tick.ReceivedTime.IsZero())
	}
	assert.InDelta(t, 50000, bymSymbol["btc"], 1e-9)
	assert.InDelta(t, 3000, bymSymbol["eth"], 1e-9)
}

func TestParsePriceMessageDropsZeroPrices(t *testing.T) {
	t.Parallel()
	msg := []byte(`{"channel":"prices","ts":1700000000000,"data":{"btc":{"price":0},"eth":{"price":-1}}}`)

	ticks, err := parsePriceMessage(msg)
	require.NoError(t, err)
	assert.Empty(t, ticks)
}

func TestParsePriceMessageOtherChannels(t *testing.T) {
	t.Parallel()
	// subscription acks and pongs are silently skipped
	ticks, err := parsePriceMessage([]byte(`{"channel":"subscribed","data":null}`))
	require.NoError(t, err)
	assert.Nil(t, ticks)
}

func TestParsePriceMessageInvalid(t *testing.T) {
	t.Parallel()
	_, err := parsePriceMessage([]byte(`not json`))
	assert.Error(t, err)
}

func TestParsePriceMessageNoTimestamp(t *testing.T) {
	t.Parallel()
	ticks, err := parsePriceMessage([]byte(`{"channel":"prices","data":{"btc":{"price":50000}}}`))
	require.NoError(t, err)
	require.Len(t, ticks, 1)
	// missing ts falls back to receive time
	assert.Equal(t, ticks[0].ReceivedTime, ticks[0].Time)
}
