package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeedSymbol(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "btc", FeedSymbol("BTC/USD"))
	assert.Equal(t, "pepe", FeedSymbol("PEPE/USD"))

	// USD-base FX inverts to the non-USD leg
	assert.Equal(t, "jpy", FeedSymbol("USD/JPY"))
	assert.Equal(t, "eur", FeedSymbol("EUR/USD"))
	assert.Equal(t, "xau", FeedSymbol("XAU/USD"))

	// malformed input degrades to lowercase
	assert.Equal(t, "btc", FeedSymbol("BTC"))
}

func TestBaseAsset(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "BTC", BaseAsset("BTC/USD"))
	assert.Equal(t, "USD", BaseAsset("USD/JPY"))
	assert.Equal(t, "BTC", BaseAsset("BTC"))
}
