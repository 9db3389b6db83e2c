package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsMarketOpen(t *testing.T) {
	t.Parallel()

	friday2059 := time.Date(2026, 9, 4, 20, 59, 0, 0, time.UTC)
	friday2100 := time.Date(2026, 9, 4, 21, 0, 0, 0, time.UTC)
	saturday := time.Date(2026, 9, 5, 12, 0, 0, 0, time.UTC)
	sunday2059 := time.Date(2026, 9, 6, 20, 59, 0, 0, time.UTC)
	sunday2100 := time.Date(2026, 9, 6, 21, 0, 0, 0, time.UTC)
	wednesday := time.Date(2026, 9, 2, 3, 0, 0, 0, time.UTC)

	// FX closes Friday 21:00 UTC and reopens Sunday 21:00 UTC
	assert.True(t, IsMarketOpen("EUR/USD", friday2059))
	assert.False(t, IsMarketOpen("EUR/USD", friday2100))
	assert.False(t, IsMarketOpen("EUR/USD", saturday))
	assert.False(t, IsMarketOpen("USD/JPY", sunday2059))
	assert.True(t, IsMarketOpen("USD/JPY", sunday2100))
	assert.True(t, IsMarketOpen("XAU/USD", wednesday))

	// crypto trades through the weekend
	assert.True(t, IsMarketOpen("BTC/USD", saturday))
	assert.True(t, IsMarketOpen("ETH/USD", friday2100))
}
