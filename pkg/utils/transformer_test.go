package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReverseStrMap(t *testing.T) {
	t.Parallel()
	reversed := ReverseStrMap(map[string]string{
		"BTC/USD": "BTCUSDT",
		"ETH/USD": "ETHUSDT",
	})
	assert.Equal(t, "BTC/USD", reversed["BTCUSDT"])
	assert.Equal(t, "ETH/USD", reversed["ETHUSDT"])
}

func TestReverseStrMapDuplicateValues(t *testing.T) {
	t.Parallel()
	// colliding values resolve to the first key in sorted order, every run
	for i := 0; i < 10; i++ {
		reversed := ReverseStrMap(map[string]string{
			"b": "x",
			"a": "x",
			"c": "x",
		})
		assert.Equal(t, "a", reversed["x"])
	}
}
