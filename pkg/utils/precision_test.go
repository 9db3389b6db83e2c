package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairPrecision(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 5, PairPrecision("DOGE/USD"))
	assert.Equal(t, 8, PairPrecision("PEPE/USD"))
	assert.Equal(t, 3, PairPrecision("USD/JPY"))

	// anything without an override renders at the default
	assert.Equal(t, DefaultPrecision, PairPrecision("BTC/USD"))
	assert.Equal(t, DefaultPrecision, PairPrecision("UNKNOWN/USD"))
}
