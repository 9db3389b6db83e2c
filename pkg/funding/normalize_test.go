package funding

import (
	"testing"

	"dexd/pkg/types"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRate(t *testing.T) {
	t.Parallel()

	// 8h sources with decimal-fraction quoting only get the percent multiplier
	assert.Equal(t, "0.0100%", NormalizeRate(ExchangeBinance, 0.0001))
	assert.Equal(t, "0.0100%", NormalizeRate(ExchangeBybit, 0.0001))

	// 4h source already in percent: doubled onto the 8h basis
	assert.Equal(t, "0.0400%", NormalizeRate(ExchangeKraken, 0.02))

	// 1h decimal-fraction source: x8 then x100
	assert.Equal(t, "0.0080%", NormalizeRate(ExchangeDydx, 0.00001))

	// 1h source already in percent
	assert.Equal(t, "0.0200%", NormalizeRate(ExchangeGmx, 0.0025))

	// platform's own 1h rate
	assert.Equal(t, "0.0040%", NormalizeRate(types.PlatformFundingKey, 0.0005))

	// unknown source defaults to the 8h basis untouched
	assert.Equal(t, "1.5000%", NormalizeRate("Unknown", 1.5))

	assert.Equal(t, "-0.0123%", NormalizeRate(ExchangeGmx, -0.0123/8))
}

func TestNormalizeRateNegativeZero(t *testing.T) {
	t.Parallel()
	// a tiny negative raw rounds to negative zero and must not display a sign
	assert.Equal(t, "0.0000%", NormalizeRate(ExchangeBinance, -0.0000000001))
	assert.Equal(t, "0.0000%", NormalizeRate(types.PlatformFundingKey, 0))
}
