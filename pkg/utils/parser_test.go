package utils

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundFloat(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 1.23, RoundFloat(1.2345, 2), 1e-9)
	assert.InDelta(t, 1.235, RoundFloat(1.2345, 3), 1e-9)
	assert.InDelta(t, -1.23, RoundFloat(-1.2345, 2), 1e-9)
}

func TestBigIntToFloat(t *testing.T) {
	t.Parallel()
	// 1.5 at 1e18 scale
	v, _ := new(big.Int).SetString("1500000000000000000", 10)
	assert.InDelta(t, 1.5, BigIntToFloat(v, 18), 1e-9)

	assert.InDelta(t, 0.0025, BigIntToFloat(big.NewInt(2500), 6), 1e-12)
	assert.InDelta(t, -0.0025, BigIntToFloat(big.NewInt(-2500), 6), 1e-12)
	assert.Zero(t, BigIntToFloat(nil, 18))
}

func TestBigIntStrToFloat(t *testing.T) {
	t.Parallel()
	f, err := BigIntStrToFloat("2500000000000000000", 18)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, f, 1e-9)

	_, err = BigIntStrToFloat("not-a-number", 18)
	assert.Error(t, err)
}

func TestHexToBytes(t *testing.T) {
	t.Parallel()
	b, err := HexToBytes("0xdeadbeef")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, b)

	b, err = HexToBytes("deadbeef")
	require.NoError(t, err)
	assert.Len(t, b, 4)

	_, err = HexToBytes("0xzz")
	assert.Error(t, err)
}

func TestSignatureToVRS(t *testing.T) {
	t.Parallel()
	sig := make([]byte, 65)
	for i := range sig {
		sig[i] = byte(i)
	}
	sig[64] = 1

	v, r, s := SignatureToVRS(sig)
	assert.Equal(t, byte(28), v)
	assert.Equal(t, byte(0), r[0])
	assert.Equal(t, byte(31), r[31])
	assert.Equal(t, byte(32), s[0])
	assert.Equal(t, byte(63), s[31])
}
