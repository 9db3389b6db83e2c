package orders

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashActionDeterministic(t *testing.T) {
	t.Parallel()
	action := cancelAction{Type: "cancelOrder", Target: "0x01", Calldata: "0x02"}

	h1, err := hashAction(action, 1)
	require.NoError(t, err)
	h2, err := hashAction(action, 1)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	// the nonce is part of the hash preimage
	h3, err := hashAction(action, 2)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)

	// as is every action field
	h4, err := hashAction(cancelAction{Type: "cancelOrder", Target: "0x01", Calldata: "0x03"}, 1)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h4)
}

func TestSignAction(t *testing.T) {
	t.Parallel()
	privKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	s := &signer{privKey: privKey}

	action := cancelAction{Type: "cancelTrigger", Target: "0x01", Calldata: "0x02"}
	sig, err := s.signAction(action, getNonce())
	require.NoError(t, err)

	assert.Len(t, sig.R, 66) // 0x + 32 bytes
	assert.Len(t, sig.S, 66)
	assert.Contains(t, []byte{27, 28}, sig.V)
}

func TestGetNonceMonotonic(t *testing.T) {
	t.Parallel()
	a := getNonce()
	b := getNonce()
	assert.Greater(t, b, a)
}
