package orders

import (
	"crypto/ecdsa"
	"encoding/binary"
	"fmt"
	"sync/atomic"
	"time"

	"dexd/pkg/utils"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/vmihailenco/msgpack/v5"
)

const VERIFYING_CONTRACT = "0x0000000000000000000000000000000000000000"

var nonceCounter int64

func getNonce() int64 {
	return atomic.AddInt64(&nonceCounter, 1) + time.Now().UnixMilli()
}

type RsvSignature struct {
	R string `json:"r"`
	S string `json:"s"`
	V byte   `json:"v"`
}

// cancelAction is the relay action payload for locally-built trigger
// cancels. The msgpack encoding of this struct is what gets hashed and
// signed, so field order is part of the wire contract.
type cancelAction struct {
	Type     string `msgpack:"type" json:"type"`
	Target   string `msgpack:"target" json:"target"`
	Calldata string `msgpack:"calldata" json:"calldata"`
}

type actionRequest struct {
	Action    cancelAction `json:"action"`
	Nonce     int64        `json:"nonce"`
	Signature RsvSignature `json:"signature"`
}

// signer produces the EIP-712 signatures the relay verifies before
// submitting an action on-chain.
type signer struct {
	privKey *ecdsa.PrivateKey
}

func (s *signer) signAction(action any, nonce int64) (RsvSignature, error) {
	hash, err := hashAction(action, uint64(nonce))
	if err != nil {
		return RsvSignature{}, err
	}
	v, r, sVal, err := s.signInner(apitypes.TypedDataMessage{
		"source":       "dexd",
		"connectionId": hash.Bytes(),
	})
	if err != nil {
		return RsvSignature{}, err
	}
	return RsvSignature{R: hexutil.Encode(r[:]), S: hexutil.Encode(sVal[:]), V: v}, nil
}

func hashAction(action any, nonce uint64) (common.Hash, error) {
	data, err := msgpack.Marshal(action)
	if err != nil {
		return common.Hash{}, fmt.Errorf("fail to pack the action: %v: %v", action, err)
	}
	nonceBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(nonceBytes, nonce)
	data = append(data, nonceBytes...)
	data = append(data, []byte("\x00")...)
	return crypto.Keccak256Hash(data), nil
}

func (s *signer) signInner(message apitypes.TypedDataMessage) (byte, [32]byte, [32]byte, error) {
	typedData := apitypes.TypedData{
		Types: apitypes.Types{
			"Agent": []apitypes.Type{
				{Name: "source", Type: "string"},
				{Name: "connectionId", Type: "bytes32"},
			},
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
		},
		PrimaryType: "Agent",
		Domain: apitypes.TypedDataDomain{
			Name:              "DexdRelay",
			Version:           "1",
			ChainId:           math.NewHexOrDecimal256(1337),
			VerifyingContract: VERIFYING_CONTRACT,
		},
		Message: message,
	}

	bytes, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return 0, [32]byte{}, [32]byte{}, err
	}
	sig, err := crypto.Sign(bytes, s.privKey)
	if err != nil {
		return 0, [32]byte{}, [32]byte{}, err
	}
	v, r, sVal := utils.SignatureToVRS(sig)
	return v, r, sVal, nil
}
