package utils

import (
	"encoding/hex"
	"fmt"
	"math"
	"math/big"
	"strconv"
)

func RoundFloat(val float64, decimals int64) float64 {
	ratio := math.Pow(10, float64(decimals))
	return math.Round(val*ratio) / ratio
}

func StrToFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	return f, err
}

func FloatToStr(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// BigIntToFloat scales a raw contract integer down by 10^scaleFactor.
func BigIntToFloat(val *big.Int, scaleFactor int64) float64 {
	if val == nil {
		return 0
	}
	sf := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(scaleFactor), nil))
	bigFloat := new(big.Float).SetInt(val)
	bigFloat.Quo(bigFloat, sf)
	floatValue, _ := bigFloat.Float64()
	return floatValue
}

func BigIntStrToFloat(s string, scaleFactor int64) (float64, error) {
	bigFloat, ok := new(big.Float).SetString(s)
	if !ok {
		return 0, fmt.Errorf("fail to parse string to bigint: %s", s)
	}
	sf := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(scaleFactor), nil))
	bigFloat.Quo(bigFloat, sf)
	floatValue, _ := bigFloat.Float64()
	return floatValue, nil
}

func HexToBytes(val string) ([]byte, error) {
	if len(val) > 2 && val[:2] == "0x" {
		val = val[2:]
	}
	bytes, err := hex.DecodeString(val)
	if err != nil {
		return nil, fmt.Errorf("fail to parse address to bytes: %v", val)
	}
	return bytes, nil
}

func SignatureToVRS(sig []byte) (byte, [32]byte, [32]byte) {
	var v byte
	var r [32]byte
	var s [32]byte

	v = sig[64] + 27
	copy(r[:], sig[:32])
	copy(s[:], sig[32:64])

	return v, r, s
}
