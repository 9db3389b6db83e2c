package utils

// DefaultPrecision is the display precision used when a pair has no override.
const DefaultPrecision = 2

// precisionOverrides lists pairs whose prices need more decimals than the
// default to be legible. Missing keys fall through to DefaultPrecision.
var precisionOverrides = map[string]int{
	"DOGE/USD":  5,
	"PEPE/USD":  8,
	"SHIB/USD":  8,
	"ARB/USD":   4,
	"OP/USD":    4,
	"MATIC/USD": 4,
	"ATOM/USD":  3,
	"GMX/USD":   3,
	"USD/JPY":   3,
	"EUR/USD":   5,
	"GBP/USD":   5,
}

func PairPrecision(pair string) int {
	if p, ok := precisionOverrides[pair]; ok {
		return p
	}
	return DefaultPrecision
}
