package marketdata

import "sort"

// AssetIds is the static symbol table mapping every tradable pair to its
// on-chain asset id. Hand-maintained; additions must keep ids unique.
var AssetIds = map[string]int64{
	"BTC/USD":   1,
	"ETH/USD":   2,
	"SOL/USD":   3,
	"ARB/USD":   4,
	"OP/USD":    5,
	"AVAX/USD":  6,
	"MATIC/USD": 7,
	"DOGE/USD":  8,
	"PEPE/USD":  9,
	"LINK/USD":  10,
	"UNI/USD":   11,
	"ATOM/USD":  12,
	"APE/USD":   13,
	"GMX/USD":   14,
	"XRP/USD":   15,
	"LTC/USD":   16,
	"DOT/USD":   17,
	"NEAR/USD":  18,
	"SHIB/USD":  19,
	"USD/JPY":   20,
	"EUR/USD":   21,
	"GBP/USD":   22,
	"XAU/USD":   23,
}

// Pairs lists all tradable pairs in asset-id order, so every poll walks the
// table deterministically and multicall slots line up run to run.
var Pairs = func() []string {
	pairs := make([]string, 0, len(AssetIds))
	for pair := range AssetIds {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		return AssetIds[pairs[i]] < AssetIds[pairs[j]]
	})
	return pairs
}()

// PairForAssetId is the reverse lookup, built once.
var PairForAssetId = func() map[int64]string {
	m := make(map[int64]string, len(AssetIds))
	for pair, id := range AssetIds {
		m[id] = pair
	}
	return m
}()
