package funding

import (
	"dexd/pkg/types"
	"dexd/pkg/utils"
)

const (
	ExchangeBinance = "Binance"
	ExchangeBybit   = "Bybit"
	ExchangeOkx     = "OKX"
	ExchangeDydx    = "dYdX"
	ExchangeKraken  = "Kraken"
	ExchangeGmx     = "GMX"
)

// columnPriority fixes the display order of funding columns; the platform's
// own rate always leads when present. Exchanges with no data for any symbol
// are filtered out of the final column set.
var columnPriority = []string{
	types.PlatformFundingKey,
	ExchangeBinance,
	ExchangeBybit,
	ExchangeOkx,
	ExchangeDydx,
	ExchangeKraken,
	ExchangeGmx,
}

// fundingIntervalHours declares each source's native funding interval. Every
// rate is normalized to the common 8-hour basis before display.
var fundingIntervalHours = map[string]float64{
	types.PlatformFundingKey: 1,
	ExchangeBinance:          8,
	ExchangeBybit:            8,
	ExchangeOkx:              8,
	ExchangeDydx:             1,
	ExchangeKraken:           4,
	ExchangeGmx:              1,
}

// needsPercentMultiplier marks exchanges whose raw values are decimal
// fractions rather than already-scaled percentages. This is per-exchange
// and must be looked up, never assumed.
var needsPercentMultiplier = map[string]bool{
	ExchangeBinance: true,
	ExchangeBybit:   true,
	ExchangeOkx:     true,
	ExchangeDydx:    true,
}

// exchangeShortNames maps the external API's full exchange names onto the
// column keys above. Unknown exchanges are ignored.
var exchangeShortNames = map[string]string{
	"Binance (Futures)": ExchangeBinance,
	"Bybit (Futures)":   ExchangeBybit,
	"OKX (Futures)":     ExchangeOkx,
	"dYdX":              ExchangeDydx,
	"Kraken (Futures)":  ExchangeKraken,
	"GMX":               ExchangeGmx,
}

// pairApiSymbols maps canonical pairs onto the external API's symbol naming
// scheme. The reverse map is built once, first match wins.
var pairApiSymbols = map[string]string{
	"BTC/USD":   "BTCUSDT",
	"ETH/USD":   "ETHUSDT",
	"SOL/USD":   "SOLUSDT",
	"ARB/USD":   "ARBUSDT",
	"OP/USD":    "OPUSDT",
	"AVAX/USD":  "AVAXUSDT",
	"MATIC/USD": "MATICUSDT",
	"DOGE/USD":  "DOGEUSDT",
	"PEPE/USD":  "PEPEUSDT",
	"LINK/USD":  "LINKUSDT",
	"UNI/USD":   "UNIUSDT",
	"ATOM/USD":  "ATOMUSDT",
	"APE/USD":   "APEUSDT",
	"GMX/USD":   "GMXUSDT",
	"XRP/USD":   "XRPUSDT",
	"LTC/USD":   "LTCUSDT",
	"DOT/USD":   "DOTUSDT",
	"NEAR/USD":  "NEARUSDT",
	"SHIB/USD":  "SHIBUSDT",
}

var apiSymbolPairs = utils.ReverseStrMap(pairApiSymbols)
