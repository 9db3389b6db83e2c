package utils

import "strings"

// FeedSymbol derives the price-feed lookup key for a pair: the lowercase base
// ticker ("BTC/USD" -> "btc"). Pairs quoted against USD as the base are
// inverted ("USD/JPY" -> "jpy") since the feed keys FX by the non-USD leg.
func FeedSymbol(pair string) string {
	parts := strings.Split(pair, "/")
	if len(parts) != 2 {
		return strings.ToLower(pair)
	}
	base, quote := parts[0], parts[1]
	if base == "USD" {
		return strings.ToLower(quote)
	}
	return strings.ToLower(base)
}

// BaseAsset returns the base component of a pair ("BTC/USD" -> "BTC").
func BaseAsset(pair string) string {
	if idx := strings.Index(pair, "/"); idx > 0 {
		return pair[:idx]
	}
	return pair
}
