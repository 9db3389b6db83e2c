package utils

import "time"

// forexPairs are the pairs that trade on traditional market hours; crypto
// pairs trade around the clock.
var forexPairs = map[string]bool{
	"USD/JPY": true,
	"EUR/USD": true,
	"GBP/USD": true,
	"XAU/USD": true,
	"XAG/USD": true,
}

// IsMarketOpen reports whether the pair is currently tradable. FX and metals
// close from Friday 21:00 UTC until Sunday 21:00 UTC.
func IsMarketOpen(pair string, now time.Time) bool {
	if !forexPairs[pair] {
		return true
	}
	now = now.UTC()
	switch now.Weekday() {
	case time.Saturday:
		return false
	case time.Friday:
		return now.Hour() < 21
	case time.Sunday:
		return now.Hour() >= 21
	default:
		return true
	}
}
