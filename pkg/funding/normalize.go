package funding

import "fmt"

const notAvailable = "N/A"

// NormalizeRate converts a raw source rate to the common 8-hour basis and
// formats it for display: raw * (8/nativeIntervalHours), then ×100 iff the
// source quotes decimal fractions, then 4 decimal places with a % suffix.
// A negative zero result collapses to "0.0000%".
func NormalizeRate(exchange string, raw float64) string {
	intervalHours, ok := fundingIntervalHours[exchange]
	if !ok || intervalHours == 0 {
		intervalHours = 8
	}
	normalized := raw * (8 / intervalHours)
	if needsPercentMultiplier[exchange] {
		normalized *= 100
	}

	formatted := fmt.Sprintf("%.4f%%", normalized)
	if formatted == "-0.0000%" {
		formatted = "0.0000%"
	}
	return formatted
}
