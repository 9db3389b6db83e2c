package types

import "time"

// PriceTick is one inbound price-feed update. Symbol is the feed key, i.e.
// the lowercase base ticker ("btc"), not the pair string.
type PriceTick struct {
	Symbol       string
	Price        float64
	Time         time.Time
	ReceivedTime time.Time
}
