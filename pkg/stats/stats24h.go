package stats

import (
	"sync"
	"time"

	"dexd/pkg/baseprice"
	"dexd/pkg/types"
	"dexd/pkg/utils"
)

const errBaseUnavailable = "Base price not available"

// Tracker is the two-phase 24h state machine for one pair.
//
// Phase 1 (reset/seed) runs when the tracked pair changes or the base-price
// store refreshes: it clears all running state and seeds high/low from the
// day's precomputed bounds, or from the base price itself. A missing base
// price halts the tracker with an error until the next phase 1.
//
// Phase 2 (live) applies ticks monotonically to high/low and recomputes the
// change vs base. Ticks never reset the bounds.
type Tracker struct {
	store *baseprice.Store

	pair     string
	seededAt time.Time // store.LastUpdated captured at last successful seed
	halted   bool
	state    types.PairStats24h

	mu sync.Mutex
}

func NewTracker(store *baseprice.Store, pair string) *Tracker {
	t := &Tracker{store: store}
	t.SetPair(pair)
	return t
}

// SetPair switches the tracked pair and re-seeds. The previous pair's bounds
// never leak into the new pair.
func (t *Tracker) SetPair(pair string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pair = pair
	t.seed()
}

func (t *Tracker) Pair() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pair
}

// seed is phase 1. Caller holds t.mu.
func (t *Tracker) seed() {
	t.state = types.PairStats24h{Pair: t.pair, Loading: true}
	t.seededAt = t.store.LastUpdated()

	symbol := utils.FeedSymbol(t.pair)
	base, ok := t.store.BasePrice(symbol)
	if !ok || base == 0 {
		t.halted = true
		t.state.Loading = false
		t.state.Error = errBaseUnavailable
		return
	}

	high, low := base, base
	if hl, ok := t.store.DayHighLow(symbol); ok {
		if hl.High > 0 {
			high = hl.High
		}
		if hl.Low > 0 {
			low = hl.Low
		}
	}

	t.halted = false
	t.state = types.PairStats24h{
		Pair:      t.pair,
		BasePrice: base,
		Current:   base,
		High:      high,
		Low:       low,
		Loading:   false,
	}
}

// ApplyTick is phase 2: it only runs once phase 1 succeeded. A zero price
// (missing data) leaves the stale state untouched.
func (t *Tracker) ApplyTick(price float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// re-seed when the base store rolled over since the last seed
	if !t.store.LastUpdated().Equal(t.seededAt) {
		t.seed()
	}
	if t.halted || price <= 0 {
		return
	}

	if price > t.state.High {
		t.state.High = price
	}
	if price < t.state.Low {
		t.state.Low = price
	}
	t.state.Current = price
	t.state.AbsoluteChange = price - t.state.BasePrice
	if t.state.BasePrice != 0 {
		t.state.PercentageChange = t.state.AbsoluteChange / t.state.BasePrice * 100
	} else {
		t.state.PercentageChange = 0
	}
}

func (t *Tracker) Snapshot() types.PairStats24h {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
