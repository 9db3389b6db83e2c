package stats

import (
	"context"
	"sync"
	"time"

	"dexd/pkg/baseprice"
	"dexd/pkg/pricefeed"
	"dexd/pkg/types"
	"dexd/pkg/utils"

	log "github.com/sirupsen/logrus"
)

const fallbackIntervalS = 60

// Engine keeps one Tracker per known pair, fed from the price stream. It is
// the source of per-pair 24h change for the API and the heatmap. Pairs the
// base store cannot seed get a chart-derived fallback snapshot instead of
// staying dark.
type Engine struct {
	store    *baseprice.Store
	chart    *ChartClient
	trackers map[string]*Tracker   // pair -> tracker
	bySymbol map[string][]*Tracker // feed symbol -> trackers
	fallback map[string]types.PairStats24h

	mu     sync.RWMutex
	logger *log.Entry
}

func NewEngine(store *baseprice.Store, feed *pricefeed.Feed, chart *ChartClient, pairs []string) *Engine {
	e := &Engine{
		store:    store,
		chart:    chart,
		trackers: make(map[string]*Tracker, len(pairs)),
		bySymbol: make(map[string][]*Tracker),
		fallback: make(map[string]types.PairStats24h),
		logger:   log.WithFields(log.Fields{"comp": "stats"}),
	}
	for _, pair := range pairs {
		t := NewTracker(store, pair)
		e.trackers[pair] = t
		symbol := utils.FeedSymbol(pair)
		e.bySymbol[symbol] = append(e.bySymbol[symbol], t)
	}
	feed.OnTick(e.handleTick)
	return e
}

func (e *Engine) handleTick(tick types.PriceTick) {
	e.mu.RLock()
	trackers := e.bySymbol[tick.Symbol]
	e.mu.RUnlock()
	for _, t := range trackers {
		t.ApplyTick(tick.Price)
	}
}

// Start runs the chart fallback loop for halted trackers.
func (e *Engine) Start(ctx context.Context) {
	if e.chart == nil {
		return
	}
	go func() {
		e.backfill()
		ticker := time.NewTicker(fallbackIntervalS * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				e.backfill()
			}
		}
	}()
}

// backfill computes 24h change from chart history for every pair the base
// store could not seed.
func (e *Engine) backfill() {
	for pair, t := range e.trackers {
		if t.Snapshot().Error != errBaseUnavailable {
			continue
		}
		base, change, err := e.chart.Change24h(pair)
		if err != nil {
			e.logger.Debugf("fail to backfill stats for '%v': %v", pair, err)
			continue
		}
		e.mu.Lock()
		e.fallback[pair] = types.PairStats24h{
			Pair:             pair,
			BasePrice:        base,
			Current:          base * (1 + change/100),
			PercentageChange: change,
			AbsoluteChange:   base * change / 100,
		}
		e.mu.Unlock()
	}
}

func (e *Engine) Stats(pair string) (types.PairStats24h, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	t, ok := e.trackers[pair]
	if !ok {
		return types.PairStats24h{}, false
	}
	s := t.Snapshot()
	if s.Error == errBaseUnavailable {
		if fb, ok := e.fallback[pair]; ok {
			return fb, true
		}
	}
	return s, true
}

func (e *Engine) AllStats() map[string]types.PairStats24h {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[string]types.PairStats24h, len(e.trackers))
	for pair, t := range e.trackers {
		s := t.Snapshot()
		if s.Error == errBaseUnavailable {
			if fb, ok := e.fallback[pair]; ok {
				s = fb
			}
		}
		out[pair] = s
	}
	return out
}
