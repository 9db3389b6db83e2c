package marketdata

import (
	"context"
	"sync"
	"time"

	"dexd/pkg/chain"
	"dexd/pkg/types"
	"dexd/pkg/utils"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"
)

// Caller batches raw contract reads. *chain.Client satisfies it.
type Caller interface {
	TryAggregate(ctx context.Context, calls []chain.Call) ([]chain.Result, error)
}

// Aggregator polls the lens contract and rebuilds the full market list every
// tick. The list is replaced atomically; consumers never observe a partially
// updated market. A failed slot drops that asset from the tick silently;
// a failed batch keeps the previous snapshot and records the error.
type Aggregator struct {
	client   Caller
	lensAddr common.Address
	lens     *chain.Lens
	interval time.Duration

	markets  []types.Market
	lastErr  error
	refetchC chan chan struct{}

	mu     sync.RWMutex
	logger *log.Entry
}

func NewAggregator(client Caller, lensAddr common.Address, lens *chain.Lens, interval time.Duration) *Aggregator {
	return &Aggregator{
		client:   client,
		lensAddr: lensAddr,
		lens:     lens,
		interval: interval,
		refetchC: make(chan chan struct{}),
		logger:   log.WithFields(log.Fields{"comp": "marketdata"}),
	}
}

func (a *Aggregator) Start(ctx context.Context) {
	go func() {
		if err := a.fetch(ctx); err != nil {
			a.logger.Errorf("fail to fetch markets on start: %v", err)
		}
		ticker := time.NewTicker(a.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := a.fetch(ctx); err != nil {
					a.logger.Errorf("fail to fetch markets: %v", err)
				}
			case done := <-a.refetchC:
				if err := a.fetch(ctx); err != nil {
					a.logger.Errorf("fail to refetch markets: %v", err)
				}
				close(done)
			}
		}
	}()
}

// Refetch forces an immediate re-poll and re-derivation, blocking until the
// new snapshot is in place or ctx is cancelled. Requires a running Start loop.
func (a *Aggregator) Refetch(ctx context.Context) error {
	done := make(chan struct{})
	select {
	case a.refetchC <- done:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Markets returns the current full market list.
func (a *Aggregator) Markets() []types.Market {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]types.Market, len(a.markets))
	copy(out, a.markets)
	return out
}

// MarketForPair returns the market matching the pair, falling back to the
// first market when unmatched. ok is false only when no markets exist.
func (a *Aggregator) MarketForPair(pair string) (types.Market, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, m := range a.markets {
		if m.Pair == pair {
			return m, true
		}
	}
	if len(a.markets) > 0 {
		return a.markets[0], true
	}
	return types.Market{}, false
}

func (a *Aggregator) Err() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastErr
}

func (a *Aggregator) fetch(ctx context.Context) error {
	// (1) two slots per asset: global info, then max leverage
	calls := make([]chain.Call, 0, len(Pairs)*2)
	for _, pair := range Pairs {
		assetId := AssetIds[pair]
		infoData, err := a.lens.PackGetGlobalInfo(assetId)
		if err != nil {
			a.setErr(err)
			return err
		}
		levData, err := a.lens.PackGetMaxLeverage(assetId)
		if err != nil {
			a.setErr(err)
			return err
		}
		calls = append(calls,
			chain.Call{Target: a.lensAddr, CallData: infoData},
			chain.Call{Target: a.lensAddr, CallData: levData},
		)
	}

	results, err := a.client.TryAggregate(ctx, calls)
	if err != nil {
		a.setErr(err)
		return err
	}

	// (2) decode per asset; drop assets with any failed slot
	markets := make([]types.Market, 0, len(Pairs))
	for i, pair := range Pairs {
		infoSlot, levSlot := results[i*2], results[i*2+1]
		if !infoSlot.Success || !levSlot.Success {
			a.logger.Debugf("dropping market '%v': failed multicall slot", pair)
			continue
		}
		info, err := a.lens.DecodeGlobalInfo(infoSlot.ReturnData)
		if err != nil {
			a.logger.Warnf("dropping market '%v': %v", pair, err)
			continue
		}
		maxLev, err := a.lens.DecodeMaxLeverage(levSlot.ReturnData)
		if err != nil {
			a.logger.Warnf("dropping market '%v': %v", pair, err)
			continue
		}
		markets = append(markets, deriveMarket(pair, AssetIds[pair], info, utils.BigIntToFloat(maxLev, 0)))
	}

	// (3) replace the whole list atomically
	a.mu.Lock()
	a.markets = markets
	a.lastErr = nil
	a.mu.Unlock()
	return nil
}

func (a *Aggregator) setErr(err error) {
	a.mu.Lock()
	a.lastErr = err
	a.mu.Unlock()
}

// deriveMarket computes the per-tick derived fields from one raw read.
func deriveMarket(pair string, assetId int64, info *chain.RawGlobalInfo, maxLeverage float64) types.Market {
	m := types.Market{
		AssetId:              assetId,
		Pair:                 pair,
		FundingRate:          utils.BigIntToFloat(info.FundingRate, chain.RateDecimals),
		BorrowRateLong:       utils.BigIntToFloat(info.BorrowRateLong, chain.RateDecimals),
		BorrowRateShort:      utils.BigIntToFloat(info.BorrowRateShort, chain.RateDecimals),
		LongOpenInterest:     utils.BigIntToFloat(info.LongOpenInterest, chain.UsdDecimals),
		ShortOpenInterest:    utils.BigIntToFloat(info.ShortOpenInterest, chain.UsdDecimals),
		MaxLongOpenInterest:  utils.BigIntToFloat(info.MaxLongOpenInterest, chain.UsdDecimals),
		MaxShortOpenInterest: utils.BigIntToFloat(info.MaxShortOpenInterest, chain.UsdDecimals),
		TradingFeeLong:       utils.BigIntToFloat(info.TradingFeeLong, chain.RateDecimals),
		TradingFeeShort:      utils.BigIntToFloat(info.TradingFeeShort, chain.RateDecimals),
		MaxLeverage:          maxLeverage,
		Precision:            utils.PairPrecision(pair),
		IsOpen:               utils.IsMarketOpen(pair, time.Now()),
	}

	totalOI := m.LongOpenInterest + m.ShortOpenInterest
	if totalOI > 0 {
		m.LongPercentage = m.LongOpenInterest / totalOI * 100
		m.ShortPercentage = 100 - m.LongPercentage
	} else {
		m.LongPercentage = 50
		m.ShortPercentage = 50
	}

	longRatio, shortRatio := 0.0, 0.0
	if m.MaxLongOpenInterest > 0 {
		longRatio = m.LongOpenInterest / m.MaxLongOpenInterest * 100
	}
	if m.MaxShortOpenInterest > 0 {
		shortRatio = m.ShortOpenInterest / m.MaxShortOpenInterest * 100
	}
	m.Utilization = longRatio
	if shortRatio > m.Utilization {
		m.Utilization = shortRatio
	}
	if m.Utilization > 100 {
		m.Utilization = 100
	}

	if m.AvailableLongOI = m.MaxLongOpenInterest - m.LongOpenInterest; m.AvailableLongOI < 0 {
		m.AvailableLongOI = 0
	}
	if m.AvailableShortOI = m.MaxShortOpenInterest - m.ShortOpenInterest; m.AvailableShortOI < 0 {
		m.AvailableShortOI = 0
	}
	return m
}
