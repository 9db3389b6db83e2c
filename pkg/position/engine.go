package position

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"dexd/pkg/chain"
	"dexd/pkg/marketdata"
	"dexd/pkg/pricefeed"
	"dexd/pkg/types"
	"dexd/pkg/utils"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"
)

// nativeRecord caches one raw on-chain position with its merged fee
// breakdown (paid + accrued), so price ticks can re-derive the view without
// a contract reread.
type nativeRecord struct {
	raw  chain.RawPosition
	pair string
	fees types.FeeBreakdown
}

// Engine merges the native contract positions and the external venue's REST
// positions into one list per refresh. Native entries precede external ones;
// id namespaces are disjoint so no dedup is needed. Each source carries a
// monotonic fetch generation so a stale in-flight result can never clobber a
// newer one. Every price tick re-derives PnL, mark and liquidation price
// from the cached raw structs.
type Engine struct {
	client   *chain.Client
	lens     *chain.Lens
	venue    *VenueClient
	feed     *pricefeed.Feed
	address  common.Address
	interval time.Duration

	nativeGen   atomic.Int64
	externalGen atomic.Int64
	nativeSeen  int64
	extSeen     int64

	nativeRaw   []nativeRecord
	externalRaw []rawExternalPosition
	positions   []types.Position
	lastErr     error

	mu     sync.Mutex
	logger *log.Entry
}

func NewEngine(client *chain.Client, lens *chain.Lens, venue *VenueClient, feed *pricefeed.Feed, address common.Address, interval time.Duration) *Engine {
	e := &Engine{
		client:   client,
		lens:     lens,
		venue:    venue,
		feed:     feed,
		address:  address,
		interval: interval,
		logger:   log.WithFields(log.Fields{"comp": "position", "address": address.Hex()}),
	}
	feed.OnTick(func(types.PriceTick) { e.rederive() })
	return e
}

func (e *Engine) Start(ctx context.Context) {
	go func() {
		e.refresh(ctx)
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				e.refresh(ctx)
			}
		}
	}()
}

// refresh fetches both sources concurrently; each result is applied only if
// no newer fetch of the same source has been issued meanwhile.
func (e *Engine) refresh(ctx context.Context) {
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		gen := e.nativeGen.Add(1)
		records, err := e.fetchNative(ctx, e.address)
		e.mu.Lock()
		defer e.mu.Unlock()
		if gen != e.nativeGen.Load() || gen <= e.nativeSeen {
			return // stale in-flight result, discard
		}
		e.nativeSeen = gen
		if err != nil {
			e.lastErr = err
			e.logger.Errorf("fail to fetch native positions: %v", err)
			return
		}
		e.nativeRaw = records
		e.lastErr = nil
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		gen := e.externalGen.Add(1)
		raw, err := e.venue.FetchPositions(e.address.Hex())
		e.mu.Lock()
		defer e.mu.Unlock()
		if gen != e.externalGen.Load() || gen <= e.extSeen {
			return
		}
		e.extSeen = gen
		if err != nil {
			e.logger.Errorf("fail to fetch external positions: %v", err)
			return
		}
		e.externalRaw = raw
	}()

	wg.Wait()
	e.rederive()
}

func (e *Engine) fetchNative(ctx context.Context, address common.Address) ([]nativeRecord, error) {
	posData, err := e.lens.PackGetUserPositions(address)
	if err != nil {
		return nil, err
	}
	paidData, err := e.lens.PackGetPaidFees(address)
	if err != nil {
		return nil, err
	}
	accruedData, err := e.lens.PackGetAccruedFees(address)
	if err != nil {
		return nil, err
	}

	results, err := e.client.TryAggregate(ctx, []chain.Call{
		{Target: e.client.LensAddress, CallData: posData},
		{Target: e.client.LensAddress, CallData: paidData},
		{Target: e.client.LensAddress, CallData: accruedData},
	})
	if err != nil {
		return nil, err
	}
	for i, r := range results {
		if !r.Success {
			return nil, fmt.Errorf("position batch slot %v reverted", i)
		}
	}

	rawPositions, err := e.lens.DecodeUserPositions(results[0].ReturnData)
	if err != nil {
		return nil, err
	}
	paidFees, err := e.lens.DecodeFees("getPaidFees", results[1].ReturnData)
	if err != nil {
		return nil, err
	}
	accruedFees, err := e.lens.DecodeFees("getAccruedFees", results[2].ReturnData)
	if err != nil {
		return nil, err
	}

	// merge paid + accrued legs per position id
	feesById := make(map[string]types.FeeBreakdown)
	for _, f := range append(paidFees, accruedFees...) {
		id := f.PositionId.String()
		acc := feesById[id]
		acc.PositionFee += utils.BigIntToFloat(f.PositionFee, chain.UsdDecimals)
		acc.BorrowFee += utils.BigIntToFloat(f.BorrowFee, chain.UsdDecimals)
		acc.FundingFee += utils.BigIntToFloat(f.FundingFee, chain.UsdDecimals)
		feesById[id] = acc
	}

	records := make([]nativeRecord, 0, len(rawPositions))
	for _, raw := range rawPositions {
		pair, ok := marketdata.PairForAssetId[raw.AssetId.Int64()]
		if !ok {
			e.logger.Warnf("dropping position %v: unknown asset id %v", raw.Id, raw.AssetId)
			continue
		}
		records = append(records, nativeRecord{
			raw:  raw,
			pair: pair,
			fees: feesById[raw.Id.String()],
		})
	}
	return records, nil
}

// rederive rebuilds the derived position list from the cached raw structs
// and current live prices. Pairs without a live price keep the loading
// sentinel instead of being priced at zero.
func (e *Engine) rederive() {
	e.mu.Lock()
	defer e.mu.Unlock()

	positions := make([]types.Position, 0, len(e.nativeRaw)+len(e.externalRaw))
	for _, rec := range e.nativeRaw {
		positions = append(positions, e.deriveNative(rec))
	}
	for _, raw := range e.externalRaw {
		markPrice, ok := e.feed.PriceForPair(raw.Pair)
		positions = append(positions, transformExternal(raw, markPrice, ok))
	}
	e.positions = positions
}

func (e *Engine) deriveNative(rec nativeRecord) types.Position {
	size := utils.BigIntToFloat(rec.raw.Size, chain.UsdDecimals)
	entry := utils.BigIntToFloat(rec.raw.EntryPrice, chain.UsdDecimals)
	margin := utils.BigIntToFloat(rec.raw.Margin, chain.UsdDecimals)

	p := types.Position{
		Id:         rec.raw.Id.String(),
		Source:     types.PositionSourceNative,
		Pair:       rec.pair,
		IsLong:     rec.raw.IsLong,
		Size:       size,
		EntryPrice: entry,
		Margin:     margin,
		Leverage:   utils.BigIntToFloat(rec.raw.Leverage, 2),
		Fees:       rec.fees,
	}

	markPrice, ok := e.feed.PriceForPair(rec.pair)
	if !ok {
		return p // PriceReady stays false: loading sentinel, never zero-priced math
	}
	p.PriceReady = true
	p.MarkPrice = markPrice
	p.PnlValue = PnlValue(p.IsLong, entry, markPrice, size, rec.fees)
	p.Pnl = FormatPnl(p.PnlValue)
	p.LiquidationPrice = LiquidationPrice(p.IsLong, entry, size, margin, rec.fees)
	return p
}

// Positions returns the current merged list, native first.
func (e *Engine) Positions() []types.Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]types.Position, len(e.positions))
	copy(out, e.positions)
	return out
}

func (e *Engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// FetchFor derives the merged list for an arbitrary address without
// touching the engine's cache; used by the API's address override.
func (e *Engine) FetchFor(ctx context.Context, address common.Address) ([]types.Position, error) {
	records, err := e.fetchNative(ctx, address)
	if err != nil {
		return nil, err
	}
	external, err := e.venue.FetchPositions(address.Hex())
	if err != nil {
		e.logger.Warnf("fail to fetch external positions for %v: %v", address.Hex(), err)
		external = nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	positions := make([]types.Position, 0, len(records)+len(external))
	for _, rec := range records {
		positions = append(positions, e.deriveNative(rec))
	}
	for _, raw := range external {
		markPrice, ok := e.feed.PriceForPair(raw.Pair)
		positions = append(positions, transformExternal(raw, markPrice, ok))
	}
	return positions, nil
}
