package orders

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"sync"
	"time"

	"dexd/pkg/chain"
	"dexd/pkg/marketdata"
	"dexd/pkg/pricefeed"
	"dexd/pkg/types"
	"dexd/pkg/utils"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"
)

// Engine polls pending orders and both trigger shapes for the trading
// address, and reconciles them into the display model. The detailed trigger
// slot failing (not merely returning an empty list) is what flips the
// engine onto the legacy TP/SL fallback.
type Engine struct {
	client   *chain.Client
	lens     *chain.Lens
	feed     *pricefeed.Feed
	address  common.Address
	interval time.Duration

	signer      *signer
	orderApiUrl string
	relayUrl    string

	orders     []types.Order
	detailed   []types.Trigger
	detailedOK bool
	legacy     map[string]types.LegacyTriggerBundle
	lastErr    error
	cancelling map[string]bool

	mu     sync.Mutex
	logger *log.Entry
}

func NewEngine(client *chain.Client, lens *chain.Lens, feed *pricefeed.Feed, address common.Address, privKey *ecdsa.PrivateKey, orderApiUrl, relayUrl string, interval time.Duration) *Engine {
	return &Engine{
		client:      client,
		lens:        lens,
		feed:        feed,
		address:     address,
		interval:    interval,
		signer:      &signer{privKey: privKey},
		orderApiUrl: orderApiUrl,
		relayUrl:    relayUrl,
		legacy:      make(map[string]types.LegacyTriggerBundle),
		cancelling:  make(map[string]bool),
		logger:      log.WithFields(log.Fields{"comp": "orders", "address": address.Hex()}),
	}
}

func (e *Engine) Start(ctx context.Context) {
	go func() {
		if err := e.fetch(ctx); err != nil {
			e.logger.Errorf("fail to fetch orders on start: %v", err)
		}
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := e.fetch(ctx); err != nil {
					e.logger.Errorf("fail to fetch orders: %v", err)
				}
			}
		}
	}()
}

func (e *Engine) fetch(ctx context.Context) error {
	orders, detailed, detailedOK, legacy, err := e.fetchFor(ctx, e.address)
	if err != nil {
		e.mu.Lock()
		e.lastErr = err
		e.mu.Unlock()
		return err
	}

	e.mu.Lock()
	e.orders = orders
	e.detailed = detailed
	e.detailedOK = detailedOK
	e.legacy = legacy
	e.lastErr = nil
	e.mu.Unlock()
	return nil
}

// fetchFor reads the three account slots for one address in a single
// multicall and reconciles them.
func (e *Engine) fetchFor(ctx context.Context, address common.Address) ([]types.Order, []types.Trigger, bool, map[string]types.LegacyTriggerBundle, error) {
	ordersData, err := e.lens.PackGetUserOpenOrders(address)
	if err != nil {
		return nil, nil, false, nil, err
	}
	triggersData, err := e.lens.PackGetTriggerOrders(address)
	if err != nil {
		return nil, nil, false, nil, err
	}
	tpslData, err := e.lens.PackGetTPSL(address)
	if err != nil {
		return nil, nil, false, nil, err
	}

	results, err := e.client.TryAggregate(ctx, []chain.Call{
		{Target: e.client.LensAddress, CallData: ordersData},
		{Target: e.client.TriggerVaultAddress, CallData: triggersData},
		{Target: e.client.TriggerVaultAddress, CallData: tpslData},
	})
	if err != nil {
		return nil, nil, false, nil, err
	}

	// (1) pending orders
	var orders []types.Order
	if results[0].Success {
		rawOrders, err := e.lens.DecodeUserOpenOrders(results[0].ReturnData)
		if err != nil {
			return nil, nil, false, nil, err
		}
		orders = make([]types.Order, 0, len(rawOrders))
		for _, raw := range rawOrders {
			order, ok := e.transformOrder(raw)
			if !ok {
				continue
			}
			orders = append(orders, order)
		}
	} else {
		return nil, nil, false, nil, fmt.Errorf("open orders slot reverted")
	}

	// (2) detailed triggers; a failed slot means the source is unavailable
	// and the legacy shape takes over
	detailed := []types.Trigger(nil)
	detailedOK := false
	if results[1].Success {
		rawTriggers, err := e.lens.DecodeTriggerOrders(results[1].ReturnData)
		if err != nil {
			e.logger.Warnf("fail to decode detailed triggers: %v", err)
		} else {
			detailedOK = true
			detailed = make([]types.Trigger, 0, len(rawTriggers))
			for _, raw := range rawTriggers {
				detailed = append(detailed, types.Trigger{
					Id:           raw.Id.String(),
					PositionId:   raw.PositionId.String(),
					IsTakeProfit: raw.IsTakeProfit,
					Price:        utils.BigIntToFloat(raw.Price, chain.UsdDecimals),
					SizePercent:  utils.BigIntToFloat(raw.SizePercent, 2),
					Status:       parseTriggerStatus(raw.Status.Int64()),
				})
			}
		}
	}

	// (3) legacy TP/SL bundles
	legacy := make(map[string]types.LegacyTriggerBundle)
	if results[2].Success {
		rawBundles, err := e.lens.DecodeTPSL(results[2].ReturnData)
		if err != nil {
			e.logger.Warnf("fail to decode legacy tpsl: %v", err)
		} else {
			for _, raw := range rawBundles {
				legacy[raw.PositionId.String()] = types.LegacyTriggerBundle{
					PositionId:     raw.PositionId.String(),
					TakeProfit:     utils.BigIntToFloat(raw.TakeProfit, chain.UsdDecimals),
					StopLoss:       utils.BigIntToFloat(raw.StopLoss, chain.UsdDecimals),
					TakeProfitSize: utils.BigIntToFloat(raw.TakeProfitSize, 2),
					StopLossSize:   utils.BigIntToFloat(raw.StopLossSize, 2),
				}
			}
		}
	}

	return orders, detailed, detailedOK, legacy, nil
}

func (e *Engine) transformOrder(raw chain.RawOrder) (types.Order, bool) {
	pair, ok := marketdata.PairForAssetId[raw.AssetId.Int64()]
	if !ok {
		e.logger.Warnf("dropping order %v: unknown asset id %v", raw.Id, raw.AssetId)
		return types.Order{}, false
	}
	markPrice, _ := e.feed.PriceForPair(pair)
	return types.Order{
		Id:         raw.Id.String(),
		Pair:       pair,
		OrderType:  DeriveOrderType(raw.OrderType.Int64(), raw.StepType.Int64()),
		IsLong:     raw.IsLong,
		Size:       utils.BigIntToFloat(raw.Size, chain.UsdDecimals),
		LimitPrice: utils.BigIntToFloat(raw.Price, chain.UsdDecimals),
		StopPrice:  utils.BigIntToFloat(raw.StopPrice, chain.UsdDecimals),
		MarkPrice:  markPrice,
		Margin:     utils.BigIntToFloat(raw.Margin, chain.UsdDecimals),
		CreatedAt:  raw.Timestamp.Int64(),
	}, true
}

// Orders returns the current pending order list.
func (e *Engine) Orders() []types.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]types.Order, len(e.orders))
	copy(out, e.orders)
	return out
}

// ActiveTriggersFor returns the position's active triggers per the
// precedence rule in ActiveTriggers.
func (e *Engine) ActiveTriggersFor(positionId string) []types.Trigger {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ActiveTriggers(positionId, e.detailed, e.detailedOK, e.legacy)
}

// AllActiveTriggers groups active triggers by position id.
func (e *Engine) AllActiveTriggers() map[string][]types.Trigger {
	e.mu.Lock()
	defer e.mu.Unlock()

	positionIds := make(map[string]bool)
	for _, t := range e.detailed {
		positionIds[t.PositionId] = true
	}
	for pid := range e.legacy {
		positionIds[pid] = true
	}

	out := make(map[string][]types.Trigger)
	for pid := range positionIds {
		if active := ActiveTriggers(pid, e.detailed, e.detailedOK, e.legacy); len(active) > 0 {
			out[pid] = active
		}
	}
	return out
}

func (e *Engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// FetchOrdersFor reads pending orders for an arbitrary address without
// touching the engine's cache.
func (e *Engine) FetchOrdersFor(ctx context.Context, address common.Address) ([]types.Order, error) {
	orders, _, _, _, err := e.fetchFor(ctx, address)
	return orders, err
}

// FetchTriggersFor reads and reconciles active triggers for an arbitrary
// address, grouped by position id.
func (e *Engine) FetchTriggersFor(ctx context.Context, address common.Address) (map[string][]types.Trigger, error) {
	_, detailed, detailedOK, legacy, err := e.fetchFor(ctx, address)
	if err != nil {
		return nil, err
	}

	positionIds := make(map[string]bool)
	for _, t := range detailed {
		positionIds[t.PositionId] = true
	}
	for pid := range legacy {
		positionIds[pid] = true
	}

	out := make(map[string][]types.Trigger)
	for pid := range positionIds {
		if active := ActiveTriggers(pid, detailed, detailedOK, legacy); len(active) > 0 {
			out[pid] = active
		}
	}
	return out, nil
}
