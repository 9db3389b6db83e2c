package pricefeed

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"time"

	"dexd/pkg/types"
	"dexd/pkg/utils"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const HS_TIMEOUT_S = 5   // handshake timeout in seconds
const HB_INTERVAL_S = 55 // heartbeat interval in seconds

type priceEntry struct {
	Price     float64
	UpdatedAt time.Time
}

// Feed is the process-wide live price map, fed by one websocket connection.
// The read loop is the only writer; all consumers go through Price /
// PriceForPair. Dropped connections reconnect and resubscribe automatically.
type Feed struct {
	wsUrl        string
	dialer       websocket.Dialer
	conn         *websocket.Conn
	lastPingpong time.Time // guarded by mu; written by the read loop, read by keepAlive

	doneC          chan struct{}
	stopC          chan struct{}
	isDisconnected bool // temporary disconnection; the feed will auto-reconnect
	isClosed       bool // permanent closure; the feed will not reconnect

	prices      map[string]priceEntry
	subscribers []func(types.PriceTick)

	mu       sync.Mutex
	writeMu  sync.Mutex
	pricesMu sync.RWMutex
	logger   *log.Entry
}

func New(wsUrl string) (*Feed, error) {
	if _, err := url.Parse(wsUrl); err != nil {
		return nil, err
	}
	return &Feed{
		wsUrl: wsUrl,
		dialer: websocket.Dialer{
			HandshakeTimeout:  time.Duration(HS_TIMEOUT_S) * time.Second,
			EnableCompression: true,
		},
		prices: make(map[string]priceEntry),
		logger: log.WithFields(log.Fields{"comp": "pricefeed", "url": wsUrl}),
	}, nil
}

// OnTick registers a tick callback. Must be called before Start; callbacks
// run on the read loop goroutine and must not block.
func (f *Feed) OnTick(cb func(types.PriceTick)) {
	f.subscribers = append(f.subscribers, cb)
}

// Price returns the live price for a feed symbol ("btc").
func (f *Feed) Price(symbol string) (float64, bool) {
	f.pricesMu.RLock()
	defer f.pricesMu.RUnlock()
	entry, ok := f.prices[symbol]
	return entry.Price, ok
}

// PriceForPair returns the live price for a pair ("BTC/USD"), deriving the
// feed key including the USD-base inversion.
func (f *Feed) PriceForPair(pair string) (float64, bool) {
	return f.Price(utils.FeedSymbol(pair))
}

func (f *Feed) Start(ctx context.Context) error {
	if err := f.connect(); err != nil {
		return err
	}
	f.touchPingpong()
	f.doneC = make(chan struct{})
	f.stopC = make(chan struct{})

	go f.readLoop()
	f.keepAlive(time.Duration(HB_INTERVAL_S) * time.Second)

	go func() {
		select {
		case <-ctx.Done():
			close(f.stopC)
		case <-f.doneC:
		}
	}()
	return nil
}

func (f *Feed) connect() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, _, err := f.dialer.Dial(f.wsUrl, nil)
	if err != nil {
		f.logger.Errorf("fail to connect price feed: %v", err)
		return err
	}
	f.conn = c
	return nil
}

func (f *Feed) sendSubMsg() error {
	f.writeMu.Lock()
	defer f.writeMu.Unlock()

	subMsg := map[string]interface{}{
		"method":       "subscribe",
		"subscription": map[string]string{"type": "prices"},
	}
	return f.conn.WriteJSON(subMsg)
}

func (f *Feed) writeMessage(messageType int, data []byte) error {
	f.writeMu.Lock()
	defer f.writeMu.Unlock()
	return f.conn.WriteMessage(messageType, data)
}

func (f *Feed) readLoop() {
	if err := f.sendSubMsg(); err != nil {
		f.logger.Errorf("fail to subscribe price feed: %v", err)
		f.Close()
		return
	}
	f.mu.Lock()
	f.isDisconnected = false
	f.mu.Unlock()

	for {
		select {
		case <-f.stopC:
			f.Close()
			return
		default:
			if f.IsClosed() {
				return
			}
			_, msg, err := f.conn.ReadMessage()
			if err != nil {
				f.logger.Errorf("fail to read price feed message (trying to reconnect): %v", err)
				f.handleReconnect()
				continue
			}
			f.touchPingpong()

			ticks, err := parsePriceMessage(msg)
			if err != nil {
				f.logger.Warnf("found unknown message format: %v: %v", err, string(msg))
				continue
			}
			if len(ticks) == 0 {
				continue
			}
			f.applyTicks(ticks)
		}
	}
}

func (f *Feed) applyTicks(ticks []types.PriceTick) {
	f.pricesMu.Lock()
	for _, tick := range ticks {
		f.prices[tick.Symbol] = priceEntry{Price: tick.Price, UpdatedAt: tick.Time}
	}
	f.pricesMu.Unlock()

	for _, tick := range ticks {
		for _, cb := range f.subscribers {
			cb(tick)
		}
	}
}

func (f *Feed) handleReconnect() {
	if !f.IsDisconnected() {
		f.forceDisconnect()
	}

	for {
		if f.IsClosed() {
			return
		}
		select {
		case <-f.stopC:
			f.Close()
			return
		default:
			time.Sleep(1 * time.Second)
			if err := f.connect(); err != nil {
				f.logger.Errorf("fail to reconnect price feed (retrying...): %v", err)
				continue
			}
			if err := f.sendSubMsg(); err != nil {
				f.logger.Errorf("fail to resubscribe price feed: %v", err)
				f.forceDisconnect()
				continue
			}
			f.logger.Info("reconnect and resubscribe price feed success")
			f.mu.Lock()
			f.isDisconnected = false
			f.mu.Unlock()
			return
		}
	}
}

func (f *Feed) keepAlive(interval time.Duration) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				// must check the state inside the ticker loop to handle reconnections
				if f.IsClosed() {
					return
				}
				if f.IsDisconnected() {
					continue
				}
				if f.sincePingpong() > time.Duration((HS_TIMEOUT_S+HB_INTERVAL_S)*time.Second) {
					f.logger.Warn("keepAlive timeout: force disconnecting")
					f.forceDisconnect()
					continue
				}

				ping, _ := json.Marshal(map[string]string{"method": "ping"})
				if err := f.writeMessage(websocket.TextMessage, ping); err != nil {
					f.logger.Errorf("fail to write ping during keepAlive: %v", err)
					return
				}
			case <-f.stopC:
				f.Close()
				return
			}
		}
	}()
}

func (f *Feed) forceDisconnect() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.isDisconnected = true
	if f.conn != nil {
		f.conn.Close()
	}
}

func (f *Feed) touchPingpong() {
	f.mu.Lock()
	f.lastPingpong = time.Now()
	f.mu.Unlock()
}

func (f *Feed) sincePingpong() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return time.Since(f.lastPingpong)
}

func (f *Feed) IsDisconnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.isDisconnected
}

func (f *Feed) IsClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.isClosed
}

func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.isClosed {
		return
	}
	f.isClosed = true
	if f.conn != nil {
		f.conn.Close()
	}
	select {
	case <-f.doneC:
	default:
		close(f.doneC)
	}
}
