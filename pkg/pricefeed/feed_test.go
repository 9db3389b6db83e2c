package pricefeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFeedServer(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// first inbound message is the subscription request
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		payload := `{"channel":"prices","ts":1700000000000,"data":{"btc":{"price":65000.5},"eth":{"price":3200.25}}}`
		if err := conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
			return
		}
		// drain pings until the client hangs up
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFeedStartReceivesPrices(t *testing.T) {
	t.Parallel()

	srv := newTestFeedServer(t)
	feed, err := New("ws" + strings.TrimPrefix(srv.URL, "http"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, feed.Start(ctx))
	defer feed.Close()

	deadline := time.Now().Add(3 * time.Second)
	var price float64
	var ok bool
	for time.Now().Before(deadline) {
		if price, ok = feed.Price("btc"); ok {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.True(t, ok, "expected a btc price before the deadline")
	assert.Equal(t, 65000.5, price)

	ethPrice, ok := feed.PriceForPair("ETH/USD")
	require.True(t, ok)
	assert.Equal(t, 3200.25, ethPrice)

	assert.False(t, feed.IsDisconnected())
	assert.False(t, feed.IsClosed())

	feed.Close()
	assert.True(t, feed.IsClosed())
}

func TestFeedStartDialFailure(t *testing.T) {
	t.Parallel()

	feed, err := New("ws://127.0.0.1:1/ws")
	require.NoError(t, err)
	assert.Error(t, feed.Start(context.Background()))
}
