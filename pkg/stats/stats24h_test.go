package stats

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"dexd/pkg/baseprice"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, payload string) *baseprice.Store {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	store := baseprice.New(srv.URL)
	store.Start(ctx)
	return store
}

const basePayload = `{
	"prices": {"btc": 50000, "eth": 3000},
	"highLowData": {"btc": {"high": 51000, "low": 49000}}
}`

func TestTrackerSeed(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, basePayload)

	tracker := NewTracker(store, "BTC/USD")
	s := tracker.Snapshot()
	require.Empty(t, s.Error)
	assert.False(t, s.Loading)
	assert.InDelta(t, 50000, s.BasePrice, 1e-9)
	assert.InDelta(t, 50000, s.Current, 1e-9)
	assert.InDelta(t, 51000, s.High, 1e-9)
	assert.InDelta(t, 49000, s.Low, 1e-9)
}

func TestTrackerSeedNoHighLow(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, basePayload)

	// eth has a base price but no day bounds: both collapse onto the base
	tracker := NewTracker(store, "ETH/USD")
	s := tracker.Snapshot()
	require.Empty(t, s.Error)
	assert.InDelta(t, 3000, s.High, 1e-9)
	assert.InDelta(t, 3000, s.Low, 1e-9)
}

func TestTrackerHaltsWithoutBase(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, basePayload)

	tracker := NewTracker(store, "SOL/USD")
	s := tracker.Snapshot()
	assert.Equal(t, errBaseUnavailable, s.Error)
	assert.False(t, s.Loading)

	// ticks must not revive a halted tracker
	tracker.ApplyTick(150)
	assert.Zero(t, tracker.Snapshot().Current)
}

func TestTrackerApplyTick(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, basePayload)
	tracker := NewTracker(store, "BTC/USD")

	tracker.ApplyTick(52000)
	s := tracker.Snapshot()
	assert.InDelta(t, 52000, s.Current, 1e-9)
	assert.InDelta(t, 52000, s.High, 1e-9)
	assert.InDelta(t, 2000, s.AbsoluteChange, 1e-9)
	assert.InDelta(t, 4, s.PercentageChange, 1e-9)

	// bounds widen monotonically
	tracker.ApplyTick(48000)
	s = tracker.Snapshot()
	assert.InDelta(t, 48000, s.Low, 1e-9)
	assert.InDelta(t, 52000, s.High, 1e-9)
	assert.InDelta(t, -4, s.PercentageChange, 1e-9)

	// a zero price is missing data, not a crash to zero
	tracker.ApplyTick(0)
	assert.InDelta(t, 48000, tracker.Snapshot().Current, 1e-9)
}

func TestTrackerSetPairResets(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, basePayload)
	tracker := NewTracker(store, "BTC/USD")
	tracker.ApplyTick(52000)

	tracker.SetPair("ETH/USD")
	s := tracker.Snapshot()
	assert.Equal(t, "ETH/USD", s.Pair)
	// the previous pair's bounds never leak
	assert.InDelta(t, 3000, s.High, 1e-9)
	assert.InDelta(t, 3000, s.Low, 1e-9)
	assert.Zero(t, s.AbsoluteChange)
}
