package funding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"dexd/pkg/http"
	"dexd/pkg/types"
	"dexd/pkg/utils"

	log "github.com/sirupsen/logrus"
)

type historyResponse struct {
	History []struct {
		Timestamp int64   `json:"timestamp"` // unix seconds
		Rate      float64 `json:"rate"`
		UsdmPrice float64 `json:"usdm_price"`
	} `json:"history"`
}

type historyWatcher struct {
	cancel context.CancelFunc
	points []types.FundingHistoryPoint
}

// HistoryStore polls the funding-rate history endpoint per watched pair
// (60s while actively viewed) and caches the series. Unwatched pairs cost
// nothing.
type HistoryStore struct {
	baseUrl  string
	interval time.Duration

	watchers map[string]*historyWatcher

	mu     sync.Mutex
	logger *log.Entry
}

func NewHistoryStore(baseUrl string, interval time.Duration) *HistoryStore {
	return &HistoryStore{
		baseUrl:  baseUrl,
		interval: interval,
		watchers: make(map[string]*historyWatcher),
		logger:   log.WithFields(log.Fields{"comp": "funding-history"}),
	}
}

// Watch starts the 60s poll loop for a pair if not already running, and
// returns the current cached series (empty until the first fetch lands).
func (s *HistoryStore) Watch(ctx context.Context, pair string) []types.FundingHistoryPoint {
	s.mu.Lock()
	w, exists := s.watchers[pair]
	if !exists {
		watchCtx, cancel := context.WithCancel(ctx)
		w = &historyWatcher{cancel: cancel}
		s.watchers[pair] = w
		go s.pollLoop(watchCtx, pair)
	}
	points := make([]types.FundingHistoryPoint, len(w.points))
	copy(points, w.points)
	s.mu.Unlock()
	return points
}

// Unwatch stops the poll loop for a pair.
func (s *HistoryStore) Unwatch(pair string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, exists := s.watchers[pair]; exists {
		w.cancel()
		delete(s.watchers, pair)
	}
}

func (s *HistoryStore) pollLoop(ctx context.Context, pair string) {
	if err := s.fetch(pair); err != nil {
		s.logger.Errorf("fail to fetch funding history for %v: %v", pair, err)
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.fetch(pair); err != nil {
				s.logger.Errorf("fail to fetch funding history for %v: %v", pair, err)
			}
		}
	}
}

func (s *HistoryStore) fetch(pair string) error {
	reqUrl := fmt.Sprintf("%s?symbol=%s", s.baseUrl, url.QueryEscape(utils.FeedSymbol(pair)))
	status, resBody, err := http.GetRequest(reqUrl, "")
	if err != nil {
		return err
	}
	if status != "200 OK" {
		return fmt.Errorf("status: %v: %v", status, string(resBody))
	}

	var res historyResponse
	if err := json.Unmarshal(resBody, &res); err != nil {
		return err
	}

	points := make([]types.FundingHistoryPoint, 0, len(res.History))
	for _, h := range res.History {
		points = append(points, types.FundingHistoryPoint{
			Timestamp: h.Timestamp * 1000, // endpoint reports seconds
			Rate:      h.Rate,
			UsdmPrice: h.UsdmPrice,
		})
	}

	s.mu.Lock()
	if w, exists := s.watchers[pair]; exists {
		w.points = points
	}
	s.mu.Unlock()
	return nil
}
