package baseprice

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"dexd/pkg/http"
	"dexd/pkg/utils"

	log "github.com/sirupsen/logrus"
)

type HighLow struct {
	High float64 `json:"high"`
	Low  float64 `json:"low"`
}

type baseResponse struct {
	Prices      map[string]float64 `json:"prices"`
	HighLowData map[string]HighLow `json:"highLowData"`
}

// Store holds the UTC-day-start reference price per feed symbol, plus the
// day's intraday high/low when the endpoint provides them. It refreshes once
// on start and then re-arms itself to fire at 00:01 UTC every day. On fetch
// failure the previous snapshot is kept.
type Store struct {
	url string

	prices      map[string]float64
	highLow     map[string]HighLow
	lastUpdated time.Time
	lastErr     error

	mu     sync.RWMutex
	logger *log.Entry
}

func New(url string) *Store {
	return &Store{
		url:     url,
		prices:  make(map[string]float64),
		highLow: make(map[string]HighLow),
		logger:  log.WithFields(log.Fields{"comp": "baseprice"}),
	}
}

func (s *Store) Start(ctx context.Context) {
	if err := s.refresh(); err != nil {
		s.logger.Errorf("fail to load base prices on start: %v", err)
	}
	go s.scheduleLoop(ctx)
}

// scheduleLoop re-arms a timer for the next 00:01 UTC boundary after every
// refresh, instead of a fixed interval, so the store rolls over with the day.
func (s *Store) scheduleLoop(ctx context.Context) {
	for {
		timer := time.NewTimer(time.Until(nextRefreshTime(time.Now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			if err := s.refresh(); err != nil {
				s.logger.Errorf("fail to refresh base prices: %v", err)
			}
		}
	}
}

func nextRefreshTime(now time.Time) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 1, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func (s *Store) refresh() error {
	status, resBody, err := http.GetRequest(s.url, "")
	if err != nil {
		s.setErr(err)
		return err
	}
	if status != "200 OK" {
		err := fmt.Errorf("status: %v: %v", status, string(resBody))
		s.setErr(err)
		return err
	}

	var res baseResponse
	if err := json.Unmarshal(resBody, &res); err != nil {
		s.setErr(err)
		return err
	}
	if len(res.Prices) == 0 {
		err := fmt.Errorf("empty base price payload")
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	s.prices = res.Prices
	if res.HighLowData != nil {
		s.highLow = res.HighLowData
	} else {
		s.highLow = make(map[string]HighLow)
	}
	s.lastUpdated = time.Now()
	s.lastErr = nil
	s.mu.Unlock()

	s.logger.Infof("base prices refreshed: %v symbols", len(res.Prices))
	return nil
}

func (s *Store) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// BasePrice returns the day-start reference price for a feed symbol.
func (s *Store) BasePrice(symbol string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	price, ok := s.prices[symbol]
	return price, ok
}

// BasePriceForPair resolves the pair to its feed symbol first.
func (s *Store) BasePriceForPair(pair string) (float64, bool) {
	return s.BasePrice(utils.FeedSymbol(pair))
}

// DayHighLow returns the day's precomputed high/low when available.
func (s *Store) DayHighLow(symbol string) (HighLow, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hl, ok := s.highLow[symbol]
	return hl, ok
}

// LastUpdated bumps on every successful refresh; consumers watch it to
// re-seed their running state.
func (s *Store) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}
