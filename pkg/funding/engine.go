package funding

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"dexd/pkg/http"
	"dexd/pkg/marketdata"
	"dexd/pkg/types"

	"github.com/adshao/go-binance/v2/futures"
	log "github.com/sirupsen/logrus"
)

// Engine merges the platform's own funding rate with the multi-exchange
// external feed into one normalized table. External data is polled every 5
// minutes; the platform column is read from the market aggregator at build
// time so it is at most one market poll stale.
type Engine struct {
	markets  *marketdata.Aggregator
	apiUrl   string
	interval time.Duration

	useBnf    bool
	bnfClient *futures.Client

	rows    []types.FundingRateRow
	columns []string
	lastErr error

	mu     sync.RWMutex
	logger *log.Entry
}

func NewEngine(markets *marketdata.Aggregator, apiUrl string, interval time.Duration, useBnf bool) *Engine {
	e := &Engine{
		markets:  markets,
		apiUrl:   apiUrl,
		interval: interval,
		useBnf:   useBnf,
		logger:   log.WithFields(log.Fields{"comp": "funding"}),
	}
	if useBnf {
		e.bnfClient = futures.NewClient("", "")
	}
	return e
}

func (e *Engine) Start(ctx context.Context) {
	go func() {
		if err := e.refresh(ctx); err != nil {
			e.logger.Errorf("fail to refresh funding rates on start: %v", err)
		}
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := e.refresh(ctx); err != nil {
					e.logger.Errorf("fail to refresh funding rates: %v", err)
				}
			}
		}
	}()
}

func (e *Engine) refresh(ctx context.Context) error {
	// pair -> column -> formatted rate
	formatted := make(map[string]map[string]string)
	put := func(pair, column, rate string) {
		if formatted[pair] == nil {
			formatted[pair] = make(map[string]string)
		}
		formatted[pair][column] = rate
	}

	// (1) platform rates from the market aggregator
	for _, market := range e.markets.Markets() {
		put(market.Pair, types.PlatformFundingKey, NormalizeRate(types.PlatformFundingKey, market.FundingRate))
	}

	// (2) external multi-exchange feed
	external, err := e.fetchExternal()
	if err != nil {
		e.logger.Errorf("fail to fetch external funding rates: %v", err)
		e.mu.Lock()
		e.lastErr = err
		e.mu.Unlock()
	} else {
		for apiSymbol, byExchange := range external {
			pair, ok := apiSymbolPairs[apiSymbol]
			if !ok {
				continue
			}
			for fullName, rate := range byExchange {
				column, ok := exchangeShortNames[fullName]
				if !ok || rate == nil {
					continue
				}
				put(pair, column, NormalizeRate(column, *rate))
			}
		}
	}

	// (3) the Binance leg straight from Binance futures, when enabled
	if e.useBnf {
		if err := e.fetchBnf(ctx, put); err != nil {
			e.logger.Warnf("fail to fetch binance funding rates: %v", err)
		}
	}

	rows, columns := buildRows(formatted)
	e.mu.Lock()
	e.rows = rows
	e.columns = columns
	if err == nil {
		e.lastErr = nil
	}
	e.mu.Unlock()
	return err
}

func (e *Engine) fetchExternal() (map[string]map[string]*float64, error) {
	status, resBody, err := http.GetRequest(e.apiUrl, "")
	if err != nil {
		return nil, err
	}
	if status != "200 OK" {
		return nil, fmt.Errorf("status: %v: %v", status, string(resBody))
	}
	var res map[string]map[string]*float64
	if err := json.Unmarshal(resBody, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (e *Engine) fetchBnf(ctx context.Context, put func(pair, column, rate string)) error {
	premiums, err := e.bnfClient.NewPremiumIndexService().Do(ctx)
	if err != nil {
		return err
	}
	for _, premium := range premiums {
		pair, ok := apiSymbolPairs[premium.Symbol]
		if !ok {
			continue
		}
		var raw float64
		if _, err := fmt.Sscanf(premium.LastFundingRate, "%f", &raw); err != nil {
			continue
		}
		put(pair, ExchangeBinance, NormalizeRate(ExchangeBinance, raw))
	}
	return nil
}

// buildRows assembles the final table: columns are the fixed priority list
// filtered to sources with at least one datum (platform first when
// present); rows are sorted by pair and must carry at least one non-N/A
// cell to be included.
func buildRows(formatted map[string]map[string]string) ([]types.FundingRateRow, []string) {
	hasData := make(map[string]bool)
	for _, byColumn := range formatted {
		for column := range byColumn {
			hasData[column] = true
		}
	}
	columns := make([]string, 0, len(columnPriority))
	for _, column := range columnPriority {
		if hasData[column] {
			columns = append(columns, column)
		}
	}

	pairs := make([]string, 0, len(formatted))
	for pair := range formatted {
		pairs = append(pairs, pair)
	}
	sort.Strings(pairs)

	rows := make([]types.FundingRateRow, 0, len(pairs))
	for _, pair := range pairs {
		rates := make(map[string]string, len(columns))
		nonEmpty := false
		for _, column := range columns {
			if rate, ok := formatted[pair][column]; ok {
				rates[column] = rate
				nonEmpty = true
			} else {
				rates[column] = notAvailable
			}
		}
		if !nonEmpty {
			continue
		}
		rows = append(rows, types.FundingRateRow{Pair: pair, Rates: rates})
	}
	return rows, columns
}

// Rows returns the normalized funding table.
func (e *Engine) Rows() ([]types.FundingRateRow, []string) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	rows := make([]types.FundingRateRow, len(e.rows))
	copy(rows, e.rows)
	columns := make([]string, len(e.columns))
	copy(columns, e.columns)
	return rows, columns
}

func (e *Engine) Err() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastErr
}
