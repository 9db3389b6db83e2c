package stats

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"dexd/pkg/http"
	"dexd/pkg/utils"
)

// chartResponse is the TradingView-style parallel-array shape; T carries
// unix seconds and must be scaled to milliseconds for consumers.
type chartResponse struct {
	T []int64   `json:"t"`
	C []float64 `json:"c"`
}

// ChartClient computes 24h change from the chart history endpoint, used as a
// fallback for pairs missing from the daily base price store.
type ChartClient struct {
	baseUrl string
}

func NewChartClient(baseUrl string) *ChartClient {
	return &ChartClient{baseUrl: baseUrl}
}

// Change24h fetches the last day of closes and returns (basePrice,
// percentageChange). The base is the earliest close inside the window.
func (c *ChartClient) Change24h(pair string) (float64, float64, error) {
	now := time.Now()
	from := now.Add(-24 * time.Hour)
	reqUrl := fmt.Sprintf("%s?symbol=%s&resolution=60&from=%d&to=%d",
		c.baseUrl, url.QueryEscape(utils.FeedSymbol(pair)), from.Unix(), now.Unix())

	status, resBody, err := http.GetRequest(reqUrl, "")
	if err != nil {
		return 0, 0, err
	}
	if status != "200 OK" {
		return 0, 0, fmt.Errorf("status: %v: %v", status, string(resBody))
	}

	var res chartResponse
	if err := json.Unmarshal(resBody, &res); err != nil {
		return 0, 0, err
	}
	if len(res.T) == 0 || len(res.T) != len(res.C) {
		return 0, 0, fmt.Errorf("malformed chart response for %v", pair)
	}

	cutoff := from.UnixMilli()
	base := 0.0
	for i, ts := range res.T {
		if ts*1000 >= cutoff {
			base = res.C[i]
			break
		}
	}
	if base == 0 {
		base = res.C[0]
	}
	last := res.C[len(res.C)-1]
	if base == 0 {
		return 0, 0, nil
	}
	return base, (last - base) / base * 100, nil
}
