package position

import (
	"encoding/json"
	"fmt"

	"dexd/pkg/http"
	"dexd/pkg/types"
)

// externalPositionFeePct is the aggregated venue's flat close fee on
// notional; the venue has no funding leg, only accrued interest.
const externalPositionFeePct = 0.0006

// ExternalIdPrefix keeps the venue's id namespace disjoint from native
// numeric position ids.
const ExternalIdPrefix = "g-"

type rawExternalPosition struct {
	Id              int64   `json:"id"`
	Pair            string  `json:"pair"`
	Side            string  `json:"side"` // "long" | "short"
	Notional        float64 `json:"notional"`
	EntryPrice      float64 `json:"entryPrice"`
	Leverage        float64 `json:"leverage"`
	AccruedInterest float64 `json:"accruedInterest"`
}

// VenueClient reads open positions on the aggregated external venue per
// trading address.
type VenueClient struct {
	baseUrl string
}

func NewVenueClient(baseUrl string) *VenueClient {
	return &VenueClient{baseUrl: baseUrl}
}

func (c *VenueClient) FetchPositions(address string) ([]rawExternalPosition, error) {
	status, resBody, err := http.GetRequest(fmt.Sprintf("%s/positions?address=%s", c.baseUrl, address), "")
	if err != nil {
		return nil, err
	}
	if status != "200 OK" {
		return nil, fmt.Errorf("status: %v: %v", status, string(resBody))
	}

	var res struct {
		Positions []rawExternalPosition `json:"positions"`
	}
	if err := json.Unmarshal(resBody, &res); err != nil {
		return nil, err
	}
	return res.Positions, nil
}

// transformExternal maps one venue position into the unified shape. The same
// liquidation formula as native positions applies, parameterized with the
// venue's fee model: a flat position fee on notional and the accrued
// interest carried on the borrow leg; no funding leg exists.
func transformExternal(raw rawExternalPosition, markPrice float64, priceReady bool) types.Position {
	isLong := raw.Side == "long"
	margin := 0.0
	if raw.Leverage > 0 {
		margin = raw.Notional / raw.Leverage
	}
	fees := types.FeeBreakdown{
		PositionFee: raw.Notional * externalPositionFeePct,
		BorrowFee:   raw.AccruedInterest,
	}

	p := types.Position{
		Id:         fmt.Sprintf("%s%d", ExternalIdPrefix, raw.Id),
		Source:     types.PositionSourceExternal,
		Pair:       raw.Pair,
		IsLong:     isLong,
		Size:       raw.Notional,
		EntryPrice: raw.EntryPrice,
		Margin:     margin,
		Leverage:   raw.Leverage,
		Fees:       fees,
	}
	if priceReady {
		p.PriceReady = true
		p.MarkPrice = markPrice
		p.PnlValue = PnlValue(isLong, raw.EntryPrice, markPrice, raw.Notional, fees)
		p.Pnl = FormatPnl(p.PnlValue)
		p.LiquidationPrice = LiquidationPrice(isLong, raw.EntryPrice, raw.Notional, margin, fees)
	}
	return p
}
