package pricefeed

import (
	"encoding/json"
	"time"

	"dexd/pkg/types"
)

type wsGenericResponse struct {
	Channel string `json:"channel"`
}

type wsPricesResponse struct {
	Channel string `json:"channel"`
	Time    int64  `json:"ts"` // unix ms
	Data    map[string]struct {
		Price float64 `json:"price"`
	} `json:"data"`
}

// parsePriceMessage unpacks one inbound feed message into ticks. Non-price
// channels (subscription acks, pongs) yield an empty slice, not an error.
func parsePriceMessage(msg []byte) ([]types.PriceTick, error) {
	receivedTime := time.Now()

	var generic wsGenericResponse
	if err := json.Unmarshal(msg, &generic); err != nil {
		return nil, err
	}
	if generic.Channel != "prices" {
		return nil, nil
	}

	var res wsPricesResponse
	if err := json.Unmarshal(msg, &res); err != nil {
		return nil, err
	}

	eventTime := receivedTime
	if res.Time > 0 {
		eventTime = time.UnixMilli(res.Time)
	}

	ticks := make([]types.PriceTick, 0, len(res.Data))
	for symbol, entry := range res.Data {
		if entry.Price <= 0 {
			continue
		}
		ticks = append(ticks, types.PriceTick{
			Symbol:       symbol,
			Price:        entry.Price,
			Time:         eventTime,
			ReceivedTime: receivedTime,
		})
	}
	return ticks, nil
}
