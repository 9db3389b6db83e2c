package core

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Run starts every background engine. All of them are non-blocking and stop
// when ctx is cancelled; only the price feed can fail to start.
func Run(ctx context.Context) error {
	log.Info("🦿 Running...")

	if err := Feed.Start(ctx); err != nil {
		return fmt.Errorf("fail to start price feed: %w", err)
	}
	BasePrice.Start(ctx)
	Markets.Start(ctx)
	Stats.Start(ctx)
	Positions.Start(ctx)
	Orders.Start(ctx)
	Funding.Start(ctx)

	return nil
}
