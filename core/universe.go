package core

import (
	"dexd/pkg/baseprice"
	"dexd/pkg/chain"
	"dexd/pkg/favorites"
	"dexd/pkg/funding"
	"dexd/pkg/marketdata"
	"dexd/pkg/orders"
	"dexd/pkg/position"
	"dexd/pkg/pricefeed"
	"dexd/pkg/stats"
)

// The engine universe. Everything is wired once in Bootstrap and read-only
// afterwards; each engine guards its own snapshot.
var (
	ChainClient *chain.Client
	Lens        *chain.Lens

	Feed      *pricefeed.Feed
	BasePrice *baseprice.Store
	Markets   *marketdata.Aggregator
	Stats     *stats.Engine
	Positions *position.Engine
	Orders    *orders.Engine
	Funding   *funding.Engine
	History   *funding.HistoryStore
	Favorites *favorites.Store
)
