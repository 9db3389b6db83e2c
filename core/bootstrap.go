package core

import (
	"fmt"
	"strings"
	"time"

	"dexd/config"
	"dexd/pkg/baseprice"
	"dexd/pkg/chain"
	"dexd/pkg/favorites"
	"dexd/pkg/funding"
	"dexd/pkg/marketdata"
	"dexd/pkg/orders"
	"dexd/pkg/position"
	"dexd/pkg/pricefeed"
	"dexd/pkg/stats"
	"dexd/pkg/utils"

	"github.com/ethereum/go-ethereum/crypto"
	log "github.com/sirupsen/logrus"
)

func Bootstrap(config config.Config) error {
	log.Info("🦾 Bootstrapping...")

	// (1) load the account key; every engine that talks chain needs the address
	keyHex := strings.TrimPrefix(utils.LoadEnv(config.Chain.EnvPrefix+"_PRIVATE_KEY"), "0x")
	privKey, err := crypto.HexToECDSA(keyHex)
	if err != nil {
		return fmt.Errorf("fail to parse account key: %w", err)
	}
	address := crypto.PubkeyToAddress(privKey.PublicKey)
	log.Infof("account '%v' loaded", address.Hex())

	// (2) chain client + readonly lens
	ChainClient, err = chain.NewClient(
		config.Chain.RpcUrl,
		config.Chain.MulticallAddress,
		config.Chain.LensAddress,
		config.Chain.PriceManagerAddress,
		config.Chain.TriggerVaultAddress,
	)
	if err != nil {
		return fmt.Errorf("fail to init chain client: %w", err)
	}
	Lens, err = chain.NewLens()
	if err != nil {
		return fmt.Errorf("fail to init lens: %w", err)
	}

	// (3) price inputs
	Feed, err = pricefeed.New(config.PriceFeed.WsUrl)
	if err != nil {
		return fmt.Errorf("fail to init price feed: %w", err)
	}
	BasePrice = baseprice.New(config.BasePrice.Url)

	// (4) market state
	Markets = marketdata.NewAggregator(ChainClient, ChainClient.LensAddress, Lens,
		time.Duration(config.Chain.MarketPollIntervalS)*time.Second)
	var chart *stats.ChartClient
	if config.BasePrice.ChartUrl != "" {
		chart = stats.NewChartClient(config.BasePrice.ChartUrl)
	}
	Stats = stats.NewEngine(BasePrice, Feed, chart, marketdata.Pairs)

	// (5) account state
	venue := position.NewVenueClient(config.ExternalVenue.Url)
	Positions = position.NewEngine(ChainClient, Lens, venue, Feed, address,
		time.Duration(config.Chain.PositionPollIntervalS)*time.Second)
	Orders = orders.NewEngine(ChainClient, Lens, Feed, address, privKey,
		config.Chain.OrderApiUrl, config.Chain.RelayUrl,
		time.Duration(config.Chain.OrderPollIntervalS)*time.Second)

	// (6) funding
	Funding = funding.NewEngine(Markets, config.Funding.ApiUrl,
		time.Duration(config.Funding.PollIntervalS)*time.Second,
		config.Funding.UseBnfFunding)
	History = funding.NewHistoryStore(config.Funding.HistoryUrl,
		time.Duration(config.Funding.HistoryPollS)*time.Second)

	// (7) favorites
	Favorites = favorites.New(config.Favorites.Path)

	log.Infof("engines registered: %v pairs", len(marketdata.Pairs))
	return nil
}
