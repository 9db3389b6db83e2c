package config

import (
	"dexd/pkg/s3client"
	"dexd/pkg/types"
	"dexd/pkg/utils"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Api           *ApiConfig           `yaml:"api"`
	Chain         *ChainConfig         `yaml:"chain"`
	PriceFeed     *PriceFeedConfig     `yaml:"priceFeed"`
	BasePrice     *BasePriceConfig     `yaml:"basePrice"`
	ExternalVenue *ExternalVenueConfig `yaml:"externalVenue"`
	Funding       *FundingConfig       `yaml:"funding"`
	Favorites     *FavoritesConfig     `yaml:"favorites"`
}

type ApiConfig struct {
	Port int `yaml:"port"`
}

type ChainConfig struct {
	RpcUrl                string `yaml:"rpcUrl"`
	MulticallAddress      string `yaml:"multicallAddress"`
	LensAddress           string `yaml:"lensAddress"`
	PriceManagerAddress   string `yaml:"priceManagerAddress"`
	TriggerVaultAddress   string `yaml:"triggerVaultAddress"`
	OrderApiUrl           string `yaml:"orderApiUrl"`           // request/broadcast API for order cancels
	RelayUrl              string `yaml:"relayUrl"`              // direct submission endpoint for signed trigger actions
	EnvPrefix             string `yaml:"envPrefix"`             // env prefix for the trading key e.g. DEXD -> DEXD_PRIVATE_KEY
	MarketPollIntervalS   int    `yaml:"marketPollIntervalS"`   // default 10
	PositionPollIntervalS int    `yaml:"positionPollIntervalS"` // default 4
	OrderPollIntervalS    int    `yaml:"orderPollIntervalS"`    // default 5
}

type PriceFeedConfig struct {
	WsUrl string `yaml:"wsUrl"`
}

type BasePriceConfig struct {
	Url      string `yaml:"url"`
	ChartUrl string `yaml:"chartUrl"` // TradingView-style history endpoint, 24h-change fallback
}

type ExternalVenueConfig struct {
	Url string `yaml:"url"`
}

type FundingConfig struct {
	ApiUrl        string `yaml:"apiUrl"`
	HistoryUrl    string `yaml:"historyUrl"`
	PollIntervalS int    `yaml:"pollIntervalS"` // default 300
	HistoryPollS  int    `yaml:"historyPollS"`  // default 60
	UseBnfFunding bool   `yaml:"useBnfFunding"` // fetch the Binance leg directly from Binance futures
}

type FavoritesConfig struct {
	Path string `yaml:"path"`
}

func LoadConfig(envName types.EnvName) (*Config, error) {
	yamlFiles := map[types.EnvName]string{
		types.EnvLocal: "dexd.yaml",
		types.EnvDev:   "dexd.dev.yaml",
		types.EnvProd:  "dexd.prod.yaml",
	}
	fileName := yamlFiles[envName]

	var data []byte
	var err error
	if Env.YamlMode == types.YamlModeS3 {
		client := s3client.Init(utils.LoadEnv("AWS_ACCESS_KEY"), utils.LoadEnv("AWS_SECRET_KEY"))
		data, err = s3client.GetObject(client, utils.LoadEnv("CONFIG_S3_BUCKET"), fileName)
		if err != nil {
			log.Fatalf("fail to load config '%s' from s3: %v", fileName, err)
		}
	} else {
		data, err = os.ReadFile(fileName)
		if err != nil {
			log.Fatalf("fail to load config file '%s': %v", fileName, err)
		}
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		log.Fatalf("fail to decode config file '%v': %v", fileName, err)
	}
	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(c *Config) {
	if c.Api == nil {
		c.Api = &ApiConfig{Port: 3000}
	}
	if c.Chain != nil {
		if c.Chain.MarketPollIntervalS == 0 {
			c.Chain.MarketPollIntervalS = 10
		}
		if c.Chain.PositionPollIntervalS == 0 {
			c.Chain.PositionPollIntervalS = 4
		}
		if c.Chain.OrderPollIntervalS == 0 {
			c.Chain.OrderPollIntervalS = 5
		}
	}
	if c.Funding != nil {
		if c.Funding.PollIntervalS == 0 {
			c.Funding.PollIntervalS = 300
		}
		if c.Funding.HistoryPollS == 0 {
			c.Funding.HistoryPollS = 60
		}
	}
	if c.Favorites == nil {
		c.Favorites = &FavoritesConfig{Path: "favorites.json"}
	}
}
