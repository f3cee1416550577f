package connectors

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	BrokerBaseURLPaper string `envconfig:"BROKER_BASE_URL_PAPER" default:"https://paper-api.alpaca.markets"`
	BrokerBaseURLLive  string `envconfig:"BROKER_BASE_URL_LIVE" default:"https://api.alpaca.markets"`

	MarketDataBaseURL string `envconfig:"MARKET_DATA_BASE_URL" default:"https://api.polygon.io"`

	// MarketDataKey is the service-level key used for baseline computation,
	// where no wallet credentials are in scope.
	MarketDataKey string `envconfig:"MARKET_DATA_API_KEY" default:""`

	// ReferenceTicker is the crypto pair used as the ratio numerator.
	ReferenceTicker string `envconfig:"REFERENCE_TICKER" default:"X:BTCUSD"`

	// ReferenceBarSource selects where baseline reference bars come from:
	// "marketdata" (aggregates for ReferenceTicker) or "binance" (exchange klines).
	ReferenceBarSource string `envconfig:"REFERENCE_BAR_SOURCE" default:"marketdata"`
	BinanceSymbol      string `envconfig:"BINANCE_SYMBOL" default:"BTC"`
	BinanceQuote       string `envconfig:"BINANCE_QUOTE" default:"USDT"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
