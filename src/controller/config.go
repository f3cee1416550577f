package controller

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Cooldown between two orders on the same (wallet, symbol) pair.
	OrderCooldownSeconds int `envconfig:"ORDER_COOLDOWN_SECONDS" default:"60"`

	// Cancel every resting order of the wallet before evaluating symbols.
	CancelOpenOrders bool `envconfig:"CANCEL_OPEN_ORDERS" default:"true"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
