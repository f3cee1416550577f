package executors

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// EngineEnabled is the global kill switch for the scheduler loop.
	EngineEnabled bool          `envconfig:"ENGINE_ENABLED" default:"true"`
	LoopPeriod    time.Duration `envconfig:"LOOP_PERIOD" default:"60s"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
