package model

import "time"

// Bar is one minute OHLCV bar as returned by a market data source.
// Not persisted; bars only live for the duration of a baseline computation.
type Bar struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}
