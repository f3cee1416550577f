package connectors

import "time"

// Account is the broker account snapshot the engine budgets against.
type Account struct {
	Cash        float64
	Equity      float64
	BuyingPower float64
}

// Position is one open equity position. CurrentPrice is nil when the broker
// has no quote for the symbol.
type Position struct {
	Symbol       string
	Qty          int64
	CostBasis    float64
	CurrentPrice *float64
	MarketValue  float64
	UnrealizedPL float64
}

// OpenOrder is one resting order at the broker.
type OpenOrder struct {
	ID         string
	Symbol     string
	Side       string
	Qty        int64
	LimitPrice float64
}

// OrderRequest is a limit order submission.
type OrderRequest struct {
	Symbol        string
	Qty           int64
	Side          string // buy | sell
	LimitPrice    float64
	TimeInForce   string
	ExtendedHours bool
	ClientOrderID string
}

// OrderAck is the broker's answer to a submission.
type OrderAck struct {
	ID     string
	Status string
}

// LastTrade is the most recent trade for a ticker.
type LastTrade struct {
	Price     float64
	Timestamp time.Time
}
