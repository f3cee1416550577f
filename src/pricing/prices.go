package pricing

import (
	"fmt"
	"math"
)

// Round4 rounds to 4 decimals, the internal precision of derived prices.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// Round2 rounds to 2 decimals, the precision the broker accepts.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ExecutionPrices are the derived limit prices for one symbol evaluation.
type ExecutionPrices struct {
	BuyPrice  float64
	SellPrice float64
}

// ComputeExecutionPrices derives the buy and sell limit prices from the live
// reference price and the stored baseline ratio.
//
// A buy offset of 1% means: buy when the stock is 1% cheap relative to the
// baseline ratio, i.e. buyPrice = ref / (baseline * 1.01). The sell side
// mirrors it with sellPrice = ref / (baseline * 0.99).
func ComputeExecutionPrices(refPrice, baseline, buyPct, sellPct float64) (ExecutionPrices, error) {
	if refPrice <= 0 {
		return ExecutionPrices{}, fmt.Errorf("reference price must be positive, got %v", refPrice)
	}
	if baseline <= 0 {
		return ExecutionPrices{}, fmt.Errorf("baseline must be positive, got %v", baseline)
	}

	buyMult := 1 + buyPct/100
	sellMult := 1 - sellPct/100
	if buyMult <= 0 || sellMult <= 0 {
		return ExecutionPrices{}, fmt.Errorf("offsets out of range: buy %v%% sell %v%%", buyPct, sellPct)
	}

	return ExecutionPrices{
		BuyPrice:  Round4(refPrice / (baseline * buyMult)),
		SellPrice: Round4(refPrice / (baseline * sellMult)),
	}, nil
}
