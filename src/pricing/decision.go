package pricing

import "walletengine/src/model"

// Determine maps the position and budget state of a symbol to the action the
// engine should take this cycle.
func Determine(sharesOwned int64, budgetRemaining float64) (model.Decision, string) {
	hasShares := sharesOwned > 0
	hasBudget := budgetRemaining > 0

	switch {
	case hasShares && hasBudget:
		return model.DecisionBoth, "shares owned and budget available"
	case hasShares:
		return model.DecisionSell, "shares owned, no remaining budget"
	case hasBudget:
		return model.DecisionBuy, "budget available, no position"
	default:
		return model.DecisionHold, "no shares and no remaining budget"
	}
}

// ResolveBothLeg picks the single order side to submit when the decision is
// BOTH. Submitting both legs at once would self-trade, so only the side the
// market currently favors goes out.
//
// currentPrice is nil when the broker has no quote for the symbol; in that
// case the existing position is exited.
func ResolveBothLeg(currentPrice *float64, buyPrice float64) (string, string) {
	if currentPrice == nil {
		return model.SideSell, "no current price available, exiting existing position"
	}
	if *currentPrice <= buyPrice {
		return model.SideBuy, "current price at or below buy target"
	}
	return model.SideSell, "current price above buy target"
}
