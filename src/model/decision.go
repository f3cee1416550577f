package model

// Decision is the outcome of evaluating one symbol against its baseline.
type Decision string

const (
	DecisionHold Decision = "HOLD"
	DecisionBuy  Decision = "BUY"
	DecisionSell Decision = "SELL"
	DecisionBoth Decision = "BOTH"
)

const (
	SideBuy  = "buy"
	SideSell = "sell"
)
