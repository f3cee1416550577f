package budget

import (
	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"

	"walletengine/src/model"
)

// Account is the broker account state the allocator works from.
type Account struct {
	Cash   decimal.Decimal
	Equity decimal.Decimal
}

// Request is one symbol's budget ask before allocation.
type Request struct {
	Symbol    string
	Mode      string // fixed | percent
	Requested decimal.Decimal
	CostBasis decimal.Decimal
}

// Allocation is the allocator's answer for one symbol.
// Remaining is what is still available to buy after the existing position's
// cost basis is subtracted and, for percent mode, after proportional scaling.
type Allocation struct {
	Symbol    string
	Mode      string
	Requested decimal.Decimal
	CostBasis decimal.Decimal
	Remaining decimal.Decimal
}

// RemainingUSD returns the spendable remainder as a float for price math.
func (a Allocation) RemainingUSD() float64 {
	return a.Remaining.InexactFloat64()
}

// Plan is the result of allocating one wallet's budgets for a run.
type Plan struct {
	Allocations map[string]Allocation

	FixedNeed        decimal.Decimal
	PercentRequested decimal.Decimal
	CashForPercent   decimal.Decimal
	Proportion       decimal.Decimal
}

// BuildRequests turns the wallet's symbol configs into budget requests.
// Fixed mode asks for the configured dollar amount; percent mode asks for a
// share of account equity.
func BuildRequests(configs []model.WalletSymbol, account Account, costBasis map[string]decimal.Decimal) []Request {
	requests := make([]Request, 0, len(configs))
	hundred := decimal.NewFromInt(100)

	for _, cfg := range configs {
		req := Request{
			Symbol:    cfg.Symbol,
			Mode:      cfg.BudgetMode,
			CostBasis: costBasis[cfg.Symbol],
		}

		if cfg.BudgetMode == model.BudgetModePercent {
			req.Requested = account.Equity.
				Mul(decimal.NewFromFloat(cfg.PercentBudget)).
				Div(hundred)
		} else {
			req.Requested = decimal.NewFromFloat(cfg.BuyBudgetUSD)
		}

		if req.Requested.IsNegative() {
			req.Requested = decimal.Zero
		}

		requests = append(requests, req)
	}

	return requests
}

// remainingRequest is the spendable part of a request: the budget minus the
// position already held, floored at zero.
func remainingRequest(req Request) decimal.Decimal {
	remaining := req.Requested.Sub(req.CostBasis)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// Allocate distributes the account's cash across the requests.
//
// Fixed-mode remainders are hard commitments: they are funded in full and
// never scaled, even when the account cannot actually cover them.
// Percent-mode remainders share whatever cash is left after the fixed
// commitments; when that is not enough, each is scaled down by the same
// proportion, so the scaled remainders sum exactly to the available cash.
func Allocate(account Account, requests []Request) Plan {
	fixedNeed := decimal.Zero
	percentRequested := decimal.Zero

	for _, req := range requests {
		if req.Mode == model.BudgetModePercent {
			percentRequested = percentRequested.Add(remainingRequest(req))
		} else {
			fixedNeed = fixedNeed.Add(remainingRequest(req))
		}
	}

	cashForPercent := account.Cash.Sub(fixedNeed)
	if cashForPercent.IsNegative() {
		cashForPercent = decimal.Zero
	}

	proportion := decimal.NewFromInt(1)
	if percentRequested.GreaterThan(cashForPercent) && percentRequested.IsPositive() {
		proportion = cashForPercent.Div(percentRequested)
	}

	allocations := make(map[string]Allocation, len(requests))
	for _, req := range requests {
		remaining := remainingRequest(req)
		if req.Mode == model.BudgetModePercent {
			remaining = remaining.Mul(proportion)
		}

		allocations[req.Symbol] = Allocation{
			Symbol:    req.Symbol,
			Mode:      req.Mode,
			Requested: req.Requested,
			CostBasis: req.CostBasis,
			Remaining: remaining,
		}
	}

	logger.WithFields(map[string]interface{}{
		"cash":              account.Cash.String(),
		"equity":            account.Equity.String(),
		"fixed_need":        fixedNeed.String(),
		"percent_requested": percentRequested.String(),
		"cash_for_percent":  cashForPercent.String(),
		"proportion":        proportion.String(),
		"symbols":           len(requests),
	}).Debug("Budget allocation computed")

	return Plan{
		Allocations:      allocations,
		FixedNeed:        fixedNeed,
		PercentRequested: percentRequested,
		CashForPercent:   cashForPercent,
		Proportion:       proportion,
	}
}
