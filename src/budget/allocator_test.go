package budget

import (
	"testing"

	"github.com/shopspring/decimal"

	"walletengine/src/model"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAllocatePercentScalingSumsToAvailableCash(t *testing.T) {
	account := Account{Cash: d("1000"), Equity: d("10000")}

	requests := []Request{
		{Symbol: "AAPL", Mode: model.BudgetModePercent, Requested: d("800")},
		{Symbol: "MSFT", Mode: model.BudgetModePercent, Requested: d("1200")},
	}

	plan := Allocate(account, requests)

	// 2000 requested against 1000 cash -> proportion 0.5
	if !plan.Proportion.Equal(d("0.5")) {
		t.Fatalf("proportion mismatch. got=%s want=0.5", plan.Proportion)
	}

	total := plan.Allocations["AAPL"].Remaining.Add(plan.Allocations["MSFT"].Remaining)
	if !total.Equal(plan.CashForPercent) {
		t.Fatalf("scaled remainders should sum to available cash. got=%s want=%s", total, plan.CashForPercent)
	}

	if !plan.Allocations["AAPL"].Remaining.Equal(d("400")) {
		t.Fatalf("AAPL remainder mismatch. got=%s want=400", plan.Allocations["AAPL"].Remaining)
	}
	if !plan.Allocations["MSFT"].Remaining.Equal(d("600")) {
		t.Fatalf("MSFT remainder mismatch. got=%s want=600", plan.Allocations["MSFT"].Remaining)
	}
}

func TestAllocateFixedNeverScales(t *testing.T) {
	// Fixed commitments exceed cash; they are still funded in full and
	// percent symbols get nothing.
	account := Account{Cash: d("500"), Equity: d("10000")}

	requests := []Request{
		{Symbol: "TSLA", Mode: model.BudgetModeFixed, Requested: d("700")},
		{Symbol: "NVDA", Mode: model.BudgetModePercent, Requested: d("300")},
	}

	plan := Allocate(account, requests)

	if !plan.Allocations["TSLA"].Remaining.Equal(d("700")) {
		t.Fatalf("fixed remainder must not scale. got=%s want=700", plan.Allocations["TSLA"].Remaining)
	}
	if !plan.CashForPercent.Equal(decimal.Zero) {
		t.Fatalf("expected no cash left for percent symbols, got %s", plan.CashForPercent)
	}
	if !plan.Allocations["NVDA"].Remaining.Equal(decimal.Zero) {
		t.Fatalf("percent remainder should be zero. got=%s", plan.Allocations["NVDA"].Remaining)
	}
}

func TestAllocateSubtractsCostBasisBeforeSums(t *testing.T) {
	account := Account{Cash: d("5000"), Equity: d("10000")}

	requests := []Request{
		{Symbol: "AAPL", Mode: model.BudgetModeFixed, Requested: d("1000"), CostBasis: d("400")},
		{Symbol: "MSFT", Mode: model.BudgetModeFixed, Requested: d("1000"), CostBasis: d("1500")},
	}

	plan := Allocate(account, requests)

	if !plan.Allocations["AAPL"].Remaining.Equal(d("600")) {
		t.Fatalf("remaining mismatch. got=%s want=600", plan.Allocations["AAPL"].Remaining)
	}

	// Position larger than the budget clamps to zero, never negative.
	if !plan.Allocations["MSFT"].Remaining.Equal(decimal.Zero) {
		t.Fatalf("remaining should clamp to zero. got=%s", plan.Allocations["MSFT"].Remaining)
	}

	// fixedNeed sums the clamped remainders, not the raw budgets.
	if !plan.FixedNeed.Equal(d("600")) {
		t.Fatalf("fixed need mismatch. got=%s want=600", plan.FixedNeed)
	}
}

func TestAllocateCostBasisFreesCashForPercent(t *testing.T) {
	// The fixed symbol already holds most of its budget, so only the fixed
	// remainder is reserved and the percent symbol scales against the rest.
	account := Account{Cash: d("1000"), Equity: d("10000")}

	requests := []Request{
		{Symbol: "TSLA", Mode: model.BudgetModeFixed, Requested: d("900"), CostBasis: d("700")},
		{Symbol: "NVDA", Mode: model.BudgetModePercent, Requested: d("1600")},
	}

	plan := Allocate(account, requests)

	if !plan.CashForPercent.Equal(d("800")) {
		t.Fatalf("cash for percent mismatch. got=%s want=800", plan.CashForPercent)
	}
	if !plan.Proportion.Equal(d("0.5")) {
		t.Fatalf("proportion mismatch. got=%s want=0.5", plan.Proportion)
	}
	if !plan.Allocations["NVDA"].Remaining.Equal(d("800")) {
		t.Fatalf("NVDA remainder mismatch. got=%s want=800", plan.Allocations["NVDA"].Remaining)
	}
}

func TestBuildRequests(t *testing.T) {
	account := Account{Cash: d("1000"), Equity: d("20000")}

	configs := []model.WalletSymbol{
		{Symbol: "AAPL", BudgetMode: model.BudgetModeFixed, BuyBudgetUSD: 750},
		{Symbol: "MSFT", BudgetMode: model.BudgetModePercent, PercentBudget: 5},
	}

	costBasis := map[string]decimal.Decimal{"AAPL": d("100")}

	requests := BuildRequests(configs, account, costBasis)
	if len(requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(requests))
	}

	if !requests[0].Requested.Equal(d("750")) {
		t.Fatalf("fixed request mismatch. got=%s want=750", requests[0].Requested)
	}
	if !requests[0].CostBasis.Equal(d("100")) {
		t.Fatalf("cost basis mismatch. got=%s want=100", requests[0].CostBasis)
	}

	// 5% of 20000 equity
	if !requests[1].Requested.Equal(d("1000")) {
		t.Fatalf("percent request mismatch. got=%s want=1000", requests[1].Requested)
	}
}
