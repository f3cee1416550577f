package controller

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"walletengine/src/budget"
	"walletengine/src/connectors"
	"walletengine/src/gate"
	"walletengine/src/metrics"
	"walletengine/src/model"
	"walletengine/src/pricing"
)

// executeSymbol evaluates and, when warranted, trades one symbol. Failures
// are contained: the symbol is reported FAILED and the loop moves on.
func (c *WalletController) executeSymbol(
	ctx context.Context,
	wallet *model.Wallet,
	cfg model.WalletSymbol,
	session model.Session,
	refPrice float64,
	allocation budget.Allocation,
	position connectors.Position,
	openOrders []connectors.OpenOrder,
	account *connectors.Account,
	cumulativeSpent *float64,
) SymbolResult {

	result := SymbolResult{Symbol: cfg.Symbol}

	method := cfg.Method(session)
	baselineRow, err := c.baselines.FindLatest(ctx, cfg.Symbol, session, method)
	if err != nil {
		wrapped := model.NewExecutionError("baselines.FindLatest", err)
		Capture(ctx, c.errorsRepo, wallet.ID, cfg.Symbol, "executeSymbol", wrapped, nil)
		result.Status = SymbolStatusFailed
		result.Reason = "baseline lookup failed"
		return result
	}
	if baselineRow == nil {
		wrapped := model.NewDataError("baselines.FindLatest",
			fmt.Errorf("no baseline for %s %s %s", cfg.Symbol, session, method))
		Capture(ctx, c.errorsRepo, wallet.ID, cfg.Symbol, "executeSymbol", wrapped, nil)
		result.Status = SymbolStatusFailed
		result.Reason = "no baseline available"
		return result
	}

	prices, err := pricing.ComputeExecutionPrices(
		refPrice, baselineRow.Baseline, cfg.BuyPct(session), cfg.SellPct(session))
	if err != nil {
		wrapped := model.NewDataError("pricing.ComputeExecutionPrices", err)
		Capture(ctx, c.errorsRepo, wallet.ID, cfg.Symbol, "executeSymbol", wrapped, nil)
		result.Status = SymbolStatusFailed
		result.Reason = "price derivation failed"
		return result
	}

	budgetAvailable := math.Min(allocation.RemainingUSD(), account.Cash-*cumulativeSpent)
	if budgetAvailable < 0 {
		budgetAvailable = 0
	}

	decision, reason := pricing.Determine(position.Qty, budgetAvailable)
	metrics.IncSymbolDecision(string(decision))
	result.Decision = decision

	stockPrice := 0.0
	currentRatio := 0.0
	if position.CurrentPrice != nil && *position.CurrentPrice > 0 {
		stockPrice = *position.CurrentPrice
		currentRatio = pricing.Round4(refPrice / stockPrice)
	}

	snapshot := &model.ExecutionSnapshot{
		WalletID:        wallet.ID,
		Symbol:          cfg.Symbol,
		Session:         session,
		ReferencePrice:  refPrice,
		StockPrice:      stockPrice,
		CurrentRatio:    currentRatio,
		BaselineValue:   baselineRow.Baseline,
		BaselineMethod:  method,
		BuyPrice:        prices.BuyPrice,
		SellPrice:       prices.SellPrice,
		Decision:        decision,
		Reason:          reason,
		SharesOwned:     position.Qty,
		BudgetAvailable: budgetAvailable,
	}

	if decision == model.DecisionHold {
		result.Status = SymbolStatusSkipped
		result.Reason = reason
		c.persistOutcome(ctx, wallet, cfg.Symbol, snapshot, nil)
		return result
	}

	side := model.SideBuy
	if decision == model.DecisionSell {
		side = model.SideSell
	} else if decision == model.DecisionBoth {
		var legReason string
		side, legReason = pricing.ResolveBothLeg(position.CurrentPrice, prices.BuyPrice)
		snapshot.Reason = reason + "; " + legReason
	}
	result.Side = side

	gateOrders := make([]gate.OpenOrder, 0, len(openOrders))
	for _, open := range openOrders {
		gateOrders = append(gateOrders, gate.OpenOrder{Symbol: open.Symbol, Side: open.Side})
	}

	if check := c.gate.CanPlaceOrder(wallet.ID, cfg.Symbol, side, gateOrders); !check.Allowed {
		metrics.IncOrderSkipped(check.Code)
		result.Status = SymbolStatusSkipped
		result.Reason = check.Reason
		snapshot.Reason = check.Reason
		c.persistOutcome(ctx, wallet, cfg.Symbol, snapshot, nil)
		return result
	}

	limitPrice := prices.BuyPrice
	if side == model.SideSell {
		limitPrice = prices.SellPrice
	}
	limitPrice = pricing.Round2(limitPrice)

	if check := gate.IsOrderPriceReasonable(limitPrice, position.CurrentPrice); !check.Allowed {
		metrics.IncOrderSkipped(check.Code)
		result.Status = SymbolStatusSkipped
		result.Reason = check.Reason
		snapshot.Reason = check.Reason
		c.persistOutcome(ctx, wallet, cfg.Symbol, snapshot, nil)
		return result
	}

	var qty int64
	if side == model.SideBuy {
		qty = int64(math.Floor(budgetAvailable / prices.BuyPrice))
	} else {
		qty = position.Qty
	}
	if qty <= 0 {
		metrics.IncOrderSkipped("zero_qty")
		result.Status = SymbolStatusSkipped
		result.Reason = "budget too small for one share"
		snapshot.Reason = result.Reason
		c.persistOutcome(ctx, wallet, cfg.Symbol, snapshot, nil)
		return result
	}

	request := connectors.OrderRequest{
		Symbol:        cfg.Symbol,
		Qty:           qty,
		Side:          side,
		LimitPrice:    limitPrice,
		TimeInForce:   "day",
		ExtendedHours: session != model.SessionCore,
		ClientOrderID: uuid.New().String(),
	}

	ack, err := c.broker.SubmitLimitOrder(ctx, request)
	if err != nil {
		wrapped := model.NewAPIError("broker.SubmitLimitOrder", err)
		Capture(ctx, c.errorsRepo, wallet.ID, cfg.Symbol, "executeSymbol", wrapped,
			map[string]interface{}{"side": side, "qty": qty, "limit_price": limitPrice})
		result.Status = SymbolStatusFailed
		result.Reason = "order submission failed"
		snapshot.Reason = result.Reason
		c.persistOutcome(ctx, wallet, cfg.Symbol, snapshot, nil)
		return result
	}

	order := &model.ExecutionOrder{
		WalletID:      wallet.ID,
		UserID:        wallet.UserID,
		Symbol:        cfg.Symbol,
		Side:          side,
		Qty:           qty,
		LimitPrice:    limitPrice,
		TimeInForce:   request.TimeInForce,
		ExtendedHours: request.ExtendedHours,
		Session:       session,
		ClientOrderID: request.ClientOrderID,
		BrokerOrderID: ack.ID,
		Status:        ack.Status,
	}

	c.persistOutcome(ctx, wallet, cfg.Symbol, snapshot, order)

	c.gate.RecordOrder(wallet.ID, cfg.Symbol)
	metrics.IncOrderSubmitted(side)

	if side == model.SideBuy {
		*cumulativeSpent += float64(qty) * limitPrice
	}

	result.Status = SymbolStatusExecuted
	result.Qty = qty
	result.Price = limitPrice
	result.Reason = snapshot.Reason

	logger.WithFields(map[string]interface{}{
		"wallet_id":       wallet.ID,
		"symbol":          cfg.Symbol,
		"side":            side,
		"qty":             qty,
		"limit_price":     limitPrice,
		"broker_order_id": ack.ID,
	}).Info("Order submitted")

	return result
}

func (c *WalletController) persistOutcome(ctx context.Context, wallet *model.Wallet, symbol string, snapshot *model.ExecutionSnapshot, order *model.ExecutionOrder) {
	if err := persistSymbolOutcome(ctx, snapshot, order); err != nil {
		wrapped := model.NewExecutionError("persistSymbolOutcome", err)
		Capture(ctx, c.errorsRepo, wallet.ID, symbol, "persistOutcome", wrapped, nil)
	}
}
