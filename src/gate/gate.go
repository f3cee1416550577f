package gate

import (
	"fmt"
	"math"
	"time"

	logger "github.com/sirupsen/logrus"

	"walletengine/src/model"
)

// DefaultCooldown is the minimum gap between two orders on the same
// (wallet, symbol) pair.
const DefaultCooldown = 60 * time.Second

// Price sanity thresholds: reject when the limit price strays more than 10%
// or $0.50 from the market price, whichever is tighter.
const (
	sanityPctThreshold = 0.10
	sanityAbsThreshold = 0.50
)

// OpenOrder is the slice of broker order state the gate needs.
type OpenOrder struct {
	Symbol string
	Side   string
}

// Stable codes for blocked checks, used as metric labels.
const (
	BlockCooldown      = "cooldown"
	BlockOrderConflict = "order_conflict"
	BlockPriceSanity   = "price_sanity"
)

// CheckResult is the outcome of an eligibility check.
type CheckResult struct {
	Allowed bool
	Code    string
	Reason  string
}

// Gate guards order submission with a cooldown and a conflict check.
type Gate struct {
	cooldowns CooldownStore
	cooldown  time.Duration
	now       func() time.Time
}

func New(store CooldownStore) *Gate {
	return &Gate{
		cooldowns: store,
		cooldown:  DefaultCooldown,
		now:       time.Now,
	}
}

// WithCooldown overrides the cooldown window.
func (g *Gate) WithCooldown(d time.Duration) *Gate {
	g.cooldown = d
	return g
}

// CanPlaceOrder checks the cooldown and then scans the wallet's open orders
// for an opposite-side resting order on the same symbol.
func (g *Gate) CanPlaceOrder(walletID, symbol, side string, openOrders []OpenOrder) CheckResult {
	if last, ok := g.cooldowns.LastOrderAt(walletID, symbol); ok {
		elapsed := g.now().Sub(last)
		if elapsed < g.cooldown {
			remaining := g.cooldown - elapsed
			logger.WithFields(map[string]interface{}{
				"wallet_id": walletID,
				"symbol":    symbol,
				"remaining": remaining.String(),
			}).Warn("Order blocked by cooldown")
			return CheckResult{Code: BlockCooldown, Reason: fmt.Sprintf("cooldown active, %s remaining", remaining.Round(time.Second))}
		}
	}

	opposite := model.SideSell
	if side == model.SideSell {
		opposite = model.SideBuy
	}

	for _, open := range openOrders {
		if open.Symbol == symbol && open.Side == opposite {
			logger.WithFields(map[string]interface{}{
				"wallet_id": walletID,
				"symbol":    symbol,
				"side":      side,
			}).Warn("Order blocked by conflicting open order")
			return CheckResult{Code: BlockOrderConflict, Reason: fmt.Sprintf("open %s order already resting on %s", opposite, symbol)}
		}
	}

	return CheckResult{Allowed: true}
}

// IsOrderPriceReasonable rejects limit prices too far from the current
// market. A missing market price allows the order through; the safety net
// only applies when there is something to compare against.
func IsOrderPriceReasonable(orderPrice float64, marketPrice *float64) CheckResult {
	if marketPrice == nil {
		return CheckResult{Allowed: true}
	}

	threshold := math.Min(*marketPrice*sanityPctThreshold, sanityAbsThreshold)
	deviation := math.Abs(orderPrice - *marketPrice)
	if deviation > threshold {
		return CheckResult{
			Code: BlockPriceSanity,
			Reason: fmt.Sprintf("limit price %.2f deviates %.2f from market %.2f (max %.2f)",
				orderPrice, deviation, *marketPrice, threshold),
		}
	}

	return CheckResult{Allowed: true}
}

// RecordOrder starts the cooldown clock for the pair.
func (g *Gate) RecordOrder(walletID, symbol string) {
	g.cooldowns.RecordOrder(walletID, symbol, g.now())
}
