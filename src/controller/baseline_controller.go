package controller

import (
	"context"
	"fmt"
	"time"

	logger "github.com/sirupsen/logrus"

	"walletengine/src/baseline"
	"walletengine/src/connectors"
	"walletengine/src/metrics"
	"walletengine/src/model"
	"walletengine/src/pricing"
	"walletengine/src/repository"
)

type enabledSymbolLister interface {
	FindDistinctEnabledSymbols(ctx context.Context) ([]string, error)
}

var (
	newEnabledSymbolLister = func() enabledSymbolLister {
		return repository.NewWalletSymbolRepository()
	}

	newBaselineService = func() *baseline.Service {
		cfg := connectors.GetConfig()
		md := connectors.NewMarketDataClient(cfg.MarketDataKey, "")

		var reference baseline.ReferenceBars
		if cfg.ReferenceBarSource == "binance" {
			reference = connectors.NewBinanceBarSource(cfg.BinanceSymbol, cfg.BinanceQuote)
		} else {
			reference = connectors.ReferenceBarSource{Client: md, Ticker: cfg.ReferenceTicker}
		}

		return baseline.NewService(connectors.EquityBarSource{Client: md}, reference, repository.NewBaselineRepository())
	}
)

// BaselineRunSummary aggregates one baseline computation run over a set of
// symbols.
type BaselineRunSummary struct {
	TradingDay string                       `json:"trading_day"`
	Results    []baseline.ComputationResult `json:"results"`
	Failed     map[string]string            `json:"failed,omitempty"`
}

// ComputeBaselines computes and stores baselines for the given symbols on the
// given trading day. With no symbols it covers every enabled symbol; with a
// zero day it uses the previous completed trading day. Per-symbol failures
// are collected, not fatal.
func ComputeBaselines(ctx context.Context, symbols []string, day time.Time) (*BaselineRunSummary, error) {
	errorRepo := newErrorRepo()

	if day.IsZero() {
		day = pricing.PreviousTradingDay(time.Now())
	}
	if !pricing.IsTradingDay(day) {
		return nil, model.NewConfigError("ComputeBaselines",
			fmt.Errorf("%s is not a trading day", pricing.TradingDayString(day)))
	}

	if len(symbols) == 0 {
		var err error
		symbols, err = newEnabledSymbolLister().FindDistinctEnabledSymbols(ctx)
		if err != nil {
			wrapped := model.NewCriticalError("FindDistinctEnabledSymbols", err)
			Capture(ctx, errorRepo, "", "", "ComputeBaselines", wrapped, nil)
			return nil, wrapped
		}
	}

	service := newBaselineService()
	summary := &BaselineRunSummary{
		TradingDay: pricing.TradingDayString(day),
		Failed:     make(map[string]string),
	}

	for _, symbol := range symbols {
		result, err := service.ComputeForSymbol(ctx, symbol, day)
		if err != nil {
			Capture(ctx, errorRepo, "", symbol, "ComputeBaselines", err,
				map[string]interface{}{"trading_day": summary.TradingDay})
			summary.Failed[symbol] = err.Error()
			continue
		}

		metrics.AddBaselineRows(result.RowsWritten)
		summary.Results = append(summary.Results, *result)
	}

	logger.WithFields(map[string]interface{}{
		"trading_day": summary.TradingDay,
		"computed":    len(summary.Results),
		"failed":      len(summary.Failed),
	}).Info("Baseline computation run finished")

	return summary, nil
}

// BackfillBaselines runs ComputeBaselines for every trading day in the
// inclusive [from, to] range.
func BackfillBaselines(ctx context.Context, symbols []string, from, to time.Time) ([]BaselineRunSummary, error) {
	if to.Before(from) {
		return nil, model.NewConfigError("BackfillBaselines", fmt.Errorf("range end before start"))
	}

	var summaries []BaselineRunSummary
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if !pricing.IsTradingDay(day) {
			continue
		}

		summary, err := ComputeBaselines(ctx, symbols, day)
		if err != nil {
			return summaries, err
		}
		summaries = append(summaries, *summary)
	}

	return summaries, nil
}
