package baseline

import (
	"context"
	"fmt"
	"time"

	logger "github.com/sirupsen/logrus"

	"walletengine/src/model"
	"walletengine/src/pricing"
)

// EquityBars fetches one day of minute bars for an equity symbol.
type EquityBars interface {
	GetMinuteBars(ctx context.Context, symbol string, day time.Time) ([]model.Bar, error)
}

// ReferenceBars fetches one day of minute bars for the crypto reference pair.
type ReferenceBars interface {
	GetMinuteBars(ctx context.Context, day time.Time) ([]model.Bar, error)
}

// BaselineWriter persists computed baseline rows.
type BaselineWriter interface {
	Upsert(ctx context.Context, row *model.BaselineDaily) error
}

// Service orchestrates one baseline computation: fetch both series, split
// them by session, align them, run every method and upsert the results.
type Service struct {
	equities  EquityBars
	reference ReferenceBars
	baselines BaselineWriter
	now       func() time.Time
}

func NewService(equities EquityBars, reference ReferenceBars, baselines BaselineWriter) *Service {
	return &Service{
		equities:  equities,
		reference: reference,
		baselines: baselines,
		now:       time.Now,
	}
}

// ComputationResult summarizes one symbol/day computation.
type ComputationResult struct {
	Symbol      string                `json:"symbol"`
	TradingDay  string                `json:"trading_day"`
	RowsWritten int                   `json:"rows_written"`
	PerSession  map[model.Session]int `json:"per_session"` // aligned sample count
}

// ComputeForSymbol computes and stores every (session, method) baseline for
// one symbol on one trading day. A day with no aligned data at all is a hard
// failure; individual methods that cannot produce a positive statistic are
// skipped silently.
func (s *Service) ComputeForSymbol(ctx context.Context, symbol string, day time.Time) (*ComputationResult, error) {
	tradingDay := pricing.TradingDayString(day)

	log := logger.WithFields(map[string]interface{}{
		"component":   "BaselineService",
		"symbol":      symbol,
		"trading_day": tradingDay,
	})
	log.Info("Computing baselines")

	refBars, err := s.reference.GetMinuteBars(ctx, day)
	if err != nil {
		return nil, model.NewAPIError("ComputeForSymbol.reference", err)
	}
	symbolBars, err := s.equities.GetMinuteBars(ctx, symbol, day)
	if err != nil {
		return nil, model.NewAPIError("ComputeForSymbol.equity", err)
	}

	if len(refBars) == 0 {
		return nil, model.NewDataError("ComputeForSymbol", fmt.Errorf("no reference bars for %s", tradingDay))
	}
	if len(symbolBars) == 0 {
		return nil, model.NewDataError("ComputeForSymbol", fmt.Errorf("no %s bars for %s", symbol, tradingDay))
	}

	refSessions := SplitIntoSessions(refBars)
	symbolSessions := SplitIntoSessions(symbolBars)

	result := &ComputationResult{
		Symbol:     symbol,
		TradingDay: tradingDay,
		PerSession: make(map[model.Session]int, 2),
	}

	totalAligned := 0
	for _, session := range []model.Session{model.SessionCore, model.SessionExtended} {
		points := Align(refSessions.Bars(session), symbolSessions.Bars(session))
		result.PerSession[session] = len(points)
		totalAligned += len(points)

		for _, method := range model.AllMethods {
			value, ok := Compute(method, points)
			if !ok || value <= 0 {
				continue
			}

			row := &model.BaselineDaily{
				TradingDay:  tradingDay,
				Symbol:      symbol,
				Session:     session,
				Method:      method,
				Baseline:    value,
				SampleCount: len(points),
				Source:      "computed",
				ComputedAt:  s.now(),
			}
			if err := s.baselines.Upsert(ctx, row); err != nil {
				return nil, model.NewExecutionError("ComputeForSymbol.upsert", err)
			}
			result.RowsWritten++
		}
	}

	if totalAligned == 0 {
		return nil, model.NewDataError("ComputeForSymbol", fmt.Errorf("no aligned bars for %s on %s", symbol, tradingDay))
	}

	log.WithFields(map[string]interface{}{
		"rows_written": result.RowsWritten,
		"aligned":      totalAligned,
	}).Info("Baselines computed")

	return result, nil
}
