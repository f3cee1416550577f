package baselines

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"walletengine/src/controller"
	"walletengine/src/database"
	"walletengine/src/pricing"
)

// Baselines computes baseline rows from the command line, either for one
// trading day or backfilling a date range.
type Baselines struct {
	Symbols string // comma separated, empty = every enabled symbol
	From    string // YYYY-MM-DD, empty = previous trading day
	To      string // YYYY-MM-DD, empty = same as From
}

func (b *Baselines) Start() error {
	if err := database.InitMainDB(); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to main database")
		return err
	}

	var symbols []string
	for _, symbol := range strings.Split(b.Symbols, ",") {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol != "" {
			symbols = append(symbols, symbol)
		}
	}

	from, to, err := b.parseRange()
	if err != nil {
		return err
	}

	logrus.WithFields(map[string]interface{}{
		"symbols": symbols,
		"from":    pricing.TradingDayString(from),
		"to":      pricing.TradingDayString(to),
	}).Info("Starting baseline computation")

	summaries, err := controller.BackfillBaselines(context.Background(), symbols, from, to)
	if err != nil {
		logrus.WithError(err).Error("Baseline computation failed")
		return err
	}

	for _, summary := range summaries {
		logrus.WithFields(map[string]interface{}{
			"trading_day": summary.TradingDay,
			"computed":    len(summary.Results),
			"failed":      len(summary.Failed),
		}).Info("Baseline day done")

		for symbol, reason := range summary.Failed {
			logrus.WithFields(map[string]interface{}{
				"trading_day": summary.TradingDay,
				"symbol":      symbol,
			}).Warn(reason)
		}
	}

	return nil
}

func (b *Baselines) parseRange() (time.Time, time.Time, error) {
	if b.From == "" {
		day := pricing.PreviousTradingDay(time.Now())
		return day, day, nil
	}

	from, err := time.Parse("2006-01-02", b.From)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid from date %q: %w", b.From, err)
	}

	to := from
	if b.To != "" {
		to, err = time.Parse("2006-01-02", b.To)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to date %q: %w", b.To, err)
		}
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("to date %s before from date %s", b.To, b.From)
	}

	return from, to, nil
}
