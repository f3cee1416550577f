// Alternative reference bar source reading minute klines straight from the
// exchange. Selected via REFERENCE_BAR_SOURCE=binance.
package connectors

import (
	"context"
	"net/http"
	"time"

	"github.com/nntaoli-project/goex"
	"github.com/nntaoli-project/goex/binance"

	"walletengine/src/model"
)

type BinanceBarSource struct {
	exchange goex.API
	pair     goex.CurrencyPair
}

func NewBinanceBarSource(symbol, quote string) *BinanceBarSource {
	apiConfig := &goex.APIConfig{
		HttpClient: http.DefaultClient,
		Endpoint:   binance.GLOBAL_API_BASE_URL,
	}

	return &BinanceBarSource{
		exchange: binance.NewWithConfig(apiConfig),
		pair:     goex.NewCurrencyPair(goex.Currency{Symbol: symbol}, goex.Currency{Symbol: quote}),
	}
}

// GetMinuteBars fetches the full day of 1m klines for the reference pair.
// Kline timestamps are unix seconds; bars carry them as time.Time like every
// other source.
func (s *BinanceBarSource) GetMinuteBars(ctx context.Context, day time.Time) ([]model.Bar, error) {
	const millis = 1000
	const minutesPerDay = 1440

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	klines, err := s.exchange.GetKlineRecords(
		s.pair,
		goex.KLINE_PERIOD_1MIN,
		minutesPerDay,
		goex.OptionalParameter{}.
			Optional("startTime", start.Unix()*millis).
			Optional("endTime", end.Unix()*millis),
	)
	if err != nil {
		return nil, err
	}

	bars := make([]model.Bar, 0, len(klines))
	for _, k := range klines {
		bars = append(bars, model.Bar{
			Timestamp: time.Unix(k.Timestamp, 0).UTC(),
			Open:      k.Open,
			High:      k.High,
			Low:       k.Low,
			Close:     k.Close,
			Volume:    k.Vol,
		})
	}

	return bars, nil
}
