// REST CLIENT FOR THE MARKET DATA API (aggregates + last trade)
package connectors

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"walletengine/src/model"
)

type MarketDataClient struct {
	apiKey  string
	baseURL string
	http    *resty.Client
}

func NewMarketDataClient(apiKey, baseURL string) *MarketDataClient {
	if baseURL == "" {
		baseURL = GetConfig().MarketDataBaseURL
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(defaultRetryAttempts - 1).
		SetRetryWaitTime(defaultRetryBaseDelay).
		SetRetryMaxWaitTime(defaultRetryMaxBackoff).
		AddRetryCondition(isRetryableResp)

	return &MarketDataClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    httpClient,
	}
}

func (c *MarketDataClient) get(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("apiKey", c.apiKey).
		Get(path)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return resp.Body(), nil
}

type lastTradeResponse struct {
	Results struct {
		Price     float64 `json:"p"`
		Timestamp int64   `json:"t"` // nanoseconds
	} `json:"results"`
}

// GetLastTrade returns the most recent trade for a ticker.
// Crypto tickers use the exchange prefix form, e.g. X:BTCUSD.
func (c *MarketDataClient) GetLastTrade(ctx context.Context, ticker string) (*LastTrade, error) {
	raw, err := c.get(ctx, "/v2/last/trade/"+ticker)
	if err != nil {
		return nil, err
	}

	var resp lastTradeResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}
	if resp.Results.Price <= 0 {
		return nil, fmt.Errorf("no last trade for %s", ticker)
	}

	return &LastTrade{
		Price:     resp.Results.Price,
		Timestamp: time.Unix(0, resp.Results.Timestamp),
	}, nil
}

type aggsResponse struct {
	Results []struct {
		Timestamp int64   `json:"t"` // milliseconds
		Open      float64 `json:"o"`
		High      float64 `json:"h"`
		Low       float64 `json:"l"`
		Close     float64 `json:"c"`
		Volume    float64 `json:"v"`
	} `json:"results"`
}

// GetMinuteBars fetches one day of minute aggregates for a ticker.
func (c *MarketDataClient) GetMinuteBars(ctx context.Context, ticker string, day time.Time) ([]model.Bar, error) {
	date := day.Format("2006-01-02")
	path := fmt.Sprintf("/v2/aggs/ticker/%s/range/1/minute/%s/%s?adjusted=true&sort=asc&limit=50000", ticker, date, date)

	raw, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var resp aggsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}

	bars := make([]model.Bar, 0, len(resp.Results))
	for _, r := range resp.Results {
		bars = append(bars, model.Bar{
			Timestamp: time.UnixMilli(r.Timestamp),
			Open:      r.Open,
			High:      r.High,
			Low:       r.Low,
			Close:     r.Close,
			Volume:    r.Volume,
		})
	}

	return bars, nil
}

// EquityBarSource adapts the client to the baseline engine's equity feed.
type EquityBarSource struct {
	Client *MarketDataClient
}

func (s EquityBarSource) GetMinuteBars(ctx context.Context, symbol string, day time.Time) ([]model.Bar, error) {
	return s.Client.GetMinuteBars(ctx, symbol, day)
}

// ReferenceBarSource adapts the client to the baseline engine's crypto feed,
// pinned to the configured reference ticker.
type ReferenceBarSource struct {
	Client *MarketDataClient
	Ticker string
}

func (s ReferenceBarSource) GetMinuteBars(ctx context.Context, day time.Time) ([]model.Bar, error) {
	return s.Client.GetMinuteBars(ctx, s.Ticker, day)
}
