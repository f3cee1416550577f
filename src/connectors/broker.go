// REST CLIENT FOR THE BROKERAGE TRADING API
// RESTY ONLY + INTERNAL RETRY
package connectors

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	logger "github.com/sirupsen/logrus"
)

// -----------------------------
// CONFIG
// -----------------------------
const (
	// Default retry configuration
	defaultRetryAttempts   = 5
	defaultRetryBaseDelay  = 500 * time.Millisecond
	defaultRetryMaxBackoff = 8 * time.Second
)

func isRetryableResp(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}

	if r == nil {
		return false
	}

	code := r.StatusCode()

	if code >= 500 && code <= 599 {
		return true
	}
	if code == 429 {
		return true
	}
	if code == 408 {
		return true
	}
	return false
}

// -----------------------------
// A) AUTHENTICATED CLIENT
// -----------------------------
type BrokerClient struct {
	apiKey    string
	apiSecret string
	baseURL   string
	http      *resty.Client
}

func NewBrokerClient(apiKey, apiSecret, baseURL string) *BrokerClient {
	retryCount := defaultRetryAttempts - 1

	if baseURL == "" {
		baseURL = GetConfig().BrokerBaseURLPaper
		logger.Warnf("No base URL provided, using default: %s", baseURL)
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(retryCount).
		SetRetryWaitTime(defaultRetryBaseDelay).
		SetRetryMaxWaitTime(defaultRetryMaxBackoff).
		AddRetryCondition(isRetryableResp)

	return &BrokerClient{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		baseURL:   baseURL,
		http:      httpClient,
	}
}

func (c *BrokerClient) doRequest(ctx context.Context, method, path string, body interface{}) ([]byte, int, error) {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("APCA-API-KEY-ID", c.apiKey).
		SetHeader("APCA-API-SECRET-KEY", c.apiSecret)

	if body != nil {
		req = req.SetBody(body).SetHeader("Content-Type", "application/json")
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, 0, err
	}

	raw := resp.Body()
	code := resp.StatusCode()

	if code < 200 || code >= 300 {
		return nil, code, fmt.Errorf("HTTP %d: %s", code, string(raw))
	}

	return raw, code, nil
}

// Broker numeric fields arrive as JSON strings.
func parseBrokerFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// -----------------------------
// B) ACCOUNT & POSITION METHODS
// -----------------------------

type accountResponse struct {
	Cash        string `json:"cash"`
	Equity      string `json:"equity"`
	BuyingPower string `json:"buying_power"`
}

func (c *BrokerClient) GetAccount(ctx context.Context) (*Account, error) {
	raw, _, err := c.doRequest(ctx, "GET", "/v2/account", nil)
	if err != nil {
		return nil, err
	}

	var resp accountResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}

	return &Account{
		Cash:        parseBrokerFloat(resp.Cash),
		Equity:      parseBrokerFloat(resp.Equity),
		BuyingPower: parseBrokerFloat(resp.BuyingPower),
	}, nil
}

type positionResponse struct {
	Symbol       string `json:"symbol"`
	Qty          string `json:"qty"`
	CostBasis    string `json:"cost_basis"`
	CurrentPrice string `json:"current_price"`
	MarketValue  string `json:"market_value"`
	UnrealizedPL string `json:"unrealized_pl"`
}

// GetPositions returns the open positions keyed by symbol.
func (c *BrokerClient) GetPositions(ctx context.Context) (map[string]Position, error) {
	raw, _, err := c.doRequest(ctx, "GET", "/v2/positions", nil)
	if err != nil {
		return nil, err
	}

	var resp []positionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}

	positions := make(map[string]Position, len(resp))
	for _, p := range resp {
		pos := Position{
			Symbol:       p.Symbol,
			Qty:          int64(parseBrokerFloat(p.Qty)),
			CostBasis:    parseBrokerFloat(p.CostBasis),
			MarketValue:  parseBrokerFloat(p.MarketValue),
			UnrealizedPL: parseBrokerFloat(p.UnrealizedPL),
		}
		if price := parseBrokerFloat(p.CurrentPrice); price > 0 {
			pos.CurrentPrice = &price
		}
		positions[p.Symbol] = pos
	}

	return positions, nil
}

// -----------------------------
// C) ORDER METHODS
// -----------------------------

type orderResponse struct {
	ID         string `json:"id"`
	Symbol     string `json:"symbol"`
	Side       string `json:"side"`
	Qty        string `json:"qty"`
	LimitPrice string `json:"limit_price"`
	Status     string `json:"status"`
}

func (c *BrokerClient) GetOpenOrders(ctx context.Context) ([]OpenOrder, error) {
	raw, _, err := c.doRequest(ctx, "GET", "/v2/orders?status=open&limit=500", nil)
	if err != nil {
		return nil, err
	}

	var resp []orderResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}

	orders := make([]OpenOrder, 0, len(resp))
	for _, o := range resp {
		orders = append(orders, OpenOrder{
			ID:         o.ID,
			Symbol:     o.Symbol,
			Side:       o.Side,
			Qty:        int64(parseBrokerFloat(o.Qty)),
			LimitPrice: parseBrokerFloat(o.LimitPrice),
		})
	}

	return orders, nil
}

func (c *BrokerClient) CancelOrder(ctx context.Context, orderID string) error {
	_, _, err := c.doRequest(ctx, "DELETE", "/v2/orders/"+orderID, nil)
	return err
}

// SubmitLimitOrder places a limit order and returns the broker's ack.
func (c *BrokerClient) SubmitLimitOrder(ctx context.Context, order OrderRequest) (*OrderAck, error) {
	payload := map[string]interface{}{
		"symbol":          order.Symbol,
		"qty":             strconv.FormatInt(order.Qty, 10),
		"side":            order.Side,
		"type":            "limit",
		"time_in_force":   order.TimeInForce,
		"limit_price":     strconv.FormatFloat(order.LimitPrice, 'f', 2, 64),
		"extended_hours":  order.ExtendedHours,
		"client_order_id": order.ClientOrderID,
	}

	logger.WithFields(map[string]interface{}{
		"symbol":         order.Symbol,
		"side":           order.Side,
		"qty":            order.Qty,
		"limit_price":    order.LimitPrice,
		"extended_hours": order.ExtendedHours,
	}).Info("Submitting limit order")

	raw, _, err := c.doRequest(ctx, "POST", "/v2/orders", payload)
	if err != nil {
		return nil, err
	}

	var resp orderResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}

	return &OrderAck{ID: resp.ID, Status: resp.Status}, nil
}
