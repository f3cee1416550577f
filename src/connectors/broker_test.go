package connectors

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
)

func newTestBroker(baseURL string) *BrokerClient {
	restyClient := resty.New()
	restyClient.SetBaseURL(baseURL)

	return &BrokerClient{
		apiKey:    "test-key",
		apiSecret: "test-secret",
		baseURL:   baseURL,
		http:      restyClient,
	}
}

// TestGetAccount decodes the string-typed account payload into floats.
func TestGetAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/account" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("APCA-API-KEY-ID") != "test-key" {
			t.Fatalf("missing auth header")
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"cash":         "1000.50",
			"equity":       "5000.25",
			"buying_power": "2000",
		})
	}))
	defer server.Close()

	account, err := newTestBroker(server.URL).GetAccount(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if account.Cash != 1000.50 || account.Equity != 5000.25 || account.BuyingPower != 2000 {
		t.Fatalf("account mismatch: %+v", account)
	}
}

// TestGetPositions maps the position list by symbol and drops zero quotes.
func TestGetPositions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]string{
			{
				"symbol":        "AAPL",
				"qty":           "10",
				"cost_basis":    "1500.50",
				"current_price": "150.10",
				"market_value":  "1501",
				"unrealized_pl": "0.50",
			},
			{
				"symbol":        "MSFT",
				"qty":           "3",
				"cost_basis":    "900",
				"current_price": "0",
			},
		})
	}))
	defer server.Close()

	positions, err := newTestBroker(server.URL).GetPositions(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	aapl := positions["AAPL"]
	if aapl.Qty != 10 || aapl.CostBasis != 1500.50 {
		t.Fatalf("AAPL position mismatch: %+v", aapl)
	}
	if aapl.CurrentPrice == nil || *aapl.CurrentPrice != 150.10 {
		t.Fatalf("AAPL current price mismatch: %+v", aapl.CurrentPrice)
	}

	if positions["MSFT"].CurrentPrice != nil {
		t.Fatalf("zero quote should map to nil current price")
	}
}

// TestSubmitLimitOrder checks the payload wiring and ack decoding.
func TestSubmitLimitOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v2/orders" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}

		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload["type"] != "limit" || payload["qty"] != "7" || payload["limit_price"] != "2.48" {
			t.Fatalf("payload mismatch: %+v", payload)
		}
		if payload["extended_hours"] != true {
			t.Fatalf("expected extended_hours true")
		}

		_ = json.NewEncoder(w).Encode(map[string]string{"id": "ord-1", "status": "accepted"})
	}))
	defer server.Close()

	ack, err := newTestBroker(server.URL).SubmitLimitOrder(context.Background(), OrderRequest{
		Symbol:        "AAPL",
		Qty:           7,
		Side:          "buy",
		LimitPrice:    2.48,
		TimeInForce:   "day",
		ExtendedHours: true,
		ClientOrderID: "client-1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ack.ID != "ord-1" || ack.Status != "accepted" {
		t.Fatalf("ack mismatch: %+v", ack)
	}
}

// TestBrokerErrorStatus surfaces non-2xx responses as errors.
func TestBrokerErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"forbidden"}`, http.StatusForbidden)
	}))
	defer server.Close()

	if _, err := newTestBroker(server.URL).GetAccount(context.Background()); err == nil {
		t.Fatalf("expected error for 403 response")
	}
}

// TestIsRetryableResp verifies retry decisions for assorted errors and HTTP responses.
func TestIsRetryableResp(t *testing.T) {
	if !isRetryableResp(nil, context.DeadlineExceeded) {
		t.Fatalf("errors should be retryable")
	}
	if isRetryableResp(nil, nil) {
		t.Fatalf("nil response without error should not retry")
	}
}
