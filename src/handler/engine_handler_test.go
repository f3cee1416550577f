package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"walletengine/src/controller"
	"walletengine/src/model"
)

func newEngineRouter(execute walletExecutor, compute baselineComputer) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/wallets/{walletID}/execute", ExecuteWalletHandler(execute))
	r.Post("/baselines/compute", ComputeBaselinesHandler(compute))
	return r
}

func TestExecuteWalletHandler(t *testing.T) {
	var gotWalletID string
	execute := func(_ context.Context, walletID string) (*controller.ExecutionResult, error) {
		gotWalletID = walletID
		return &controller.ExecutionResult{WalletID: walletID, Success: true}, nil
	}

	router := newEngineRouter(execute, nil)

	req := httptest.NewRequest(http.MethodPost, "/wallets/w-1/execute", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotWalletID != "w-1" {
		t.Errorf("expected wallet w-1, got %s", gotWalletID)
	}

	var decoded controller.ExecutionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !decoded.Success {
		t.Error("expected a successful result")
	}
}

func TestExecuteWalletHandlerUnknownWallet(t *testing.T) {
	execute := func(_ context.Context, walletID string) (*controller.ExecutionResult, error) {
		return nil, model.NewConfigError("ExecuteWalletByID", fmt.Errorf("wallet %s not found", walletID))
	}

	router := newEngineRouter(execute, nil)

	req := httptest.NewRequest(http.MethodPost, "/wallets/nope/execute", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestExecuteWalletHandlerBrokerFailure(t *testing.T) {
	execute := func(_ context.Context, _ string) (*controller.ExecutionResult, error) {
		return nil, model.NewCriticalError("broker.GetAccount", errors.New("connection refused"))
	}

	router := newEngineRouter(execute, nil)

	req := httptest.NewRequest(http.MethodPost, "/wallets/w-1/execute", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestComputeBaselinesHandler(t *testing.T) {
	var gotSymbols []string
	var gotDay time.Time
	compute := func(_ context.Context, symbols []string, day time.Time) (*controller.BaselineRunSummary, error) {
		gotSymbols = symbols
		gotDay = day
		return &controller.BaselineRunSummary{TradingDay: "2026-01-05"}, nil
	}

	router := newEngineRouter(nil, compute)

	body := strings.NewReader(`{"symbols":["MSTR","NVDA"],"trading_day":"2026-01-05"}`)
	req := httptest.NewRequest(http.MethodPost, "/baselines/compute", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(gotSymbols) != 2 || gotSymbols[0] != "MSTR" {
		t.Errorf("unexpected symbols: %v", gotSymbols)
	}
	if gotDay.Format("2006-01-02") != "2026-01-05" {
		t.Errorf("unexpected day: %v", gotDay)
	}
}

func TestComputeBaselinesHandlerEmptyBody(t *testing.T) {
	called := false
	compute := func(_ context.Context, symbols []string, day time.Time) (*controller.BaselineRunSummary, error) {
		called = true
		if len(symbols) != 0 || !day.IsZero() {
			t.Errorf("expected zero-value request, got %v %v", symbols, day)
		}
		return &controller.BaselineRunSummary{}, nil
	}

	router := newEngineRouter(nil, compute)

	req := httptest.NewRequest(http.MethodPost, "/baselines/compute", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !called {
		t.Fatal("expected the computer to be called")
	}
}

func TestComputeBaselinesHandlerBadDay(t *testing.T) {
	router := newEngineRouter(nil, func(_ context.Context, _ []string, _ time.Time) (*controller.BaselineRunSummary, error) {
		t.Fatal("computer must not run on invalid input")
		return nil, nil
	})

	body := strings.NewReader(`{"trading_day":"05/01/2026"}`)
	req := httptest.NewRequest(http.MethodPost, "/baselines/compute", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
