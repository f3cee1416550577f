package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"walletengine/src/controller"
	"walletengine/src/model"
)

type walletExecutor func(ctx context.Context, walletID string) (*controller.ExecutionResult, error)

type baselineComputer func(ctx context.Context, symbols []string, day time.Time) (*controller.BaselineRunSummary, error)

// ExecuteWalletHandler triggers a full execution run for one wallet.
func ExecuteWalletHandler(execute walletExecutor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		walletID := chi.URLParam(r, "walletID")
		if walletID == "" {
			http.Error(w, "missing wallet id", http.StatusBadRequest)
			return
		}

		result, err := execute(r.Context(), walletID)
		if err != nil {
			logger.WithError(err).WithField("wallet_id", walletID).Error("wallet execution failed")

			status := http.StatusInternalServerError
			if model.ClassifyError(err) == model.ErrorTypeConfig {
				status = http.StatusNotFound
			}
			http.Error(w, err.Error(), status)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithError(err).Error("failed to encode execution result")
		}
	}
}

type computeBaselinesRequest struct {
	Symbols    []string `json:"symbols"`
	TradingDay string   `json:"trading_day"` // YYYY-MM-DD, empty = previous trading day
}

// ComputeBaselinesHandler triggers a baseline computation run.
func ComputeBaselinesHandler(compute baselineComputer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req computeBaselinesRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid request body", http.StatusBadRequest)
				return
			}
		}

		var day time.Time
		if req.TradingDay != "" {
			parsed, err := time.Parse("2006-01-02", req.TradingDay)
			if err != nil {
				http.Error(w, "invalid trading_day, expected YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			day = parsed
		}

		summary, err := compute(r.Context(), req.Symbols, day)
		if err != nil {
			logger.WithError(err).Error("baseline computation failed")

			status := http.StatusInternalServerError
			if model.ClassifyError(err) == model.ErrorTypeConfig {
				status = http.StatusBadRequest
			}
			http.Error(w, err.Error(), status)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summary); err != nil {
			logger.WithError(err).Error("failed to encode baseline summary")
		}
	}
}

// DefaultExecuteWalletHandler wires the handler to the controller.
func DefaultExecuteWalletHandler() http.HandlerFunc {
	return ExecuteWalletHandler(controller.ExecuteWalletByID)
}

func DefaultComputeBaselinesHandler() http.HandlerFunc {
	return ComputeBaselinesHandler(controller.ComputeBaselines)
}
