package controller

import (
	"context"
	"encoding/json"
	"runtime/debug"

	logger "github.com/sirupsen/logrus"

	"walletengine/src/metrics"
	"walletengine/src/model"
)

// Capture classifies and records an engine failure: local log, Prometheus
// counter and a persisted execution_errors row. The repo write goes through
// the main connection so the row survives any surrounding rollback.
func Capture(
	ctx context.Context,
	repo executionErrorRepository,
	walletID string,
	symbol string,
	functionName string,
	err error,
	contextData map[string]interface{},
) {

	if err == nil {
		return
	}

	errorType := model.ClassifyError(err)

	severity := "error"
	if errorType == model.ErrorTypeCritical {
		severity = "critical"
	}

	var ctxJSON string
	if contextData != nil {
		if b, e := json.Marshal(contextData); e == nil {
			ctxJSON = string(b)
		}
	}

	execError := &model.ExecutionError{
		WalletID:     walletID,
		Symbol:       symbol,
		FunctionName: functionName,
		ErrorType:    errorType,
		Message:      err.Error(),
		Stack:        string(debug.Stack()),
		Severity:     severity,
		Context:      ctxJSON,
	}

	logger.WithFields(map[string]interface{}{
		"wallet_id":  walletID,
		"symbol":     symbol,
		"function":   functionName,
		"error_type": errorType,
		"severity":   severity,
	}).WithError(err).Error("Engine error captured")

	metrics.IncEngineError(errorType)

	if repo != nil {
		if e := repo.Create(ctx, execError); e != nil {
			logger.WithError(e).Error("Failed to persist execution error")
		}
	}
}
