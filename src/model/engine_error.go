package model

import (
	"errors"
	"fmt"
)

// EngineError carries the failure classification that ends up in the
// error_type column of execution_errors. Wrap the underlying cause so
// callers can still errors.Is/As through it.
type EngineError struct {
	Type string // one of the ErrorType* constants
	Op   string // function or step that failed
	Err  error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s in %s: %v", e.Type, e.Op, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

func NewConfigError(op string, err error) *EngineError {
	return &EngineError{Type: ErrorTypeConfig, Op: op, Err: err}
}

func NewDataError(op string, err error) *EngineError {
	return &EngineError{Type: ErrorTypeData, Op: op, Err: err}
}

func NewAPIError(op string, err error) *EngineError {
	return &EngineError{Type: ErrorTypeAPI, Op: op, Err: err}
}

func NewExecutionError(op string, err error) *EngineError {
	return &EngineError{Type: ErrorTypeExecution, Op: op, Err: err}
}

func NewCriticalError(op string, err error) *EngineError {
	return &EngineError{Type: ErrorTypeCritical, Op: op, Err: err}
}

// ClassifyError returns the error_type for err, defaulting to EXECUTION_ERROR
// for plain errors.
func ClassifyError(err error) string {
	var engineErr *EngineError
	if errors.As(err, &engineErr) {
		return engineErr.Type
	}
	return ErrorTypeExecution
}
