package model

import "time"

const (
	ErrorTypeConfig    = "CONFIG_ERROR"
	ErrorTypeData      = "DATA_ERROR"
	ErrorTypeAPI       = "API_ERROR"
	ErrorTypeExecution = "EXECUTION_ERROR"
	ErrorTypeCritical  = "CRITICAL_ERROR"
)

// ExecutionError represents an engine failure that must be persisted
// for auditing, debugging, and monitoring purposes.
type ExecutionError struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Where the error happened
	WalletID     string `gorm:"size:60;index" json:"wallet_id"`
	Symbol       string `gorm:"size:12;index" json:"symbol,omitempty"`
	FunctionName string `gorm:"size:100" json:"function_name"`

	// Error information
	ErrorType string `gorm:"size:30;index" json:"error_type"` // see ErrorType* constants
	Message   string `gorm:"type:text" json:"message"`
	Stack     string `gorm:"type:text" json:"stack"`

	// Severity level
	Severity string `gorm:"size:20;index" json:"severity"` // warning | error | critical

	// Extra context stored as JSON (optional)
	Context string `gorm:"type:jsonb" json:"context,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (ExecutionError) TableName() string {
	return "execution_errors"
}
