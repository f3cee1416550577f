package repository

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"walletengine/src/database"
	"walletengine/src/model"
)

// ErrorRepository persists execution errors. Writes always go through the
// main connection, never through a symbol transaction, so an error row
// survives the rollback of the work that produced it.
type ErrorRepository struct {
	db *gorm.DB
}

func NewErrorRepository() *ErrorRepository {
	return &ErrorRepository{db: database.MainDB}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *ErrorRepository) WithDB(db *gorm.DB) *ErrorRepository {
	return &ErrorRepository{db: db}
}

// Create inserts a new execution error row.
func (r *ErrorRepository) Create(ctx context.Context, execError *model.ExecutionError) error {
	logger.WithFields(map[string]interface{}{
		"repo":       "ErrorRepository",
		"op":         "Create",
		"wallet_id":  execError.WalletID,
		"symbol":     execError.Symbol,
		"error_type": execError.ErrorType,
	}).Debug("Recording execution error")

	err := r.db.WithContext(ctx).Create(execError).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "ErrorRepository",
			"op":   "Create",
		}).WithError(err).Error("Failed to record execution error")

		return err
	}

	return nil
}
