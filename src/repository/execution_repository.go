package repository

import (
	"context"
	"time"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"walletengine/src/database"
	"walletengine/src/model"
)

// ExecutionRepository writes the append-only audit records of a wallet run
// and serves the audit search endpoints.
type ExecutionRepository struct {
	db *gorm.DB
}

func NewExecutionRepository() *ExecutionRepository {
	return &ExecutionRepository{db: database.MainDB}
}

// WithDB allows overriding the underlying *gorm.DB instance.
// Useful for tests or when writing inside a symbol transaction.
func (r *ExecutionRepository) WithDB(db *gorm.DB) *ExecutionRepository {
	return &ExecutionRepository{db: db}
}

// CreateOrder records one submitted order.
func (r *ExecutionRepository) CreateOrder(ctx context.Context, order *model.ExecutionOrder) error {
	logger.WithFields(map[string]interface{}{
		"repo":      "ExecutionRepository",
		"op":        "CreateOrder",
		"wallet_id": order.WalletID,
		"symbol":    order.Symbol,
		"side":      order.Side,
		"qty":       order.Qty,
	}).Debug("Recording execution order")

	err := r.db.WithContext(ctx).Create(order).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "ExecutionRepository",
			"op":   "CreateOrder",
		}).WithError(err).Error("Failed to record execution order")

		return err
	}

	return nil
}

// CreateSnapshot records the reasoning behind one symbol evaluation.
func (r *ExecutionRepository) CreateSnapshot(ctx context.Context, snapshot *model.ExecutionSnapshot) error {
	logger.WithFields(map[string]interface{}{
		"repo":      "ExecutionRepository",
		"op":        "CreateSnapshot",
		"wallet_id": snapshot.WalletID,
		"symbol":    snapshot.Symbol,
		"decision":  snapshot.Decision,
	}).Debug("Recording execution snapshot")

	err := r.db.WithContext(ctx).Create(snapshot).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "ExecutionRepository",
			"op":   "CreateSnapshot",
		}).WithError(err).Error("Failed to record execution snapshot")

		return err
	}

	return nil
}

// CreateCancellation records one pre-run order cancellation.
func (r *ExecutionRepository) CreateCancellation(ctx context.Context, cancellation *model.ExecutionCancellation) error {
	err := r.db.WithContext(ctx).Create(cancellation).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "ExecutionRepository",
			"op":   "CreateCancellation",
		}).WithError(err).Error("Failed to record cancellation")

		return err
	}

	return nil
}

// CreateRunLog records one wallet run summary.
func (r *ExecutionRepository) CreateRunLog(ctx context.Context, runLog *model.WalletRunLog) error {
	err := r.db.WithContext(ctx).Create(runLog).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":      "ExecutionRepository",
			"op":        "CreateRunLog",
			"wallet_id": runLog.WalletID,
		}).WithError(err).Error("Failed to record run log")

		return err
	}

	return nil
}

// ---------------------------------------------------
// Audit search
// ---------------------------------------------------

type SnapshotSearchOptions struct {
	WalletID      *string
	Symbol        *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	Limit         int
	Offset        int
}

// SearchSnapshots lists snapshots newest first with optional filters.
func (r *ExecutionRepository) SearchSnapshots(ctx context.Context, options SnapshotSearchOptions) ([]model.ExecutionSnapshot, error) {
	if options.Limit <= 0 {
		options.Limit = 20
	}

	query := r.db.WithContext(ctx).Model(&model.ExecutionSnapshot{})
	if options.WalletID != nil {
		query = query.Where("wallet_id = ?", *options.WalletID)
	}
	if options.Symbol != nil {
		query = query.Where("symbol = ?", *options.Symbol)
	}
	if options.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *options.CreatedAfter)
	}
	if options.CreatedBefore != nil {
		query = query.Where("created_at <= ?", *options.CreatedBefore)
	}

	var snapshots []model.ExecutionSnapshot
	err := query.
		Order("id DESC").
		Limit(options.Limit).
		Offset(options.Offset).
		Find(&snapshots).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "ExecutionRepository",
			"op":   "SearchSnapshots",
		}).WithError(err).Error("Failed to search snapshots")

		return nil, err
	}

	return snapshots, nil
}

// SearchErrors lists execution errors newest first with optional filters.
func (r *ExecutionRepository) SearchErrors(ctx context.Context, options SnapshotSearchOptions) ([]model.ExecutionError, error) {
	if options.Limit <= 0 {
		options.Limit = 20
	}

	query := r.db.WithContext(ctx).Model(&model.ExecutionError{})
	if options.WalletID != nil {
		query = query.Where("wallet_id = ?", *options.WalletID)
	}
	if options.Symbol != nil {
		query = query.Where("symbol = ?", *options.Symbol)
	}
	if options.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *options.CreatedAfter)
	}
	if options.CreatedBefore != nil {
		query = query.Where("created_at <= ?", *options.CreatedBefore)
	}

	var execErrors []model.ExecutionError
	err := query.
		Order("id DESC").
		Limit(options.Limit).
		Offset(options.Offset).
		Find(&execErrors).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "ExecutionRepository",
			"op":   "SearchErrors",
		}).WithError(err).Error("Failed to search errors")

		return nil, err
	}

	return execErrors, nil
}
