package repository

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"walletengine/src/database"
	"walletengine/src/model"
)

// BaselineRepository reads and writes daily baseline statistics.
type BaselineRepository struct {
	db *gorm.DB
}

func NewBaselineRepository() *BaselineRepository {
	return &BaselineRepository{db: database.MainDB}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *BaselineRepository) WithDB(db *gorm.DB) *BaselineRepository {
	return &BaselineRepository{db: db}
}

// Upsert writes one baseline row, replacing any previous value for the same
// (trading_day, symbol, session, method) key.
func (r *BaselineRepository) Upsert(ctx context.Context, row *model.BaselineDaily) error {
	logger.WithFields(map[string]interface{}{
		"repo":        "BaselineRepository",
		"op":          "Upsert",
		"trading_day": row.TradingDay,
		"symbol":      row.Symbol,
		"session":     row.Session,
		"method":      row.Method,
		"baseline":    row.Baseline,
	}).Debug("Upserting baseline row")

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "trading_day"}, {Name: "symbol"}, {Name: "session"}, {Name: "method"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"baseline", "sample_count", "source", "computed_at"}),
	}).Create(row).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":   "BaselineRepository",
			"op":     "Upsert",
			"symbol": row.Symbol,
		}).WithError(err).Error("Failed to upsert baseline row")

		return err
	}

	return nil
}

// FindLatest returns the most recent baseline for a (symbol, session, method)
// triple, regardless of trading day. Returns (nil, nil) when no baseline has
// ever been computed for the triple.
func (r *BaselineRepository) FindLatest(ctx context.Context, symbol string, session model.Session, method model.Method) (*model.BaselineDaily, error) {
	logger.WithFields(map[string]interface{}{
		"repo":    "BaselineRepository",
		"op":      "FindLatest",
		"symbol":  symbol,
		"session": session,
		"method":  method,
	}).Debug("Fetching latest baseline")

	var row model.BaselineDaily

	err := r.db.WithContext(ctx).
		Where("symbol = ? AND session = ? AND method = ?", symbol, session, method).
		Order("trading_day DESC").
		First(&row).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WithFields(map[string]interface{}{
				"repo":    "BaselineRepository",
				"op":      "FindLatest",
				"symbol":  symbol,
				"session": session,
				"method":  method,
			}).Info("No baseline found")

			return nil, nil
		}

		logger.WithFields(map[string]interface{}{
			"repo":   "BaselineRepository",
			"op":     "FindLatest",
			"symbol": symbol,
		}).WithError(err).Error("Failed to fetch baseline")

		return nil, err
	}

	return &row, nil
}
