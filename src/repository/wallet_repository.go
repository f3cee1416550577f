package repository

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"walletengine/src/database"
	"walletengine/src/model"
)

// WalletRepository handles read operations for wallets. The engine never
// writes to the wallets table; provisioning happens elsewhere.
type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository() *WalletRepository {
	return &WalletRepository{db: database.MainDB}
}

// WithDB allows overriding the underlying *gorm.DB instance.
// Useful for tests or when using a specific session/transaction.
func (r *WalletRepository) WithDB(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// FindByID fetches a single wallet. Returns (nil, nil) if not found.
func (r *WalletRepository) FindByID(ctx context.Context, walletID string) (*model.Wallet, error) {
	logger.WithFields(map[string]interface{}{
		"repo":      "WalletRepository",
		"op":        "FindByID",
		"wallet_id": walletID,
	}).Debug("Fetching wallet")

	var wallet model.Wallet

	err := r.db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		First(&wallet).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WithFields(map[string]interface{}{
				"repo":      "WalletRepository",
				"op":        "FindByID",
				"wallet_id": walletID,
			}).Info("Wallet not found")

			return nil, nil
		}

		logger.WithFields(map[string]interface{}{
			"repo":      "WalletRepository",
			"op":        "FindByID",
			"wallet_id": walletID,
		}).WithError(err).Error("Failed to fetch wallet")

		return nil, err
	}

	return &wallet, nil
}

// FindEnabled returns every wallet the scheduler should execute.
func (r *WalletRepository) FindEnabled(ctx context.Context) ([]model.Wallet, error) {
	logger.WithFields(map[string]interface{}{
		"repo": "WalletRepository",
		"op":   "FindEnabled",
	}).Debug("Fetching enabled wallets")

	var wallets []model.Wallet

	err := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Order("wallet_id ASC").
		Find(&wallets).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "WalletRepository",
			"op":   "FindEnabled",
		}).WithError(err).Error("Failed to fetch enabled wallets")

		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"repo":        "WalletRepository",
		"op":          "FindEnabled",
		"rows_return": len(wallets),
	}).Info("Enabled wallets fetched")

	return wallets, nil
}
