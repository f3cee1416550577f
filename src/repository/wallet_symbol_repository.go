package repository

import (
	"context"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"walletengine/src/database"
	"walletengine/src/model"
)

// WalletSymbolRepository handles read operations for per-symbol configs.
type WalletSymbolRepository struct {
	db *gorm.DB
}

func NewWalletSymbolRepository() *WalletSymbolRepository {
	return &WalletSymbolRepository{db: database.MainDB}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *WalletSymbolRepository) WithDB(db *gorm.DB) *WalletSymbolRepository {
	return &WalletSymbolRepository{db: db}
}

// FindEnabledByWallet returns the enabled symbol configs of a wallet, with
// names normalized once at this boundary: symbols and methods uppercase,
// budget modes lowercase. The rest of the engine can rely on canonical casing.
func (r *WalletSymbolRepository) FindEnabledByWallet(ctx context.Context, walletID string) ([]model.WalletSymbol, error) {
	logger.WithFields(map[string]interface{}{
		"repo":      "WalletSymbolRepository",
		"op":        "FindEnabledByWallet",
		"wallet_id": walletID,
	}).Debug("Fetching enabled symbol configs")

	var configs []model.WalletSymbol

	err := r.db.WithContext(ctx).
		Where("wallet_id = ? AND enabled = ?", walletID, true).
		Order("symbol ASC").
		Find(&configs).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":      "WalletSymbolRepository",
			"op":        "FindEnabledByWallet",
			"wallet_id": walletID,
		}).WithError(err).Error("Failed to fetch symbol configs")

		return nil, err
	}

	for i := range configs {
		normalizeSymbolConfig(&configs[i])
	}

	logger.WithFields(map[string]interface{}{
		"repo":        "WalletSymbolRepository",
		"op":          "FindEnabledByWallet",
		"wallet_id":   walletID,
		"rows_return": len(configs),
	}).Info("Symbol configs fetched")

	return configs, nil
}

// FindDistinctEnabledSymbols returns every symbol enabled in at least one
// wallet. The baseline engine computes one set of rows per symbol, shared by
// all wallets trading it.
func (r *WalletSymbolRepository) FindDistinctEnabledSymbols(ctx context.Context) ([]string, error) {
	var symbols []string

	err := r.db.WithContext(ctx).
		Model(&model.WalletSymbol{}).
		Distinct("symbol").
		Where("enabled = ?", true).
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "WalletSymbolRepository",
			"op":   "FindDistinctEnabledSymbols",
		}).WithError(err).Error("Failed to fetch enabled symbols")

		return nil, err
	}

	for i := range symbols {
		symbols[i] = strings.ToUpper(strings.TrimSpace(symbols[i]))
	}

	return symbols, nil
}

func normalizeSymbolConfig(cfg *model.WalletSymbol) {
	cfg.Symbol = strings.ToUpper(strings.TrimSpace(cfg.Symbol))
	cfg.BudgetMode = strings.ToLower(strings.TrimSpace(cfg.BudgetMode))
	cfg.MethodCore = model.Method(strings.ToUpper(strings.TrimSpace(string(cfg.MethodCore))))
	cfg.MethodExt = model.Method(strings.ToUpper(strings.TrimSpace(string(cfg.MethodExt))))

	if cfg.BudgetMode != model.BudgetModePercent {
		cfg.BudgetMode = model.BudgetModeFixed
	}
	if !cfg.MethodCore.Valid() {
		cfg.MethodCore = model.MethodEqualMean
	}
	if !cfg.MethodExt.Valid() {
		cfg.MethodExt = model.MethodEqualMean
	}
}
