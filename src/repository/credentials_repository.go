package repository

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"walletengine/src/database"
	"walletengine/src/model"
	"walletengine/src/security"
)

// Credentials is the decrypted key material for one wallet run.
type Credentials struct {
	MarketDataKey string
	BrokerKey     string
	BrokerSecret  string
}

// CredentialsRepository resolves the API keys a wallet should use:
// wallet-level rows override the owning user's row, field by field, and the
// broker pair is picked by the wallet's environment.
type CredentialsRepository struct {
	db *gorm.DB
}

func NewCredentialsRepository() *CredentialsRepository {
	return &CredentialsRepository{db: database.MainDB}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *CredentialsRepository) WithDB(db *gorm.DB) *CredentialsRepository {
	return &CredentialsRepository{db: db}
}

// ResolveForWallet returns the decrypted credentials for the wallet.
// Missing broker key material is an error; the engine cannot trade without it.
func (r *CredentialsRepository) ResolveForWallet(ctx context.Context, wallet *model.Wallet) (*Credentials, error) {
	logger.WithFields(map[string]interface{}{
		"repo":      "CredentialsRepository",
		"op":        "ResolveForWallet",
		"wallet_id": wallet.ID,
		"env":       wallet.Env,
	}).Debug("Resolving credentials")

	var walletKeys model.WalletAPIKeys
	haveWalletKeys := true
	err := r.db.WithContext(ctx).
		Where("wallet_id = ?", wallet.ID).
		First(&walletKeys).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		haveWalletKeys = false
	}

	var userKeys model.UserAPIKeys
	haveUserKeys := true
	err = r.db.WithContext(ctx).
		Where("user_id = ?", wallet.UserID).
		First(&userKeys).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		haveUserKeys = false
	}

	if !haveWalletKeys && !haveUserKeys {
		return nil, fmt.Errorf("no api keys configured for wallet %s", wallet.ID)
	}

	pick := func(walletValue, userValue string) string {
		if haveWalletKeys && walletValue != "" {
			return walletValue
		}
		if haveUserKeys {
			return userValue
		}
		return ""
	}

	marketData := pick(walletKeys.MarketDataKeyHash, userKeys.MarketDataKeyHash)

	var brokerKey, brokerSecret string
	if wallet.Env == model.WalletEnvLive {
		brokerKey = pick(walletKeys.BrokerKeyLive, userKeys.BrokerKeyLive)
		brokerSecret = pick(walletKeys.BrokerSecretLive, userKeys.BrokerSecretLive)
	} else {
		brokerKey = pick(walletKeys.BrokerKeyPaper, userKeys.BrokerKeyPaper)
		brokerSecret = pick(walletKeys.BrokerSecretPaper, userKeys.BrokerSecretPaper)
	}

	if brokerKey == "" || brokerSecret == "" {
		return nil, fmt.Errorf("no %s broker keys configured for wallet %s", wallet.Env, wallet.ID)
	}

	creds := &Credentials{}
	if creds.BrokerKey, err = security.DecryptString(brokerKey); err != nil {
		return nil, fmt.Errorf("decrypt broker key: %w", err)
	}
	if creds.BrokerSecret, err = security.DecryptString(brokerSecret); err != nil {
		return nil, fmt.Errorf("decrypt broker secret: %w", err)
	}
	if marketData != "" {
		if creds.MarketDataKey, err = security.DecryptString(marketData); err != nil {
			return nil, fmt.Errorf("decrypt market data key: %w", err)
		}
	}

	return creds, nil
}
