package model

import "time"

// UserAPIKeys holds the account-level credentials for a user.
// Broker keys exist per environment; the market data key is shared.
// All key material is encrypted at rest, see the security package.
type UserAPIKeys struct {
	UserID            string    `gorm:"primaryKey;size:60" json:"user_id"`
	MarketDataKeyHash string    `gorm:"column:market_data_key;type:text" json:"-"`
	BrokerKeyPaper    string    `gorm:"column:broker_key_paper;type:text" json:"-"`
	BrokerSecretPaper string    `gorm:"column:broker_secret_paper;type:text" json:"-"`
	BrokerKeyLive     string    `gorm:"column:broker_key_live;type:text" json:"-"`
	BrokerSecretLive  string    `gorm:"column:broker_secret_live;type:text" json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (UserAPIKeys) TableName() string {
	return "user_api_keys"
}

// WalletAPIKeys overrides the user-level credentials for a single wallet.
// Any empty field falls back to the owning user's row.
type WalletAPIKeys struct {
	WalletID          string    `gorm:"primaryKey;size:60" json:"wallet_id"`
	MarketDataKeyHash string    `gorm:"column:market_data_key;type:text" json:"-"`
	BrokerKeyPaper    string    `gorm:"column:broker_key_paper;type:text" json:"-"`
	BrokerSecretPaper string    `gorm:"column:broker_secret_paper;type:text" json:"-"`
	BrokerKeyLive     string    `gorm:"column:broker_key_live;type:text" json:"-"`
	BrokerSecretLive  string    `gorm:"column:broker_secret_live;type:text" json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (WalletAPIKeys) TableName() string {
	return "wallet_api_keys"
}
