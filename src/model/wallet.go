package model

import "time"

const (
	WalletEnvPaper = "paper"
	WalletEnvLive  = "live"
)

// Wallet represents a trading wallet bound to one brokerage account.
// Wallets are provisioned elsewhere; the engine only reads them.
type Wallet struct {
	ID        string    `gorm:"primaryKey;size:60;column:wallet_id" json:"wallet_id"`
	UserID    string    `gorm:"size:60;index;not null" json:"user_id"`
	Name      string    `gorm:"size:120" json:"name"`
	Env       string    `gorm:"size:10;not null;default:paper" json:"env"` // paper | live
	Enabled   bool      `gorm:"not null;default:false" json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Wallet) TableName() string {
	return "wallets"
}
