package model

import "time"

// ExecutionCancellation audits every open order the engine cancels
// during the pre-run cleanup of a wallet.
type ExecutionCancellation struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	WalletID      string    `gorm:"size:60;index" json:"wallet_id"`
	Symbol        string    `gorm:"size:12" json:"symbol"`
	Side          string    `gorm:"size:5" json:"side"`
	BrokerOrderID string    `gorm:"size:60" json:"broker_order_id"`
	Reason        string    `gorm:"size:100" json:"reason"`
	CreatedAt     time.Time `json:"created_at"`
}

func (ExecutionCancellation) TableName() string {
	return "execution_cancellations"
}
