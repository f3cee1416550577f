package model

import "time"

// ExecutionOrder is the append-only audit row written for every order the
// engine submits to the broker. Rows are never updated after submission.
type ExecutionOrder struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	WalletID      string    `gorm:"size:60;index" json:"wallet_id"`
	UserID        string    `gorm:"size:60;index" json:"user_id"`
	Symbol        string    `gorm:"size:12;index" json:"symbol"`
	Side          string    `gorm:"size:5;not null" json:"side"` // buy | sell
	Qty           int64     `json:"qty"`
	LimitPrice    float64   `json:"limit_price"`
	TimeInForce   string    `gorm:"size:10;not null;default:day" json:"time_in_force"`
	ExtendedHours bool      `json:"extended_hours"`
	Session       Session   `gorm:"size:5" json:"session"`
	ClientOrderID string    `gorm:"size:60;index" json:"client_order_id"`
	BrokerOrderID string    `gorm:"size:60;index" json:"broker_order_id"`
	Status        string    `gorm:"size:20;not null;default:submitted" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func (ExecutionOrder) TableName() string {
	return "execution_orders"
}
