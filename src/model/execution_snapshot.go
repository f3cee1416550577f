package model

import "time"

// ExecutionSnapshot records the full reasoning behind one symbol evaluation:
// the inputs, the derived prices and the decision taken. Append-only.
type ExecutionSnapshot struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	WalletID        string    `gorm:"size:60;index" json:"wallet_id"`
	Symbol          string    `gorm:"size:12;index" json:"symbol"`
	Session         Session   `gorm:"size:5" json:"session"`
	ReferencePrice  float64   `gorm:"column:reference_price" json:"reference_price"`
	StockPrice      float64   `json:"stock_price"`
	CurrentRatio    float64   `json:"current_ratio"`
	BaselineValue   float64   `json:"baseline_value"`
	BaselineMethod  Method    `gorm:"size:20" json:"baseline_method"`
	BuyPrice        float64   `json:"buy_price"`
	SellPrice       float64   `json:"sell_price"`
	Decision        Decision  `gorm:"size:10" json:"decision"`
	Reason          string    `gorm:"type:text" json:"reason"`
	SharesOwned     int64     `json:"shares_owned"`
	BudgetAvailable float64   `json:"budget_available"`
	CreatedAt       time.Time `json:"created_at"`
}

func (ExecutionSnapshot) TableName() string {
	return "execution_snapshots"
}
