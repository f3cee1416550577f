package model

import "time"

const (
	BudgetModeFixed   = "fixed"
	BudgetModePercent = "percent"
)

// WalletSymbol is the per-symbol trading configuration of a wallet.
// One row per (wallet, symbol), enforced by the composite primary key.
type WalletSymbol struct {
	WalletID string `gorm:"primaryKey;size:60" json:"wallet_id"`
	Symbol   string `gorm:"primaryKey;size:12" json:"symbol"`
	Enabled  bool   `gorm:"not null;default:true" json:"enabled"`

	// Budget configuration. Fixed mode commits BuyBudgetUSD regardless of
	// available cash; percent mode requests PercentBudget% of account equity
	// and may be scaled down by the allocator.
	BudgetMode    string  `gorm:"size:10;not null;default:fixed" json:"budget_mode"` // fixed | percent
	BuyBudgetUSD  float64 `gorm:"column:buy_budget_usd" json:"buy_budget_usd"`
	PercentBudget float64 `gorm:"column:percent_budget" json:"percent_budget"`

	// Per-session entry/exit offsets, in percent of the baseline ratio.
	BuyPctCore  float64 `gorm:"column:buy_pct_rth" json:"buy_pct_rth"`
	SellPctCore float64 `gorm:"column:sell_pct_rth" json:"sell_pct_rth"`
	BuyPctExt   float64 `gorm:"column:buy_pct_ah" json:"buy_pct_ah"`
	SellPctExt  float64 `gorm:"column:sell_pct_ah" json:"sell_pct_ah"`

	// Per-session baseline method selection.
	MethodCore Method `gorm:"size:20;column:method_rth;default:EQUAL_MEAN" json:"method_rth"`
	MethodExt  Method `gorm:"size:20;column:method_ah;default:EQUAL_MEAN" json:"method_ah"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (WalletSymbol) TableName() string {
	return "wallet_symbols"
}

// BuyPct returns the buy offset for the given session.
func (ws WalletSymbol) BuyPct(session Session) float64 {
	if session == SessionExtended {
		return ws.BuyPctExt
	}
	return ws.BuyPctCore
}

// SellPct returns the sell offset for the given session.
func (ws WalletSymbol) SellPct(session Session) float64 {
	if session == SessionExtended {
		return ws.SellPctExt
	}
	return ws.SellPctCore
}

// Method returns the configured baseline method for the given session.
func (ws WalletSymbol) Method(session Session) Method {
	if session == SessionExtended {
		return ws.MethodExt
	}
	return ws.MethodCore
}
