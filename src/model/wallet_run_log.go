package model

import "time"

// WalletRunLog stores one summary row per wallet execution run.
// Summary is a JSON document with per-symbol outcomes.
type WalletRunLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	WalletID   string    `gorm:"size:60;index" json:"wallet_id"`
	Success    bool      `json:"success"`
	Summary    string    `gorm:"type:jsonb" json:"summary"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	CreatedAt  time.Time `json:"created_at"`
}

func (WalletRunLog) TableName() string {
	return "wallet_run_log"
}
