package model

import "time"

// Method identifies how a daily baseline ratio is computed from minute bars.
type Method string

const (
	MethodEqualMean   Method = "EQUAL_MEAN"
	MethodMedian      Method = "MEDIAN"
	MethodVWAPRatio   Method = "VWAP_RATIO"
	MethodVolWeighted Method = "VOL_WEIGHTED"
	MethodWinsorized  Method = "WINSORIZED"
)

// AllMethods lists every supported baseline method.
var AllMethods = []Method{
	MethodEqualMean,
	MethodMedian,
	MethodVWAPRatio,
	MethodVolWeighted,
	MethodWinsorized,
}

func (m Method) Valid() bool {
	for _, known := range AllMethods {
		if m == known {
			return true
		}
	}
	return false
}

// BaselineDaily holds one computed baseline ratio statistic.
// The composite primary key makes recomputation an upsert.
type BaselineDaily struct {
	TradingDay  string    `gorm:"primaryKey;size:10" json:"trading_day"` // YYYY-MM-DD
	Symbol      string    `gorm:"primaryKey;size:12" json:"symbol"`
	Session     Session   `gorm:"primaryKey;size:5" json:"session"`
	Method      Method    `gorm:"primaryKey;size:20" json:"method"`
	Baseline    float64   `gorm:"not null" json:"baseline"`
	SampleCount int       `gorm:"not null" json:"sample_count"`
	Source      string    `gorm:"size:20;not null;default:computed" json:"source"`
	ComputedAt  time.Time `json:"computed_at"`
}

func (BaselineDaily) TableName() string {
	return "baseline_daily"
}
