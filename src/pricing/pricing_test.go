package pricing

import (
	"testing"
	"time"

	"walletengine/src/model"
)

func nyTime(year int, month time.Month, day, hour, min int) time.Time {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		// fallback. still deterministic. hours will be interpreted as UTC
		return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
	}
	return time.Date(year, month, day, hour, min, 0, 0, loc)
}

func TestSessionAt(t *testing.T) {
	tests := []struct {
		name        string
		at          time.Time
		wantSession model.Session
		wantOpen    bool
	}{
		{
			name:     "before the open",
			at:       nyTime(2025, time.March, 4, 9, 29),
			wantOpen: false,
		},
		{
			name:        "at the open",
			at:          nyTime(2025, time.March, 4, 9, 30),
			wantSession: model.SessionCore,
			wantOpen:    true,
		},
		{
			name:        "mid core session",
			at:          nyTime(2025, time.March, 4, 12, 0),
			wantSession: model.SessionCore,
			wantOpen:    true,
		},
		{
			name:        "at 16:00 the extended session starts",
			at:          nyTime(2025, time.March, 4, 16, 0),
			wantSession: model.SessionExtended,
			wantOpen:    true,
		},
		{
			name:        "late extended session",
			at:          nyTime(2025, time.March, 4, 19, 59),
			wantSession: model.SessionExtended,
			wantOpen:    true,
		},
		{
			name:     "after 20:00 nothing trades",
			at:       nyTime(2025, time.March, 4, 20, 0),
			wantOpen: false,
		},
		{
			name:        "UTC instant resolves through ET wall clock",
			at:          time.Date(2025, time.March, 4, 15, 0, 0, 0, time.UTC), // 10:00 ET
			wantSession: model.SessionCore,
			wantOpen:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSession, gotOpen := SessionAt(tt.at)
			if gotOpen != tt.wantOpen {
				t.Fatalf("open mismatch. got=%v want=%v", gotOpen, tt.wantOpen)
			}
			if gotOpen && gotSession != tt.wantSession {
				t.Fatalf("session mismatch. got=%s want=%s", gotSession, tt.wantSession)
			}
		})
	}
}

func TestComputeExecutionPrices(t *testing.T) {
	got, err := ComputeExecutionPrices(50000, 20000, 1.0, 1.0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// 50000 / (20000 * 1.01) = 2.47524752... -> 2.4752
	if got.BuyPrice != 2.4752 {
		t.Fatalf("buy price mismatch. got=%v want=2.4752", got.BuyPrice)
	}
	// 50000 / (20000 * 0.99) = 2.52525252... -> 2.5253
	if got.SellPrice != 2.5253 {
		t.Fatalf("sell price mismatch. got=%v want=2.5253", got.SellPrice)
	}
}

func TestComputeExecutionPricesRejectsBadInputs(t *testing.T) {
	if _, err := ComputeExecutionPrices(0, 20000, 1, 1); err == nil {
		t.Fatalf("expected error for zero reference price")
	}
	if _, err := ComputeExecutionPrices(50000, 0, 1, 1); err == nil {
		t.Fatalf("expected error for zero baseline")
	}
	if _, err := ComputeExecutionPrices(50000, 20000, 1, 100); err == nil {
		t.Fatalf("expected error for sell offset of 100%%")
	}
}

func TestDetermine(t *testing.T) {
	tests := []struct {
		name   string
		shares int64
		budget float64
		want   model.Decision
	}{
		{"shares and budget", 10, 500, model.DecisionBoth},
		{"shares only", 10, 0, model.DecisionSell},
		{"budget only", 0, 500, model.DecisionBuy},
		{"neither", 0, 0, model.DecisionHold},
		{"negative budget treated as none", 5, -1, model.DecisionSell},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := Determine(tt.shares, tt.budget)
			if got != tt.want {
				t.Fatalf("decision mismatch. got=%s want=%s", got, tt.want)
			}
			if reason == "" {
				t.Fatalf("expected a reason string")
			}
		})
	}
}

func TestResolveBothLeg(t *testing.T) {
	price := func(v float64) *float64 { return &v }

	side, _ := ResolveBothLeg(price(2.40), 2.4752)
	if side != model.SideBuy {
		t.Fatalf("expected buy when price below target, got %s", side)
	}

	side, _ = ResolveBothLeg(price(2.4752), 2.4752)
	if side != model.SideBuy {
		t.Fatalf("expected buy when price equals target, got %s", side)
	}

	side, _ = ResolveBothLeg(price(2.60), 2.4752)
	if side != model.SideSell {
		t.Fatalf("expected sell when price above target, got %s", side)
	}

	side, _ = ResolveBothLeg(nil, 2.4752)
	if side != model.SideSell {
		t.Fatalf("expected sell when no current price, got %s", side)
	}
}

func TestPreviousTradingDay(t *testing.T) {
	// Monday 2025-03-03 -> previous trading day is Friday 2025-02-28
	got := PreviousTradingDay(time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC))
	if TradingDayString(got) != "2025-02-28" {
		t.Fatalf("expected 2025-02-28, got %s", TradingDayString(got))
	}

	// Day after Independence Day 2025 (Friday) -> skip back over the holiday
	got = PreviousTradingDay(time.Date(2025, time.July, 5, 12, 0, 0, 0, time.UTC))
	if TradingDayString(got) != "2025-07-03" {
		t.Fatalf("expected 2025-07-03, got %s", TradingDayString(got))
	}
}
