package executors

import (
	"context"
	"errors"
	"testing"
	"time"

	"walletengine/src/controller"
	"walletengine/src/model"
)

func stubClock(t *testing.T, at time.Time) {
	t.Helper()
	old := nowFunc
	nowFunc = func() time.Time { return at }
	t.Cleanup(func() { nowFunc = old })
}

// Tuesday 10:00 ET, inside the core session.
func tradingClock() time.Time {
	return time.Date(2026, 1, 6, 15, 0, 0, 0, time.UTC)
}

// Verifies a tick executes every enabled wallet in order.
func TestRunTickExecutesAllWallets(t *testing.T) {
	oldFind := findEnabledWallets
	oldExecute := executeWallet
	t.Cleanup(func() {
		findEnabledWallets = oldFind
		executeWallet = oldExecute
	})
	stubClock(t, tradingClock())

	findEnabledWallets = func(ctx context.Context) ([]model.Wallet, error) {
		return []model.Wallet{{ID: "w-1"}, {ID: "w-2"}}, nil
	}

	var executed []string
	executeWallet = func(ctx context.Context, walletID string) (*controller.ExecutionResult, error) {
		executed = append(executed, walletID)
		return &controller.ExecutionResult{WalletID: walletID, Success: true}, nil
	}

	runTick(context.Background())

	if len(executed) != 2 || executed[0] != "w-1" || executed[1] != "w-2" {
		t.Fatalf("expected both wallets executed in order, got %v", executed)
	}
}

// Ensures one wallet failing does not stop the rest of the tick.
func TestRunTickContinuesAfterWalletFailure(t *testing.T) {
	oldFind := findEnabledWallets
	oldExecute := executeWallet
	t.Cleanup(func() {
		findEnabledWallets = oldFind
		executeWallet = oldExecute
	})
	stubClock(t, tradingClock())

	findEnabledWallets = func(ctx context.Context) ([]model.Wallet, error) {
		return []model.Wallet{{ID: "w-1"}, {ID: "w-2"}}, nil
	}

	var executed []string
	executeWallet = func(ctx context.Context, walletID string) (*controller.ExecutionResult, error) {
		executed = append(executed, walletID)
		if walletID == "w-1" {
			return nil, errors.New("broker down")
		}
		return &controller.ExecutionResult{WalletID: walletID, Success: true}, nil
	}

	runTick(context.Background())

	if len(executed) != 2 {
		t.Fatalf("expected both wallets attempted, got %v", executed)
	}
}

// Outside trading hours the tick must not touch the database at all.
func TestRunTickSkipsOutsideTradingHours(t *testing.T) {
	oldFind := findEnabledWallets
	t.Cleanup(func() { findEnabledWallets = oldFind })

	// Saturday
	stubClock(t, time.Date(2026, 1, 10, 15, 0, 0, 0, time.UTC))

	findEnabledWallets = func(ctx context.Context) ([]model.Wallet, error) {
		t.Fatal("wallets must not be listed outside trading hours")
		return nil, nil
	}

	runTick(context.Background())
}

// Ensures the kill switch stops the scheduler before the first tick.
func TestStartLoopDisabled(t *testing.T) {
	t.Setenv("ENGINE_ENABLED", "false")

	if err := StartLoop(context.Background()); err != nil {
		t.Fatalf("expected nil from disabled scheduler, got %v", err)
	}
}
