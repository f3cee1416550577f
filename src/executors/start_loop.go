package executors

import (
	"context"
	"time"

	logger "github.com/sirupsen/logrus"

	"walletengine/src/controller"
	"walletengine/src/model"
	"walletengine/src/pricing"
	"walletengine/src/repository"
)

var (
	nowFunc = time.Now

	findEnabledWallets = func(ctx context.Context) ([]model.Wallet, error) {
		return repository.NewWalletRepository().FindEnabled(ctx)
	}

	executeWallet = func(ctx context.Context, walletID string) (*controller.ExecutionResult, error) {
		return controller.ExecuteWalletByID(ctx, walletID)
	}
)

// StartLoop runs the engine scheduler: every tick, each enabled wallet is
// executed in turn. One wallet failing never stops the others.
func StartLoop(ctx context.Context) error {
	config := GetConfig()

	if !config.EngineEnabled {
		logger.Warn("Engine disabled via ENGINE_ENABLED, scheduler not starting")
		return nil
	}

	logger.WithField("loop_period", config.LoopPeriod.String()).Info("Engine scheduler started")

	ticker := time.NewTicker(config.LoopPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Engine scheduler stopped")
			return nil

		case <-ticker.C:
			runTick(ctx)
		}
	}
}

// runTick runs one scheduler pass. Outside trading hours it is a no-op.
func runTick(ctx context.Context) {
	now := nowFunc()

	if !pricing.IsTradingDay(now) {
		logger.Debug("Market closed today, tick skipped")
		return
	}
	if _, ok := pricing.SessionAt(now); !ok {
		logger.Debug("Outside trading sessions, tick skipped")
		return
	}

	wallets, err := findEnabledWallets(ctx)
	if err != nil {
		logger.WithError(err).Error("Failed to list enabled wallets")
		return
	}

	if len(wallets) == 0 {
		logger.Debug("No enabled wallets")
		return
	}

	for _, wallet := range wallets {
		result, err := executeWallet(ctx, wallet.ID)
		if err != nil {
			logger.WithError(err).
				WithField("wallet_id", wallet.ID).
				Error("Wallet execution failed, continuing with next wallet")
			continue
		}

		logger.WithFields(map[string]interface{}{
			"wallet_id": wallet.ID,
			"session":   result.Session,
			"symbols":   len(result.Results),
		}).Info("Wallet execution finished")
	}
}
