package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"walletengine/src/budget"
	"walletengine/src/connectors"
	"walletengine/src/database"
	"walletengine/src/gate"
	"walletengine/src/metrics"
	"walletengine/src/model"
	"walletengine/src/pricing"
	"walletengine/src/repository"
)

type brokerClient interface {
	GetAccount(ctx context.Context) (*connectors.Account, error)
	GetPositions(ctx context.Context) (map[string]connectors.Position, error)
	GetOpenOrders(ctx context.Context) ([]connectors.OpenOrder, error)
	CancelOrder(ctx context.Context, orderID string) error
	SubmitLimitOrder(ctx context.Context, order connectors.OrderRequest) (*connectors.OrderAck, error)
}

type marketDataClient interface {
	GetLastTrade(ctx context.Context, ticker string) (*connectors.LastTrade, error)
}

type walletFinder interface {
	FindByID(ctx context.Context, walletID string) (*model.Wallet, error)
}

type credentialsResolver interface {
	ResolveForWallet(ctx context.Context, wallet *model.Wallet) (*repository.Credentials, error)
}

type walletSymbolRepository interface {
	FindEnabledByWallet(ctx context.Context, walletID string) ([]model.WalletSymbol, error)
}

type baselineReader interface {
	FindLatest(ctx context.Context, symbol string, session model.Session, method model.Method) (*model.BaselineDaily, error)
}

type executionWriter interface {
	CreateCancellation(ctx context.Context, cancellation *model.ExecutionCancellation) error
	CreateRunLog(ctx context.Context, runLog *model.WalletRunLog) error
}

type executionErrorRepository interface {
	Create(ctx context.Context, execError *model.ExecutionError) error
}

var (
	newWalletRepo = func() walletFinder {
		return repository.NewWalletRepository()
	}
	newCredentialsRepo = func() credentialsResolver {
		return repository.NewCredentialsRepository()
	}
	newWalletSymbolRepo = func() walletSymbolRepository {
		return repository.NewWalletSymbolRepository()
	}
	newBaselineRepo = func() baselineReader {
		return repository.NewBaselineRepository()
	}
	newExecutionRepo = func() executionWriter {
		return repository.NewExecutionRepository()
	}
	newErrorRepo = func() executionErrorRepository {
		return repository.NewErrorRepository()
	}

	// persistSymbolOutcome writes the snapshot and the order row of one symbol
	// evaluation in a single transaction. The order is nil when nothing was
	// submitted.
	persistSymbolOutcome = func(ctx context.Context, snapshot *model.ExecutionSnapshot, order *model.ExecutionOrder) error {
		return database.MainDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			execRepo := repository.NewExecutionRepository().WithDB(tx)
			if err := execRepo.CreateSnapshot(ctx, snapshot); err != nil {
				return err
			}
			if order != nil {
				if err := execRepo.CreateOrder(ctx, order); err != nil {
					return err
				}
			}
			return nil
		})
	}
)

// sharedGate keeps cooldown state alive across wallet runs in this process.
var sharedGate = gate.New(gate.NewMemoryCooldownStore())

const (
	SymbolStatusExecuted = "EXECUTED"
	SymbolStatusSkipped  = "SKIPPED"
	SymbolStatusFailed   = "FAILED"
)

// SymbolResult is the per-symbol outcome that ends up in the run summary.
type SymbolResult struct {
	Symbol   string         `json:"symbol"`
	Status   string         `json:"status"`
	Decision model.Decision `json:"decision,omitempty"`
	Side     string         `json:"side,omitempty"`
	Qty      int64          `json:"qty,omitempty"`
	Price    float64        `json:"price,omitempty"`
	Reason   string         `json:"reason,omitempty"`
}

// ExecutionResult is the outcome of one full wallet run.
type ExecutionResult struct {
	WalletID   string         `json:"wallet_id"`
	Success    bool           `json:"success"`
	Session    model.Session  `json:"session,omitempty"`
	Results    []SymbolResult `json:"results"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
}

// WalletController runs the full execution flow for one wallet: account
// snapshot, pre-run cleanup, budget allocation and the per-symbol loop.
type WalletController struct {
	broker     brokerClient
	market     marketDataClient
	symbols    walletSymbolRepository
	baselines  baselineReader
	executions executionWriter
	errorsRepo executionErrorRepository
	gate       *gate.Gate
	refTicker  string
	cancelOpen bool
	now        func() time.Time
}

func NewWalletController(broker brokerClient, market marketDataClient, g *gate.Gate) *WalletController {
	cfg := GetConfig()
	return &WalletController{
		broker:     broker,
		market:     market,
		symbols:    newWalletSymbolRepo(),
		baselines:  newBaselineRepo(),
		executions: newExecutionRepo(),
		errorsRepo: newErrorRepo(),
		gate:       g,
		refTicker:  connectors.GetConfig().ReferenceTicker,
		cancelOpen: cfg.CancelOpenOrders,
		now:        time.Now,
	}
}

// ExecuteWalletByID resolves the wallet and its credentials, builds the
// per-wallet API clients and runs the execution flow.
func ExecuteWalletByID(ctx context.Context, walletID string) (*ExecutionResult, error) {
	errorRepo := newErrorRepo()

	wallet, err := newWalletRepo().FindByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		err := model.NewConfigError("ExecuteWalletByID", fmt.Errorf("wallet %s not found", walletID))
		Capture(ctx, errorRepo, walletID, "", "ExecuteWalletByID", err, nil)
		return nil, err
	}
	if !wallet.Enabled {
		err := model.NewConfigError("ExecuteWalletByID", fmt.Errorf("wallet %s is disabled", walletID))
		Capture(ctx, errorRepo, walletID, "", "ExecuteWalletByID", err, nil)
		return nil, err
	}

	creds, err := newCredentialsRepo().ResolveForWallet(ctx, wallet)
	if err != nil {
		wrapped := model.NewCriticalError("credentials.ResolveForWallet", err)
		Capture(ctx, errorRepo, wallet.ID, "", "ExecuteWalletByID", wrapped, nil)
		return nil, wrapped
	}

	connCfg := connectors.GetConfig()
	baseURL := connCfg.BrokerBaseURLPaper
	if wallet.Env == model.WalletEnvLive {
		baseURL = connCfg.BrokerBaseURLLive
	}

	broker := connectors.NewBrokerClient(creds.BrokerKey, creds.BrokerSecret, baseURL)
	market := connectors.NewMarketDataClient(creds.MarketDataKey, "")

	cfg := GetConfig()
	sharedGate.WithCooldown(time.Duration(cfg.OrderCooldownSeconds) * time.Second)

	return NewWalletController(broker, market, sharedGate).ExecuteWallet(ctx, wallet)
}

// ExecuteWallet runs one full execution cycle for an already resolved wallet.
// A non-nil error means the run itself could not proceed; individual symbol
// failures are reported inside the result and do not fail the run.
func (c *WalletController) ExecuteWallet(ctx context.Context, wallet *model.Wallet) (*ExecutionResult, error) {
	started := c.now()
	result := &ExecutionResult{WalletID: wallet.ID, StartedAt: started}

	logger.WithFields(map[string]interface{}{
		"wallet_id": wallet.ID,
		"env":       wallet.Env,
	}).Info("Starting wallet execution run")

	now := c.now()
	if !pricing.IsTradingDay(now) {
		result.Success = true
		logger.WithField("wallet_id", wallet.ID).Info("Market closed today, skipping run")
		c.finishRun(ctx, result)
		return result, nil
	}

	session, ok := pricing.SessionAt(now)
	if !ok {
		result.Success = true
		logger.WithField("wallet_id", wallet.ID).Info("Outside trading sessions, skipping run")
		c.finishRun(ctx, result)
		return result, nil
	}
	result.Session = session

	account, err := c.broker.GetAccount(ctx)
	if err != nil {
		wrapped := model.NewCriticalError("broker.GetAccount", err)
		Capture(ctx, c.errorsRepo, wallet.ID, "", "ExecuteWallet", wrapped, nil)
		c.finishRun(ctx, result)
		return result, wrapped
	}
	metrics.SetAccountEquity(wallet.ID, account.Equity)

	positions, err := c.broker.GetPositions(ctx)
	if err != nil {
		wrapped := model.NewCriticalError("broker.GetPositions", err)
		Capture(ctx, c.errorsRepo, wallet.ID, "", "ExecuteWallet", wrapped, nil)
		c.finishRun(ctx, result)
		return result, wrapped
	}

	openOrders, err := c.broker.GetOpenOrders(ctx)
	if err != nil {
		wrapped := model.NewCriticalError("broker.GetOpenOrders", err)
		Capture(ctx, c.errorsRepo, wallet.ID, "", "ExecuteWallet", wrapped, nil)
		c.finishRun(ctx, result)
		return result, wrapped
	}

	if c.cancelOpen {
		openOrders = c.cancelRestingOrders(ctx, wallet, openOrders)
	}

	configs, err := c.symbols.FindEnabledByWallet(ctx, wallet.ID)
	if err != nil {
		wrapped := model.NewCriticalError("symbols.FindEnabledByWallet", err)
		Capture(ctx, c.errorsRepo, wallet.ID, "", "ExecuteWallet", wrapped, nil)
		c.finishRun(ctx, result)
		return result, wrapped
	}

	if len(configs) == 0 {
		result.Success = true
		logger.WithField("wallet_id", wallet.ID).Info("No enabled symbols, nothing to do")
		c.finishRun(ctx, result)
		return result, nil
	}

	// One reference price per run, so every symbol prices against the same
	// snapshot.
	refTrade, err := c.market.GetLastTrade(ctx, c.refTicker)
	if err != nil {
		wrapped := model.NewAPIError("market.GetLastTrade", err)
		Capture(ctx, c.errorsRepo, wallet.ID, "", "ExecuteWallet", wrapped,
			map[string]interface{}{"ticker": c.refTicker})
		c.finishRun(ctx, result)
		return result, wrapped
	}

	costBasis := make(map[string]decimal.Decimal, len(positions))
	for symbol, pos := range positions {
		costBasis[symbol] = decimal.NewFromFloat(pos.CostBasis)
	}

	acct := budget.Account{
		Cash:   decimal.NewFromFloat(account.Cash),
		Equity: decimal.NewFromFloat(account.Equity),
	}
	plan := budget.Allocate(acct, budget.BuildRequests(configs, acct, costBasis))

	cumulativeSpent := 0.0
	for _, cfg := range configs {
		symbolResult := c.executeSymbol(ctx, wallet, cfg, session,
			refTrade.Price, plan.Allocations[cfg.Symbol], positions[cfg.Symbol],
			openOrders, account, &cumulativeSpent)
		result.Results = append(result.Results, symbolResult)

		logger.WithFields(map[string]interface{}{
			"wallet_id": wallet.ID,
			"symbol":    cfg.Symbol,
			"status":    symbolResult.Status,
			"decision":  symbolResult.Decision,
			"reason":    symbolResult.Reason,
		}).Info("Symbol evaluated")
	}

	result.Success = true
	c.finishRun(ctx, result)

	return result, nil
}

// cancelRestingOrders cancels the wallet's open orders before the symbol loop
// and returns the ones that could not be canceled.
func (c *WalletController) cancelRestingOrders(ctx context.Context, wallet *model.Wallet, openOrders []connectors.OpenOrder) []connectors.OpenOrder {
	var remaining []connectors.OpenOrder

	for _, open := range openOrders {
		if err := c.broker.CancelOrder(ctx, open.ID); err != nil {
			wrapped := model.NewAPIError("broker.CancelOrder", err)
			Capture(ctx, c.errorsRepo, wallet.ID, open.Symbol, "cancelRestingOrders", wrapped,
				map[string]interface{}{"broker_order_id": open.ID})
			remaining = append(remaining, open)
			continue
		}

		cancellation := &model.ExecutionCancellation{
			WalletID:      wallet.ID,
			Symbol:        open.Symbol,
			Side:          open.Side,
			BrokerOrderID: open.ID,
			Reason:        "pre-run cleanup of resting orders",
		}
		if err := c.executions.CreateCancellation(ctx, cancellation); err != nil {
			logger.WithError(err).WithField("broker_order_id", open.ID).
				Error("Failed to audit order cancellation")
		}

		logger.WithFields(map[string]interface{}{
			"wallet_id":       wallet.ID,
			"symbol":          open.Symbol,
			"side":            open.Side,
			"broker_order_id": open.ID,
		}).Info("Resting order canceled")
	}

	return remaining
}

func (c *WalletController) finishRun(ctx context.Context, result *ExecutionResult) {
	result.FinishedAt = c.now()

	metrics.IncWalletRun(result.Success)
	metrics.ObserveWalletRunSeconds(result.FinishedAt.Sub(result.StartedAt).Seconds())

	summary, err := json.Marshal(result.Results)
	if err != nil {
		summary = []byte("[]")
	}

	runLog := &model.WalletRunLog{
		WalletID:   result.WalletID,
		Success:    result.Success,
		Summary:    string(summary),
		StartedAt:  result.StartedAt,
		FinishedAt: result.FinishedAt,
	}
	if err := c.executions.CreateRunLog(ctx, runLog); err != nil {
		logger.WithError(err).WithField("wallet_id", result.WalletID).
			Error("Failed to persist wallet run log")
	}
}
