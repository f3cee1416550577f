// Package metrics exposes the Prometheus instrumentation of the engine:
//   - engine_wallet_runs_total{result}      – wallet runs by outcome (success|failed)
//   - engine_wallet_run_seconds             – wallet run duration histogram
//   - engine_symbols_evaluated_total{decision} – symbol evaluations by decision
//   - engine_orders_submitted_total{side}   – orders sent to the broker
//   - engine_orders_skipped_total{reason}   – orders blocked before submission
//   - engine_errors_total{type}             – persisted engine errors by type
//   - engine_baseline_rows_written_total    – baseline upserts
//   - engine_account_equity_usd{wallet_id}  – last seen account equity
//
// Registered in init() and served at /metrics by the HTTP server.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	walletRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_wallet_runs_total",
			Help: "Wallet execution runs by outcome",
		},
		[]string{"result"}, // success|failed
	)

	walletRunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "engine_wallet_run_seconds",
			Help:    "Duration of a full wallet execution run",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)

	symbolDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_symbols_evaluated_total",
			Help: "Symbol evaluations by decision",
		},
		[]string{"decision"}, // HOLD|BUY|SELL|BOTH
	)

	ordersSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_orders_submitted_total",
			Help: "Orders submitted to the broker",
		},
		[]string{"side"}, // buy|sell
	)

	// Reasons are things like cooldown, order_conflict, price_sanity, zero_qty.
	ordersSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_orders_skipped_total",
			Help: "Orders blocked before submission, split by reason",
		},
		[]string{"reason"},
	)

	engineErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_errors_total",
			Help: "Persisted engine errors by type",
		},
		[]string{"type"},
	)

	baselineRows = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_baseline_rows_written_total",
			Help: "Baseline rows upserted by the computation engine",
		},
	)

	accountEquity = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "engine_account_equity_usd",
			Help: "Last observed account equity per wallet",
		},
		[]string{"wallet_id"},
	)
)

func init() {
	prometheus.MustRegister(walletRuns, walletRunDuration)
	prometheus.MustRegister(symbolDecisions, ordersSubmitted, ordersSkipped)
	prometheus.MustRegister(engineErrors, baselineRows, accountEquity)
}

func IncWalletRun(success bool) {
	if success {
		walletRuns.WithLabelValues("success").Inc()
		return
	}
	walletRuns.WithLabelValues("failed").Inc()
}

func ObserveWalletRunSeconds(seconds float64) { walletRunDuration.Observe(seconds) }

func IncSymbolDecision(decision string) { symbolDecisions.WithLabelValues(decision).Inc() }

func IncOrderSubmitted(side string) { ordersSubmitted.WithLabelValues(side).Inc() }

func IncOrderSkipped(reason string) { ordersSkipped.WithLabelValues(reason).Inc() }

func IncEngineError(errorType string) { engineErrors.WithLabelValues(errorType).Inc() }

func AddBaselineRows(count int) { baselineRows.Add(float64(count)) }

func SetAccountEquity(walletID string, equity float64) {
	accountEquity.WithLabelValues(walletID).Set(equity)
}
