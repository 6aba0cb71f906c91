package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	gameQueries "github.com/oseiasoliveira3390-bot/Truck-life/internal/application/game/queries"
	ledgerQueries "github.com/oseiasoliveira3390-bot/Truck-life/internal/application/ledger/queries"
)

// DefaultPollInterval is how often gauges are refreshed from the session
const DefaultPollInterval = 30 * time.Second

// FinancialMetricsCollector handles all financial metrics (money, transactions, P&L, loans)
type FinancialMetricsCollector struct {
	// Dependencies
	mediator     common.Mediator
	sessionID    string
	pollInterval time.Duration

	// Balance metrics
	moneyBalance *prometheus.GaugeVec
	totalDebt    *prometheus.GaugeVec

	// Transaction metrics
	transactionsTotal *prometheus.CounterVec
	transactionAmount *prometheus.HistogramVec

	// P&L metrics
	totalRevenue  *prometheus.GaugeVec
	totalExpenses *prometheus.GaugeVec
	netProfit     *prometheus.GaugeVec

	// Loan metrics
	loansOriginated *prometheus.CounterVec
	loanPrincipal   *prometheus.HistogramVec
	loanBilled      prometheus.Counter

	// Lifecycle
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewFinancialMetricsCollector creates a new financial metrics collector for one career
func NewFinancialMetricsCollector(mediator common.Mediator, sessionID string) *FinancialMetricsCollector {
	return &FinancialMetricsCollector{
		mediator:     mediator,
		sessionID:    sessionID,
		pollInterval: DefaultPollInterval,

		moneyBalance: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "money_balance",
				Help:      "Current cash balance of the driver",
			},
			[]string{"session_id"},
		),

		totalDebt: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "debt_outstanding",
				Help:      "Sum of remaining loan balances",
			},
			[]string{"session_id"},
		),

		// Transaction count by type/category
		transactionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transactions_total",
				Help:      "Total number of transactions by type and category",
			},
			[]string{"session_id", "type", "category"},
		),

		// Transaction amount distribution
		transactionAmount: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transaction_amount",
				Help:      "Transaction amount distribution",
				Buckets:   []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 250000},
			},
			[]string{"session_id", "type", "category"},
		),

		totalRevenue: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "total_revenue",
				Help:      "Total revenue by category",
			},
			[]string{"session_id", "category"},
		),

		totalExpenses: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "total_expenses",
				Help:      "Total expenses by category",
			},
			[]string{"session_id", "category"},
		),

		netProfit: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "net_profit",
				Help:      "Net profit (revenue - expenses)",
			},
			[]string{"session_id"},
		),

		loansOriginated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "loans_originated_total",
				Help:      "Loans taken by kind (cash or truck_financing)",
			},
			[]string{"kind"},
		),

		loanPrincipal: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "loan_principal",
				Help:      "Principal distribution of new loans",
				Buckets:   []float64{5000, 10000, 25000, 50000, 100000, 250000},
			},
			[]string{"kind"},
		),

		loanBilled: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "loan_payments_total",
				Help:      "Money charged by monthly loan billing",
			},
		),
	}
}

// WithPollInterval overrides the gauge refresh interval
func (c *FinancialMetricsCollector) WithPollInterval(interval time.Duration) *FinancialMetricsCollector {
	if interval > 0 {
		c.pollInterval = interval
	}
	return c
}

// Register registers all financial metrics with the Prometheus registry
func (c *FinancialMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.moneyBalance,
		c.totalDebt,
		c.transactionsTotal,
		c.transactionAmount,
		c.totalRevenue,
		c.totalExpenses,
		c.netProfit,
		c.loansOriginated,
		c.loanPrincipal,
		c.loanBilled,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// Start begins the P&L polling goroutine
func (c *FinancialMetricsCollector) Start(ctx context.Context) {
	c.ctx, c.cancelFunc = context.WithCancel(ctx)

	c.wg.Add(1)
	go c.pollProfitLoss(c.pollInterval)
}

// Stop gracefully stops the financial metrics collector
func (c *FinancialMetricsCollector) Stop() {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
	c.wg.Wait()
}

// pollProfitLoss polls P&L data periodically
func (c *FinancialMetricsCollector) pollProfitLoss(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Do initial poll immediately
	c.updateProfitLoss(c.ctx)

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.updateProfitLoss(c.ctx)
		}
	}
}

// updateProfitLoss fetches and updates P&L and balance gauges
func (c *FinancialMetricsCollector) updateProfitLoss(ctx context.Context) {
	if c.mediator == nil {
		return
	}
	logger := common.LoggerFromContext(ctx)

	response, err := c.mediator.Send(ctx, &ledgerQueries.GetProfitLossQuery{SessionID: c.sessionID})
	if err != nil {
		logger.Log(common.LevelError, "Failed to fetch profit/loss", map[string]interface{}{
			"session_id": c.sessionID,
			"error":      err.Error(),
		})
		return
	}

	plResponse, ok := response.(*ledgerQueries.GetProfitLossResponse)
	if !ok {
		logger.Log(common.LevelError, "Unexpected response type for P&L query", map[string]interface{}{
			"type": typeName(response),
		})
		return
	}

	for category, amount := range plResponse.RevenueBreakdown {
		c.totalRevenue.WithLabelValues(c.sessionID, category).Set(amount)
	}
	for category, amount := range plResponse.ExpenseBreakdown {
		c.totalExpenses.WithLabelValues(c.sessionID, category).Set(amount)
	}
	c.netProfit.WithLabelValues(c.sessionID).Set(plResponse.NetProfit)

	financesResp, err := c.mediator.Send(ctx, &gameQueries.GetFinancesQuery{})
	if err != nil {
		logger.Log(common.LevelError, "Failed to fetch finances", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if finances, ok := financesResp.(*gameQueries.GetFinancesResponse); ok {
		c.moneyBalance.WithLabelValues(c.sessionID).Set(finances.Money)
		c.totalDebt.WithLabelValues(c.sessionID).Set(finances.TotalDebt)
	}
}

// RecordTransaction records a transaction event
func (c *FinancialMetricsCollector) RecordTransaction(
	sessionID string,
	transactionType string,
	category string,
	amount float64,
	balance float64,
) {
	c.moneyBalance.WithLabelValues(sessionID).Set(balance)
	c.transactionsTotal.WithLabelValues(sessionID, transactionType, category).Inc()

	absAmount := amount
	if absAmount < 0 {
		absAmount = -absAmount
	}
	c.transactionAmount.WithLabelValues(sessionID, transactionType, category).Observe(absAmount)
}

// RecordLoanOriginated records a new loan
func (c *FinancialMetricsCollector) RecordLoanOriginated(kind string, amount float64) {
	c.loansOriginated.WithLabelValues(kind).Inc()
	c.loanPrincipal.WithLabelValues(kind).Observe(amount)
}

// RecordLoanBilling records the money charged by one billing run
func (c *FinancialMetricsCollector) RecordLoanBilling(total float64) {
	if total <= 0 {
		return
	}
	c.loanBilled.Add(total)
}
