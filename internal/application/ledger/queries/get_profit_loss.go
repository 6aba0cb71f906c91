package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/ledger"
)

// GetProfitLossQuery builds a profit and loss statement for a career.
// Zero dates leave the period open on that side.
type GetProfitLossQuery struct {
	SessionID string
	StartDate time.Time
	EndDate   time.Time
}

// GetProfitLossResponse represents the profit and loss statement
type GetProfitLossResponse struct {
	Period             string
	TotalRevenue       float64
	TotalExpenses      float64
	NetProfit          float64
	FinancingInflows   float64
	DebtRepaid         float64
	NetCashFlow        float64
	TransactionCount   int
	RevenueBreakdown   map[string]float64 // category -> amount
	ExpenseBreakdown   map[string]float64 // category -> amount, positive
	FinancingBreakdown map[string]float64
}

// GetProfitLossHandler handles the GetProfitLoss query
type GetProfitLossHandler struct {
	transactionRepo ledger.TransactionRepository
}

// NewGetProfitLossHandler creates a new GetProfitLossHandler
func NewGetProfitLossHandler(transactionRepo ledger.TransactionRepository) *GetProfitLossHandler {
	return &GetProfitLossHandler{
		transactionRepo: transactionRepo,
	}
}

// Handle executes the GetProfitLoss query
func (h *GetProfitLossHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetProfitLossQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetProfitLossQuery, got %T", request)
	}

	if query.SessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	// every matching row, no paging
	var filter ledger.Filter
	if !query.StartDate.IsZero() {
		filter.From = &query.StartDate
	}
	if !query.EndDate.IsZero() {
		filter.To = &query.EndDate
	}

	transactions, err := h.transactionRepo.FindBySession(ctx, query.SessionID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	return h.calculateProfitLoss(query, transactions), nil
}

func (h *GetProfitLossHandler) calculateProfitLoss(
	query *GetProfitLossQuery,
	transactions []*ledger.Transaction,
) *GetProfitLossResponse {
	report := ledger.Summarize(transactions)

	resp := &GetProfitLossResponse{
		Period:             formatPeriod(query.StartDate, query.EndDate),
		TotalRevenue:       report.Revenue,
		TotalExpenses:      report.Expenses,
		NetProfit:          report.NetProfit,
		FinancingInflows:   report.FinancingIn,
		DebtRepaid:         report.DebtRepaid,
		NetCashFlow:        report.NetCashFlow,
		TransactionCount:   report.TransactionCnt,
		RevenueBreakdown:   make(map[string]float64),
		ExpenseBreakdown:   make(map[string]float64),
		FinancingBreakdown: make(map[string]float64),
	}

	for category, total := range report.ByCategory {
		switch {
		case category.IsFinancing():
			resp.FinancingBreakdown[category.String()] = total.Total
		case category.IsIncome():
			resp.RevenueBreakdown[category.String()] = total.Total
		default:
			resp.ExpenseBreakdown[category.String()] = -total.Total
		}
	}

	return resp
}

func formatPeriod(start, end time.Time) string {
	const layout = "2006-01-02"
	switch {
	case start.IsZero() && end.IsZero():
		return "all time"
	case start.IsZero():
		return "until " + end.Format(layout)
	case end.IsZero():
		return "since " + start.Format(layout)
	default:
		return fmt.Sprintf("%s to %s", start.Format(layout), end.Format(layout))
	}
}
