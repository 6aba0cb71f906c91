package commands

import (
	"context"
	"fmt"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/adapters/metrics"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/game"
)

// BillLoansCommand charges one installment on every open loan
type BillLoansCommand struct{}

// BillLoansResponse summarises the billing run
type BillLoansResponse struct {
	TotalCharged float64
	LoansBilled  int
	OpenLoans    int
	Overdrawn    bool
}

// BillLoansHandler handles the BillLoans command
type BillLoansHandler struct {
	session  *game.Session
	recorder *LedgerRecorder
}

// NewBillLoansHandler creates a new BillLoansHandler
func NewBillLoansHandler(session *game.Session, recorder *LedgerRecorder) *BillLoansHandler {
	return &BillLoansHandler{session: session, recorder: recorder}
}

// Handle executes the BillLoans command
func (h *BillLoansHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*BillLoansCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *BillLoansCommand")
	}

	outcome := h.session.BillLoans()
	h.recorder.Record(ctx, outcome.Movements)

	profile := h.session.Snapshot().Player
	resp := &BillLoansResponse{
		TotalCharged: -outcome.CashDelta(),
		LoansBilled:  len(outcome.Movements),
		OpenLoans:    len(profile.Loans),
		Overdrawn:    profile.Overdrawn(),
	}

	if resp.LoansBilled > 0 {
		metrics.RecordLoanBilling(resp.TotalCharged)
		logger := common.LoggerFromContext(ctx)
		logger.Log(common.LevelInfo, "Loan installments charged", map[string]interface{}{
			"total":      resp.TotalCharged,
			"loans":      resp.LoansBilled,
			"open_loans": resp.OpenLoans,
		})
		if resp.Overdrawn {
			logger.Log(common.LevelWarn, "Player account overdrawn", map[string]interface{}{
				"balance": profile.Money,
			})
		}
	}
	return resp, nil
}
