package commands

import (
	"context"
	"fmt"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/adapters/metrics"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/economy"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/game"
)

// TakeLoanCommand borrows cash at the standard cash rate. With OfferIndex
// set, the bank offer's amount and term are used; otherwise Amount and
// TermMonths.
type TakeLoanCommand struct {
	Amount     float64
	TermMonths int
	OfferIndex *int
}

// TakeLoanResponse describes the new loan
type TakeLoanResponse struct {
	LoanID         string
	Amount         float64
	AnnualRate     float64
	MonthlyPayment float64
	TermMonths     int
	Message        string
}

// TakeLoanHandler handles the TakeLoan command
type TakeLoanHandler struct {
	session  *game.Session
	recorder *LedgerRecorder
}

// NewTakeLoanHandler creates a new TakeLoanHandler
func NewTakeLoanHandler(session *game.Session, recorder *LedgerRecorder) *TakeLoanHandler {
	return &TakeLoanHandler{session: session, recorder: recorder}
}

// Handle executes the TakeLoan command
func (h *TakeLoanHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*TakeLoanCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *TakeLoanCommand")
	}

	var (
		outcome *game.Outcome
		err     error
	)
	if cmd.OfferIndex != nil {
		outcome, err = h.session.TakeLoanOffer(*cmd.OfferIndex)
	} else {
		outcome, err = h.session.TakeLoan(cmd.Amount, cmd.TermMonths)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to take loan: %w", observeRejection(ctx, err))
	}

	h.recorder.Record(ctx, outcome.Movements)
	metrics.RecordLoanOriginated("cash", outcome.Loan.Principal)

	return &TakeLoanResponse{
		LoanID:         outcome.Loan.ID,
		Amount:         outcome.Loan.Principal,
		AnnualRate:     economy.CashLoanRate,
		MonthlyPayment: outcome.Loan.MonthlyPayment,
		TermMonths:     outcome.Loan.TermMonths,
		Message:        outcome.Message,
	}, nil
}
