package commands

import (
	"context"
	"fmt"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/adapters/metrics"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/game"
)

// BuyTruckCommand purchases a truck from the dealership
type BuyTruckCommand struct {
	ModelID  string
	Used     bool
	Financed bool
}

// BuyTruckResponse describes the purchase
type BuyTruckResponse struct {
	TruckID       string
	PurchasePrice float64
	Upfront       float64
	LoanID        string
	Message       string
}

// BuyTruckHandler handles the BuyTruck command
type BuyTruckHandler struct {
	session  *game.Session
	recorder *LedgerRecorder
}

// NewBuyTruckHandler creates a new BuyTruckHandler
func NewBuyTruckHandler(session *game.Session, recorder *LedgerRecorder) *BuyTruckHandler {
	return &BuyTruckHandler{session: session, recorder: recorder}
}

// Handle executes the BuyTruck command
func (h *BuyTruckHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*BuyTruckCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *BuyTruckCommand")
	}

	outcome, err := h.session.BuyTruck(cmd.ModelID, cmd.Used, cmd.Financed)
	if err != nil {
		return nil, fmt.Errorf("failed to buy truck: %w", observeRejection(ctx, err))
	}

	h.recorder.Record(ctx, outcome.Movements)
	metrics.RecordTruckPurchase(cmd.ModelID, cmd.Used, cmd.Financed)

	resp := &BuyTruckResponse{
		TruckID:       outcome.Truck.ID,
		PurchasePrice: outcome.Truck.PurchasePrice,
		Upfront:       -outcome.CashDelta(),
		Message:       outcome.Message,
	}
	if outcome.Loan != nil {
		resp.LoanID = outcome.Loan.ID
		metrics.RecordLoanOriginated("truck_financing", outcome.Loan.Principal)
	}
	return resp, nil
}
