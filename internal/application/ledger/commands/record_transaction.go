package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/adapters/metrics"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/ledger"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/shared"
)

// RecordTransactionCommand books one cash movement. A zero Entry.Timestamp
// is stamped with the handler clock.
type RecordTransactionCommand struct {
	Entry ledger.Entry
}

// RecordTransactionResponse identifies the booked line
type RecordTransactionResponse struct {
	TransactionID string
	Category      string
	Timestamp     time.Time
}

// RecordTransactionHandler validates and stores ledger entries
type RecordTransactionHandler struct {
	repo  ledger.TransactionRepository
	clock shared.Clock
}

// NewRecordTransactionHandler creates the handler. A nil clock uses wall time.
func NewRecordTransactionHandler(repo ledger.TransactionRepository, clock shared.Clock) *RecordTransactionHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &RecordTransactionHandler{repo: repo, clock: clock}
}

// Handle executes the RecordTransaction command
func (h *RecordTransactionHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RecordTransactionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RecordTransactionCommand, got %T", request)
	}

	entry := cmd.Entry
	if entry.Timestamp.IsZero() {
		entry.Timestamp = h.clock.Now()
	}

	tx, err := ledger.NewTransaction(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	if err := h.repo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to persist transaction: %w", err)
	}

	metrics.RecordTransaction(entry.SessionID, entry.Type.String(), tx.Category().String(), entry.Amount, entry.BalanceAfter)

	return &RecordTransactionResponse{
		TransactionID: tx.ID().String(),
		Category:      tx.Category().String(),
		Timestamp:     tx.Timestamp(),
	}, nil
}
