package commands

import (
	"context"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/adapters/metrics"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	ledgerCmd "github.com/oseiasoliveira3390-bot/Truck-life/internal/application/ledger/commands"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/game"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/ledger"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/shared"
)

// LedgerRecorder books session money movements through the mediator.
// Booking failures are logged; the session state stays authoritative.
type LedgerRecorder struct {
	mediator  common.Mediator
	sessionID string
}

// NewLedgerRecorder creates a recorder. A nil mediator disables booking.
func NewLedgerRecorder(mediator common.Mediator, sessionID string) *LedgerRecorder {
	return &LedgerRecorder{mediator: mediator, sessionID: sessionID}
}

// Record books every movement in order
func (r *LedgerRecorder) Record(ctx context.Context, movements []game.Movement) {
	if r == nil || r.mediator == nil {
		return
	}
	logger := common.LoggerFromContext(ctx)

	for _, m := range movements {
		_, err := r.mediator.Send(ctx, &ledgerCmd.RecordTransactionCommand{Entry: ledger.Entry{
			SessionID:     r.sessionID,
			Type:          m.Type,
			Amount:        m.Amount,
			BalanceBefore: m.BalanceBefore,
			BalanceAfter:  m.BalanceAfter,
			Description:   m.Description,
			SubjectKind:   m.SubjectKind,
			SubjectID:     m.SubjectID,
		}})
		if err != nil {
			logger.Log(common.LevelError, "Failed to record transaction in ledger", map[string]interface{}{
				"error":  err.Error(),
				"type":   m.Type.String(),
				"amount": m.Amount,
			})
			continue
		}
		logger.Log(common.LevelDebug, "Transaction recorded in ledger", map[string]interface{}{
			"type":   m.Type.String(),
			"amount": m.Amount,
		})
	}
}

// observeRejection counts domain rejections and passes the error through
func observeRejection(ctx context.Context, err error) error {
	if rejection, ok := shared.AsRejection(err); ok {
		metrics.RecordRejection(rejection.Command)
		common.LoggerFromContext(ctx).Log(common.LevelInfo, "Command rejected", map[string]interface{}{
			"command": rejection.Command,
			"reason":  rejection.Reason(),
		})
	}
	return err
}

// TripTimer drives trip progress in the background
type TripTimer interface {
	Arm(ctx context.Context)
	Disarm()
}
