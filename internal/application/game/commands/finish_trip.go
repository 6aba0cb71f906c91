package commands

import (
	"context"
	"fmt"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/adapters/metrics"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/economy"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/game"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/player"
)

// FinishTripCommand confirms an arrived delivery
type FinishTripCommand struct{}

// FinishTripResponse describes the rewards of the delivery
type FinishTripResponse struct {
	JobID         string
	Payout        int
	XPGained      float64
	Level         int
	LeveledUp     bool
	TripCosts     economy.TripCosts
	CostsDeducted bool
	Message       string
}

// FinishTripHandler handles the FinishTrip command
type FinishTripHandler struct {
	session  *game.Session
	recorder *LedgerRecorder
	timer    TripTimer
}

// NewFinishTripHandler creates a new FinishTripHandler
func NewFinishTripHandler(session *game.Session, recorder *LedgerRecorder, timer TripTimer) *FinishTripHandler {
	return &FinishTripHandler{session: session, recorder: recorder, timer: timer}
}

// Handle executes the FinishTrip command
func (h *FinishTripHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*FinishTripCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *FinishTripCommand")
	}

	outcome, err := h.session.FinishTrip()
	if err != nil {
		return nil, fmt.Errorf("failed to finish trip: %w", observeRejection(ctx, err))
	}

	if h.timer != nil {
		h.timer.Disarm()
	}
	h.recorder.Record(ctx, outcome.Movements)

	delivered := outcome.Job
	resp := &FinishTripResponse{
		JobID:     delivered.ID,
		Payout:    delivered.Payout,
		XPGained:  player.XPForDistance(delivered.Distance),
		Level:     h.session.Snapshot().Player.Level,
		LeveledUp: outcome.LeveledUp,
		Message:   outcome.Message,
	}
	if outcome.TripCosts != nil {
		resp.TripCosts = *outcome.TripCosts
		resp.CostsDeducted = len(outcome.Movements) > 1
	}

	metrics.RecordDelivery(delivered.Cargo, delivered.Urgency.String(), delivered.Distance, float64(delivered.Payout))
	if outcome.LeveledUp {
		metrics.RecordLevelUp(resp.Level)
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "Delivery completed", map[string]interface{}{
		"job_id":   delivered.ID,
		"payout":   delivered.Payout,
		"distance": delivered.Distance,
		"level":    resp.Level,
	})

	return resp, nil
}
