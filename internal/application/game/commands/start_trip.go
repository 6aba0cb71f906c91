package commands

import (
	"context"
	"fmt"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/game"
)

// StartTripCommand puts the loaded truck on the road
type StartTripCommand struct{}

// StartTripResponse describes the trip
type StartTripResponse struct {
	JobID   string
	Message string
}

// StartTripHandler handles the StartTrip command and arms the driving timer
type StartTripHandler struct {
	session *game.Session
	timer   TripTimer
}

// NewStartTripHandler creates a new StartTripHandler. timer may be nil when
// progress is advanced by the caller.
func NewStartTripHandler(session *game.Session, timer TripTimer) *StartTripHandler {
	return &StartTripHandler{session: session, timer: timer}
}

// Handle executes the StartTrip command
func (h *StartTripHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*StartTripCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *StartTripCommand")
	}

	outcome, err := h.session.StartTrip()
	if err != nil {
		return nil, fmt.Errorf("failed to start trip: %w", observeRejection(ctx, err))
	}

	if h.timer != nil {
		h.timer.Arm(ctx)
	}

	return &StartTripResponse{
		JobID:   outcome.Job.ID,
		Message: outcome.Message,
	}, nil
}
