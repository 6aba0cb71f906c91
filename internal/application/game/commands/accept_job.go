package commands

import (
	"context"
	"fmt"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/game"
)

// AcceptJobCommand takes a job from the board
type AcceptJobCommand struct {
	JobID string
}

// AcceptJobResponse describes the accepted job
type AcceptJobResponse struct {
	JobID    string
	Payout   int
	Distance float64
	Message  string
}

// AcceptJobHandler handles the AcceptJob command
type AcceptJobHandler struct {
	session *game.Session
}

// NewAcceptJobHandler creates a new AcceptJobHandler
func NewAcceptJobHandler(session *game.Session) *AcceptJobHandler {
	return &AcceptJobHandler{session: session}
}

// Handle executes the AcceptJob command
func (h *AcceptJobHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*AcceptJobCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AcceptJobCommand")
	}

	outcome, err := h.session.AcceptJob(cmd.JobID)
	if err != nil {
		return nil, fmt.Errorf("failed to accept job: %w", observeRejection(ctx, err))
	}

	return &AcceptJobResponse{
		JobID:    outcome.Job.ID,
		Payout:   outcome.Job.Payout,
		Distance: outcome.Job.Distance,
		Message:  outcome.Message,
	}, nil
}
