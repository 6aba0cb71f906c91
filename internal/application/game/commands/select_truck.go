package commands

import (
	"context"
	"fmt"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/game"
)

// SelectTruckCommand makes an owned truck the current one
type SelectTruckCommand struct {
	TruckID string
}

// SelectTruckResponse reports whether the selection changed
type SelectTruckResponse struct {
	TruckID string
	Changed bool
	Message string
}

// SelectTruckHandler handles the SelectTruck command
type SelectTruckHandler struct {
	session *game.Session
}

// NewSelectTruckHandler creates a new SelectTruckHandler
func NewSelectTruckHandler(session *game.Session) *SelectTruckHandler {
	return &SelectTruckHandler{session: session}
}

// Handle executes the SelectTruck command
func (h *SelectTruckHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*SelectTruckCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SelectTruckCommand")
	}

	outcome, err := h.session.SelectTruck(cmd.TruckID)
	if err != nil {
		return nil, fmt.Errorf("failed to select truck: %w", observeRejection(ctx, err))
	}

	return &SelectTruckResponse{
		TruckID: cmd.TruckID,
		Changed: outcome.Message != "",
		Message: outcome.Message,
	}, nil
}
