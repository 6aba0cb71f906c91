package queries

import (
	"context"
	"fmt"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/game"
)

// GetSnapshotQuery returns a read-only copy of the whole game state
type GetSnapshotQuery struct{}

// GetSnapshotResponse carries the state copy and derived values
type GetSnapshotResponse struct {
	SessionID string
	State     game.GameState
	Phase     game.TripPhase
}

// GetSnapshotHandler handles the GetSnapshot query
type GetSnapshotHandler struct {
	session *game.Session
}

// NewGetSnapshotHandler creates a new GetSnapshotHandler
func NewGetSnapshotHandler(session *game.Session) *GetSnapshotHandler {
	return &GetSnapshotHandler{session: session}
}

// Handle executes the GetSnapshot query
func (h *GetSnapshotHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*GetSnapshotQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetSnapshotQuery")
	}

	state := h.session.Snapshot()
	return &GetSnapshotResponse{
		SessionID: h.session.ID(),
		State:     state,
		Phase:     state.Phase(),
	}, nil
}
