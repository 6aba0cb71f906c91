package queries

import (
	"context"
	"fmt"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/game"
)

// GetEventLogQuery returns the newest log entries. Limit 0 returns all.
type GetEventLogQuery struct {
	Limit int
}

// GetEventLogResponse lists entries newest first
type GetEventLogResponse struct {
	Entries []string
}

// GetEventLogHandler handles the GetEventLog query
type GetEventLogHandler struct {
	session *game.Session
}

// NewGetEventLogHandler creates a new GetEventLogHandler
func NewGetEventLogHandler(session *game.Session) *GetEventLogHandler {
	return &GetEventLogHandler{session: session}
}

// Handle executes the GetEventLog query
func (h *GetEventLogHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetEventLogQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetEventLogQuery")
	}

	entries := h.session.Log()
	if query.Limit > 0 && len(entries) > query.Limit {
		entries = entries[:query.Limit]
	}
	return &GetEventLogResponse{Entries: entries}, nil
}
