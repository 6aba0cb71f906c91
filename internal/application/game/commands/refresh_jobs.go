package commands

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/game"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/shared"
)

// CmdRefreshJobs names the refresh command in rejections
const CmdRefreshJobs = "refresh jobs"

// RefreshJobsCommand regenerates the job board
type RefreshJobsCommand struct{}

// RefreshJobsResponse reports the new board size
type RefreshJobsResponse struct {
	JobCount int
	Message  string
}

// RefreshJobsHandler handles the RefreshJobs command. Refreshes are
// throttled so the board cannot be re-rolled until a good job shows up.
type RefreshJobsHandler struct {
	session *game.Session
	limiter *rate.Limiter
}

// NewRefreshJobsHandler allows one refresh per interval. A zero interval disables throttling.
func NewRefreshJobsHandler(session *game.Session, interval time.Duration) *RefreshJobsHandler {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &RefreshJobsHandler{
		session: session,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Handle executes the RefreshJobs command
func (h *RefreshJobsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*RefreshJobsCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *RefreshJobsCommand")
	}

	if !h.limiter.Allow() {
		err := shared.NewRejectionError(CmdRefreshJobs, "The job board was refreshed recently. Try again later.")
		return nil, fmt.Errorf("failed to refresh jobs: %w", observeRejection(ctx, err))
	}

	outcome := h.session.RefreshJobs()
	return &RefreshJobsResponse{
		JobCount: len(h.session.Snapshot().AvailableJobs),
		Message:  outcome.Message,
	}, nil
}
