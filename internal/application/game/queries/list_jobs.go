package queries

import (
	"context"
	"fmt"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/game"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/job"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/player"
)

// ListJobsQuery lists the job board
type ListJobsQuery struct {
	OnlyAcceptable bool
}

// JobListing is a job with display names and the player's standing against it
type JobListing struct {
	Job       job.Job
	FromName  string
	ToName    string
	Licensed  bool // player's license covers the job
	FitsTruck bool // load within the current truck's capacity; advisory
}

// ListJobsResponse holds the board in pool order
type ListJobsResponse struct {
	Jobs        []JobListing
	ActiveJobID string
}

// ListJobsHandler handles the ListJobs query
type ListJobsHandler struct {
	session *game.Session
}

// NewListJobsHandler creates a new ListJobsHandler
func NewListJobsHandler(session *game.Session) *ListJobsHandler {
	return &ListJobsHandler{session: session}
}

// Handle executes the ListJobs query
func (h *ListJobsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListJobsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListJobsQuery")
	}

	state := h.session.Snapshot()
	catalog := h.session.Catalog()

	capacity := 0
	if truck, ok := state.CurrentTruck(); ok {
		if model, ok := catalog.FindTruckModel(truck.ModelID); ok {
			capacity = model.Capacity
		}
	}

	listings := make([]JobListing, 0, len(state.AvailableJobs))
	for _, j := range state.AvailableJobs {
		licensed := player.CanOperate(state.Player.License, j.RequiredLicense)
		if query.OnlyAcceptable && !licensed {
			continue
		}
		listings = append(listings, JobListing{
			Job:       j,
			FromName:  catalog.CityName(j.From),
			ToName:    catalog.CityName(j.To),
			Licensed:  licensed,
			FitsTruck: capacity > 0 && j.FitsCapacity(capacity),
		})
	}

	return &ListJobsResponse{
		Jobs:        listings,
		ActiveJobID: state.Player.ActiveJobID,
	}, nil
}
