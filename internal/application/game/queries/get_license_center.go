package queries

import (
	"context"
	"fmt"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/game"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/world"
)

// GetLicenseCenterQuery shows every license tier and what is missing for it
type GetLicenseCenterQuery struct{}

// GetLicenseCenterResponse is the license center view
type GetLicenseCenterResponse struct {
	Current world.LicenseCategory
	Level   int
	Money   float64
	Tiers   []game.LicenseTier
}

// GetLicenseCenterHandler handles the GetLicenseCenter query
type GetLicenseCenterHandler struct {
	session *game.Session
}

// NewGetLicenseCenterHandler creates a new GetLicenseCenterHandler
func NewGetLicenseCenterHandler(session *game.Session) *GetLicenseCenterHandler {
	return &GetLicenseCenterHandler{session: session}
}

// Handle executes the GetLicenseCenter query
func (h *GetLicenseCenterHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*GetLicenseCenterQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetLicenseCenterQuery")
	}

	profile := h.session.Snapshot().Player
	return &GetLicenseCenterResponse{
		Current: profile.License,
		Level:   profile.Level,
		Money:   profile.Money,
		Tiers:   game.LicenseCenter(profile, h.session.Catalog()),
	}, nil
}
