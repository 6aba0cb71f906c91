package queries

import (
	"context"
	"fmt"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/economy"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/fleet"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/game"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/world"
)

// ListMarketQuery lists the dealership with prices for the player's budget
type ListMarketQuery struct{}

// MarketListing is one truck model with its three purchase options
type MarketListing struct {
	Model          world.TruckModel
	NewPrice       float64
	UsedPrice      float64
	DownPayment    float64 // financed new purchase
	CanAffordNew   bool
	CanAffordUsed  bool
	CanFinance     bool
	LicenseCovered bool
}

// ListMarketResponse holds listings in catalog order
type ListMarketResponse struct {
	Listings []MarketListing
}

// ListMarketHandler handles the ListMarket query
type ListMarketHandler struct {
	session *game.Session
}

// NewListMarketHandler creates a new ListMarketHandler
func NewListMarketHandler(session *game.Session) *ListMarketHandler {
	return &ListMarketHandler{session: session}
}

// Handle executes the ListMarket query
func (h *ListMarketHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*ListMarketQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListMarketQuery")
	}

	profile := h.session.Snapshot().Player
	models := h.session.Catalog().TruckModels

	listings := make([]MarketListing, 0, len(models))
	for _, m := range models {
		newPrice := fleet.PurchasePrice(m, false)
		usedPrice := fleet.PurchasePrice(m, true)
		down := newPrice * economy.TruckDownPaymentFraction
		listings = append(listings, MarketListing{
			Model:          m,
			NewPrice:       newPrice,
			UsedPrice:      usedPrice,
			DownPayment:    down,
			CanAffordNew:   profile.Money >= newPrice,
			CanAffordUsed:  profile.Money >= usedPrice,
			CanFinance:     profile.Money >= down,
			LicenseCovered: profile.License.Covers(m.Category),
		})
	}
	return &ListMarketResponse{Listings: listings}, nil
}
