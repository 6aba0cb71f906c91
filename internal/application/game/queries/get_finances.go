package queries

import (
	"context"
	"fmt"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/game"
)

// GetFinancesQuery summarises cash and debt
type GetFinancesQuery struct{}

// LoanDTO is one open loan
type LoanDTO struct {
	ID               string
	Principal        float64
	RemainingBalance float64
	MonthlyPayment   float64
	AnnualRate       float64
	PaidMonths       int
	TermMonths       int
	RepaidFraction   float64
}

// GetFinancesResponse is the bank overview
type GetFinancesResponse struct {
	Money              float64
	TotalDebt          float64
	MonthlyDebtService float64
	Overdrawn          bool
	Loans              []LoanDTO
}

// GetFinancesHandler handles the GetFinances query
type GetFinancesHandler struct {
	session *game.Session
}

// NewGetFinancesHandler creates a new GetFinancesHandler
func NewGetFinancesHandler(session *game.Session) *GetFinancesHandler {
	return &GetFinancesHandler{session: session}
}

// Handle executes the GetFinances query
func (h *GetFinancesHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*GetFinancesQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetFinancesQuery")
	}

	profile := h.session.Snapshot().Player

	loans := make([]LoanDTO, 0, len(profile.Loans))
	for _, l := range profile.Loans {
		loans = append(loans, LoanDTO{
			ID:               l.ID,
			Principal:        l.Principal,
			RemainingBalance: l.RemainingBalance,
			MonthlyPayment:   l.MonthlyPayment,
			AnnualRate:       l.InterestRate * 12,
			PaidMonths:       l.PaidMonths,
			TermMonths:       l.TermMonths,
			RepaidFraction:   l.RepaidFraction(),
		})
	}

	return &GetFinancesResponse{
		Money:              profile.Money,
		TotalDebt:          profile.TotalDebt(),
		MonthlyDebtService: profile.MonthlyDebtService(),
		Overdrawn:          profile.Overdrawn(),
		Loans:              loans,
	}, nil
}
