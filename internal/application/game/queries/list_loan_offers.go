package queries

import (
	"context"
	"fmt"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/economy"
)

// ListLoanOffersQuery lists the bank's standing cash loan offers
type ListLoanOffersQuery struct{}

// LoanOfferDTO is an offer with its repayment terms worked out at the
// rate the bank actually charges
type LoanOfferDTO struct {
	Index          int
	Amount         float64
	TermMonths     int
	AnnualRate     float64
	AdvertisedRate float64
	MonthlyPayment float64
	TotalRepayable float64
}

// ListLoanOffersResponse holds the offers in display order
type ListLoanOffersResponse struct {
	Offers []LoanOfferDTO
}

// ListLoanOffersHandler handles the ListLoanOffers query
type ListLoanOffersHandler struct{}

// NewListLoanOffersHandler creates a new ListLoanOffersHandler
func NewListLoanOffersHandler() *ListLoanOffersHandler {
	return &ListLoanOffersHandler{}
}

// Handle executes the ListLoanOffers query
func (h *ListLoanOffersHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*ListLoanOffersQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListLoanOffersQuery")
	}

	offers := economy.BankOffers()
	dtos := make([]LoanOfferDTO, 0, len(offers))
	for i, o := range offers {
		payment, err := economy.MonthlyPayment(o.Amount, economy.CashLoanRate, o.TermMonths)
		if err != nil {
			return nil, fmt.Errorf("offer %d: %w", i, err)
		}
		dtos = append(dtos, LoanOfferDTO{
			Index:          i,
			Amount:         o.Amount,
			TermMonths:     o.TermMonths,
			AnnualRate:     economy.CashLoanRate,
			AdvertisedRate: o.AdvertisedRate,
			MonthlyPayment: payment,
			TotalRepayable: payment * float64(o.TermMonths),
		})
	}
	return &ListLoanOffersResponse{Offers: dtos}, nil
}
