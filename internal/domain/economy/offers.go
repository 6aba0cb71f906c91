package economy

// Financing terms applied by the game
const (
	// TruckFinancingRate is the annual rate on financed truck purchases
	TruckFinancingRate = 0.12
	// TruckFinancingTermMonths is the term of financed truck purchases
	TruckFinancingTermMonths = 24
	// TruckDownPaymentFraction is the upfront share of a financed purchase
	TruckDownPaymentFraction = 0.10
	// CashLoanRate is the annual rate of a cash loan taken at the bank
	CashLoanRate = 0.08
)

// LoanOffer is a pre-approved cash loan advertised by the bank. The
// advertised rate is a label only; offers are charged CashLoanRate.
type LoanOffer struct {
	Amount         float64
	TermMonths     int
	AdvertisedRate float64
}

// BankOffers returns the standing cash loan offers
func BankOffers() []LoanOffer {
	return []LoanOffer{
		{Amount: 50000, TermMonths: 12, AdvertisedRate: 0.08},
		{Amount: 100000, TermMonths: 24, AdvertisedRate: 0.10},
		{Amount: 250000, TermMonths: 48, AdvertisedRate: 0.12},
	}
}
