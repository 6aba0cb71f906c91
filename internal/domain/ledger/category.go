package ledger

import "fmt"

// Category groups transactions for profit and loss reporting
type Category string

const (
	CategoryFleetInvestments Category = "FLEET_INVESTMENTS"
	CategoryFreightRevenue   Category = "FREIGHT_REVENUE"
	CategoryFinancingInflows Category = "FINANCING_INFLOWS"
	CategoryDebtService      Category = "DEBT_SERVICE"
	CategoryLicensing        Category = "LICENSING"
	CategoryOperatingCosts   Category = "OPERATING_COSTS"
)

// AllCategories returns all valid categories
func AllCategories() []Category {
	return []Category{
		CategoryFleetInvestments,
		CategoryFreightRevenue,
		CategoryFinancingInflows,
		CategoryDebtService,
		CategoryLicensing,
		CategoryOperatingCosts,
	}
}

// TypeToCategoryMap maps transaction types to their categories
var TypeToCategoryMap = map[TransactionType]Category{
	TransactionTypeTruckPurchase:      CategoryFleetInvestments,
	TransactionTypeJobPayout:          CategoryFreightRevenue,
	TransactionTypeLoanDisbursement:   CategoryFinancingInflows,
	TransactionTypeLoanInstallment:    CategoryDebtService,
	TransactionTypeLicenseFee:         CategoryLicensing,
	TransactionTypeTripOperatingCosts: CategoryOperatingCosts,
}

func (c Category) String() string {
	return string(c)
}

// IsValid checks if the category is known
func (c Category) IsValid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// IsIncome reports whether the category counts as earned income.
// Loan disbursements are cash inflows but not income.
func (c Category) IsIncome() bool {
	return c == CategoryFreightRevenue
}

// IsFinancing reports whether the category is a debt flow
func (c Category) IsFinancing() bool {
	return c == CategoryFinancingInflows || c == CategoryDebtService
}

// IsExpense returns true if the category represents an expense or investment
func (c Category) IsExpense() bool {
	return !c.IsIncome() && c != CategoryFinancingInflows
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
