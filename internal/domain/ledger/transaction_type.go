package ledger

import "fmt"

// TransactionType represents the kind of money movement in a career
type TransactionType string

const (
	// TransactionTypeTruckPurchase is the cash paid upfront for a truck
	TransactionTypeTruckPurchase TransactionType = "TRUCK_PURCHASE"

	// TransactionTypeJobPayout is the freight payment received on delivery
	TransactionTypeJobPayout TransactionType = "JOB_PAYOUT"

	// TransactionTypeLoanDisbursement is cash received from the bank
	TransactionTypeLoanDisbursement TransactionType = "LOAN_DISBURSEMENT"

	// TransactionTypeLoanInstallment is a periodic loan repayment
	TransactionTypeLoanInstallment TransactionType = "LOAN_INSTALLMENT"

	// TransactionTypeLicenseFee is the exam fee for a license upgrade
	TransactionTypeLicenseFee TransactionType = "LICENSE_FEE"

	// TransactionTypeTripOperatingCosts is fuel and maintenance charged after a delivery
	TransactionTypeTripOperatingCosts TransactionType = "TRIP_OPERATING_COSTS"
)

// AllTransactionTypes returns all valid transaction types
func AllTransactionTypes() []TransactionType {
	return []TransactionType{
		TransactionTypeTruckPurchase,
		TransactionTypeJobPayout,
		TransactionTypeLoanDisbursement,
		TransactionTypeLoanInstallment,
		TransactionTypeLicenseFee,
		TransactionTypeTripOperatingCosts,
	}
}

func (t TransactionType) String() string {
	return string(t)
}

// IsValid checks if the transaction type is known
func (t TransactionType) IsValid() bool {
	_, ok := TypeToCategoryMap[t]
	return ok
}

// ToCategory maps the transaction type to its reporting category
func (t TransactionType) ToCategory() (Category, error) {
	category, exists := TypeToCategoryMap[t]
	if !exists {
		return "", fmt.Errorf("unknown transaction type: %s", t)
	}
	return category, nil
}

// ParseTransactionType parses a string into a TransactionType
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid transaction type: %s", s)
	}
	return t, nil
}
