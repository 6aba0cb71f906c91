package ledger

import (
	"errors"
	"fmt"
)

// ErrTransactionNotFound is wrapped by repositories when a lookup misses
var ErrTransactionNotFound = errors.New("transaction not found")

// InvalidTransactionError names the entry field that failed validation
type InvalidTransactionError struct {
	Field  string
	Reason string
}

func (e *InvalidTransactionError) Error() string {
	return fmt.Sprintf("invalid transaction: %s %s", e.Field, e.Reason)
}

// BalanceMismatchError reports an entry whose balances do not add up
type BalanceMismatchError struct {
	Before float64
	Amount float64
	After  float64
}

// Expected is the balance the entry should have ended at
func (e *BalanceMismatchError) Expected() float64 {
	return e.Before + e.Amount
}

func (e *BalanceMismatchError) Error() string {
	return fmt.Sprintf("balance mismatch: %.2f %+.2f should be %.2f, got %.2f",
		e.Before, e.Amount, e.Expected(), e.After)
}
