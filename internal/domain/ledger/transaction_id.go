package ledger

import (
	"fmt"

	"github.com/google/uuid"
)

// TransactionID identifies a ledger entry. New IDs are version 7 UUIDs so
// they sort by creation time within a session.
type TransactionID struct {
	value string
}

// NewTransactionID issues a fresh time-ordered ID
func NewTransactionID() TransactionID {
	id, err := uuid.NewV7()
	if err != nil {
		// entropy failure; fall back to a random ID
		id = uuid.New()
	}
	return TransactionID{value: id.String()}
}

// NewTransactionIDFromString accepts any UUID read back from storage
func NewTransactionIDFromString(id string) (TransactionID, error) {
	if id == "" {
		return TransactionID{}, fmt.Errorf("transaction id cannot be empty")
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return TransactionID{}, fmt.Errorf("invalid transaction id %q: %w", id, err)
	}
	return TransactionID{value: parsed.String()}, nil
}

func (t TransactionID) String() string {
	return t.value
}

// IsZero reports an ID that was never assigned
func (t TransactionID) IsZero() bool {
	return t.value == ""
}
