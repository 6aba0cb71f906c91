package ledger

import (
	"fmt"
	"math"
	"time"
)

// balanceTolerance absorbs float rounding in before + amount = after
const balanceTolerance = 0.005

// Subject kinds a transaction can point at
const (
	SubjectTruck   = "truck"
	SubjectJob     = "job"
	SubjectLoan    = "loan"
	SubjectLicense = "license"
)

// Entry is the bookable content of a transaction. Amount is signed:
// positive when cash came in, negative when it went out.
type Entry struct {
	SessionID     string
	Timestamp     time.Time
	Type          TransactionType
	Amount        float64
	BalanceBefore float64
	BalanceAfter  float64
	Description   string
	SubjectKind   string
	SubjectID     string
}

// Transaction is one immutable line of a career's books
type Transaction struct {
	id       TransactionID
	category Category
	entry    Entry
}

// NewTransaction validates the entry and assigns an ID and category
func NewTransaction(e Entry) (*Transaction, error) {
	if e.SessionID == "" {
		return nil, &InvalidTransactionError{Field: "session_id", Reason: "cannot be empty"}
	}
	category, err := e.Type.ToCategory()
	if err != nil {
		return nil, &InvalidTransactionError{Field: "transaction_type", Reason: err.Error()}
	}
	if e.Amount == 0 {
		return nil, &InvalidTransactionError{Field: "amount", Reason: "cannot be zero"}
	}
	if e.Timestamp.IsZero() {
		return nil, &InvalidTransactionError{Field: "timestamp", Reason: "is required"}
	}
	if math.Abs(e.BalanceBefore+e.Amount-e.BalanceAfter) > balanceTolerance {
		return nil, &BalanceMismatchError{Before: e.BalanceBefore, Amount: e.Amount, After: e.BalanceAfter}
	}
	return &Transaction{id: NewTransactionID(), category: category, entry: e}, nil
}

// Restore rebuilds a stored transaction without re-validating it
func Restore(id TransactionID, category Category, e Entry) *Transaction {
	return &Transaction{id: id, category: category, entry: e}
}

func (t *Transaction) ID() TransactionID { return t.id }
func (t *Transaction) Category() Category { return t.category }
func (t *Transaction) Entry() Entry { return t.entry }
func (t *Transaction) SessionID() string { return t.entry.SessionID }
func (t *Transaction) Timestamp() time.Time { return t.entry.Timestamp }
func (t *Transaction) Type() TransactionType { return t.entry.Type }
func (t *Transaction) Amount() float64            { return t.entry.Amount }
func (t *Transaction) BalanceBefore() float64     { return t.entry.BalanceBefore }
func (t *Transaction) BalanceAfter() float64      { return t.entry.BalanceAfter }
func (t *Transaction) Description() string { return t.entry.Description }
func (t *Transaction) SubjectKind() string { return t.entry.SubjectKind }
func (t *Transaction) SubjectID() string { return t.entry.SubjectID }
func (t *Transaction) IsInflow() bool { return t.entry.Amount > 0 }

func (t *Transaction) String() string {
	return fmt.Sprintf("%s %s %+.2f (%.2f -> %.2f)",
		t.entry.Timestamp.Format(time.RFC3339), t.entry.Type, t.entry.Amount, t.entry.BalanceBefore, t.entry.BalanceAfter)
}
