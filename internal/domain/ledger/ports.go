package ledger

import (
	"context"
	"time"
)

// Sort orders understood by repositories
const (
	NewestFirst = "timestamp DESC"
	OldestFirst = "timestamp ASC"
)

// TransactionRepository stores the books of every career
type TransactionRepository interface {
	Create(ctx context.Context, transaction *Transaction) error
	// FindByID is scoped to a session so one career cannot read another's books
	FindByID(ctx context.Context, id TransactionID, sessionID string) (*Transaction, error)
	FindBySession(ctx context.Context, sessionID string, filter Filter) ([]*Transaction, error)
	// CountBySession ignores Limit and Offset
	CountBySession(ctx context.Context, sessionID string, filter Filter) (int, error)
}

// Filter narrows a session's transactions. Nil fields match everything;
// a zero Limit returns every row.
type Filter struct {
	From *time.Time
	To   *time.Time

	Category    *Category
	Type        *TransactionType
	SubjectKind *string
	SubjectID   *string

	Limit   int
	Offset  int
	OrderBy string
}

// DefaultFilter is one page of the newest entries
func DefaultFilter() Filter {
	return Filter{Limit: 50, OrderBy: NewestFirst}
}
