package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/mediator"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/ledger"
)

// GetTransactionsQuery pages through the books of one career. Filters
// arrive as strings from the console and CLI and are parsed here.
type GetTransactionsQuery struct {
	SessionID       string
	StartDate       *time.Time
	EndDate         *time.Time
	Category        *string
	TransactionType *string
	SubjectKind     *string
	SubjectID       *string
	Limit           int // 0 uses the default page size
	Offset          int
	OrderBy         string
}

// GetTransactionsResponse carries one page plus the unpaged match count
type GetTransactionsResponse struct {
	Transactions []*TransactionDTO
	Total        int
}

// TransactionDTO is a read-only copy of a ledger line
type TransactionDTO struct {
	ID            string
	SessionID     string
	Timestamp     time.Time
	Type          string
	Category      string
	Amount        float64
	BalanceBefore float64
	BalanceAfter  float64
	Description   string
	SubjectKind   string
	SubjectID     string
}

// GetTransactionsHandler answers GetTransactionsQuery
type GetTransactionsHandler struct {
	repo ledger.TransactionRepository
}

func NewGetTransactionsHandler(repo ledger.TransactionRepository) *GetTransactionsHandler {
	return &GetTransactionsHandler{repo: repo}
}

// Handle executes the GetTransactions query
func (h *GetTransactionsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetTransactionsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetTransactionsQuery, got %T", request)
	}
	if query.SessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	filter, err := filterFor(query)
	if err != nil {
		return nil, err
	}

	transactions, err := h.repo.FindBySession(ctx, query.SessionID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	total, err := h.repo.CountBySession(ctx, query.SessionID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	dtos := make([]*TransactionDTO, len(transactions))
	for i, tx := range transactions {
		dtos[i] = toDTO(tx)
	}
	return &GetTransactionsResponse{Transactions: dtos, Total: total}, nil
}

func filterFor(query *GetTransactionsQuery) (ledger.Filter, error) {
	filter := ledger.DefaultFilter()
	filter.From = query.StartDate
	filter.To = query.EndDate
	filter.SubjectKind = query.SubjectKind
	filter.SubjectID = query.SubjectID
	filter.Offset = query.Offset
	if query.Limit > 0 {
		filter.Limit = query.Limit
	}

	switch query.OrderBy {
	case "", ledger.NewestFirst:
	case ledger.OldestFirst:
		filter.OrderBy = ledger.OldestFirst
	default:
		return filter, fmt.Errorf("invalid order %q: use %q or %q", query.OrderBy, ledger.NewestFirst, ledger.OldestFirst)
	}

	if query.Category != nil {
		category, err := ledger.ParseCategory(*query.Category)
		if err != nil {
			return filter, err
		}
		filter.Category = &category
	}
	if query.TransactionType != nil {
		txType, err := ledger.ParseTransactionType(*query.TransactionType)
		if err != nil {
			return filter, err
		}
		filter.Type = &txType
	}
	return filter, nil
}

func toDTO(tx *ledger.Transaction) *TransactionDTO {
	e := tx.Entry()
	return &TransactionDTO{
		ID:            tx.ID().String(),
		SessionID:     e.SessionID,
		Timestamp:     e.Timestamp,
		Type:          e.Type.String(),
		Category:      tx.Category().String(),
		Amount:        e.Amount,
		BalanceBefore: e.BalanceBefore,
		BalanceAfter:  e.BalanceAfter,
		Description:   e.Description,
		SubjectKind:   e.SubjectKind,
		SubjectID:     e.SubjectID,
	}
}
