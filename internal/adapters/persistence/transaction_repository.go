package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/ledger"
)

// GormTransactionRepository keeps career ledgers in sqlite or postgres
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository wraps an open, migrated connection
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Create inserts the transaction; IDs are never reused
func (r *GormTransactionRepository) Create(ctx context.Context, tx *ledger.Transaction) error {
	if err := r.db.WithContext(ctx).Create(toModel(tx)).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// FindByID loads one transaction of the session
func (r *GormTransactionRepository) FindByID(ctx context.Context, id ledger.TransactionID, sessionID string) (*ledger.Transaction, error) {
	var model TransactionModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND session_id = ?", id.String(), sessionID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s in session %s", ledger.ErrTransactionNotFound, id, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	return fromModel(&model)
}

// FindBySession lists the session's transactions matching the filter
func (r *GormTransactionRepository) FindBySession(ctx context.Context, sessionID string, filter ledger.Filter) ([]*ledger.Transaction, error) {
	query := r.scoped(ctx, sessionID, filter)

	// Only the two known orders reach SQL
	order := ledger.NewestFirst
	if filter.OrderBy == ledger.OldestFirst {
		order = ledger.OldestFirst
	}
	query = query.Order(order)

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var models []TransactionModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", err)
	}

	transactions := make([]*ledger.Transaction, 0, len(models))
	for i := range models {
		tx, err := fromModel(&models[i])
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

// CountBySession counts matching transactions, ignoring pagination
func (r *GormTransactionRepository) CountBySession(ctx context.Context, sessionID string, filter ledger.Filter) (int, error) {
	var count int64
	if err := r.scoped(ctx, sessionID, filter).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return int(count), nil
}

func (r *GormTransactionRepository) scoped(ctx context.Context, sessionID string, f ledger.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&TransactionModel{}).Where("session_id = ?", sessionID)
	if f.From != nil {
		query = query.Where("timestamp >= ?", *f.From)
	}
	if f.To != nil {
		query = query.Where("timestamp <= ?", *f.To)
	}
	if f.Category != nil {
		query = query.Where("category = ?", f.Category.String())
	}
	if f.Type != nil {
		query = query.Where("transaction_type = ?", f.Type.String())
	}
	if f.SubjectKind != nil {
		query = query.Where("subject_kind = ?", *f.SubjectKind)
	}
	if f.SubjectID != nil {
		query = query.Where("subject_id = ?", *f.SubjectID)
	}
	return query
}

func fromModel(model *TransactionModel) (*ledger.Transaction, error) {
	id, err := ledger.NewTransactionIDFromString(model.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt transaction row: %w", err)
	}
	txType, err := ledger.ParseTransactionType(model.TransactionType)
	if err != nil {
		return nil, fmt.Errorf("corrupt transaction row %s: %w", model.ID, err)
	}
	category, err := ledger.ParseCategory(model.Category)
	if err != nil {
		return nil, fmt.Errorf("corrupt transaction row %s: %w", model.ID, err)
	}

	return ledger.Restore(id, category, ledger.Entry{
		SessionID:     model.SessionID,
		Timestamp:     model.Timestamp,
		Type:          txType,
		Amount:        model.Amount,
		BalanceBefore: model.BalanceBefore,
		BalanceAfter:  model.BalanceAfter,
		Description:   model.Description,
		SubjectKind:   model.SubjectKind,
		SubjectID:     model.SubjectID,
	}), nil
}

func toModel(tx *ledger.Transaction) *TransactionModel {
	e := tx.Entry()
	return &TransactionModel{
		ID:              tx.ID().String(),
		SessionID:       e.SessionID,
		Timestamp:       e.Timestamp,
		TransactionType: e.Type.String(),
		Category:        tx.Category().String(),
		Amount:          e.Amount,
		BalanceBefore:   e.BalanceBefore,
		BalanceAfter:    e.BalanceAfter,
		Description:     e.Description,
		SubjectKind:     e.SubjectKind,
		SubjectID:       e.SubjectID,
	}
}
