package persistence

import (
	"time"
)

// TransactionModel is one row of the career ledger
type TransactionModel struct {
	ID              string    `gorm:"column:id;primaryKey"`
	SessionID       string    `gorm:"column:session_id;not null;index:idx_transactions_session_time,priority:1"`
	Timestamp       time.Time `gorm:"column:timestamp;not null;index:idx_transactions_session_time,priority:2"`
	TransactionType string    `gorm:"column:transaction_type;not null;index"`
	Category        string    `gorm:"column:category;not null;index"`
	Amount          float64   `gorm:"column:amount;not null"`
	BalanceBefore   float64   `gorm:"column:balance_before;not null"`
	BalanceAfter    float64   `gorm:"column:balance_after;not null"`
	Description     string    `gorm:"column:description;type:text"`
	SubjectKind     string    `gorm:"column:subject_kind;index:idx_transactions_subject,priority:1"`
	SubjectID       string    `gorm:"column:subject_id;index:idx_transactions_subject,priority:2"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

// AllModels lists every table the application migrates
func AllModels() []interface{} {
	return []interface{}{
		&TransactionModel{},
	}
}
