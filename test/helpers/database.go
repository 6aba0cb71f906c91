package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/adapters/persistence"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/infrastructure/database"
)

// NewTestDB opens a migrated in-memory ledger closed with the test
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewTestConnection()
	require.NoError(t, err, "open test database")
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// NewTestLedger returns a transaction repository on a fresh database
func NewTestLedger(t *testing.T) *persistence.GormTransactionRepository {
	t.Helper()
	return persistence.NewGormTransactionRepository(NewTestDB(t))
}
