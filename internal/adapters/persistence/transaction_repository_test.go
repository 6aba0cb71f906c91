package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/ledger"
	"github.com/oseiasoliveira3390-bot/Truck-life/test/helpers"
)

func newTransaction(t *testing.T, sessionID string, at time.Time, txType ledger.TransactionType, amount, before float64) *ledger.Transaction {
	t.Helper()
	tx, err := ledger.NewTransaction(ledger.Entry{
		SessionID:     sessionID,
		Timestamp:     at,
		Type:          txType,
		Amount:        amount,
		BalanceBefore: before,
		BalanceAfter:  before + amount,
		Description:   string(txType),
		SubjectKind:   ledger.SubjectTruck,
		SubjectID:     "t-1",
	})
	require.NoError(t, err)
	return tx
}

func TestTransactionRepository_CreateAndFindByID(t *testing.T) {
	repo := helpers.NewTestLedger(t)
	ctx := context.Background()

	tx := newTransaction(t, "s-1", helpers.Epoch, ledger.TransactionTypeTruckPurchase, -45000, 100000)
	require.NoError(t, repo.Create(ctx, tx))

	found, err := repo.FindByID(ctx, tx.ID(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, tx.ID().String(), found.ID().String())
	assert.Equal(t, ledger.CategoryFleetInvestments, found.Category())
	assert.Equal(t, -45000.0, found.Amount())
	assert.Equal(t, 55000.0, found.BalanceAfter())
	assert.Equal(t, "truck", found.SubjectKind())
	assert.True(t, helpers.Epoch.Equal(found.Timestamp()))

	_, err = repo.FindByID(ctx, tx.ID(), "other-session")
	assert.ErrorIs(t, err, ledger.ErrTransactionNotFound)
}

func TestTransactionRepository_FindBySessionFiltersAndOrders(t *testing.T) {
	repo := helpers.NewTestLedger(t)
	ctx := context.Background()

	balance := 100000.0
	entries := []struct {
		txType ledger.TransactionType
		amount float64
	}{
		{ledger.TransactionTypeTruckPurchase, -45000},
		{ledger.TransactionTypeJobPayout, 2300},
		{ledger.TransactionTypeLoanInstallment, -500},
		{ledger.TransactionTypeJobPayout, 1800},
	}
	for i, e := range entries {
		at := helpers.Epoch.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Create(ctx, newTransaction(t, "s-1", at, e.txType, e.amount, balance)))
		balance += e.amount
	}
	require.NoError(t, repo.Create(ctx, newTransaction(t, "s-2", helpers.Epoch, ledger.TransactionTypeJobPayout, 999, 0)))

	all, err := repo.FindBySession(ctx, "s-1", ledger.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, 1800.0, all[0].Amount(), "newest first by default")

	asc, err := repo.FindBySession(ctx, "s-1", ledger.Filter{OrderBy: ledger.OldestFirst})
	require.NoError(t, err)
	assert.Equal(t, -45000.0, asc[0].Amount())

	revenue := ledger.CategoryFreightRevenue
	payouts, err := repo.FindBySession(ctx, "s-1", ledger.Filter{Category: &revenue})
	require.NoError(t, err)
	assert.Len(t, payouts, 2)

	start := helpers.Epoch.Add(90 * time.Minute)
	later, err := repo.FindBySession(ctx, "s-1", ledger.Filter{From: &start})
	require.NoError(t, err)
	assert.Len(t, later, 2)

	page, err := repo.FindBySession(ctx, "s-1", ledger.Filter{Limit: 1, Offset: 1, OrderBy: ledger.OldestFirst})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, 2300.0, page[0].Amount())

	count, err := repo.CountBySession(ctx, "s-1", ledger.Filter{Category: &revenue})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	truck := ledger.SubjectTruck
	other := "t-2"
	none, err := repo.CountBySession(ctx, "s-1", ledger.Filter{SubjectKind: &truck, SubjectID: &other})
	require.NoError(t, err)
	assert.Zero(t, none)
}
