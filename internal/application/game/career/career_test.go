package career_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gameCmd "github.com/oseiasoliveira3390-bot/Truck-life/internal/application/game/commands"
	gameQuery "github.com/oseiasoliveira3390-bot/Truck-life/internal/application/game/queries"
	ledgerQuery "github.com/oseiasoliveira3390-bot/Truck-life/internal/application/ledger/queries"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/game"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/ledger"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/shared"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/world"
	"github.com/oseiasoliveira3390-bot/Truck-life/test/helpers"
)

func TestCareer_DeliveryIsBookedInLedger(t *testing.T) {
	ctx := context.Background()
	tc := helpers.NewTestCareer(t, 11, game.Rules{StartingMoney: 100000})
	sessionID := tc.Session.ID()

	resp, err := tc.Send(ctx, &gameCmd.BuyTruckCommand{ModelID: "vlk-lt1"})
	require.NoError(t, err)
	bought := resp.(*gameCmd.BuyTruckResponse)
	assert.Equal(t, 45000.0, bought.Upfront)

	offer := helpers.EnsureJob(t, tc.Session, world.LicenseB)
	_, err = tc.Send(ctx, &gameCmd.AcceptJobCommand{JobID: offer.ID})
	require.NoError(t, err)
	_, err = tc.Send(ctx, &gameCmd.StartTripCommand{})
	require.NoError(t, err)

	helpers.DriveToArrival(tc.Session)
	require.Equal(t, game.PhaseArrived, tc.Session.Phase())

	resp, err = tc.Send(ctx, &gameCmd.FinishTripCommand{})
	require.NoError(t, err)
	finished := resp.(*gameCmd.FinishTripResponse)
	assert.Equal(t, offer.Payout, finished.Payout)
	assert.False(t, finished.CostsDeducted)

	resp, err = tc.Send(ctx, &ledgerQuery.GetTransactionsQuery{SessionID: sessionID})
	require.NoError(t, err)
	txs := resp.(*ledgerQuery.GetTransactionsResponse)
	require.Equal(t, 2, txs.Total)

	resp, err = tc.Send(ctx, &ledgerQuery.GetProfitLossQuery{SessionID: sessionID})
	require.NoError(t, err)
	pl := resp.(*ledgerQuery.GetProfitLossResponse)
	assert.Equal(t, float64(offer.Payout), pl.TotalRevenue)
	assert.Equal(t, 45000.0, pl.TotalExpenses)
	assert.InDelta(t, tc.Session.Snapshot().Player.Money-100000, pl.NetCashFlow, 1e-6)
}

func TestCareer_RejectionLeavesLedgerUntouched(t *testing.T) {
	ctx := context.Background()
	tc := helpers.NewTestCareer(t, 5, game.Rules{})

	_, err := tc.Send(ctx, &gameCmd.BuyTruckCommand{ModelID: "sc-prime"})

	require.Error(t, err)
	var rejection *shared.RejectionError
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, game.CmdBuyTruck, rejection.Command)

	count, err := tc.Ledger.CountBySession(ctx, tc.Session.ID(), ledger.Filter{})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, 15000.0, tc.Session.Snapshot().Player.Money)
}

func TestCareer_BankOfferAndBilling(t *testing.T) {
	ctx := context.Background()
	tc := helpers.NewTestCareer(t, 8, game.Rules{})
	first := 0

	resp, err := tc.Send(ctx, &gameCmd.TakeLoanCommand{OfferIndex: &first})
	require.NoError(t, err)
	loan := resp.(*gameCmd.TakeLoanResponse)
	assert.Equal(t, 50000.0, loan.Amount)
	assert.Equal(t, 12, loan.TermMonths)

	resp, err = tc.Send(ctx, &gameCmd.BillLoansCommand{})
	require.NoError(t, err)
	billed := resp.(*gameCmd.BillLoansResponse)
	assert.InDelta(t, loan.MonthlyPayment, billed.TotalCharged, 1e-6)
	assert.Equal(t, 1, billed.OpenLoans)

	resp, err = tc.Send(ctx, &gameQuery.GetFinancesQuery{})
	require.NoError(t, err)
	finances := resp.(*gameQuery.GetFinancesResponse)
	assert.InDelta(t, 15000+50000-loan.MonthlyPayment, finances.Money, 1e-6)

	resp, err = tc.Send(ctx, &ledgerQuery.GetProfitLossQuery{SessionID: tc.Session.ID()})
	require.NoError(t, err)
	pl := resp.(*ledgerQuery.GetProfitLossResponse)
	assert.Equal(t, 50000.0, pl.FinancingInflows)
	assert.InDelta(t, loan.MonthlyPayment, pl.DebtRepaid, 1e-6)
	assert.Zero(t, pl.TotalRevenue)
}

func TestCareer_QueriesAreRegistered(t *testing.T) {
	ctx := context.Background()
	tc := helpers.NewTestCareer(t, 2, game.Rules{})

	queries := []interface{}{
		&gameQuery.GetSnapshotQuery{},
		&gameQuery.GetEventLogQuery{},
		&gameQuery.ListJobsQuery{},
		&gameQuery.ListMarketQuery{},
		&gameQuery.ListLoanOffersQuery{},
		&gameQuery.GetFinancesQuery{},
		&gameQuery.GetLicenseCenterQuery{},
	}
	for _, q := range queries {
		_, err := tc.Send(ctx, q)
		assert.NoError(t, err, "%T", q)
	}

	_, err := tc.Send(ctx, &struct{}{})
	assert.Error(t, err)
}
