package queries_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/game/queries"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/game"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/shared"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/world"
)

func newSession(money float64) *game.Session {
	return game.NewSession(world.DefaultCatalog(), shared.NewSeededRandom(4), shared.NewMockClock(shared.NewRealClock().Now()), game.Rules{StartingMoney: money})
}

func TestListJobs_MarksLicenseAndCapacity(t *testing.T) {
	session := newSession(100000)
	_, err := session.BuyTruck("vlk-lt1", false, false)
	require.NoError(t, err)

	resp, err := queries.NewListJobsHandler(session).Handle(context.Background(), &queries.ListJobsQuery{})
	require.NoError(t, err)
	all := resp.(*queries.ListJobsResponse)
	require.Len(t, all.Jobs, 10)

	for _, listing := range all.Jobs {
		assert.Equal(t, listing.Job.RequiredLicense == world.LicenseB, listing.Licensed)
		assert.Equal(t, listing.Job.Weight <= 5000, listing.FitsTruck)
		assert.NotEmpty(t, listing.FromName)
		assert.NotEqual(t, listing.FromName, listing.ToName)
	}

	resp, err = queries.NewListJobsHandler(session).Handle(context.Background(), &queries.ListJobsQuery{OnlyAcceptable: true})
	require.NoError(t, err)
	for _, listing := range resp.(*queries.ListJobsResponse).Jobs {
		assert.True(t, listing.Licensed)
	}
}

func TestListMarket_PricesAndAffordability(t *testing.T) {
	session := newSession(30000)

	resp, err := queries.NewListMarketHandler(session).Handle(context.Background(), &queries.ListMarketQuery{})
	require.NoError(t, err)
	listings := resp.(*queries.ListMarketResponse).Listings
	require.Len(t, listings, 4)

	lite := listings[0]
	assert.Equal(t, "vlk-lt1", lite.Model.ID)
	assert.Equal(t, 45000.0, lite.NewPrice)
	assert.Equal(t, 27000.0, lite.UsedPrice)
	assert.Equal(t, 4500.0, lite.DownPayment)
	assert.False(t, lite.CanAffordNew)
	assert.True(t, lite.CanAffordUsed)
	assert.True(t, lite.CanFinance)
	assert.True(t, lite.LicenseCovered)

	assert.False(t, listings[3].LicenseCovered)
}

func TestListLoanOffers_WorksOutPayments(t *testing.T) {
	resp, err := queries.NewListLoanOffersHandler().Handle(context.Background(), &queries.ListLoanOffersQuery{})
	require.NoError(t, err)

	offers := resp.(*queries.ListLoanOffersResponse).Offers
	require.Len(t, offers, 3)
	assert.Equal(t, 0, offers[0].Index)
	assert.Equal(t, 50000.0, offers[0].Amount)
	assert.InDelta(t, offers[0].MonthlyPayment*12, offers[0].TotalRepayable, 1e-6)
	assert.Greater(t, offers[2].TotalRepayable, offers[2].Amount)
	assert.Equal(t, 0.12, offers[2].AdvertisedRate)
	assert.Equal(t, 0.08, offers[2].AnnualRate)
	assert.InDelta(t, 6103.2, offers[2].MonthlyPayment, 0.1)
}

func TestGetFinances_SumsDebt(t *testing.T) {
	session := newSession(15000)
	_, err := session.TakeLoan(12000, 12)
	require.NoError(t, err)
	_, err = session.BuyTruck("vlk-lt1", false, true)
	require.NoError(t, err)

	resp, err := queries.NewGetFinancesHandler(session).Handle(context.Background(), &queries.GetFinancesQuery{})
	require.NoError(t, err)
	finances := resp.(*queries.GetFinancesResponse)

	require.Len(t, finances.Loans, 2)
	assert.Equal(t, 22500.0, finances.Money)
	assert.InDelta(t, finances.Loans[0].RemainingBalance+finances.Loans[1].RemainingBalance, finances.TotalDebt, 1e-6)
	assert.False(t, finances.Overdrawn)
}

func TestGetLicenseCenter_NextTierOnly(t *testing.T) {
	session := newSession(15000)

	resp, err := queries.NewGetLicenseCenterHandler(session).Handle(context.Background(), &queries.GetLicenseCenterQuery{})
	require.NoError(t, err)
	center := resp.(*queries.GetLicenseCenterResponse)

	assert.Equal(t, world.LicenseB, center.Current)
	assert.Equal(t, 1, center.Level)
	require.Len(t, center.Tiers, 4)
	assert.True(t, center.Tiers[0].Owned)
	assert.True(t, center.Tiers[1].IsNext)
	assert.False(t, center.Tiers[1].Eligible())
	assert.False(t, center.Tiers[2].IsNext)
}

func TestGetEventLog_NewestFirstWithLimit(t *testing.T) {
	session := newSession(15000)
	session.RefreshJobs()

	resp, err := queries.NewGetEventLogHandler(session).Handle(context.Background(), &queries.GetEventLogQuery{Limit: 1})
	require.NoError(t, err)
	entries := resp.(*queries.GetEventLogResponse).Entries

	require.Len(t, entries, 1)
	assert.Equal(t, "Job board refreshed: 10 offers.", entries[0])
}

func TestGetSnapshot_ReportsPhase(t *testing.T) {
	session := newSession(15000)

	resp, err := queries.NewGetSnapshotHandler(session).Handle(context.Background(), &queries.GetSnapshotQuery{})
	require.NoError(t, err)
	snapshot := resp.(*queries.GetSnapshotResponse)

	assert.Equal(t, session.ID(), snapshot.SessionID)
	assert.Equal(t, game.PhaseIdle, snapshot.Phase)
	assert.Equal(t, game.WelcomeMessage, snapshot.State.GameLog[0])
}
