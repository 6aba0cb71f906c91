package game

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/economy"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/job"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/ledger"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/shared"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/world"
)

var start = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return NewSession(world.DefaultCatalog(), shared.NewSeededRandom(1234), shared.NewMockClock(start), DefaultRules())
}

// withJob puts a known job on the board
func withJob(s *Session, j job.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.AvailableJobs = append(s.state.AvailableJobs, j)
}

func testJob(id string, license world.LicenseCategory, distance float64, payout int) job.Job {
	return job.Job{
		ID: id, Cargo: "Fruit", Weight: 4000, From: "berlin", To: "prague",
		Payout: payout, Urgency: job.UrgencyLow, RequiredLicense: license, Distance: distance,
	}
}

func driveToArrival(t *testing.T, s *Session) {
	t.Helper()
	for i := 0; i < 100; i++ {
		if _, arrived := s.AdvanceTrip(); arrived {
			return
		}
	}
	t.Fatal("trip never arrived")
}

func assertRejected(t *testing.T, err error, command string) {
	t.Helper()
	var rejection *shared.RejectionError
	require.True(t, errors.As(err, &rejection), "expected rejection, got %v", err)
	assert.Equal(t, command, rejection.Command)
}

func TestNewSession_InitialState(t *testing.T) {
	s := newTestSession(t)
	snap := s.Snapshot()

	assert.Equal(t, "Driver 001", snap.Player.Name)
	assert.Equal(t, 1, snap.Player.Level)
	assert.Equal(t, 50, snap.Player.Reputation)
	assert.Equal(t, 15000.0, snap.Player.Money)
	assert.Equal(t, world.LicenseB, snap.Player.License)
	assert.Empty(t, snap.Trucks)
	assert.Len(t, snap.AvailableJobs, 10)
	assert.Len(t, snap.Companies, 3)
	assert.Equal(t, []string{WelcomeMessage}, snap.GameLog)
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.NotEmpty(t, s.ID())
}

func TestBuyTruck_Financed(t *testing.T) {
	s := newTestSession(t)

	outcome, err := s.BuyTruck("vlk-lt1", false, true)
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Equal(t, 15000.0-4500.0, snap.Player.Money)
	require.Len(t, snap.Player.Loans, 1)
	assert.Equal(t, 40500.0, snap.Player.Loans[0].Principal)
	assert.InDelta(t, 0.01, snap.Player.Loans[0].InterestRate, 1e-12)
	assert.Equal(t, 24, snap.Player.Loans[0].TermMonths)
	assert.Equal(t, outcome.Truck.ID, snap.Player.CurrentTruckID)
	assert.Equal(t, "Financed Volker Lite T1!", snap.GameLog[0])

	require.Len(t, outcome.Movements, 1)
	assert.Equal(t, ledger.TransactionTypeTruckPurchase, outcome.Movements[0].Type)
	assert.Equal(t, -4500.0, outcome.Movements[0].Amount)
	assert.Equal(t, 15000.0, outcome.Movements[0].BalanceBefore)
	assert.Equal(t, 10500.0, outcome.Movements[0].BalanceAfter)
}

func TestBuyTruck_UsedOutright(t *testing.T) {
	s := NewSession(world.DefaultCatalog(), shared.NewSeededRandom(9), shared.NewMockClock(start), Rules{StartingMoney: 30000})

	outcome, err := s.BuyTruck("vlk-lt1", true, false)
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Equal(t, 3000.0, snap.Player.Money)
	require.Len(t, snap.Trucks, 1)
	assert.Equal(t, 27000.0, snap.Trucks[0].PurchasePrice)
	assert.Equal(t, 70.0, snap.Trucks[0].Condition)
	assert.Equal(t, 150000.0, snap.Trucks[0].Mileage)
	assert.Equal(t, 100.0, snap.Trucks[0].Fuel)
	assert.Empty(t, snap.Player.Loans)
	assert.Nil(t, outcome.Loan)
	assert.Equal(t, "Bought Volker Lite T1!", snap.GameLog[0])
}

func TestBuyTruck_InsufficientFunds(t *testing.T) {
	s := newTestSession(t)
	before := s.Snapshot()

	_, err := s.BuyTruck("vlk-lt1", false, false)

	assertRejected(t, err, CmdBuyTruck)
	after := s.Snapshot()
	assert.Equal(t, before.Player, after.Player)
	assert.Empty(t, after.Trucks)
	assert.Equal(t, "Not enough money for the $45,000.00 down payment.", after.GameLog[0])
}

func TestBuyTruck_UnknownModel(t *testing.T) {
	s := newTestSession(t)

	_, err := s.BuyTruck("hover-van", false, false)

	assertRejected(t, err, CmdBuyTruck)
	assert.Empty(t, s.Snapshot().Trucks)
}

func TestBuyTruck_KeepsCurrentSelection(t *testing.T) {
	s := NewSession(world.DefaultCatalog(), shared.NewSeededRandom(3), shared.NewMockClock(start), Rules{StartingMoney: 100000})

	first, err := s.BuyTruck("vlk-lt1", false, false)
	require.NoError(t, err)
	_, err = s.BuyTruck("vlk-lt1", true, false)
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Len(t, snap.Player.InventoryTruckIDs, 2)
	assert.Equal(t, first.Truck.ID, snap.Player.CurrentTruckID)
}

func TestAcceptJob_LicenseTooLow(t *testing.T) {
	s := newTestSession(t)
	_, err := s.BuyTruck("vlk-lt1", false, true)
	require.NoError(t, err)
	withJob(s, testJob("heavy", world.LicenseD, 300, 3600))
	before := s.Snapshot()

	_, err = s.AcceptJob("heavy")

	assertRejected(t, err, CmdAcceptJob)
	after := s.Snapshot()
	assert.Equal(t, before.AvailableJobs, after.AvailableJobs)
	assert.Nil(t, after.ActiveJob)
	assert.Empty(t, after.Player.ActiveJobID)
	assert.Equal(t, "License D required for this job (you hold B).", after.GameLog[0])
}

func TestAcceptJob_RequiresTruck(t *testing.T) {
	s := newTestSession(t)
	withJob(s, testJob("light", world.LicenseB, 300, 3600))

	_, err := s.AcceptJob("light")

	assertRejected(t, err, CmdAcceptJob)
}

func TestAcceptJob_UnknownAndDuplicate(t *testing.T) {
	s := newTestSession(t)
	_, err := s.BuyTruck("vlk-lt1", false, true)
	require.NoError(t, err)
	withJob(s, testJob("a", world.LicenseB, 300, 3600))
	withJob(s, testJob("b", world.LicenseB, 300, 3600))

	_, err = s.AcceptJob("missing")
	assertRejected(t, err, CmdAcceptJob)

	_, err = s.AcceptJob("a")
	require.NoError(t, err)

	_, err = s.AcceptJob("b")
	assertRejected(t, err, CmdAcceptJob)
	assert.Equal(t, "a", s.Snapshot().ActiveJob.ID)
}

func TestTripLifecycle(t *testing.T) {
	s := newTestSession(t)
	_, err := s.BuyTruck("vlk-lt1", false, true)
	require.NoError(t, err)
	withJob(s, testJob("trip", world.LicenseB, 200, 2520))

	_, err = s.AcceptJob("trip")
	require.NoError(t, err)
	snap := s.Snapshot()
	assert.Equal(t, PhaseLoaded, snap.Phase())
	assert.Equal(t, "Accepted job: Fruit to Prague.", snap.GameLog[0])
	for _, j := range snap.AvailableJobs {
		assert.NotEqual(t, "trip", j.ID)
	}

	_, err = s.FinishTrip()
	assertRejected(t, err, CmdFinishTrip)

	_, err = s.StartTrip()
	require.NoError(t, err)
	assert.Equal(t, PhaseDriving, s.Phase())

	_, err = s.StartTrip()
	assertRejected(t, err, CmdStartTrip)

	progress, arrived := s.AdvanceTrip()
	assert.InDelta(t, 0.05, progress, 1e-12)
	assert.False(t, arrived)

	_, err = s.FinishTrip()
	assertRejected(t, err, CmdFinishTrip)

	driveToArrival(t, s)
	assert.Equal(t, PhaseArrived, s.Phase())
	progress, arrived = s.AdvanceTrip()
	assert.Equal(t, 1.0, progress)
	assert.True(t, arrived)

	moneyBefore := s.Snapshot().Player.Money
	outcome, err := s.FinishTrip()
	require.NoError(t, err)

	snap = s.Snapshot()
	assert.Equal(t, moneyBefore+2520, snap.Player.Money)
	assert.Equal(t, 1000.0, snap.Player.XP)
	assert.Equal(t, 2, snap.Player.Level)
	assert.Equal(t, 1, snap.Player.History.Deliveries)
	assert.Nil(t, snap.ActiveJob)
	assert.False(t, snap.IsDriving)
	assert.Equal(t, 0.0, snap.DrivingProgress)
	assert.Equal(t, 200.0, snap.Trucks[0].Mileage)
	assert.Equal(t, PhaseIdle, snap.Phase())
	assert.True(t, outcome.LeveledUp)
	require.NotNil(t, outcome.TripCosts)
	assert.InDelta(t, 200*0.18*1.65, outcome.TripCosts.FuelCost, 1e-9)
	require.Len(t, outcome.Movements, 1, "operating costs are not charged by default")
	assert.Contains(t, snap.GameLog, "Delivery complete! +$2,520.00")
}

func TestFinishTrip_LevelsUpAtThreshold(t *testing.T) {
	s := newTestSession(t)
	_, err := s.BuyTruck("vlk-lt1", false, true)
	require.NoError(t, err)
	s.mu.Lock()
	s.state.Player.XP = 950
	s.mu.Unlock()
	withJob(s, testJob("short", world.LicenseB, 10, 126))

	_, err = s.AcceptJob("short")
	require.NoError(t, err)
	_, err = s.StartTrip()
	require.NoError(t, err)
	driveToArrival(t, s)
	_, err = s.FinishTrip()
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Equal(t, 1000.0, snap.Player.XP)
	assert.Equal(t, 2, snap.Player.Level)
}

func TestFinishTrip_DeductsOperatingCostsWhenEnabled(t *testing.T) {
	rules := DefaultRules()
	rules.DeductTripCosts = true
	s := NewSession(world.DefaultCatalog(), shared.NewSeededRandom(5), shared.NewMockClock(start), rules)
	_, err := s.BuyTruck("vlk-lt1", false, true)
	require.NoError(t, err)
	withJob(s, testJob("costly", world.LicenseB, 100, 1260))

	_, err = s.AcceptJob("costly")
	require.NoError(t, err)
	_, err = s.StartTrip()
	require.NoError(t, err)
	driveToArrival(t, s)

	before := s.Snapshot().Player.Money
	outcome, err := s.FinishTrip()
	require.NoError(t, err)

	costs := 100*0.18*1.65 + 100*0.45
	require.Len(t, outcome.Movements, 2)
	assert.Equal(t, ledger.TransactionTypeTripOperatingCosts, outcome.Movements[1].Type)
	assert.InDelta(t, before+1260-costs, s.Snapshot().Player.Money, 1e-9)
	assert.InDelta(t, 1260-costs, outcome.CashDelta(), 1e-9)
}

func TestAdvanceTrip_NoopWhenParked(t *testing.T) {
	s := newTestSession(t)

	progress, arrived := s.AdvanceTrip()

	assert.Equal(t, 0.0, progress)
	assert.False(t, arrived)
	assert.Len(t, s.Log(), 1)
}

func TestUpgradeLicense(t *testing.T) {
	s := newTestSession(t)

	_, err := s.UpgradeLicense(world.LicenseC)
	assertRejected(t, err, CmdUpgradeLicense)
	assert.Equal(t, "License C requires level 5.", s.Log()[0])

	s.mu.Lock()
	s.state.Player.XP = 4000
	s.state.Player.Level = 5
	s.mu.Unlock()

	_, err = s.UpgradeLicense(world.LicenseD)
	assertRejected(t, err, CmdUpgradeLicense)

	outcome, err := s.UpgradeLicense(world.LicenseC)
	require.NoError(t, err)
	snap := s.Snapshot()
	assert.Equal(t, world.LicenseC, snap.Player.License)
	assert.Equal(t, 10000.0, snap.Player.Money)
	assert.Equal(t, "License upgraded to C!", snap.GameLog[0])
	require.Len(t, outcome.Movements, 1)
	assert.Equal(t, ledger.TransactionTypeLicenseFee, outcome.Movements[0].Type)

	_, err = s.UpgradeLicense(world.LicenseB)
	assertRejected(t, err, CmdUpgradeLicense)
}

func TestUpgradeLicense_InsufficientFunds(t *testing.T) {
	s := NewSession(world.DefaultCatalog(), shared.NewSeededRandom(2), shared.NewMockClock(start), Rules{StartingMoney: 4000})
	s.mu.Lock()
	s.state.Player.Level = 6
	s.mu.Unlock()

	_, err := s.UpgradeLicense(world.LicenseC)

	assertRejected(t, err, CmdUpgradeLicense)
	assert.Equal(t, world.LicenseB, s.Snapshot().Player.License)
	assert.Equal(t, 4000.0, s.Snapshot().Player.Money)
}

func TestTakeLoan(t *testing.T) {
	s := newTestSession(t)

	outcome, err := s.TakeLoan(50000, 12)
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Equal(t, 65000.0, snap.Player.Money)
	require.Len(t, snap.Player.Loans, 1)
	assert.InDelta(t, 0.08/12, snap.Player.Loans[0].InterestRate, 1e-12)
	assert.Equal(t, "Loan accepted: $50,000.00.", snap.GameLog[0])
	assert.Equal(t, ledger.TransactionTypeLoanDisbursement, outcome.Movements[0].Type)

	_, err = s.TakeLoan(0, 12)
	assertRejected(t, err, CmdTakeLoan)
	_, err = s.TakeLoan(1000, 0)
	assertRejected(t, err, CmdTakeLoan)
	assert.Len(t, s.Snapshot().Player.Loans, 1)
}

func TestTakeLoanAt_ExplicitRate(t *testing.T) {
	s := newTestSession(t)

	outcome, err := s.TakeLoanAt(250000, 48, 0.12)
	require.NoError(t, err)

	assert.InDelta(t, 0.01, outcome.Loan.InterestRate, 1e-12)
	assert.Equal(t, 48, outcome.Loan.TermMonths)
}

func TestTakeLoanOffer_ChargesCashRate(t *testing.T) {
	s := newTestSession(t)
	offer := economy.BankOffers()[2]

	outcome, err := s.TakeLoanOffer(2)
	require.NoError(t, err)

	want, err := economy.MonthlyPayment(offer.Amount, economy.CashLoanRate, offer.TermMonths)
	require.NoError(t, err)
	assert.Equal(t, offer.Amount, outcome.Loan.Principal)
	assert.InDelta(t, economy.CashLoanRate/12, outcome.Loan.InterestRate, 1e-12)
	assert.InDelta(t, want, outcome.Loan.MonthlyPayment, 1e-9)
	assert.InDelta(t, 6103.2, outcome.Loan.MonthlyPayment, 0.1)
}

func TestTakeLoanOffer_UnknownOfferIsRejected(t *testing.T) {
	s := newTestSession(t)
	before := s.Snapshot()

	_, err := s.TakeLoanOffer(3)
	assertRejected(t, err, CmdTakeLoan)
	_, err = s.TakeLoanOffer(-1)
	assertRejected(t, err, CmdTakeLoan)

	after := s.Snapshot()
	assert.Equal(t, "Unknown loan offer 0.", after.GameLog[0])
	assert.Equal(t, "Unknown loan offer 4.", after.GameLog[1])
	assert.Equal(t, before.Player.Money, after.Player.Money)
	assert.Empty(t, after.Player.Loans)
}

func TestRejectedCommands_LeaveClockAlone(t *testing.T) {
	clock := shared.NewMockClock(start)
	s := NewSession(world.DefaultCatalog(), shared.NewSeededRandom(1234), clock, DefaultRules())
	before := s.Snapshot().CurrentTime

	clock.Advance(time.Hour)
	_, err := s.AcceptJob("nope")
	assertRejected(t, err, CmdAcceptJob)
	_, err = s.StartTrip()
	assertRejected(t, err, CmdStartTrip)
	_, err = s.FinishTrip()
	assertRejected(t, err, CmdFinishTrip)
	_, err = s.BuyTruck("no-such-model", false, false)
	assertRejected(t, err, CmdBuyTruck)
	_, err = s.UpgradeLicense(world.LicenseE)
	assertRejected(t, err, CmdUpgradeLicense)
	_, err = s.TakeLoan(0, 12)
	assertRejected(t, err, CmdTakeLoan)
	assert.Equal(t, before, s.Snapshot().CurrentTime)

	_, err = s.TakeLoan(1000, 12)
	require.NoError(t, err)
	assert.Equal(t, start.Add(time.Hour), s.Snapshot().CurrentTime)
}

func TestSelectTruck(t *testing.T) {
	s := NewSession(world.DefaultCatalog(), shared.NewSeededRandom(8), shared.NewMockClock(start), Rules{StartingMoney: 100000})
	first, err := s.BuyTruck("vlk-lt1", false, false)
	require.NoError(t, err)
	second, err := s.BuyTruck("vlk-lt1", true, false)
	require.NoError(t, err)

	_, err = s.SelectTruck(second.Truck.ID)
	require.NoError(t, err)
	once := s.Snapshot()
	_, err = s.SelectTruck(second.Truck.ID)
	require.NoError(t, err)
	twice := s.Snapshot()

	assert.Equal(t, once, twice)
	assert.Equal(t, second.Truck.ID, twice.Player.CurrentTruckID)

	_, err = s.SelectTruck("not-mine")
	assertRejected(t, err, CmdSelectTruck)
	assert.Equal(t, second.Truck.ID, s.Snapshot().Player.CurrentTruckID)

	_, err = s.SelectTruck(first.Truck.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Truck.ID, s.Snapshot().Player.CurrentTruckID)
}

func TestSelectTruck_RejectedWhileDriving(t *testing.T) {
	s := NewSession(world.DefaultCatalog(), shared.NewSeededRandom(8), shared.NewMockClock(start), Rules{StartingMoney: 100000})
	_, err := s.BuyTruck("vlk-lt1", false, false)
	require.NoError(t, err)
	spare, err := s.BuyTruck("vlk-lt1", true, false)
	require.NoError(t, err)
	withJob(s, testJob("j", world.LicenseB, 100, 1200))
	_, err = s.AcceptJob("j")
	require.NoError(t, err)
	_, err = s.StartTrip()
	require.NoError(t, err)

	_, err = s.SelectTruck(spare.Truck.ID)

	assertRejected(t, err, CmdSelectTruck)
}

func TestBillLoans_ClampsAndRemovesSettled(t *testing.T) {
	s := newTestSession(t)
	s.mu.Lock()
	s.state.Player.Loans = []economy.Loan{{ID: "small", Principal: 200, RemainingBalance: 200, MonthlyPayment: 500, TermMonths: 12, PaidMonths: 11}}
	s.mu.Unlock()

	outcome := s.BillLoans()

	snap := s.Snapshot()
	assert.Equal(t, 14800.0, snap.Player.Money)
	assert.Empty(t, snap.Player.Loans)
	require.Len(t, outcome.Movements, 1)
	assert.Equal(t, -200.0, outcome.Movements[0].Amount)
	assert.Equal(t, "Loan payments: -$200.00.", snap.GameLog[0])
}

func TestBillLoans_AllowsOverdraft(t *testing.T) {
	s := NewSession(world.DefaultCatalog(), shared.NewSeededRandom(4), shared.NewMockClock(start), Rules{StartingMoney: 100})
	s.mu.Lock()
	s.state.Player.Loans = []economy.Loan{{ID: "big", RemainingBalance: 5000, MonthlyPayment: 500, TermMonths: 10}}
	s.mu.Unlock()

	s.BillLoans()

	snap := s.Snapshot()
	assert.Equal(t, -400.0, snap.Player.Money)
	assert.True(t, snap.Player.Overdrawn())
	require.Len(t, snap.Player.Loans, 1)
	assert.Equal(t, 4500.0, snap.Player.Loans[0].RemainingBalance)
	assert.Equal(t, 1, snap.Player.Loans[0].PaidMonths)
	assert.Equal(t, "Account overdrawn: -$400.00.", snap.GameLog[0])
}

func TestBillLoans_NoLoansIsSilent(t *testing.T) {
	s := newTestSession(t)

	outcome := s.BillLoans()

	assert.Empty(t, outcome.Movements)
	assert.Len(t, s.Log(), 1)
}

func TestRefreshJobs(t *testing.T) {
	s := newTestSession(t)
	before := s.Snapshot().AvailableJobs

	s.RefreshJobs()

	after := s.Snapshot().AvailableJobs
	assert.Len(t, after, 10)
	assert.NotEqual(t, before[0].ID, after[0].ID)
}

func TestEventLog_CappedNewestFirst(t *testing.T) {
	s := newTestSession(t)

	for i := 0; i < 60; i++ {
		_, _ = s.TakeLoan(0, 12)
	}
	_, err := s.TakeLoan(1000, 12)
	require.NoError(t, err)

	log := s.Log()
	assert.Len(t, log, 50)
	assert.Equal(t, "Loan accepted: $1,000.00.", log[0])
	assert.NotContains(t, log, WelcomeMessage)
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	s := newTestSession(t)
	_, err := s.BuyTruck("vlk-lt1", false, true)
	require.NoError(t, err)

	snap := s.Snapshot()
	snap.Player.Loans[0].RemainingBalance = 0
	snap.Trucks[0].Mileage = 99
	snap.GameLog[0] = "tampered"
	snap.Companies[0].FleetIDs = append(snap.Companies[0].FleetIDs, "x")

	fresh := s.Snapshot()
	assert.NotEqual(t, 0.0, fresh.Player.Loans[0].RemainingBalance)
	assert.Equal(t, 0.0, fresh.Trucks[0].Mileage)
	assert.Equal(t, "Financed Volker Lite T1!", fresh.GameLog[0])
	assert.Empty(t, fresh.Companies[0].FleetIDs)
}

func TestLicenseCenter(t *testing.T) {
	s := newTestSession(t)

	tiers := LicenseCenter(s.Snapshot().Player, s.Catalog())

	require.Len(t, tiers, 4)
	assert.True(t, tiers[0].Owned)
	assert.True(t, tiers[1].IsNext)
	assert.Equal(t, 4, tiers[1].LevelMissing)
	assert.False(t, tiers[1].Eligible())
	assert.Equal(t, 25000.0, tiers[3].CashMissing)
}

func TestSnapshot_ReadHelpersOnValue(t *testing.T) {
	s := NewSession(world.DefaultCatalog(), shared.NewSeededRandom(8), shared.NewMockClock(start), Rules{StartingMoney: 100000})
	bought, err := s.BuyTruck("vlk-lt1", false, false)
	require.NoError(t, err)

	assert.Len(t, s.Snapshot().PlayerTrucks(), 1)
	assert.Equal(t, PhaseIdle, s.Snapshot().Phase())

	current, ok := s.Snapshot().CurrentTruck()
	require.True(t, ok)
	assert.Equal(t, bought.Truck.ID, current.ID)

	_, ok = s.Snapshot().FindTruck("missing")
	assert.False(t, ok)
}
