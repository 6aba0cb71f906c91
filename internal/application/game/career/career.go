package career

import (
	"context"
	"fmt"
	"time"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	gameCmd "github.com/oseiasoliveira3390-bot/Truck-life/internal/application/game/commands"
	gameQuery "github.com/oseiasoliveira3390-bot/Truck-life/internal/application/game/queries"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/game/scheduler"
	ledgerCmd "github.com/oseiasoliveira3390-bot/Truck-life/internal/application/ledger/commands"
	ledgerQuery "github.com/oseiasoliveira3390-bot/Truck-life/internal/application/ledger/queries"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/mediator"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/game"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/ledger"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/shared"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/world"
)

// Options configure a career
type Options struct {
	Rules              game.Rules
	Catalog            *world.Catalog
	Random             shared.RandomSource
	Clock              shared.Clock
	DriveTick          time.Duration
	BillingInterval    time.Duration
	JobRefreshInterval time.Duration
	Middlewares        []common.Middleware
}

// Career is one running game: the session, the mediator every command and
// query goes through, and the background scheduler.
type Career struct {
	Session   *game.Session
	Mediator  common.Mediator
	Scheduler *scheduler.Scheduler
}

// New creates a session and registers every handler on a fresh mediator.
// A nil repository disables the ledger.
func New(repo ledger.TransactionRepository, opts Options) (*Career, error) {
	if opts.Catalog == nil {
		opts.Catalog = world.DefaultCatalog()
	}
	if opts.Random == nil {
		opts.Random = shared.NewSeededRandom(0)
	}
	if opts.Clock == nil {
		opts.Clock = shared.NewRealClock()
	}

	session := game.NewSession(opts.Catalog, opts.Random, opts.Clock, opts.Rules)
	med := common.NewMediator()
	for _, mw := range opts.Middlewares {
		med.RegisterMiddleware(mw)
	}

	sched := scheduler.New(session, med, opts.DriveTick, opts.BillingInterval)

	var recorder *gameCmd.LedgerRecorder
	if repo != nil {
		recorder = gameCmd.NewLedgerRecorder(med, session.ID())
		if err := registerLedger(med, repo, opts.Clock); err != nil {
			return nil, err
		}
	}

	if err := registerCommands(med, session, recorder, sched, opts.JobRefreshInterval); err != nil {
		return nil, err
	}
	if err := registerQueries(med, session); err != nil {
		return nil, err
	}

	return &Career{Session: session, Mediator: med, Scheduler: sched}, nil
}

// Start runs the background billing clock
func (c *Career) Start(ctx context.Context) {
	c.Scheduler.Start(ctx)
}

// Stop halts all background work
func (c *Career) Stop() {
	c.Scheduler.Stop()
}

// Send dispatches a command or query
func (c *Career) Send(ctx context.Context, request common.Request) (common.Response, error) {
	return c.Mediator.Send(ctx, request)
}

func registerLedger(med common.Mediator, repo ledger.TransactionRepository, clock shared.Clock) error {
	if err := mediator.RegisterHandler[*ledgerCmd.RecordTransactionCommand](med, ledgerCmd.NewRecordTransactionHandler(repo, clock)); err != nil {
		return fmt.Errorf("failed to register RecordTransaction handler: %w", err)
	}
	if err := mediator.RegisterHandler[*ledgerQuery.GetTransactionsQuery](med, ledgerQuery.NewGetTransactionsHandler(repo)); err != nil {
		return fmt.Errorf("failed to register GetTransactions handler: %w", err)
	}
	if err := mediator.RegisterHandler[*ledgerQuery.GetProfitLossQuery](med, ledgerQuery.NewGetProfitLossHandler(repo)); err != nil {
		return fmt.Errorf("failed to register GetProfitLoss handler: %w", err)
	}
	return nil
}

func registerCommands(
	med common.Mediator,
	session *game.Session,
	recorder *gameCmd.LedgerRecorder,
	timer gameCmd.TripTimer,
	refreshInterval time.Duration,
) error {
	if err := mediator.RegisterHandler[*gameCmd.BuyTruckCommand](med, gameCmd.NewBuyTruckHandler(session, recorder)); err != nil {
		return fmt.Errorf("failed to register BuyTruck handler: %w", err)
	}
	if err := mediator.RegisterHandler[*gameCmd.AcceptJobCommand](med, gameCmd.NewAcceptJobHandler(session)); err != nil {
		return fmt.Errorf("failed to register AcceptJob handler: %w", err)
	}
	if err := mediator.RegisterHandler[*gameCmd.StartTripCommand](med, gameCmd.NewStartTripHandler(session, timer)); err != nil {
		return fmt.Errorf("failed to register StartTrip handler: %w", err)
	}
	if err := mediator.RegisterHandler[*gameCmd.FinishTripCommand](med, gameCmd.NewFinishTripHandler(session, recorder, timer)); err != nil {
		return fmt.Errorf("failed to register FinishTrip handler: %w", err)
	}
	if err := mediator.RegisterHandler[*gameCmd.UpgradeLicenseCommand](med, gameCmd.NewUpgradeLicenseHandler(session, recorder)); err != nil {
		return fmt.Errorf("failed to register UpgradeLicense handler: %w", err)
	}
	if err := mediator.RegisterHandler[*gameCmd.TakeLoanCommand](med, gameCmd.NewTakeLoanHandler(session, recorder)); err != nil {
		return fmt.Errorf("failed to register TakeLoan handler: %w", err)
	}
	if err := mediator.RegisterHandler[*gameCmd.SelectTruckCommand](med, gameCmd.NewSelectTruckHandler(session)); err != nil {
		return fmt.Errorf("failed to register SelectTruck handler: %w", err)
	}
	if err := mediator.RegisterHandler[*gameCmd.BillLoansCommand](med, gameCmd.NewBillLoansHandler(session, recorder)); err != nil {
		return fmt.Errorf("failed to register BillLoans handler: %w", err)
	}
	if err := mediator.RegisterHandler[*gameCmd.RefreshJobsCommand](med, gameCmd.NewRefreshJobsHandler(session, refreshInterval)); err != nil {
		return fmt.Errorf("failed to register RefreshJobs handler: %w", err)
	}
	return nil
}

func registerQueries(med common.Mediator, session *game.Session) error {
	if err := mediator.RegisterHandler[*gameQuery.GetSnapshotQuery](med, gameQuery.NewGetSnapshotHandler(session)); err != nil {
		return fmt.Errorf("failed to register GetSnapshot handler: %w", err)
	}
	if err := mediator.RegisterHandler[*gameQuery.GetEventLogQuery](med, gameQuery.NewGetEventLogHandler(session)); err != nil {
		return fmt.Errorf("failed to register GetEventLog handler: %w", err)
	}
	if err := mediator.RegisterHandler[*gameQuery.ListJobsQuery](med, gameQuery.NewListJobsHandler(session)); err != nil {
		return fmt.Errorf("failed to register ListJobs handler: %w", err)
	}
	if err := mediator.RegisterHandler[*gameQuery.ListMarketQuery](med, gameQuery.NewListMarketHandler(session)); err != nil {
		return fmt.Errorf("failed to register ListMarket handler: %w", err)
	}
	if err := mediator.RegisterHandler[*gameQuery.ListLoanOffersQuery](med, gameQuery.NewListLoanOffersHandler()); err != nil {
		return fmt.Errorf("failed to register ListLoanOffers handler: %w", err)
	}
	if err := mediator.RegisterHandler[*gameQuery.GetFinancesQuery](med, gameQuery.NewGetFinancesHandler(session)); err != nil {
		return fmt.Errorf("failed to register GetFinances handler: %w", err)
	}
	if err := mediator.RegisterHandler[*gameQuery.GetLicenseCenterQuery](med, gameQuery.NewGetLicenseCenterHandler(session)); err != nil {
		return fmt.Errorf("failed to register GetLicenseCenter handler: %w", err)
	}
	return nil
}
