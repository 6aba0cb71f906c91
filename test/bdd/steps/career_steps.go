package steps

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/adapters/persistence"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/game/career"
	gameCmd "github.com/oseiasoliveira3390-bot/Truck-life/internal/application/game/commands"
	gameQuery "github.com/oseiasoliveira3390-bot/Truck-life/internal/application/game/queries"
	ledgerQuery "github.com/oseiasoliveira3390-bot/Truck-life/internal/application/ledger/queries"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/game"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/job"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/ledger"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/shared"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/world"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/infrastructure/database"
	"github.com/oseiasoliveira3390-bot/Truck-life/test/helpers"
)

var epoch = helpers.Epoch

type careerContext struct {
	career  *career.Career
	ledger  *persistence.GormTransactionRepository
	closeDB func()
	rules   game.Rules

	job         job.Job
	moneyBefore float64
	response    common.Response
	err         error
}

func (cc *careerContext) reset() {
	cc.teardown()
	cc.rules = game.Rules{}
	cc.job = job.Job{}
	cc.moneyBefore = 0
	cc.response = nil
	cc.err = nil
}

func (cc *careerContext) teardown() {
	if cc.career != nil {
		cc.career.Stop()
		cc.career = nil
	}
	if cc.closeDB != nil {
		cc.closeDB()
		cc.closeDB = nil
	}
	cc.ledger = nil
}

func (cc *careerContext) start() error {
	db, err := database.NewTestConnection()
	if err != nil {
		return fmt.Errorf("failed to open ledger database: %w", err)
	}
	cc.closeDB = func() { database.Close(db) }
	cc.ledger = persistence.NewGormTransactionRepository(db)

	// tickers are parked; scenarios drive trips and billing explicitly
	c, err := career.New(cc.ledger, career.Options{
		Rules:           cc.rules,
		Random:          shared.NewSeededRandom(7),
		Clock:           shared.NewMockClock(epoch),
		DriveTick:       time.Hour,
		BillingInterval: time.Hour,
	})
	if err != nil {
		return err
	}
	cc.career = c
	return nil
}

func (cc *careerContext) send(request common.Request) error {
	cc.response, cc.err = cc.career.Send(context.Background(), request)
	return nil
}

func (cc *careerContext) state() game.GameState {
	return cc.career.Session.Snapshot()
}

// Given steps

func (cc *careerContext) aNewCareer() error {
	return cc.start()
}

func (cc *careerContext) aNewCareerWithStartingMoney(money float64) error {
	cc.rules.StartingMoney = money
	return cc.start()
}

func (cc *careerContext) tripCostsAreDeducted() error {
	if cc.career != nil {
		return fmt.Errorf("trip cost rule must be set before the career starts")
	}
	cc.rules.DeductTripCosts = true
	return nil
}

func (cc *careerContext) iOwnA(modelID string) error {
	if _, err := cc.career.Send(context.Background(), &gameCmd.BuyTruckCommand{ModelID: modelID}); err != nil {
		return fmt.Errorf("failed to buy %s: %w", modelID, err)
	}
	return nil
}

// When steps

func (cc *careerContext) iBuyA(condition, modelID, financed string) error {
	return cc.send(&gameCmd.BuyTruckCommand{
		ModelID:  modelID,
		Used:     condition == "used",
		Financed: financed != "",
	})
}

func (cc *careerContext) iAcceptAJobRequiringLicense(license string) error {
	target := world.LicenseCategory(license)
	for i := 0; i < 50; i++ {
		if j, ok := helpers.FindJob(cc.state(), target); ok {
			cc.job = j
			cc.moneyBefore = cc.state().Player.Money
			return cc.send(&gameCmd.AcceptJobCommand{JobID: j.ID})
		}
		cc.career.Session.RefreshJobs()
	}
	return fmt.Errorf("no job requiring license %s after 50 refreshes", license)
}

func (cc *careerContext) iStartTheTrip() error {
	return cc.send(&gameCmd.StartTripCommand{})
}

func (cc *careerContext) theTruckDrivesUntilArrival() error {
	helpers.DriveToArrival(cc.career.Session)
	return nil
}

func (cc *careerContext) iFinishTheTrip() error {
	return cc.send(&gameCmd.FinishTripCommand{})
}

func (cc *careerContext) iUpgradeToLicense(license string) error {
	return cc.send(&gameCmd.UpgradeLicenseCommand{Target: license})
}

func (cc *careerContext) iTakeBankOffer(n int) error {
	idx := n - 1
	return cc.send(&gameCmd.TakeLoanCommand{OfferIndex: &idx})
}

func (cc *careerContext) iTakeALoanOf(amount float64, months int) error {
	return cc.send(&gameCmd.TakeLoanCommand{Amount: amount, TermMonths: months})
}

func (cc *careerContext) monthsOfLoanBillingPass(months int) error {
	for i := 0; i < months; i++ {
		if _, err := cc.career.Send(context.Background(), &gameCmd.BillLoansCommand{}); err != nil {
			return err
		}
	}
	return nil
}

// Then steps

func (cc *careerContext) theCommandShouldSucceed() error {
	if cc.err != nil {
		return fmt.Errorf("expected success, got: %v", cc.err)
	}
	return nil
}

func (cc *careerContext) theCommandShouldBeRejectedWith(reason string) error {
	var rejection *shared.RejectionError
	if !errors.As(cc.err, &rejection) {
		return fmt.Errorf("expected a rejection, got: %v", cc.err)
	}
	if rejection.Reason() != reason {
		return fmt.Errorf("expected reason %q, got %q", reason, rejection.Reason())
	}
	return nil
}

func (cc *careerContext) myMoneyShouldBe(expected float64) error {
	if money := cc.state().Player.Money; math.Abs(money-expected) > 0.005 {
		return fmt.Errorf("expected money %.2f, got %.2f", expected, money)
	}
	return nil
}

func (cc *careerContext) iShouldOwnTrucks(expected int) error {
	st := cc.state()
	if n := len(st.PlayerTrucks()); n != expected {
		return fmt.Errorf("expected %d trucks, got %d", expected, n)
	}
	return nil
}

func (cc *careerContext) iShouldHaveOpenLoans(expected int) error {
	if n := len(cc.state().Player.Loans); n != expected {
		return fmt.Errorf("expected %d open loans, got %d", expected, n)
	}
	return nil
}

func (cc *careerContext) theLoanPrincipalShouldBe(expected float64) error {
	loans := cc.state().Player.Loans
	if len(loans) == 0 {
		return fmt.Errorf("no open loan")
	}
	if p := loans[len(loans)-1].Principal; math.Abs(p-expected) > 0.005 {
		return fmt.Errorf("expected principal %.2f, got %.2f", expected, p)
	}
	return nil
}

func (cc *careerContext) theLoanShouldChargeAYear(percent float64) error {
	loans := cc.state().Player.Loans
	if len(loans) == 0 {
		return fmt.Errorf("no open loan")
	}
	if r := loans[len(loans)-1].InterestRate * 12 * 100; math.Abs(r-percent) > 1e-9 {
		return fmt.Errorf("expected %.2f%% a year, got %.2f%%", percent, r)
	}
	return nil
}

func (cc *careerContext) theLoanShouldHavePaidMonths(expected int) error {
	loans := cc.state().Player.Loans
	if len(loans) == 0 {
		return fmt.Errorf("no open loan")
	}
	if n := loans[0].PaidMonths; n != expected {
		return fmt.Errorf("expected %d paid months, got %d", expected, n)
	}
	return nil
}

func (cc *careerContext) theTripPhaseShouldBe(phase string) error {
	if p := cc.career.Session.Phase(); string(p) != phase {
		return fmt.Errorf("expected phase %s, got %s", phase, p)
	}
	return nil
}

func (cc *careerContext) iShouldHaveBeenPaidTheJobPayout() error {
	expected := cc.moneyBefore + float64(cc.job.Payout)
	return cc.myMoneyShouldBe(expected)
}

func (cc *careerContext) iShouldHaveBeenPaidTheJobPayoutMinusTripCosts() error {
	resp, ok := cc.response.(*gameCmd.FinishTripResponse)
	if !ok {
		return fmt.Errorf("expected a finish trip response, got %T", cc.response)
	}
	if !resp.CostsDeducted {
		return fmt.Errorf("expected trip costs to be deducted")
	}
	expected := cc.moneyBefore + float64(cc.job.Payout) - resp.TripCosts.Total()
	return cc.myMoneyShouldBe(expected)
}

func (cc *careerContext) myXPShouldMatchTheJobDistance() error {
	expected := cc.job.Distance * 5
	if xp := cc.state().Player.XP; math.Abs(xp-expected) > 1e-6 {
		return fmt.Errorf("expected %.2f xp, got %.2f", expected, xp)
	}
	return nil
}

func (cc *careerContext) iShouldHaveDeliveries(expected int) error {
	if n := cc.state().Player.History.Deliveries; n != expected {
		return fmt.Errorf("expected %d deliveries, got %d", expected, n)
	}
	return nil
}

func (cc *careerContext) myLicenseShouldBe(license string) error {
	if l := cc.state().Player.License; string(l) != license {
		return fmt.Errorf("expected license %s, got %s", license, l)
	}
	return nil
}

func (cc *careerContext) theLatestLogEntryShouldBe(expected string) error {
	log := cc.career.Session.Log()
	if len(log) == 0 || log[0] != expected {
		return fmt.Errorf("expected latest log entry %q, got %v", expected, log)
	}
	return nil
}

func (cc *careerContext) theAccountShouldBeOverdrawn() error {
	if !cc.state().Player.Overdrawn() {
		return fmt.Errorf("expected an overdrawn account, money is %.2f", cc.state().Player.Money)
	}
	return nil
}

func (cc *careerContext) theLedgerShouldHoldTransactions(expected int) error {
	n, err := cc.ledger.CountBySession(context.Background(), cc.career.Session.ID(), ledger.Filter{})
	if err != nil {
		return err
	}
	if n != expected {
		return fmt.Errorf("expected %d ledger transactions, got %d", expected, n)
	}
	return nil
}

func (cc *careerContext) theProfitAndLossShouldShowRevenueAndExpenses(revenue, expenses string) error {
	resp, err := cc.career.Send(context.Background(), &ledgerQuery.GetProfitLossQuery{SessionID: cc.career.Session.ID()})
	if err != nil {
		return err
	}
	pl := resp.(*ledgerQuery.GetProfitLossResponse)

	expectedRevenue := float64(cc.job.Payout)
	if revenue != "the job payout" {
		if _, err := fmt.Sscanf(revenue, "$%f", &expectedRevenue); err != nil {
			return fmt.Errorf("cannot read revenue %q: %w", revenue, err)
		}
	}
	var expectedExpenses float64
	if _, err := fmt.Sscanf(expenses, "$%f", &expectedExpenses); err != nil {
		return fmt.Errorf("cannot read expenses %q: %w", expenses, err)
	}

	if math.Abs(pl.TotalRevenue-expectedRevenue) > 0.005 {
		return fmt.Errorf("expected revenue %.2f, got %.2f", expectedRevenue, pl.TotalRevenue)
	}
	if math.Abs(pl.TotalExpenses-expectedExpenses) > 0.005 {
		return fmt.Errorf("expected expenses %.2f, got %.2f", expectedExpenses, pl.TotalExpenses)
	}
	return nil
}

func (cc *careerContext) theMarketShouldList(table *godog.Table) error {
	resp, err := cc.career.Send(context.Background(), &gameQuery.ListMarketQuery{})
	if err != nil {
		return err
	}
	listings := make(map[string]gameQuery.MarketListing)
	for _, l := range resp.(*gameQuery.ListMarketResponse).Listings {
		listings[l.Model.ID] = l
	}

	for _, row := range table.Rows[1:] {
		model := getCellValue(table, row, "model")
		l, ok := listings[model]
		if !ok {
			return fmt.Errorf("model %s is not on the market", model)
		}
		for column, actual := range map[string]float64{
			"new":          l.NewPrice,
			"used":         l.UsedPrice,
			"down payment": l.DownPayment,
		} {
			expected, err := strconv.ParseFloat(getCellValue(table, row, column), 64)
			if err != nil {
				return fmt.Errorf("bad %s cell for %s: %w", column, model, err)
			}
			if math.Abs(actual-expected) > 0.005 {
				return fmt.Errorf("%s %s price: expected %.2f, got %.2f", model, column, expected, actual)
			}
		}
	}
	return nil
}

// getCellValue finds a cell by the column name in the header row
func getCellValue(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	if len(table.Rows) == 0 {
		return ""
	}
	for i, headerCell := range table.Rows[0].Cells {
		if headerCell.Value == columnName && i < len(row.Cells) {
			return row.Cells[i].Value
		}
	}
	return ""
}

func InitializeCareerScenario(ctx *godog.ScenarioContext) {
	cc := &careerContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		cc.reset()
		return ctx, nil
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		cc.teardown()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a new career$`, cc.aNewCareer)
	ctx.Step(`^a new career with \$(\d+) starting money$`, cc.aNewCareerWithStartingMoney)
	ctx.Step(`^trip costs are deducted from payouts$`, cc.tripCostsAreDeducted)
	ctx.Step(`^I own a "([^"]*)"$`, cc.iOwnA)

	// When steps
	ctx.Step(`^I buy a (new|used) "([^"]*)"( financed)?$`, cc.iBuyA)
	ctx.Step(`^I accept a job requiring license "([A-E])"$`, cc.iAcceptAJobRequiringLicense)
	ctx.Step(`^I start the trip$`, cc.iStartTheTrip)
	ctx.Step(`^the truck drives until arrival$`, cc.theTruckDrivesUntilArrival)
	ctx.Step(`^I finish the trip$`, cc.iFinishTheTrip)
	ctx.Step(`^I upgrade to license "([^"]*)"$`, cc.iUpgradeToLicense)
	ctx.Step(`^I take bank offer (\d+)$`, cc.iTakeBankOffer)
	ctx.Step(`^I take a loan of \$(\d+) over (\d+) months$`, cc.iTakeALoanOf)
	ctx.Step(`^(\d+) months? of loan billing pass(?:es)?$`, cc.monthsOfLoanBillingPass)

	// Then steps
	ctx.Step(`^the command should succeed$`, cc.theCommandShouldSucceed)
	ctx.Step(`^the command should be rejected with "([^"]*)"$`, cc.theCommandShouldBeRejectedWith)
	ctx.Step(`^my money should be \$(-?[0-9.]+)$`, cc.myMoneyShouldBe)
	ctx.Step(`^I should own (\d+) trucks?$`, cc.iShouldOwnTrucks)
	ctx.Step(`^I should have (\d+) open loans?$`, cc.iShouldHaveOpenLoans)
	ctx.Step(`^the loan principal should be \$([0-9.]+)$`, cc.theLoanPrincipalShouldBe)
	ctx.Step(`^the loan should have (\d+) paid months?$`, cc.theLoanShouldHavePaidMonths)
	ctx.Step(`^the loan should charge (\d+)% a year$`, cc.theLoanShouldChargeAYear)
	ctx.Step(`^the trip phase should be "([A-Z]+)"$`, cc.theTripPhaseShouldBe)
	ctx.Step(`^I should have been paid the job payout$`, cc.iShouldHaveBeenPaidTheJobPayout)
	ctx.Step(`^I should have been paid the job payout minus trip costs$`, cc.iShouldHaveBeenPaidTheJobPayoutMinusTripCosts)
	ctx.Step(`^my XP should be 5 per kilometre of the job$`, cc.myXPShouldMatchTheJobDistance)
	ctx.Step(`^I should have (\d+) deliver(?:y|ies)$`, cc.iShouldHaveDeliveries)
	ctx.Step(`^my license should be "([A-E])"$`, cc.myLicenseShouldBe)
	ctx.Step(`^the latest log entry should be "([^"]*)"$`, cc.theLatestLogEntryShouldBe)
	ctx.Step(`^the account should be overdrawn$`, cc.theAccountShouldBeOverdrawn)
	ctx.Step(`^the ledger should hold (\d+) transactions?$`, cc.theLedgerShouldHoldTransactions)
	ctx.Step(`^the market should list:$`, cc.theMarketShouldList)
	ctx.Step(`^the profit and loss should show revenue of (the job payout|\$[0-9.]+) and expenses of (\$[0-9.]+)$`, cc.theProfitAndLossShouldShowRevenueAndExpenses)
}
