package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/game"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/world"
	"github.com/oseiasoliveira3390-bot/Truck-life/test/helpers"
)

func newTestConsole(t *testing.T) (*Console, *helpers.TestCareer, *bytes.Buffer) {
	t.Helper()
	tc := helpers.NewTestCareer(t, 7, game.Rules{StartingMoney: 100000})
	out := &bytes.Buffer{}
	return NewConsole(tc.Mediator, tc.Session.ID(), out), tc, out
}

func run(t *testing.T, c *Console, line string) {
	t.Helper()
	quit, err := c.Execute(context.Background(), line)
	require.NoError(t, err, line)
	require.False(t, quit)
}

func TestConsole_DeliveryRoundTrip(t *testing.T) {
	c, tc, out := newTestConsole(t)

	run(t, c, "buy vlk-lt1")
	assert.Contains(t, out.String(), "Bought Volker Lite T1!")

	j := helpers.EnsureJob(t, tc.Session, world.LicenseB)
	run(t, c, "accept "+j.ID)
	assert.Contains(t, out.String(), "Accepted job:")

	run(t, c, "start")
	assert.Contains(t, out.String(), "On the road:")

	helpers.DriveToArrival(tc.Session)
	out.Reset()
	run(t, c, "finish")
	assert.Contains(t, out.String(), "Delivery complete!")
	assert.Contains(t, out.String(), "(not charged)")

	out.Reset()
	run(t, c, "report")
	assert.Contains(t, out.String(), "PROFIT & LOSS STATEMENT")
	assert.Contains(t, out.String(), "FREIGHT_REVENUE")
	assert.Contains(t, out.String(), "FLEET_INVESTMENTS")

	out.Reset()
	run(t, c, "ledger 5")
	assert.Contains(t, out.String(), "JOB_PAYOUT")
	assert.Contains(t, out.String(), "TRUCK_PURCHASE")
}

func TestConsole_ListingIndexes(t *testing.T) {
	c, tc, out := newTestConsole(t)

	run(t, c, "buy vlk-lt1")
	run(t, c, "buy vlk-lt1 used")
	run(t, c, "trucks")
	require.Len(t, c.truckIDs, 2)

	out.Reset()
	run(t, c, "select 2")
	assert.Contains(t, out.String(), "Now driving")
	assert.Equal(t, c.truckIDs[1], tc.Session.Snapshot().Player.CurrentTruckID)

	out.Reset()
	run(t, c, "select 2")
	assert.Contains(t, out.String(), "Already driving that truck.")

	run(t, c, "jobs")
	assert.Len(t, c.jobIDs, len(tc.Session.Snapshot().AvailableJobs))
}

func TestConsole_RejectionsAreErrors(t *testing.T) {
	c, tc, _ := newTestConsole(t)

	_, err := c.Execute(context.Background(), "finish")
	require.Error(t, err)
	assert.Equal(t, "No active delivery to finish.", reasonOf(err))

	_, err = c.Execute(context.Background(), "upgrade Z")
	require.Error(t, err)
	assert.Equal(t, "Unknown license category: Z.", reasonOf(err))

	_, err = c.Execute(context.Background(), "buy vlk-lt1 cheap")
	require.Error(t, err)

	_, err = c.Execute(context.Background(), "fly")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")

	assert.Equal(t, 100000.0, tc.Session.Snapshot().Player.Money)
}

func TestConsole_BankAndFinances(t *testing.T) {
	c, tc, out := newTestConsole(t)

	run(t, c, "bank")
	assert.Contains(t, out.String(), "Monthly")

	out.Reset()
	run(t, c, "loan 10000 12")
	assert.Contains(t, out.String(), "Loan accepted: $10,000.00.")
	assert.Equal(t, 110000.0, tc.Session.Snapshot().Player.Money)

	out.Reset()
	run(t, c, "finances")
	assert.Contains(t, out.String(), "Money: $110,000.00")

	_, err := c.Execute(context.Background(), "loan ten 12")
	require.Error(t, err)
}

func TestConsole_StatusAndLicenses(t *testing.T) {
	c, _, out := newTestConsole(t)

	run(t, c, "status")
	assert.Contains(t, out.String(), "Driver 001")
	assert.Contains(t, out.String(), "Truck: none")
	assert.Contains(t, out.String(), "IDLE")

	out.Reset()
	run(t, c, "licenses")
	assert.Contains(t, out.String(), "owned")

	out.Reset()
	run(t, c, "log 1")
	assert.Contains(t, out.String(), game.WelcomeMessage)
}

func TestConsole_RunStopsOnQuit(t *testing.T) {
	c, _, out := newTestConsole(t)

	err := c.Run(context.Background(), strings.NewReader("help\nnonsense\nquit\nstatus\n"))
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Commands:")
	assert.Contains(t, out.String(), "! unknown command")
	assert.NotContains(t, out.String(), "Driver 001")
}

func TestResolve(t *testing.T) {
	ids := []string{"a", "b"}
	assert.Equal(t, "b", resolve("2", ids))
	assert.Equal(t, "3", resolve("3", ids))
	assert.Equal(t, "job-xyz", resolve("job-xyz", ids))
}
