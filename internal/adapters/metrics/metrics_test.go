package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/mediator"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/shared"
)

type fakeCommand struct{}

func TestRecorders_NoopWhenDisabled(t *testing.T) {
	Reset()

	assert.False(t, IsEnabled())
	assert.NotPanics(t, func() {
		RecordRejection("buy truck")
		RecordTransaction("s", "JOB_PAYOUT", "FREIGHT_REVENUE", 100, 100)
		RecordLoanBilling(10)
	})
}

func TestCareerCollector_RecordsEvents(t *testing.T) {
	InitRegistry()
	defer Reset()

	career := NewCareerMetricsCollector(nil)
	require.NoError(t, career.Register())
	SetGlobalCareerCollector(career)

	RecordTruckPurchase("vlk-lt1", true, false)
	RecordTruckPurchase("vlk-lt1", true, false)
	RecordRejection("accept job")
	RecordDelivery("Electronics", "high", 878, 15804)
	RecordLevelUp(2)
	RecordLicenseUpgrade("C")

	assert.Equal(t, 2.0, testutil.ToFloat64(career.trucksPurchased.WithLabelValues("vlk-lt1", "used", "cash")))
	assert.Equal(t, 1.0, testutil.ToFloat64(career.rejectionsTotal.WithLabelValues("accept job")))
	assert.Equal(t, 1.0, testutil.ToFloat64(career.deliveriesTotal.WithLabelValues("Electronics", "high")))
	assert.Equal(t, 1.0, testutil.ToFloat64(career.levelUpsTotal.WithLabelValues("2")))
	assert.Equal(t, 1.0, testutil.ToFloat64(career.licenseUpgrades.WithLabelValues("C")))
}

func TestFinancialCollector_RecordsTransactionsAndLoans(t *testing.T) {
	InitRegistry()
	defer Reset()

	financial := NewFinancialMetricsCollector(nil, "session-1")
	require.NoError(t, financial.Register())
	SetGlobalFinancialCollector(financial)

	RecordTransaction("session-1", "TRUCK_PURCHASE", "FLEET_INVESTMENTS", -4500, 10500)
	RecordLoanOriginated("cash", 50000)
	RecordLoanBilling(0)
	RecordLoanBilling(4349.44)

	assert.Equal(t, 10500.0, testutil.ToFloat64(financial.moneyBalance.WithLabelValues("session-1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(financial.transactionsTotal.WithLabelValues("session-1", "TRUCK_PURCHASE", "FLEET_INVESTMENTS")))
	assert.Equal(t, 1.0, testutil.ToFloat64(financial.loansOriginated.WithLabelValues("cash")))
	assert.InDelta(t, 4349.44, testutil.ToFloat64(financial.loanBilled), 1e-9)
}

func TestPrometheusMiddleware_CountsOutcomes(t *testing.T) {
	InitRegistry()
	defer Reset()

	collector := NewCommandMetricsCollector()
	require.NoError(t, collector.Register())

	middleware := PrometheusMiddleware(collector)
	ok := func(ctx context.Context, request mediator.Request) (mediator.Response, error) { return "done", nil }
	fail := func(ctx context.Context, request mediator.Request) (mediator.Response, error) { return nil, errors.New("boom") }
	reject := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, fmt.Errorf("buy failed: %w", shared.NewRejectionError("buy truck", "Not enough money"))
	}

	_, err := middleware(context.Background(), &fakeCommand{}, ok)
	require.NoError(t, err)
	_, err = middleware(context.Background(), &fakeCommand{}, fail)
	require.Error(t, err)
	_, err = middleware(context.Background(), &fakeCommand{}, reject)
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.commandsTotal.WithLabelValues("fakeCommand", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.commandsTotal.WithLabelValues("fakeCommand", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.commandsTotal.WithLabelValues("fakeCommand", "rejected")))
}

func TestExtractCommandName(t *testing.T) {
	assert.Equal(t, "fakeCommand", extractCommandName(&fakeCommand{}))
	assert.Equal(t, "UnknownCommand", extractCommandName(nil))
}
