package helpers

import (
	"testing"
	"time"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/adapters/persistence"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/game/career"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/game"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/job"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/shared"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/world"
)

// Epoch is the start time of every test career
var Epoch = time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)

// TestCareer bundles a wired career with its ledger and clock
type TestCareer struct {
	*career.Career
	Ledger *persistence.GormTransactionRepository
	Clock  *shared.MockClock
}

// NewTestCareer wires a deterministic career on an in-memory ledger.
// Background tickers are parked; tests drive trips with DriveToArrival.
func NewTestCareer(t *testing.T, seed int64, rules game.Rules) *TestCareer {
	t.Helper()

	clock := shared.NewMockClock(Epoch)
	ledger := NewTestLedger(t)

	c, err := career.New(ledger, career.Options{
		Rules:           rules,
		Random:          shared.NewSeededRandom(seed),
		Clock:           clock,
		DriveTick:       time.Hour,
		BillingInterval: time.Hour,
	})
	if err != nil {
		t.Fatalf("failed to wire career: %v", err)
	}
	t.Cleanup(c.Stop)

	return &TestCareer{Career: c, Ledger: ledger, Clock: clock}
}

// DriveToArrival advances the active trip until it arrives
func DriveToArrival(session *game.Session) {
	for i := 0; i < 1000; i++ {
		if _, arrived := session.AdvanceTrip(); arrived {
			return
		}
		if session.Phase() != game.PhaseDriving {
			return
		}
	}
}

// FindJob returns the first board offer requiring the given license
func FindJob(state game.GameState, license world.LicenseCategory) (job.Job, bool) {
	for _, j := range state.AvailableJobs {
		if j.RequiredLicense == license {
			return j, true
		}
	}
	return job.Job{}, false
}

// EnsureJob refreshes the board until an offer for the license shows up
func EnsureJob(t *testing.T, session *game.Session, license world.LicenseCategory) job.Job {
	t.Helper()
	for i := 0; i < 50; i++ {
		if j, ok := FindJob(session.Snapshot(), license); ok {
			return j
		}
		session.RefreshJobs()
	}
	t.Fatalf("no job requiring license %s after 50 refreshes", license)
	return job.Job{}
}
