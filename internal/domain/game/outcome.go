package game

import (
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/economy"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/fleet"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/job"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/ledger"
)

// Movement is one change of the player's cash, reported so it can be booked
type Movement struct {
	Type          ledger.TransactionType
	Amount        float64
	BalanceBefore float64
	BalanceAfter  float64
	Description   string
	SubjectKind   string
	SubjectID     string
}

// Outcome describes what a successful command changed
type Outcome struct {
	Message   string // log line appended, empty when nothing was logged
	Movements []Movement
	Truck     *fleet.TruckInstance
	Loan      *economy.Loan
	Job       *job.Job
	TripCosts *economy.TripCosts
	LeveledUp bool
}

// CashDelta sums all movements
func (o *Outcome) CashDelta() float64 {
	total := 0.0
	for _, m := range o.Movements {
		total += m.Amount
	}
	return total
}
