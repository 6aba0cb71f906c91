package job

import (
	"fmt"
	"time"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/world"
)

// Urgency affects the payout of a job
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "med"
	UrgencyHigh   Urgency = "high"
)

// Multiplier returns the payout factor for the urgency
func (u Urgency) Multiplier() float64 {
	switch u {
	case UrgencyHigh:
		return 1.5
	case UrgencyMedium:
		return 1.2
	default:
		return 1.0
	}
}

func (u Urgency) String() string {
	return string(u)
}

// CargoTypes lists the goods shippers offer
var CargoTypes = []string{"Electronics", "Auto Parts", "Fruit", "Lumber", "Chemicals", "Machinery"}

// Job is a freight contract on the job board
type Job struct {
	ID              string
	Cargo           string
	Weight          int // kg
	From            string
	To              string
	Payout          int
	Urgency         Urgency
	RequiredLicense world.LicenseCategory
	Distance        float64 // km
	Deadline        time.Time
}

// FitsCapacity reports whether the load fits a truck of the given capacity.
// Capacity is informational; accepting an overweight job is allowed.
func (j Job) FitsCapacity(capacityKg int) bool {
	return j.Weight <= capacityKg
}

func (j Job) String() string {
	return fmt.Sprintf("Job[%s, %s %dkg %s->%s, $%d, %s, license %s]",
		j.ID, j.Cargo, j.Weight, j.From, j.To, j.Payout, j.Urgency, j.RequiredLicense)
}
