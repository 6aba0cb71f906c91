package player

import (
	"math"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/economy"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/world"
)

const (
	// XPPerLevel is the experience needed for each level
	XPPerLevel = 1000
	// XPPerKM is experience earned per delivered kilometre
	XPPerKM = 5
	// StartingReputation for a new career
	StartingReputation = 50
)

// History counts career events
type History struct {
	Deliveries int
	Fines      int
	Accidents  int
}

// Profile is the player's career record
type Profile struct {
	Name              string
	Level             int
	XP                float64
	Reputation        int
	Money             float64
	License           world.LicenseCategory
	History           History
	CurrentTruckID    string
	ActiveJobID       string
	InventoryTruckIDs []string
	Loans             []economy.Loan
}

// NewProfile creates a level 1 driver with a basic license
func NewProfile(name string, money float64) Profile {
	return Profile{
		Name:              name,
		Level:             1,
		XP:                0,
		Reputation:        StartingReputation,
		Money:             money,
		License:           world.LicenseB,
		InventoryTruckIDs: []string{},
		Loans:             []economy.Loan{},
	}
}

// LevelForXP returns floor(xp/1000)+1
func LevelForXP(xp float64) int {
	if xp < 0 {
		return 1
	}
	return int(math.Floor(xp/XPPerLevel)) + 1
}

// XPForDistance returns the experience earned for a delivery
func XPForDistance(distance float64) float64 {
	return distance * XPPerKM
}

// CanOperate reports whether a license permits work requiring the given tier
func CanOperate(license, required world.LicenseCategory) bool {
	return license.Covers(required)
}

// GainXP adds experience and recomputes the level. Returns true on level-up.
func (p *Profile) GainXP(amount float64) bool {
	before := p.Level
	p.XP += amount
	p.Level = LevelForXP(p.XP)
	return p.Level > before
}

// XPToNextLevel returns how much experience is missing for the next level
func (p Profile) XPToNextLevel() float64 {
	return float64(p.Level*XPPerLevel) - p.XP
}

// Overdrawn reports a negative balance
func (p Profile) Overdrawn() bool {
	return p.Money < 0
}

// OwnsTruck reports whether the id is in the player's inventory
func (p Profile) OwnsTruck(id string) bool {
	for _, owned := range p.InventoryTruckIDs {
		if owned == id {
			return true
		}
	}
	return false
}

// TotalDebt sums the remaining balance of all loans
func (p Profile) TotalDebt() float64 {
	total := 0.0
	for _, l := range p.Loans {
		total += l.RemainingBalance
	}
	return total
}

// MonthlyDebtService sums the installments of all open loans
func (p Profile) MonthlyDebtService() float64 {
	total := 0.0
	for _, l := range p.Loans {
		if !l.IsSettled() {
			total += l.MonthlyPayment
		}
	}
	return total
}
