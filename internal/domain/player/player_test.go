package player_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/economy"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/player"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/world"
)

func TestLevelForXP(t *testing.T) {
	cases := map[float64]int{
		0:     1,
		999:   1,
		1000:  2,
		1999:  2,
		25000: 26,
		-5:    1,
	}
	for xp, level := range cases {
		assert.Equal(t, level, player.LevelForXP(xp), "xp=%v", xp)
	}
}

func TestGainXP_LevelUp(t *testing.T) {
	p := player.NewProfile("Driver 001", 15000)
	p.XP = 950

	leveled := p.GainXP(player.XPForDistance(10))

	assert.True(t, leveled)
	assert.Equal(t, 1000.0, p.XP)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 1000.0, p.XPToNextLevel())
}

func TestCanOperate(t *testing.T) {
	assert.True(t, player.CanOperate(world.LicenseD, world.LicenseB))
	assert.True(t, player.CanOperate(world.LicenseC, world.LicenseC))
	assert.False(t, player.CanOperate(world.LicenseB, world.LicenseD))
}

func TestNewProfile(t *testing.T) {
	p := player.NewProfile("Driver 001", 15000)

	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 50, p.Reputation)
	assert.Equal(t, world.LicenseB, p.License)
	assert.Empty(t, p.InventoryTruckIDs)
	assert.False(t, p.Overdrawn())
}

func TestDebtTotals(t *testing.T) {
	p := player.NewProfile("d", 0)
	p.Loans = []economy.Loan{
		{ID: "a", RemainingBalance: 1000, MonthlyPayment: 100},
		{ID: "b", RemainingBalance: 500, MonthlyPayment: 50},
		{ID: "c", RemainingBalance: 0, MonthlyPayment: 70},
	}

	assert.Equal(t, 1500.0, p.TotalDebt())
	assert.Equal(t, 150.0, p.MonthlyDebtService())
}
