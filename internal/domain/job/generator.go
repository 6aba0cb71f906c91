package job

import (
	"math"
	"time"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/shared"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/world"
)

const (
	// PayPerKM is the base freight rate
	PayPerKM = 12.0
	// LevelBonusPerLevel raises payouts by 5% per player level
	LevelBonusPerLevel = 0.05
	// HighUrgencyThreshold: a draw above it makes the job urgent
	HighUrgencyThreshold = 0.7
	// MinWeight and WeightSpread bound the cargo weight to [1000, 21000) kg
	MinWeight    = 1000
	WeightSpread = 20000
	// DeadlinePerKM is the advisory time allowance per kilometre
	DeadlinePerKM = 2 * time.Second
)

// Generator produces random freight offers from the world tables
type Generator struct {
	catalog *world.Catalog
	rng     shared.RandomSource
	clock   shared.Clock
}

// NewGenerator creates a generator. A nil clock uses the real clock.
func NewGenerator(catalog *world.Catalog, rng shared.RandomSource, clock shared.Clock) *Generator {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Generator{catalog: catalog, rng: rng, clock: clock}
}

// Generate draws one job scaled to the player's level
func (g *Generator) Generate(playerLevel int) Job {
	cities := g.catalog.Cities
	from := cities[g.rng.Intn(len(cities))]
	to := cities[g.rng.Intn(len(cities))]
	for to.ID == from.ID {
		to = cities[g.rng.Intn(len(cities))]
	}

	distance := g.catalog.Distance(from, to)

	licenses := world.AllLicenseCategories()
	license := licenses[g.rng.Intn(len(licenses))]

	urgency := UrgencyLow
	if g.rng.Float64() > HighUrgencyThreshold {
		urgency = UrgencyHigh
	}

	payout := int(math.Round(distance * PayPerKM * (1 + float64(playerLevel)*LevelBonusPerLevel) * urgency.Multiplier()))
	weight := MinWeight + g.rng.Intn(WeightSpread)
	cargo := CargoTypes[g.rng.Intn(len(CargoTypes))]

	return Job{
		ID:              shared.NewID(g.rng),
		Cargo:           cargo,
		Weight:          weight,
		From:            from.ID,
		To:              to.ID,
		Payout:          payout,
		Urgency:         urgency,
		RequiredLicense: license,
		Distance:        distance,
		Deadline:        g.clock.Now().Add(time.Duration(distance * float64(DeadlinePerKM))),
	}
}

// GenerateBatch draws n jobs
func (g *Generator) GenerateBatch(n, playerLevel int) []Job {
	jobs := make([]Job, 0, n)
	for i := 0; i < n; i++ {
		jobs = append(jobs, g.Generate(playerLevel))
	}
	return jobs
}
