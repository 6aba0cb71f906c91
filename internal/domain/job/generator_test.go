package job_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/job"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/shared"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/world"
)

// scriptedRandom replays fixed draws so payout math can be checked exactly
type scriptedRandom struct {
	ints   []int
	floats []float64
}

func (s *scriptedRandom) Intn(n int) int {
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedRandom) Float64() float64 {
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedRandom) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(i)
	}
	return len(p), nil
}

func newGenerator(seed int64) *job.Generator {
	clock := shared.NewMockClock(time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC))
	return job.NewGenerator(world.DefaultCatalog(), shared.NewSeededRandom(seed), clock)
}

func TestGenerate_ThousandJobsAreWellFormed(t *testing.T) {
	gen := newGenerator(42)
	catalog := world.DefaultCatalog()

	for i := 0; i < 1000; i++ {
		j := gen.Generate(3)

		assert.NotEqual(t, j.From, j.To)
		assert.Greater(t, j.Distance, 0.0)
		assert.GreaterOrEqual(t, j.Payout, 0)
		assert.GreaterOrEqual(t, j.Weight, 1000)
		assert.Less(t, j.Weight, 21000)
		assert.True(t, j.RequiredLicense.IsValid())
		assert.Contains(t, job.CargoTypes, j.Cargo)
		assert.Contains(t, []job.Urgency{job.UrgencyLow, job.UrgencyHigh}, j.Urgency)
		_, ok := catalog.FindCity(j.From)
		assert.True(t, ok)
	}
}

func TestGenerate_DeterministicForSeed(t *testing.T) {
	a := newGenerator(7).GenerateBatch(10, 1)
	b := newGenerator(7).GenerateBatch(10, 1)

	assert.Equal(t, a, b)
}

func TestGenerate_PayoutFormula(t *testing.T) {
	// berlin(0) -> berlin(0) resampled -> prague(6), license C, high urgency, weight +500, Lumber
	rng := &scriptedRandom{
		ints:   []int{0, 0, 6, 1, 500, 3},
		floats: []float64{0.9},
	}
	start := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	gen := job.NewGenerator(world.DefaultCatalog(), rng, shared.NewMockClock(start))

	j := gen.Generate(2)

	require.Equal(t, "berlin", j.From)
	require.Equal(t, "prague", j.To)
	distance := math.Hypot(50, 100) * 5
	assert.InDelta(t, distance, j.Distance, 1e-9)
	assert.Equal(t, int(math.Round(distance*12*1.1*1.5)), j.Payout)
	assert.Equal(t, job.UrgencyHigh, j.Urgency)
	assert.Equal(t, world.LicenseC, j.RequiredLicense)
	assert.Equal(t, 1500, j.Weight)
	assert.Equal(t, "Lumber", j.Cargo)
	assert.Equal(t, start.Add(time.Duration(distance*float64(2*time.Second))), j.Deadline)
}

func TestGenerate_UrgencyThresholdIsExclusive(t *testing.T) {
	rng := &scriptedRandom{ints: []int{0, 1, 0, 0, 0}, floats: []float64{0.7}}
	gen := job.NewGenerator(world.DefaultCatalog(), rng, nil)

	assert.Equal(t, job.UrgencyLow, gen.Generate(1).Urgency)
}

func TestJobFitsCapacity(t *testing.T) {
	j := job.Job{Weight: 6000}

	assert.False(t, j.FitsCapacity(5000))
	assert.True(t, j.FitsCapacity(12000))
}
