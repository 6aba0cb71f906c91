package shared

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// RandomSource is the randomness the simulation draws from.
// *rand.Rand satisfies it, so a seeded source makes jobs and ids reproducible.
type RandomSource interface {
	Float64() float64
	Intn(n int) int
	Read(p []byte) (int, error)
}

// NewSeededRandom returns a deterministic source for the given seed.
// A zero seed picks one from the wall clock.
func NewSeededRandom(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// NewID draws a version 4 UUID from the given source
func NewID(rng RandomSource) string {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		// math/rand readers never fail; fall back to the global pool for exotic sources
		return uuid.NewString()
	}
	return id.String()
}
