package shared_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/shared"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$4,500.00", shared.FormatMoney(4500))
	assert.Equal(t, "$0.00", shared.FormatMoney(0))
	assert.Equal(t, "$1,234,567.89", shared.FormatMoney(1234567.891))
	assert.Equal(t, "-$200.50", shared.FormatMoney(-200.5))
}

func TestNewID_DeterministicForSeed(t *testing.T) {
	a := shared.NewID(shared.NewSeededRandom(42))
	b := shared.NewID(shared.NewSeededRandom(42))
	c := shared.NewID(shared.NewSeededRandom(43))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	_, err := uuid.Parse(a)
	require.NoError(t, err)
}

func TestNewID_UniqueWithinSource(t *testing.T) {
	rng := shared.NewSeededRandom(7)
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := shared.NewID(rng)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestMockClock_Advance(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := shared.NewMockClock(start)

	clock.Advance(2 * time.Minute)

	assert.Equal(t, start.Add(2*time.Minute), clock.Now())
}

func TestRejectionError(t *testing.T) {
	err := shared.NewRejectionError("AcceptJob", "no truck selected")

	assert.Equal(t, "no truck selected", err.Reason())
	assert.Equal(t, "AcceptJob rejected: no truck selected", err.Error())
}

func TestAsRejection(t *testing.T) {
	wrapped := fmt.Errorf("buy truck: %w", shared.NewRejectionError("BuyTruck", "Not enough money"))

	rejection, ok := shared.AsRejection(wrapped)
	require.True(t, ok)
	assert.Equal(t, "Not enough money", rejection.Reason())

	_, ok = shared.AsRejection(errors.New("disk full"))
	assert.False(t, ok)
}
