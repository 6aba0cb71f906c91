package company_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/company"
)

func TestDefaultRivals_OnePerStrategy(t *testing.T) {
	rivals := company.DefaultRivals()
	require.Len(t, rivals, 3)

	seen := map[company.Strategy]string{}
	for _, r := range rivals {
		seen[r.Strategy] = r.ID
		assert.Empty(t, r.FleetIDs)
	}
	assert.Equal(t, "rapid-freight", seen[company.StrategyAggressive])
	assert.Equal(t, "trans-euro", seen[company.StrategyBalanced])
	assert.Equal(t, "nordic-hauls", seen[company.StrategyConservative])
}
