package fleet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/fleet"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/world"
)

func liteT1(t *testing.T) world.TruckModel {
	t.Helper()
	model, ok := world.DefaultCatalog().FindTruckModel("vlk-lt1")
	if !ok {
		t.Fatal("vlk-lt1 missing from catalog")
	}
	return model
}

func TestNewTruck_Used(t *testing.T) {
	truck := fleet.NewTruck("t1", liteT1(t), true)

	assert.Equal(t, 27000.0, truck.PurchasePrice)
	assert.Equal(t, 70.0, truck.Condition)
	assert.Equal(t, 150000.0, truck.Mileage)
	assert.Equal(t, 100.0, truck.Fuel)
	assert.Equal(t, fleet.OwnerPlayer, truck.OwnerID)
	assert.True(t, truck.IsUsed())
}

func TestNewTruck_New(t *testing.T) {
	truck := fleet.NewTruck("t2", liteT1(t), false)

	assert.Equal(t, 45000.0, truck.PurchasePrice)
	assert.Equal(t, 100.0, truck.Condition)
	assert.Equal(t, 0.0, truck.Mileage)
	assert.False(t, truck.IsUsed())
}

func TestAddMileage(t *testing.T) {
	truck := fleet.NewTruck("t3", liteT1(t), false)

	truck.AddMileage(559.5)
	truck.AddMileage(-10)

	assert.Equal(t, 559.5, truck.Mileage)
}
