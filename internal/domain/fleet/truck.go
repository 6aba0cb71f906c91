package fleet

import (
	"fmt"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/world"
)

const (
	// OwnerPlayer marks trucks owned by the player
	OwnerPlayer = "player"

	// UsedPriceFactor discounts second-hand trucks
	UsedPriceFactor = 0.6

	usedCondition = 70
	usedMileage   = 150000
	newCondition  = 100
	fullTank      = 100
)

// TruckInstance is a concrete truck owned by someone
type TruckInstance struct {
	ID            string
	ModelID       string
	Condition     float64 // 0..100
	Mileage       float64 // km
	Fuel          float64 // 0..100 percent
	OwnerID       string
	PurchasePrice float64
}

// PurchasePrice returns what a model costs new or used
func PurchasePrice(model world.TruckModel, used bool) float64 {
	if used {
		return model.BasePrice * UsedPriceFactor
	}
	return model.BasePrice
}

// NewTruck creates a freshly bought truck for the player
func NewTruck(id string, model world.TruckModel, used bool) TruckInstance {
	t := TruckInstance{
		ID:            id,
		ModelID:       model.ID,
		Condition:     newCondition,
		Mileage:       0,
		Fuel:          fullTank,
		OwnerID:       OwnerPlayer,
		PurchasePrice: PurchasePrice(model, used),
	}
	if used {
		t.Condition = usedCondition
		t.Mileage = usedMileage
	}
	return t
}

// IsUsed reports whether the truck came from the second-hand market
func (t TruckInstance) IsUsed() bool {
	return t.Condition < newCondition && t.Mileage >= usedMileage
}

// AddMileage records a completed trip
func (t *TruckInstance) AddMileage(distance float64) {
	if distance > 0 {
		t.Mileage += distance
	}
}

func (t TruckInstance) String() string {
	return fmt.Sprintf("Truck[%s, model=%s, condition=%.0f, mileage=%.0fkm]", t.ID, t.ModelID, t.Condition, t.Mileage)
}
