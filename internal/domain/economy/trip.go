package economy

import "github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/world"

const (
	// FuelPricePerLiter is the pump price used when the catalog does not override it
	FuelPricePerLiter = 1.65

	// MaintenanceCostPerKM is wear and servicing per kilometre driven
	MaintenanceCostPerKM = 0.45
)

// TripCosts is the operating cost of driving a model over a distance
type TripCosts struct {
	FuelCost        float64
	MaintenanceCost float64
	FuelConsumed    float64 // liters
}

// Total returns fuel plus maintenance
func (c TripCosts) Total() float64 {
	return c.FuelCost + c.MaintenanceCost
}

// TripCost computes operating costs at the default fuel and maintenance prices
func TripCost(model world.TruckModel, distance float64) TripCosts {
	return TripCostAt(model, distance, FuelPricePerLiter, MaintenanceCostPerKM)
}

// TripCostAt computes operating costs with explicit prices
func TripCostAt(model world.TruckModel, distance, fuelPrice, maintenancePerKM float64) TripCosts {
	fuelConsumed := model.Consumption / 100 * distance
	return TripCosts{
		FuelCost:        fuelConsumed * fuelPrice,
		MaintenanceCost: distance * maintenancePerKM,
		FuelConsumed:    fuelConsumed,
	}
}
