package company

// Strategy describes how a rival company is said to operate
type Strategy string

const (
	// StrategyAggressive chases payouts and expands the fleet quickly
	StrategyAggressive Strategy = "aggressive"
	// StrategyBalanced weighs growth against cash reserves
	StrategyBalanced Strategy = "balanced"
	// StrategyConservative keeps cash and avoids debt
	StrategyConservative Strategy = "conservative"
)

// Company is a rival hauler. Rivals are static records for now.
type Company struct {
	ID         string
	Name       string
	Balance    float64
	Reputation int
	Strategy   Strategy
	FleetIDs   []string
}

// DefaultRivals returns the rival companies of a new world
func DefaultRivals() []Company {
	return []Company{
		{ID: "trans-euro", Name: "TransEuro Logistics", Balance: 1000000, Reputation: 80, Strategy: StrategyBalanced, FleetIDs: []string{}},
		{ID: "nordic-hauls", Name: "Nordic Hauls", Balance: 2500000, Reputation: 95, Strategy: StrategyConservative, FleetIDs: []string{}},
		{ID: "rapid-freight", Name: "Rapid Freight", Balance: 500000, Reputation: 40, Strategy: StrategyAggressive, FleetIDs: []string{}},
	}
}
