package world

import (
	_ "embed"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// City is a map location. Coordinates are map units, not kilometres.
type City struct {
	ID   string  `yaml:"id"`
	Name string  `yaml:"name"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// TruckModel is a purchasable truck type
type TruckModel struct {
	ID          string          `yaml:"id"`
	Brand       string          `yaml:"brand"`
	Model       string          `yaml:"model"`
	Year        int             `yaml:"year"`
	HP          int             `yaml:"hp"`
	Consumption float64         `yaml:"consumption"` // L/100km
	Capacity    int             `yaml:"capacity"`    // kg
	Category    LicenseCategory `yaml:"category"`
	BasePrice   float64         `yaml:"base_price"`
}

// DisplayName returns "Brand Model"
func (m TruckModel) DisplayName() string {
	return fmt.Sprintf("%s %s", m.Brand, m.Model)
}

// Catalog holds the static reference tables of the world.
// It is read-only after loading.
type Catalog struct {
	StartingMoney        float64              `yaml:"starting_money"`
	FuelPricePerLiter    float64              `yaml:"fuel_price_per_liter"`
	MaintenanceCostPerKM float64              `yaml:"maintenance_cost_per_km"`
	XPPerKM              float64              `yaml:"xp_per_km"`
	MapScaleKM           float64              `yaml:"map_scale_km"`
	Cities               []City               `yaml:"cities"`
	TruckModels          []TruckModel         `yaml:"truck_models"`
	LicenseRequirements  []LicenseRequirement `yaml:"license_requirements"`
}

// DefaultCatalog parses the embedded world tables.
// The embedded document is validated by tests, so a failure here is a build defect.
func DefaultCatalog() *Catalog {
	c, err := LoadCatalog(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded world catalog is invalid: %v", err))
	}
	return c
}

// LoadCatalog parses and validates a YAML world document
func LoadCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse world catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the invariants the simulation relies on
func (c *Catalog) Validate() error {
	if len(c.Cities) < 2 {
		return fmt.Errorf("world catalog needs at least 2 cities, got %d", len(c.Cities))
	}
	if c.MapScaleKM <= 0 {
		return fmt.Errorf("map_scale_km must be positive")
	}

	seen := make(map[string]bool, len(c.Cities))
	for _, city := range c.Cities {
		if city.ID == "" {
			return fmt.Errorf("city with empty id")
		}
		if seen[city.ID] {
			return fmt.Errorf("duplicate city id: %s", city.ID)
		}
		seen[city.ID] = true
	}

	for _, m := range c.TruckModels {
		if !m.Category.IsValid() {
			return fmt.Errorf("truck model %s: invalid license category %q", m.ID, m.Category)
		}
		if m.BasePrice <= 0 {
			return fmt.Errorf("truck model %s: base price must be positive", m.ID)
		}
	}

	for _, l := range AllLicenseCategories() {
		if _, ok := c.Requirement(l); !ok {
			return fmt.Errorf("missing license requirement for category %s", l)
		}
	}

	return nil
}

// FindCity looks up a city by id
func (c *Catalog) FindCity(id string) (City, bool) {
	for _, city := range c.Cities {
		if city.ID == id {
			return city, true
		}
	}
	return City{}, false
}

// CityName returns the display name for a city id, or the id itself when unknown
func (c *Catalog) CityName(id string) string {
	if city, ok := c.FindCity(id); ok {
		return city.Name
	}
	return id
}

// FindTruckModel looks up a truck model by id
func (c *Catalog) FindTruckModel(id string) (TruckModel, bool) {
	for _, m := range c.TruckModels {
		if m.ID == id {
			return m, true
		}
	}
	return TruckModel{}, false
}

// Requirement returns the exam gate for a license tier
func (c *Catalog) Requirement(category LicenseCategory) (LicenseRequirement, bool) {
	for _, r := range c.LicenseRequirements {
		if r.Category == category {
			return r, true
		}
	}
	return LicenseRequirement{}, false
}

// Distance returns the road distance in km between two cities
func (c *Catalog) Distance(from, to City) float64 {
	return math.Hypot(from.X-to.X, from.Y-to.Y) * c.MapScaleKM
}
