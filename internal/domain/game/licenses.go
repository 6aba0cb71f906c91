package game

import (
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/player"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/world"
)

// LicenseTier is one row of the license center
type LicenseTier struct {
	Category     world.LicenseCategory
	Description  string
	MinLevel     int
	Cost         float64
	Owned        bool
	IsNext       bool
	LevelMissing int     // levels still needed, 0 when met
	CashMissing  float64 // money still needed, 0 when met
}

// Eligible reports whether UpgradeLicense would accept this tier now
func (t LicenseTier) Eligible() bool {
	return t.IsNext && t.LevelMissing == 0 && t.CashMissing == 0
}

// LicenseCenter lists every tier with the player's standing against it
func LicenseCenter(profile player.Profile, catalog *world.Catalog) []LicenseTier {
	next, hasNext := profile.License.Next()

	tiers := make([]LicenseTier, 0, len(world.AllLicenseCategories()))
	for _, category := range world.AllLicenseCategories() {
		req, _ := catalog.Requirement(category)
		tier := LicenseTier{
			Category:    category,
			Description: category.Description(),
			MinLevel:    req.MinLevel,
			Cost:        req.Cost,
			Owned:       profile.License.Covers(category),
			IsNext:      hasNext && category == next,
		}
		if !tier.Owned {
			if profile.Level < req.MinLevel {
				tier.LevelMissing = req.MinLevel - profile.Level
			}
			if profile.Money < req.Cost {
				tier.CashMissing = req.Cost - profile.Money
			}
		}
		tiers = append(tiers, tier)
	}
	return tiers
}
