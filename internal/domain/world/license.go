package world

import (
	"fmt"
	"strings"
)

// LicenseCategory is a driving license tier. Tiers are ordinal: holding a tier
// grants every privilege of the tiers below it.
type LicenseCategory string

const (
	// LicenseB covers light trucks
	LicenseB LicenseCategory = "B"
	// LicenseC covers rigid medium trucks
	LicenseC LicenseCategory = "C"
	// LicenseD covers heavy articulated trucks
	LicenseD LicenseCategory = "D"
	// LicenseE covers bi-trains and specialised hauling
	LicenseE LicenseCategory = "E"
)

// AllLicenseCategories returns every tier in ascending order
func AllLicenseCategories() []LicenseCategory {
	return []LicenseCategory{LicenseB, LicenseC, LicenseD, LicenseE}
}

// Rank returns the ordinal position of the tier, or -1 when unknown
func (l LicenseCategory) Rank() int {
	switch l {
	case LicenseB:
		return 0
	case LicenseC:
		return 1
	case LicenseD:
		return 2
	case LicenseE:
		return 3
	default:
		return -1
	}
}

// IsValid checks if the category is one of the known tiers
func (l LicenseCategory) IsValid() bool {
	return l.Rank() >= 0
}

// Covers reports whether holding l permits work that requires the given tier
func (l LicenseCategory) Covers(required LicenseCategory) bool {
	return l.IsValid() && required.IsValid() && l.Rank() >= required.Rank()
}

// Next returns the tier directly above l
func (l LicenseCategory) Next() (LicenseCategory, bool) {
	all := AllLicenseCategories()
	rank := l.Rank()
	if rank < 0 || rank+1 >= len(all) {
		return "", false
	}
	return all[rank+1], true
}

// Description is the short label shown in the license center
func (l LicenseCategory) Description() string {
	switch l {
	case LicenseB:
		return "Basic"
	case LicenseC:
		return "Rigid Trucks"
	case LicenseD:
		return "Heavy Articulated"
	case LicenseE:
		return "Specialized Hauling"
	default:
		return "Unknown"
	}
}

func (l LicenseCategory) String() string {
	return string(l)
}

// ParseLicenseCategory parses a string into a LicenseCategory
func ParseLicenseCategory(s string) (LicenseCategory, error) {
	l := LicenseCategory(strings.ToUpper(strings.TrimSpace(s)))
	if !l.IsValid() {
		return "", fmt.Errorf("invalid license category: %s", s)
	}
	return l, nil
}

// LicenseRequirement is the exam gate for a tier
type LicenseRequirement struct {
	Category LicenseCategory `yaml:"category"`
	MinLevel int             `yaml:"min_level"`
	Cost     float64         `yaml:"cost"`
}
