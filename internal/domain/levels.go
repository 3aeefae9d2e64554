package domain

import (
	"fmt"
	"sort"
)

const (
	LevelStrict      = "strict"
	LevelStandard    = "standard"
	LevelDevelopment = "development"
)

// ComplianceLevel is a named policy capping the violations tolerated per
// severity.
type ComplianceLevel struct {
	Name            string `yaml:"-"                json:"name"`
	AllowedCritical int    `yaml:"allowed_critical" json:"allowedCritical" validate:"gte=0"`
	AllowedHigh     int    `yaml:"allowed_high"     json:"allowedHigh"     validate:"gte=0"`
	AllowedMedium   int    `yaml:"allowed_medium"   json:"allowedMedium"   validate:"gte=0"`
	AllowedLow      int    `yaml:"allowed_low"      json:"allowedLow"      validate:"gte=0"`
}

// Allowed returns the cap for sev.
func (l ComplianceLevel) Allowed(sev Severity) int {
	switch sev {
	case SeverityCritical:
		return l.AllowedCritical
	case SeverityHigh:
		return l.AllowedHigh
	case SeverityMedium:
		return l.AllowedMedium
	default:
		return l.AllowedLow
	}
}

// DefaultLevels returns the three built-in levels. Each stricter level is
// componentwise no looser than the one below it.
func DefaultLevels() map[string]ComplianceLevel {
	return map[string]ComplianceLevel{
		LevelStrict:      {Name: LevelStrict},
		LevelStandard:    {Name: LevelStandard, AllowedHigh: 5, AllowedMedium: 20, AllowedLow: 50},
		LevelDevelopment: {Name: LevelDevelopment, AllowedHigh: 10, AllowedMedium: 50, AllowedLow: 100},
	}
}

// IsBuiltinLevel reports whether name is one of the shipped levels.
func IsBuiltinLevel(name string) bool {
	_, ok := DefaultLevels()[name]
	return ok
}

// Levels is the catalogue of levels available to a run.
type Levels map[string]ComplianceLevel

// Lookup returns the level called name.
func (ls Levels) Lookup(name string) (ComplianceLevel, error) {
	l, ok := ls[name]
	if !ok {
		return ComplianceLevel{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownLevel, name, ls.Names())
	}
	return l, nil
}

// Names returns the level names in sorted order.
func (ls Levels) Names() []string {
	names := make([]string, 0, len(ls))
	for n := range ls {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
