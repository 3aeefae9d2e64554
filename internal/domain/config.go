package domain

import (
	"fmt"
	"runtime"

	"github.com/go-playground/validator/v10"
)

// ProjectConfig holds project-level configuration loaded from .hubguard.yaml.
type ProjectConfig struct {
	PackagesDir    string                     `yaml:"packages_dir"    json:"packages_dir"    validate:"required"`
	HubSuffix      string                     `yaml:"hub_suffix"      json:"hub_suffix"      validate:"required"`
	PackageScope   string                     `yaml:"package_scope"   json:"package_scope"   validate:"required,startswith=@"`
	SharedPackage  string                     `yaml:"shared_package"  json:"shared_package"  validate:"required"`
	MigrationGuide string                     `yaml:"migration_guide" json:"migration_guide" validate:"required"`
	Extensions     []string                   `yaml:"extensions"      json:"extensions"      validate:"min=1,dive,startswith=."`
	ExcludePaths   []string                   `yaml:"exclude_paths"   json:"exclude_paths,omitempty"`
	Workers        int                        `yaml:"workers"         json:"workers"         validate:"gte=0,lte=256"`
	Cache          bool                       `yaml:"cache"           json:"cache"`
	Levels         map[string]ComplianceLevel `yaml:"levels"          json:"levels,omitempty" validate:"dive"`
	Rules          []RuleConfig               `yaml:"rules"           json:"rules,omitempty"  validate:"dive"`
	Grading        GradingPolicy              `yaml:"grading"         json:"grading"`
	Build          BuildConfig                `yaml:"build"           json:"build"`
}

// RuleConfig declares a custom rule. Exactly one of Pattern or Literal is set.
type RuleConfig struct {
	ID       string `yaml:"id"       json:"id"       validate:"required"`
	Severity string `yaml:"severity" json:"severity" validate:"required,oneof=critical high medium low"`
	Pattern  string `yaml:"pattern"  json:"pattern,omitempty" validate:"required_without=Literal,excluded_with=Literal"`
	Literal  string `yaml:"literal"  json:"literal,omitempty"`
	Message  string `yaml:"message"  json:"message"  validate:"required"`
}

// GradingPolicy holds the unified-mode thresholds, all percentages.
type GradingPolicy struct {
	ArchitecturePassPct float64 `yaml:"architecture_pass_pct" json:"architecture_pass_pct" validate:"gte=0,lte=100"`
	APlusPct            float64 `yaml:"a_plus_pct"            json:"a_plus_pct"            validate:"gte=0,lte=100"`
	APct                float64 `yaml:"a_pct"                 json:"a_pct"                 validate:"gte=0,lte=100"`
	CArchitecturePct    float64 `yaml:"c_architecture_pct"    json:"c_architecture_pct"    validate:"gte=0,lte=100"`
}

// DefaultGradingPolicy returns the 70/90/80/50 thresholds.
func DefaultGradingPolicy() GradingPolicy {
	return GradingPolicy{ArchitecturePassPct: 70, APlusPct: 90, APct: 80, CArchitecturePct: 50}
}

// BuildConfig describes how a hub is built.
type BuildConfig struct {
	Command []string `yaml:"command" json:"command" validate:"min=1"`
	Script  string   `yaml:"script"  json:"script"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		PackagesDir:    "packages",
		HubSuffix:      "-hub",
		PackageScope:   "@tamyla",
		SharedPackage:  "@tamyla/shared",
		MigrationGuide: "docs/MIGRATION_GUIDE.md",
		Extensions:     []string{".js", ".jsx", ".ts", ".tsx"},
		Grading:        DefaultGradingPolicy(),
		Build: BuildConfig{
			Command: []string{"npm", "run", "build"},
			Script:  "build",
		},
	}
}

var configValidate = validator.New()

// Validate checks field constraints and cross-field semantics.
func (c ProjectConfig) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return err
	}
	for name := range c.Levels {
		if IsBuiltinLevel(name) {
			return fmt.Errorf("levels: built-in level %q cannot be redefined", name)
		}
	}
	g := c.Grading
	if g.APlusPct < g.APct {
		return fmt.Errorf("grading: a_plus_pct (%.0f) must be >= a_pct (%.0f)", g.APlusPct, g.APct)
	}
	if g.APct < g.ArchitecturePassPct {
		return fmt.Errorf("grading: a_pct (%.0f) must be >= architecture_pass_pct (%.0f)", g.APct, g.ArchitecturePassPct)
	}
	seen := make(map[string]bool, len(c.Rules))
	for i, rc := range c.Rules {
		if seen[rc.ID] {
			return fmt.Errorf("rules[%d]: duplicate id %q", i, rc.ID)
		}
		seen[rc.ID] = true
		if _, err := rc.compile(); err != nil {
			return fmt.Errorf("rules[%d]: %w", i, err)
		}
	}
	return nil
}

// EffectiveWorkers returns the scan concurrency, defaulting to NumCPU.
func (c ProjectConfig) EffectiveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// RuleSet returns the built-in catalogue extended with the custom rules.
func (c ProjectConfig) RuleSet() (RuleSet, error) {
	extra := make([]Rule, 0, len(c.Rules))
	for _, rc := range c.Rules {
		r, err := rc.compile()
		if err != nil {
			return RuleSet{}, err
		}
		extra = append(extra, r)
	}
	return DefaultRuleSet().With(extra...)
}

// AllLevels returns the built-in levels plus the custom ones.
func (c ProjectConfig) AllLevels() Levels {
	ls := Levels(DefaultLevels())
	for name, l := range c.Levels {
		l.Name = name
		ls[name] = l
	}
	return ls
}

func (rc RuleConfig) compile() (Rule, error) {
	sev, ok := ParseSeverity(rc.Severity)
	if !ok {
		return Rule{}, fmt.Errorf("rule %q: unknown severity %q", rc.ID, rc.Severity)
	}
	if rc.Literal != "" {
		return Rule{ID: rc.ID, Severity: sev, Pattern: rc.Literal, Message: rc.Message, Predicate: LiteralPredicate(rc.Literal)}, nil
	}
	p, err := NewRegexpPredicate(rc.Pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q: %w", rc.ID, err)
	}
	return Rule{ID: rc.ID, Severity: sev, Pattern: rc.Pattern, Message: rc.Message, Predicate: p}, nil
}
