package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openkraft/hubguard/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up at the project root.
const FileName = ".hubguard.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .hubguard.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .hubguard.yaml from projectPath.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	cfg = mergeConfig(domain.DefaultConfig(), cfg)

	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}

	return cfg, nil
}

// mergeConfig overlays explicit overrides on top of the defaults.
// Explicit (non-zero) values always win.
func mergeConfig(base, override domain.ProjectConfig) domain.ProjectConfig {
	result := base

	if override.PackagesDir != "" {
		result.PackagesDir = override.PackagesDir
	}
	if override.HubSuffix != "" {
		result.HubSuffix = override.HubSuffix
	}
	if override.PackageScope != "" {
		result.PackageScope = override.PackageScope
	}
	if override.SharedPackage != "" {
		result.SharedPackage = override.SharedPackage
	}
	if override.MigrationGuide != "" {
		result.MigrationGuide = override.MigrationGuide
	}

	// Lists replace the defaults entirely.
	if len(override.Extensions) > 0 {
		result.Extensions = override.Extensions
	}
	if len(override.ExcludePaths) > 0 {
		result.ExcludePaths = override.ExcludePaths
	}
	if override.Workers != 0 {
		result.Workers = override.Workers
	}
	if override.Cache {
		result.Cache = true
	}

	// Custom levels and rules only add to the built-ins.
	result.Levels = override.Levels
	result.Rules = override.Rules

	g := override.Grading
	if g.ArchitecturePassPct != 0 {
		result.Grading.ArchitecturePassPct = g.ArchitecturePassPct
	}
	if g.APlusPct != 0 {
		result.Grading.APlusPct = g.APlusPct
	}
	if g.APct != 0 {
		result.Grading.APct = g.APct
	}
	if g.CArchitecturePct != 0 {
		result.Grading.CArchitecturePct = g.CArchitecturePct
	}

	if len(override.Build.Command) > 0 {
		result.Build.Command = override.Build.Command
	}
	if override.Build.Script != "" {
		result.Build.Script = override.Build.Script
	}

	return result
}
