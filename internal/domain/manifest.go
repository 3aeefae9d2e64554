package domain

import (
	"encoding/json"
	"fmt"
)

// PackageManifest is the subset of a hub's package.json the engine reads.
type PackageManifest struct {
	Name            string            `json:"name"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Scripts         map[string]string `json:"scripts"`
}

// ParseManifest decodes package.json content.
func ParseManifest(data []byte) (PackageManifest, error) {
	var m PackageManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return PackageManifest{}, fmt.Errorf("parsing package.json: %w", err)
	}
	return m, nil
}

// HasScript reports whether the manifest declares a non-empty script.
func (m PackageManifest) HasScript(name string) bool {
	return m.Scripts[name] != ""
}

// DependsOn reports whether pkg is a runtime dependency.
func (m PackageManifest) DependsOn(pkg string) bool {
	_, ok := m.Dependencies[pkg]
	return ok
}
