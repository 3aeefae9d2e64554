package scoring

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/fatih/camelcase"
	"github.com/openkraft/hubguard/internal/domain"
)

// ScoreArchitecture runs the fixed list of structural checks against a hub.
// fsys is rooted at the hub directory. It is pure domain logic: all reads go
// through fsys, and a missing or malformed package.json only fails the
// checks that need it.
func ScoreArchitecture(fsys fs.FS, hubName string, cfg domain.ProjectConfig) domain.ArchitectureResult {
	manifest, manifestErr := readManifest(fsys)
	base := domain.HubBaseName(hubName, cfg.HubSuffix)

	checks := []domain.ArchitectureCheck{
		checkPackageNaming(manifest, manifestErr, cfg.PackageScope+"/"+hubName),
		checkSharedDependency(manifest, manifestErr, cfg.SharedPackage),
		checkSharedService(fsys, base, cfg.Extensions),
		checkHubComponent(fsys, base),
		checkFile("migration_guide", 1, fsys, cfg.MigrationGuide),
		checkComplianceScript(manifest, manifestErr),
	}

	res := domain.ArchitectureResult{Checks: checks}
	for _, c := range checks {
		res.MaxScore += c.Points
		res.Score += c.Score
	}
	res.Passed = res.Pct() >= cfg.Grading.ArchitecturePassPct
	return res
}

func readManifest(fsys fs.FS) (domain.PackageManifest, error) {
	data, err := fs.ReadFile(fsys, "package.json")
	if err != nil {
		return domain.PackageManifest{}, err
	}
	return domain.ParseManifest(data)
}

func newCheck(name string, points int, passed bool, detail string) domain.ArchitectureCheck {
	c := domain.ArchitectureCheck{Name: name, Points: points, Passed: passed, Detail: detail}
	if passed {
		c.Score = points
	}
	return c
}

// checkPackageNaming (1 pt) expects package.json name to be <scope>/<hub>.
func checkPackageNaming(m domain.PackageManifest, err error, want string) domain.ArchitectureCheck {
	if err != nil {
		return newCheck("package_naming", 1, false, "package.json unreadable")
	}
	if m.Name != want {
		return newCheck("package_naming", 1, false, fmt.Sprintf("name is %q, expected %q", m.Name, want))
	}
	return newCheck("package_naming", 1, true, want)
}

// checkSharedDependency (2 pts) expects a runtime dependency on the shared package.
func checkSharedDependency(m domain.PackageManifest, err error, shared string) domain.ArchitectureCheck {
	if err != nil {
		return newCheck("shared_dependency", 2, false, "package.json unreadable")
	}
	if !m.DependsOn(shared) {
		return newCheck("shared_dependency", 2, false, "missing dependency "+shared)
	}
	return newCheck("shared_dependency", 2, true, shared)
}

// checkSharedService (3 pts) looks for Shared<Base>Service or
// Shared<Base>HubService under src/services or services.
func checkSharedService(fsys fs.FS, base string, exts []string) domain.ArchitectureCheck {
	for _, dir := range []string{"src/services", "services"} {
		entries, err := fs.ReadDir(fsys, dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !hasExt(e.Name(), exts) {
				continue
			}
			if isSharedService(strings.TrimSuffix(e.Name(), path.Ext(e.Name())), base) {
				return newCheck("shared_service", 3, true, path.Join(dir, e.Name()))
			}
		}
	}
	return newCheck("shared_service", 3, false, fmt.Sprintf("no Shared%sService in src/services", base))
}

func isSharedService(stem, base string) bool {
	words := camelcase.Split(stem)
	if len(words) < 3 || words[0] != "Shared" || words[len(words)-1] != "Service" {
		return false
	}
	middle := strings.Join(words[1:len(words)-1], "")
	return middle == base || middle == base+"Hub"
}

// checkHubComponent (2 pts) expects src/Enhanced<Base>Hub.jsx or .tsx.
func checkHubComponent(fsys fs.FS, base string) domain.ArchitectureCheck {
	for _, ext := range []string{".jsx", ".tsx"} {
		name := "src/Enhanced" + base + "Hub" + ext
		if _, err := fs.Stat(fsys, name); err == nil {
			return newCheck("hub_component", 2, true, name)
		}
	}
	return newCheck("hub_component", 2, false, "missing src/Enhanced"+base+"Hub.jsx")
}

func checkFile(name string, points int, fsys fs.FS, rel string) domain.ArchitectureCheck {
	if _, err := fs.Stat(fsys, rel); err != nil {
		return newCheck(name, points, false, "missing "+rel)
	}
	return newCheck(name, points, true, rel)
}

// checkComplianceScript (1 pt) expects a "compliance" npm script.
func checkComplianceScript(m domain.PackageManifest, err error) domain.ArchitectureCheck {
	if err != nil {
		return newCheck("compliance_script", 1, false, "package.json unreadable")
	}
	if !m.HasScript("compliance") {
		return newCheck("compliance_script", 1, false, "no compliance script")
	}
	return newCheck("compliance_script", 1, true, "scripts.compliance")
}

func hasExt(name string, exts []string) bool {
	ext := path.Ext(name)
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
