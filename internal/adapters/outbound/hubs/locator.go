package hubs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/openkraft/hubguard/internal/domain"
)

// Locator implements domain.HubLocator for a packages-root layout:
//
//	<project>/<packagesDir>/<name><suffix>/
type Locator struct {
	packagesDir string
	suffix      string
}

func New(packagesDir, suffix string) *Locator {
	return &Locator{packagesDir: packagesDir, suffix: suffix}
}

// Find resolves one hub by name. The directory must exist; the suffix is not
// required so a single package can be checked explicitly.
func (l *Locator) Find(projectPath, hubName string) (domain.Hub, error) {
	dir := filepath.Join(projectPath, l.packagesDir, hubName)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return domain.Hub{}, fmt.Errorf("%w: %s (looked in %s)", domain.ErrHubNotFound, hubName, dir)
	}
	return domain.Hub{Name: hubName, Path: dir}, nil
}

// All lists every direct child of the packages root whose name carries the
// hub suffix, sorted by name.
func (l *Locator) All(projectPath string) ([]domain.Hub, error) {
	root := filepath.Join(projectPath, l.packagesDir)
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: packages root %s does not exist", domain.ErrNoHubs, root)
		}
		return nil, fmt.Errorf("reading packages root: %w", err)
	}

	var hubs []domain.Hub
	for _, e := range entries {
		if !e.IsDir() || !domain.IsHubName(e.Name(), l.suffix) {
			continue
		}
		hubs = append(hubs, domain.Hub{Name: e.Name(), Path: filepath.Join(root, e.Name())})
	}
	if len(hubs) == 0 {
		return nil, fmt.Errorf("%w under %s", domain.ErrNoHubs, root)
	}

	sort.Slice(hubs, func(i, j int) bool {
		return hubs[i].Name < hubs[j].Name
	})
	return hubs, nil
}
