package scanner

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
	"coverage":     true,
	"test":         true,
	"tests":        true,
	"spec":         true,
	"__tests__":    true,
	"backup":       true,
	".backup":      true,
	"temp":         true,
	"tmp":          true,
}

var (
	skipSuffixes = []string{".min.js", ".map"}
	skipInfixes  = []string{".test.", ".spec."}
)

// PathFilter decides whether a file or directory takes part in scanning.
type PathFilter struct {
	globs []string
}

// NewPathFilter returns a filter with the built-in exclusions plus the given
// doublestar globs.
func NewPathFilter(globs ...string) (*PathFilter, error) {
	for _, g := range globs {
		if !doublestar.ValidatePattern(g) {
			return nil, fmt.Errorf("invalid exclude pattern %q", g)
		}
	}
	return &PathFilter{globs: globs}, nil
}

// IsExcluded reports whether rel (slash-separated, relative to the hub root)
// is excluded. fullPath is the project-relative path, matched against the
// user globs alongside rel and the base name.
func (f *PathFilter) IsExcluded(rel, fullPath string, isDir bool) bool {
	name := path.Base(rel)
	if isDir {
		if skipDirs[name] {
			return true
		}
	} else {
		for _, s := range skipSuffixes {
			if strings.HasSuffix(name, s) {
				return true
			}
		}
		for _, s := range skipInfixes {
			if strings.Contains(name, s) {
				return true
			}
		}
	}
	for _, g := range f.globs {
		for _, candidate := range []string{rel, fullPath, name} {
			if ok, _ := doublestar.Match(g, candidate); ok {
				return true
			}
		}
	}
	return false
}

// InExcludedDir reports whether any directory component of rel is excluded
// by name. The watcher uses it for events that arrive without a walk.
func (f *PathFilter) InExcludedDir(rel string) bool {
	dir := path.Dir(rel)
	for dir != "." && dir != "/" {
		if skipDirs[path.Base(dir)] {
			return true
		}
		dir = path.Dir(dir)
	}
	return false
}
