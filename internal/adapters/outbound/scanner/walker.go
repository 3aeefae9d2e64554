package scanner

import (
	"io/fs"
	"path"
	"path/filepath"

	"github.com/openkraft/hubguard/internal/domain"
)

// Walker implements domain.SourceWalker by walking the hub directory.
type Walker struct {
	filter      *PathFilter
	projectPath string
	exts        map[string]bool
}

// NewWalker returns a walker yielding files with one of exts that filter
// does not exclude. projectPath anchors the project-relative glob matches.
func NewWalker(filter *PathFilter, projectPath string, exts []string) *Walker {
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		set[e] = true
	}
	return &Walker{filter: filter, projectPath: projectPath, exts: set}
}

// Walk returns hub-relative, slash-separated source paths. WalkDir visits
// entries in lexical order and excluded directories are pruned before any
// of their children are read.
func (w *Walker) Walk(hub domain.Hub) ([]string, error) {
	var files []string
	err := filepath.WalkDir(hub.Path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subdirectories are skipped, not fatal.
			if p == hub.Path {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if p == hub.Path {
			return nil
		}
		rel, err := filepath.Rel(hub.Path, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if w.filter.IsExcluded(rel, w.projectRel(p), d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !w.exts[path.Ext(rel)] {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	return files, err
}

func (w *Walker) projectRel(p string) string {
	rel, err := filepath.Rel(w.projectPath, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}
