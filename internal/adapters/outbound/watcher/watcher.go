package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/openkraft/hubguard/internal/adapters/outbound/scanner"
	"github.com/openkraft/hubguard/internal/domain"
)

// DefaultDebounce coalesces editor save bursts into one re-validation.
const DefaultDebounce = 300 * time.Millisecond

// Watcher re-triggers validation when hub sources change.
type Watcher struct {
	filter   *scanner.PathFilter
	exts     map[string]bool
	debounce time.Duration
	logger   *slog.Logger
}

func New(filter *scanner.PathFilter, exts []string, debounce time.Duration, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		set[e] = true
	}
	return &Watcher{filter: filter, exts: set, debounce: debounce, logger: logger}
}

// Watch blocks until ctx is done. After a quiet period following relevant
// changes, onChange is called with the sorted names of the affected hubs.
// onChange runs on the watch goroutine, so events arriving meanwhile are
// batched into the next call.
func (w *Watcher) Watch(ctx context.Context, hubs []domain.Hub, onChange func(hubNames []string)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch init: %w", err)
	}
	defer fsw.Close()

	for _, h := range hubs {
		w.addRecursive(fsw, h, h.Path)
	}

	pending := make(map[string]bool)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			hub, rel, ok := owner(hubs, ev.Name)
			if !ok {
				continue
			}
			if ev.Has(fsnotify.Create) && isDir(ev.Name) {
				if !w.filter.IsExcluded(rel, rel, true) && !w.filter.InExcludedDir(rel) {
					w.addRecursive(fsw, hub, ev.Name)
				}
				continue
			}
			if !w.relevant(rel) {
				continue
			}
			w.logger.Debug("change detected", "hub", hub.Name, "file", rel, "op", ev.Op.String())
			pending[hub.Name] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-fire:
			fire = nil
			names := make([]string, 0, len(pending))
			for n := range pending {
				names = append(names, n)
			}
			sort.Strings(names)
			pending = make(map[string]bool)
			onChange(names)
		}
	}
}

func (w *Watcher) relevant(rel string) bool {
	if w.filter.InExcludedDir(rel) || w.filter.IsExcluded(rel, rel, false) {
		return false
	}
	return w.exts[path.Ext(rel)] || path.Base(rel) == "package.json"
}

func (w *Watcher) addRecursive(fsw *fsnotify.Watcher, hub domain.Hub, root string) {
	_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		rel, _ := filepath.Rel(hub.Path, p)
		rel = filepath.ToSlash(rel)
		if rel != "." && w.filter.IsExcluded(rel, rel, true) {
			return filepath.SkipDir
		}
		if err := fsw.Add(p); err != nil {
			w.logger.Warn("failed to watch directory", "path", p, "error", err)
		}
		return nil
	})
}

// owner returns the hub containing name and the hub-relative path.
func owner(hubs []domain.Hub, name string) (domain.Hub, string, bool) {
	for _, h := range hubs {
		rel, err := filepath.Rel(h.Path, name)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			continue
		}
		return h, filepath.ToSlash(rel), true
	}
	return domain.Hub{}, "", false
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
