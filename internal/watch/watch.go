// Package watch reloads the raid collection when its CSV directory
// changes on disk.
package watch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mttlgn/ParseAnalysisVisualizer/internal/raids"
)

// Config configures a directory watcher.
type Config struct {
	Dir        string
	FilePrefix string
	Order      []string

	// Debounce collapses bursts of file events (editors write CSVs in
	// several steps) into one reload.
	Debounce time.Duration
}

// Watcher reloads a raid store when CSV files in a directory change.
type Watcher struct {
	cfg      Config
	store    *raids.Store
	onReload func(*raids.Collection, []error)
}

// New creates a watcher that swaps reloaded collections into the store.
// onReload may be nil; when set it runs after each swap.
func New(cfg Config, store *raids.Store, onReload func(*raids.Collection, []error)) *Watcher {
	if cfg.Debounce <= 0 {
		cfg.Debounce = 500 * time.Millisecond
	}
	return &Watcher{cfg: cfg, store: store, onReload: onReload}
}

// relevant reports whether a file event concerns a raid CSV.
func (w *Watcher) relevant(name string) bool {
	base := filepath.Base(name)
	return strings.HasSuffix(base, ".csv") && strings.HasPrefix(base, w.cfg.FilePrefix)
}

// Run watches the directory until the context is cancelled. Reloads
// happen on write, create, rename and remove events, debounced so one
// edit triggers one reload.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.cfg.Dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.cfg.Dir, err)
	}

	log.Printf("Watching %s for raid data changes", w.cfg.Dir)

	var (
		debounce *time.Timer
		reloadCh <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(w.cfg.Debounce)
				reloadCh = debounce.C
			} else {
				if !debounce.Stop() {
					<-debounce.C
				}
				debounce.Reset(w.cfg.Debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("File watcher error: %v", err)
		case <-reloadCh:
			debounce = nil
			reloadCh = nil
			w.reload()
		}
	}
}

// reload loads the directory and swaps the result into the store. Load
// failures on individual files are kept as load errors; the previous
// collection is only replaced, never partially merged.
func (w *Watcher) reload() {
	c, loadErrs := raids.LoadCollection(w.cfg.Dir, w.cfg.FilePrefix, w.cfg.Order)
	w.store.Set(c, loadErrs)
	log.Printf("Reloaded raid data: %d raids, %d file errors", c.Len(), len(loadErrs))
	if w.onReload != nil {
		w.onReload(c, loadErrs)
	}
}
