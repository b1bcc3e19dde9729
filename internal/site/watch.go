package site

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits after the last change before
// rebuilding.
const DefaultDebounce = 500 * time.Millisecond

// Watcher rebuilds the site whenever one of its watched paths changes.
// Directories are watched recursively; a watched file is tracked through its
// parent directory so editors that save by rename are still seen.
type Watcher struct {
	Debounce time.Duration
	Rebuild  func(ctx context.Context) error
	Logger   *slog.Logger

	watcher *fsnotify.Watcher
	dirs    []string
	files   map[string]bool
}

// NewWatcher creates a Watcher for paths. Missing paths are an error.
func NewWatcher(paths []string, rebuild func(ctx context.Context) error) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &Watcher{
		Debounce: DefaultDebounce,
		Rebuild:  rebuild,
		Logger:   slog.Default(),
		watcher:  fw,
		files:    make(map[string]bool),
	}

	for _, p := range paths {
		if err := w.add(p); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	if !info.IsDir() {
		w.files[abs] = true
		return w.watcher.Add(filepath.Dir(abs))
	}

	w.dirs = append(w.dirs, abs)
	return filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != abs && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if err := w.watcher.Add(p); err != nil {
				return fmt.Errorf("watching %s: %w", p, err)
			}
		}
		return nil
	})
}

// relevant reports whether an event path belongs to something we watch.
func (w *Watcher) relevant(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	if w.files[name] {
		return true
	}
	for _, dir := range w.dirs {
		if name == dir || strings.HasPrefix(name, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Run blocks until ctx is cancelled, rebuilding after each burst of changes.
// Rebuild errors are logged and do not stop watching.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event.Name) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			// New directories inside a watched tree need their own watch.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.watcher.Add(event.Name); err != nil {
						w.Logger.Warn("watching new directory", "path", event.Name, "error", err)
					}
				}
			}

			w.Logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.Debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			start := time.Now()
			if err := w.Rebuild(ctx); err != nil {
				w.Logger.Error("rebuild failed", "error", err)
				continue
			}
			w.Logger.Info("rebuilt site", "duration", time.Since(start).Round(time.Millisecond))

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.Warn("file watcher error", "error", err)
		}
	}
}
