package rncss

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const (
	// DefaultDebounce is how long to wait for more changes before emitting a batch.
	DefaultDebounce = 300 * time.Millisecond

	// eventChannelBuffer is the size of the batch channel.
	eventChannelBuffer = 16
)

// watchExcludeDirs are never watched
var watchExcludeDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
}

// IsStylesheet reports whether path is a CSS or Sass source by extension.
func IsStylesheet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".css") || IsSassFile(path)
}

// IsSassPartial reports whether path is a Sass partial (_name.scss).
func IsSassPartial(path string) bool {
	return IsSassFile(path) && strings.HasPrefix(filepath.Base(path), "_")
}

// Watcher watches stylesheet sources and emits debounced batches of changed paths.
type Watcher struct {
	dirs     []string        // Directory sources, watched recursively
	files    map[string]bool // File sources, matched exactly
	debounce time.Duration
	watcher  *fsnotify.Watcher
	log      *zap.Logger

	// Debouncing: collect changes before emitting
	pendingMu sync.Mutex
	pending   map[string]bool

	events chan []string
}

// NewWatcher creates a watcher for the given file or directory sources.
func NewWatcher(sources []string, debounce time.Duration, log *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		files:    make(map[string]bool),
		debounce: debounce,
		watcher:  fsw,
		log:      log.Named("watcher"),
		pending:  make(map[string]bool),
		events:   make(chan []string, eventChannelBuffer),
	}

	for _, source := range sources {
		info, err := os.Stat(source)
		if err != nil {
			_ = fsw.Close()
			return nil, err
		}
		if info.IsDir() {
			w.dirs = append(w.dirs, filepath.Clean(source))
		} else {
			w.files[filepath.Clean(source)] = true
		}
	}

	return w, nil
}

// Events returns the channel of changed path batches.
// It is closed when the watcher stops.
func (w *Watcher) Events() <-chan []string {
	return w.events
}

// Start adds the watches and begins processing file system events.
func (w *Watcher) Start(ctx context.Context) error {
	for _, dir := range w.dirs {
		if err := w.addWatchesRecursive(dir); err != nil {
			return err
		}
	}

	// Explicit files are watched through their directory
	added := make(map[string]bool)
	for file := range w.files {
		dir := filepath.Dir(file)
		if added[dir] {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
		added[dir] = true
	}

	go w.processEvents(ctx)

	w.log.Info("Watching stylesheets",
		zap.Strings("dirs", w.dirs),
		zap.Int("files", len(w.files)),
		zap.Duration("debounce", w.debounce))

	return nil
}

// Close stops the underlying file system watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// addWatchesRecursive adds watches for root and all directories below it.
func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Skip unreadable entries
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && watchExcludeDirs[d.Name()] {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.log.Warn("Failed to watch directory", zap.String("dir", path), zap.Error(err))
		}
		return nil
	})
}

// accepts reports whether a changed path belongs to the watched sources.
func (w *Watcher) accepts(path string) bool {
	path = filepath.Clean(path)
	if w.files[path] {
		return true
	}
	if !IsStylesheet(path) {
		return false
	}
	for _, dir := range w.dirs {
		if strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// processEvents handles fsnotify events until ctx is cancelled or the watcher is closed.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.handleEvent(event) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("Watcher error", zap.Error(err))

		case <-timer.C:
			w.flush(ctx)
		}
	}
}

// handleEvent records a relevant change and reports whether one was recorded.
func (w *Watcher) handleEvent(event fsnotify.Event) bool {
	// New directories below a watched root get their own watch
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !watchExcludeDirs[filepath.Base(event.Name)] && w.underWatchedDir(event.Name) {
				if err := w.addWatchesRecursive(event.Name); err != nil {
					w.log.Warn("Failed to watch new directory", zap.String("dir", event.Name), zap.Error(err))
				}
			}
			return false
		}
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	if !w.accepts(event.Name) {
		return false
	}

	w.log.Debug("Stylesheet changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))

	w.pendingMu.Lock()
	w.pending[filepath.Clean(event.Name)] = true
	w.pendingMu.Unlock()
	return true
}

func (w *Watcher) underWatchedDir(path string) bool {
	for _, dir := range w.dirs {
		if strings.HasPrefix(filepath.Clean(path), dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// flush emits the pending batch, dropping paths that no longer exist.
func (w *Watcher) flush(ctx context.Context) {
	w.pendingMu.Lock()
	batch := make([]string, 0, len(w.pending))
	for path := range w.pending {
		if _, err := os.Stat(path); err == nil {
			batch = append(batch, path)
		}
	}
	w.pending = make(map[string]bool)
	w.pendingMu.Unlock()

	if len(batch) == 0 {
		return
	}
	sort.Strings(batch)

	select {
	case w.events <- batch:
	case <-ctx.Done():
	}
}
