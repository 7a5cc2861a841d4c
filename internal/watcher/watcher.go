// Package watcher re-runs an action whenever a single source file changes.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// ChangeFunc is called with the watched path after each settled change.
type ChangeFunc func(ctx context.Context, path string) error

// Stats contains counters describing watcher activity.
type Stats struct {
	EventsReceived int64
	ChangesHandled int64
	Errors         int64
}

// Option configures a FileWatcher.
type Option func(*FileWatcher)

// WithDebounceWindow sets how long a file must be quiet before a change is handled.
func WithDebounceWindow(d time.Duration) Option {
	return func(w *FileWatcher) {
		w.debounceWindow = d
	}
}

// WithDeleteGracePeriod sets how long a removed file may take to reappear.
func WithDeleteGracePeriod(d time.Duration) Option {
	return func(w *FileWatcher) {
		w.deleteGracePeriod = d
	}
}

// WithMinInterval sets the minimum time between two ChangeFunc calls.
// Zero or negative disables the limit.
func WithMinInterval(d time.Duration) Option {
	return func(w *FileWatcher) {
		w.minInterval = d
	}
}

// WithLogger sets the logger for the watcher.
func WithLogger(logger *slog.Logger) Option {
	return func(w *FileWatcher) {
		w.logger = logger
	}
}

// FileWatcher watches one file. The parent directory is watched rather than
// the file itself so that editors which save by rename are still followed.
type FileWatcher struct {
	path     string
	dir      string
	onChange ChangeFunc
	logger   *slog.Logger

	debounceWindow    time.Duration
	deleteGracePeriod time.Duration
	minInterval       time.Duration
	limiter           *rate.Limiter

	mu      sync.Mutex
	stats   Stats
	running bool
	ready   chan struct{}
}

// New creates a FileWatcher for path. The parent directory must exist and
// path must not be a directory.
func New(path string, onChange ChangeFunc, opts ...Option) (*FileWatcher, error) {
	if onChange == nil {
		return nil, errors.New("change callback must not be nil")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path; %w", err)
	}

	if info, err := os.Stat(absPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("path is a directory: %s", absPath)
	}

	dir := filepath.Dir(absPath)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat directory; %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("parent is not a directory: %s", dir)
	}

	w := &FileWatcher{
		path:              absPath,
		dir:               dir,
		onChange:          onChange,
		logger:            slog.Default(),
		debounceWindow:    200 * time.Millisecond,
		deleteGracePeriod: time.Second,
		minInterval:       500 * time.Millisecond,
		ready:             make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	limit := rate.Inf
	if w.minInterval > 0 {
		limit = rate.Every(w.minInterval)
	}
	w.limiter = rate.NewLimiter(limit, 1)
	w.logger = w.logger.With("component", "watcher", "path", absPath)

	return w, nil
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string {
	return w.path
}

// Ready is closed once Run has registered its filesystem watch.
func (w *FileWatcher) Ready() <-chan struct{} {
	return w.ready
}

// Stats returns current watcher statistics.
func (w *FileWatcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// Run watches until ctx is cancelled. Callback errors are logged and do not
// stop the watcher. Run may only be called once.
func (w *FileWatcher) Run(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher; %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s; %w", w.dir, err)
	}

	coalescer := NewCoalescer(w.debounceWindow, w.deleteGracePeriod)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.processChanges(ctx, coalescer.Changes())
	}()
	defer func() {
		coalescer.Stop()
		wg.Wait()
	}()

	close(w.ready)
	w.logger.Info("watching for changes")

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("watcher stopped")
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleFsEvent(coalescer, event)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()
			w.logger.Error("fsnotify error", "error", err)
		}
	}
}

func (w *FileWatcher) handleFsEvent(coalescer *Coalescer, event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}

	w.mu.Lock()
	w.stats.EventsReceived++
	w.mu.Unlock()

	var kind ChangeKind
	switch {
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		kind = ChangeDelete
	case event.Has(fsnotify.Create):
		kind = ChangeCreate
	case event.Has(fsnotify.Write):
		kind = ChangeModify
	default:
		return
	}

	coalescer.Add(Change{Path: w.path, Kind: kind, Timestamp: time.Now()})
}

func (w *FileWatcher) processChanges(ctx context.Context, changes <-chan Change) {
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			w.handleChange(ctx, change)
		}
	}
}

func (w *FileWatcher) handleChange(ctx context.Context, change Change) {
	if change.Kind == ChangeDelete {
		if _, err := os.Stat(change.Path); err != nil {
			w.logger.Warn("watched file removed; waiting for it to reappear")
			return
		}
	}

	if err := w.limiter.Wait(ctx); err != nil {
		return
	}

	w.logger.Debug("change detected", "kind", change.Kind.String())
	if err := w.onChange(ctx, change.Path); err != nil {
		w.mu.Lock()
		w.stats.Errors++
		w.mu.Unlock()
		w.logger.Error("change handler failed", "error", err)
		return
	}

	w.mu.Lock()
	w.stats.ChangesHandled++
	w.mu.Unlock()
}
