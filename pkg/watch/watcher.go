package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"mercator-hq/sassgate/pkg/config"
	"mercator-hq/sassgate/pkg/telemetry/logging"
)

// ErrAlreadyRunning is returned by Watch when the watcher is already running.
var ErrAlreadyRunning = errors.New("watcher already running")

// ChangeFunc is called with the sorted, de-duplicated paths that changed
// during one debounce window. Calls never overlap.
type ChangeFunc func(ctx context.Context, changed []string) error

// Config contains configuration for the watcher.
type Config struct {
	// Paths are the files or directories to watch. Directories are watched
	// recursively.
	Paths []string

	// Debounce is the quiet period after the last change before onChange
	// runs (default: 100ms).
	Debounce time.Duration

	// Extensions is the list of file extensions to react to.
	// Default: ".scss", ".sass"
	Extensions []string

	// SkipHidden ignores files and directories starting with a dot.
	SkipHidden bool
}

// FromConfig builds a watcher configuration covering the explicit watch
// paths, the compiler include paths and the directory of every build entry.
func FromConfig(cfg *config.Config) Config {
	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		if p == "" {
			return
		}
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, p := range cfg.Watch.Paths {
		add(p)
	}
	for _, p := range cfg.Compiler.IncludePaths {
		add(p)
	}
	for _, e := range cfg.Build.Entries {
		add(filepath.Dir(e.Input))
	}

	return Config{
		Paths:      paths,
		Debounce:   cfg.Watch.Debounce,
		Extensions: cfg.Watch.Extensions,
		SkipHidden: true,
	}
}

// Watcher watches Sass sources for changes and triggers rebuilds.
// It implements debouncing so that an editor saving several files, or
// writing one file in several steps, causes a single rebuild.
type Watcher struct {
	watcher *fsnotify.Watcher
	logger  *logging.Logger
	config  Config

	mu      sync.Mutex
	running bool
}

// New creates a new watcher.
func New(cfg Config, logger *logging.Logger) (*Watcher, error) {
	if len(cfg.Paths) == 0 {
		return nil, errors.New("no paths to watch")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = config.DefaultWatchDebounce
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = append([]string(nil), config.DefaultWatchExtensions...)
	}
	if logger == nil {
		logger = logging.Nop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher: watcher,
		logger:  logger,
		config:  cfg,
	}, nil
}

// Watch watches the configured paths and calls onChange after each burst
// of relevant changes. It blocks until ctx is cancelled and a rebuild in
// progress has returned, then releases the underlying watcher. A Watcher
// cannot be reused after Watch returns.
func (w *Watcher) Watch(ctx context.Context, onChange ChangeFunc) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return ErrAlreadyRunning
	}
	w.running = true
	w.mu.Unlock()

	defer w.watcher.Close()

	for _, p := range w.config.Paths {
		if err := w.addPath(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
	}

	var runMu sync.Mutex
	debounce := NewDebouncer(w.config.Debounce, func(changed []string) {
		runMu.Lock()
		defer runMu.Unlock()

		if ctx.Err() != nil {
			return
		}
		w.logger.InfoContext(ctx, "sources changed, rebuilding", "files", len(changed))
		if err := onChange(ctx, changed); err != nil {
			w.logger.ErrorContext(ctx, "rebuild failed", "error", err)
		}
	})
	defer debounce.Stop()

	w.logger.InfoContext(ctx, "watching for changes",
		"paths", w.config.Paths,
		"debounce_ms", w.config.Debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.InfoContext(ctx, "watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}

			// New directories are not covered by the existing watches
			if event.Has(fsnotify.Create) && isDirectory(event.Name) && !w.hidden(event.Name) {
				if err := w.addDirectory(event.Name); err != nil {
					w.logger.WarnContext(ctx, "failed to watch new directory", "path", event.Name, "error", err)
				}
				continue
			}

			if !w.shouldProcessEvent(event) {
				continue
			}

			w.logger.DebugContext(ctx, "file event detected", "path", event.Name, "op", event.Op.String())
			debounce.Trigger(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.ErrorContext(ctx, "file watcher error", "error", err)
		}
	}
}

// Close releases the underlying watcher without watching. It is only needed
// when Watch is never called.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// addPath adds a file or directory to the watcher.
func (w *Watcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return w.addDirectory(path)
	}
	return w.watcher.Add(path)
}

// addDirectory adds a directory and all subdirectories to the watcher.
func (w *Watcher) addDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.hidden(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}
		return nil
	})
}

// shouldProcessEvent determines if an event should trigger a rebuild.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if w.hidden(event.Name) {
		return false
	}
	return w.hasValidExtension(filepath.Ext(event.Name))
}

func (w *Watcher) hidden(path string) bool {
	return w.config.SkipHidden && strings.HasPrefix(filepath.Base(path), ".")
}

// hasValidExtension checks if a file extension should be watched.
func (w *Watcher) hasValidExtension(ext string) bool {
	for _, valid := range w.config.Extensions {
		if strings.EqualFold(ext, valid) {
			return true
		}
	}
	return false
}

// Debouncer collects rapid events and calls fn with the collected paths
// only after a quiet period.
type Debouncer struct {
	interval time.Duration
	fn       func(paths []string)

	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	stopped bool

	// inflight counts fn calls that have started; Add only happens under mu
	// while not stopped.
	inflight sync.WaitGroup
}

// NewDebouncer creates a new debouncer.
func NewDebouncer(interval time.Duration, fn func(paths []string)) *Debouncer {
	return &Debouncer{
		interval: interval,
		fn:       fn,
		pending:  make(map[string]struct{}),
	}
}

// Trigger records path and restarts the quiet period.
func (d *Debouncer) Trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.pending[path] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped || len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(d.pending))
	for p := range d.pending {
		paths = append(paths, p)
	}
	d.pending = make(map[string]struct{})
	d.inflight.Add(1)
	d.mu.Unlock()

	defer d.inflight.Done()
	sort.Strings(paths)
	d.fn(paths)
}

// Stop cancels any pending call and waits for a call already in progress to
// return. Trigger is a no-op afterwards. Stop must not be called from fn.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
	d.mu.Unlock()

	d.inflight.Wait()
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
