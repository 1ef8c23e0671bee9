package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"mercator-hq/sassgate/pkg/config"
)

// recorder collects onChange calls.
type recorder struct {
	mu    sync.Mutex
	calls [][]string
	ch    chan struct{}
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan struct{}, 16)}
}

func (r *recorder) onChange(ctx context.Context, changed []string) error {
	r.mu.Lock()
	r.calls = append(r.calls, changed)
	r.mu.Unlock()
	r.ch <- struct{}{}
	return nil
}

func (r *recorder) wait(t *testing.T) []string {
	t.Helper()
	select {
	case <-r.ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for rebuild")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[len(r.calls)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func startWatcher(t *testing.T, cfg Config, rec *recorder) context.CancelFunc {
	t.Helper()
	w, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx, rec.onChange) }()

	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Watch returned %v", err)
		}
	})

	// Give fsnotify time to register the watches
	time.Sleep(50 * time.Millisecond)
	return cancel
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestNew_Defaults(t *testing.T) {
	if _, err := New(Config{}, nil); err == nil {
		t.Error("expected error without paths")
	}

	w, err := New(Config{Paths: []string{t.TempDir()}}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	if w.config.Debounce != config.DefaultWatchDebounce {
		t.Errorf("Debounce = %v", w.config.Debounce)
	}
	if !reflect.DeepEqual(w.config.Extensions, config.DefaultWatchExtensions) {
		t.Errorf("Extensions = %v", w.config.Extensions)
	}
}

func TestWatcher_RebuildsOnChange(t *testing.T) {
	dir := t.TempDir()
	rec := newRecorder()
	startWatcher(t, Config{Paths: []string{dir}, Debounce: 30 * time.Millisecond, SkipHidden: true}, rec)

	file := filepath.Join(dir, "app.scss")
	writeFile(t, file, "a { b: c; }")

	changed := rec.wait(t)
	if !reflect.DeepEqual(changed, []string{file}) {
		t.Errorf("changed = %v, want [%s]", changed, file)
	}
}

func TestWatcher_Debounces(t *testing.T) {
	dir := t.TempDir()
	rec := newRecorder()
	startWatcher(t, Config{Paths: []string{dir}, Debounce: 150 * time.Millisecond}, rec)

	a := filepath.Join(dir, "a.scss")
	b := filepath.Join(dir, "_b.sass")
	for i := 0; i < 5; i++ {
		writeFile(t, a, "a {}")
		writeFile(t, b, "b")
		time.Sleep(10 * time.Millisecond)
	}

	changed := rec.wait(t)
	if !reflect.DeepEqual(changed, []string{b, a}) {
		t.Errorf("changed = %v, want [%s %s]", changed, b, a)
	}

	time.Sleep(300 * time.Millisecond)
	if n := rec.count(); n != 1 {
		t.Errorf("expected a single rebuild, got %d", n)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	rec := newRecorder()
	startWatcher(t, Config{Paths: []string{dir}, Debounce: 20 * time.Millisecond, SkipHidden: true}, rec)

	writeFile(t, filepath.Join(dir, "notes.txt"), "x")
	writeFile(t, filepath.Join(dir, ".hidden.scss"), "x")
	writeFile(t, filepath.Join(dir, "out.css"), "x")

	time.Sleep(200 * time.Millisecond)
	if n := rec.count(); n != 0 {
		t.Errorf("expected no rebuilds, got %d", n)
	}
}

func TestWatcher_NewSubdirectory(t *testing.T) {
	dir := t.TempDir()
	rec := newRecorder()
	startWatcher(t, Config{Paths: []string{dir}, Debounce: 30 * time.Millisecond}, rec)

	sub := filepath.Join(dir, "components")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)

	file := filepath.Join(sub, "_button.scss")
	writeFile(t, file, "button {}")

	changed := rec.wait(t)
	if !reflect.DeepEqual(changed, []string{file}) {
		t.Errorf("changed = %v, want [%s]", changed, file)
	}
}

func TestWatcher_WaitsForRebuildInProgress(t *testing.T) {
	dir := t.TempDir()
	w, err := New(Config{Paths: []string{dir}, Debounce: 20 * time.Millisecond}, nil)
	if err != nil {
		t.Fatal(err)
	}

	started := make(chan struct{})
	var once sync.Once
	var finished atomic.Bool
	onChange := func(ctx context.Context, changed []string) error {
		once.Do(func() { close(started) })
		time.Sleep(300 * time.Millisecond)
		finished.Store(true)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx, onChange) }()
	time.Sleep(50 * time.Millisecond)

	writeFile(t, filepath.Join(dir, "app.scss"), "a {}")
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("rebuild never started")
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Watch returned %v", err)
	}
	if !finished.Load() {
		t.Error("Watch returned while a rebuild was still running")
	}
}

func TestWatcher_DoubleStart(t *testing.T) {
	dir := t.TempDir()
	w, err := New(Config{Paths: []string{dir}}, nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx, newRecorder().onChange) }()
	time.Sleep(20 * time.Millisecond)

	if err := w.Watch(ctx, newRecorder().onChange); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Watch = %v, want ErrAlreadyRunning", err)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned %v", err)
	}
}

func TestWatcher_MissingPath(t *testing.T) {
	w, err := New(Config{Paths: []string{filepath.Join(t.TempDir(), "nope")}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Watch(context.Background(), newRecorder().onChange); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestShouldProcessEvent(t *testing.T) {
	w := &Watcher{config: Config{Extensions: []string{".scss", ".sass"}, SkipHidden: true}}

	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: "a/app.scss", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "a/APP.SCSS", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "a/_theme.sass", Op: fsnotify.Remove}, true},
		{fsnotify.Event{Name: "a/app.scss", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "a/app.css", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "a/.#app.scss", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		if got := w.shouldProcessEvent(tt.event); got != tt.want {
			t.Errorf("shouldProcessEvent(%s %s) = %v, want %v", tt.event.Op, tt.event.Name, got, tt.want)
		}
	}
}

func TestDebouncer(t *testing.T) {
	got := make(chan []string, 4)
	d := NewDebouncer(30*time.Millisecond, func(paths []string) { got <- paths })

	d.Trigger("b")
	d.Trigger("a")
	d.Trigger("b")

	select {
	case paths := <-got:
		if !reflect.DeepEqual(paths, []string{"a", "b"}) {
			t.Errorf("paths = %v", paths)
		}
	case <-time.After(time.Second):
		t.Fatal("debouncer never fired")
	}

	d.Trigger("c")
	d.Stop()
	d.Trigger("d")
	d.Stop()

	select {
	case paths := <-got:
		t.Errorf("stopped debouncer fired with %v", paths)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Watch.Paths = []string{"scss"}
	cfg.Compiler.IncludePaths = []string{"scss/", "vendor"}
	cfg.Build.Entries = []config.EntryConfig{
		{Input: "scss/app.scss"},
		{Input: "themes/dark.scss"},
	}

	got := FromConfig(cfg)
	want := []string{"scss", "vendor", "themes"}
	if !reflect.DeepEqual(got.Paths, want) {
		t.Errorf("Paths = %v, want %v", got.Paths, want)
	}
	if got.Debounce != cfg.Watch.Debounce {
		t.Errorf("Debounce = %v", got.Debounce)
	}
}
