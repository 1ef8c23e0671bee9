// Package sasstest provides a deterministic stub engine for testing code
// that drives a sass.Compiler without the native library.
package sasstest

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"mercator-hq/sassgate/pkg/sass"
)

// DefaultVersion is the version reported by a new Engine.
const DefaultVersion = "stub-3.6.6"

// Call records a single compile request.
type Call struct {
	// Kind is "source" or "file".
	Kind string

	// Input is the source text or the absolute file path.
	Input string

	// Options is the snapshot the engine received.
	Options sass.Options
}

// Engine is a recording sass.Engine. By default it returns the input with a
// header comment naming the style; a source containing FailMarker fails
// with a *sass.CompilationError.
type Engine struct {
	mu      sync.Mutex
	calls   []Call
	version string
	err     error
}

// FailMarker makes the stub report a compilation error.
const FailMarker = "@error"

// NewEngine returns a stub engine reporting DefaultVersion.
func NewEngine() *Engine {
	return &Engine{version: DefaultVersion}
}

// SetVersion changes the reported library version.
func (e *Engine) SetVersion(v string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.version = v
}

// FailWith makes every subsequent compile return err. A nil err restores
// the default behavior.
func (e *Engine) FailWith(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.err = err
}

// CompileSource implements sass.Engine.
func (e *Engine) CompileSource(ctx context.Context, source string, opts sass.Options) (string, error) {
	e.record("source", source, opts)
	return e.render("stdin", source, opts)
}

// CompileFile implements sass.Engine. The file is read from disk.
func (e *Engine) CompileFile(ctx context.Context, path string, opts sass.Options) (string, error) {
	e.record("file", path, opts)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &sass.CompilationError{Status: 3, Message: err.Error(), File: path}
	}
	return e.render(path, string(data), opts)
}

// Version implements sass.Engine.
func (e *Engine) Version() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.version
}

// Calls returns a copy of the recorded calls.
func (e *Engine) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Call, len(e.calls))
	for i, c := range e.calls {
		out[i] = Call{Kind: c.Kind, Input: c.Input, Options: c.Options.Clone()}
	}
	return out
}

// LastCall returns the most recent call. ok is false if nothing was recorded.
func (e *Engine) LastCall() (call Call, ok bool) {
	calls := e.Calls()
	if len(calls) == 0 {
		return Call{}, false
	}
	return calls[len(calls)-1], true
}

// Reset clears the recorded calls.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = nil
}

func (e *Engine) record(kind, input string, opts sass.Options) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, Call{Kind: kind, Input: input, Options: opts})
}

func (e *Engine) render(file, source string, opts sass.Options) (string, error) {
	e.mu.Lock()
	err := e.err
	e.mu.Unlock()
	if err != nil {
		return "", err
	}

	if idx := strings.Index(source, FailMarker); idx >= 0 {
		line := strings.Count(source[:idx], "\n") + 1
		return "", &sass.CompilationError{
			Status:  1,
			Message: "stub engine: " + strings.TrimSpace(source[idx:]),
			File:    file,
			Line:    line,
			Column:  idx - strings.LastIndex(source[:idx], "\n"),
		}
	}

	return fmt.Sprintf("/* %s p%d */\n%s", opts.Style, opts.Precision, source), nil
}
