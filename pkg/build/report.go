package build

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"mercator-hq/sassgate/pkg/sass"
)

// Result is the outcome of compiling a single entry.
type Result struct {
	// ID is the compile ID attached to every log line of this entry.
	ID string `json:"id"`

	Input  string `json:"input"`
	Output string `json:"output"`

	// Bytes is the size of the generated CSS.
	Bytes int `json:"bytes"`

	Duration time.Duration `json:"duration"`

	// Err is nil on success.
	Err error `json:"-"`
}

// Failed reports whether the entry failed.
func (r Result) Failed() bool {
	return r.Err != nil
}

// MarshalJSON adds the error message and kind to the encoded result.
func (r Result) MarshalJSON() ([]byte, error) {
	type plain Result
	out := struct {
		plain
		DurationMS int64  `json:"duration_ms"`
		Error      string `json:"error,omitempty"`
		ErrorKind  string `json:"error_kind,omitempty"`
	}{plain: plain(r), DurationMS: r.Duration.Milliseconds()}
	if r.Err != nil {
		out.Error = r.Err.Error()
		out.ErrorKind = sass.Kind(r.Err)
	}
	return json.Marshal(out)
}

// Report summarizes a build run.
type Report struct {
	// ID identifies the run.
	ID string `json:"id"`

	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
	Results  []Result      `json:"results"`
}

// Succeeded returns the number of entries that compiled.
func (r *Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if !res.Failed() {
			n++
		}
	}
	return n
}

// Failed returns the number of entries that did not compile.
func (r *Report) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// Err joins the errors of every failed entry. It is nil when all entries
// compiled.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Input, res.Err))
		}
	}
	return errors.Join(errs...)
}

// String renders the report for terminal output.
func (r *Report) String() string {
	var b strings.Builder
	for _, res := range r.Results {
		if res.Failed() {
			fmt.Fprintf(&b, "FAIL  %s\n      %v\n", res.Input, res.Err)
			continue
		}
		fmt.Fprintf(&b, "ok    %s -> %s (%d bytes, %s)\n", res.Input, res.Output, res.Bytes, res.Duration.Round(time.Millisecond))
	}
	fmt.Fprintf(&b, "%d compiled, %d failed in %s", r.Succeeded(), r.Failed(), r.Duration.Round(time.Millisecond))
	return b.String()
}
