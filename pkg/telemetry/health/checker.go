package health

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"mercator-hq/sassgate/pkg/build"
	"mercator-hq/sassgate/pkg/sass"
)

// Readiness check names.
const (
	CheckEngine    = "engine"
	CheckLastBuild = "last_build"
)

var errNoBuild = errors.New("no build completed yet")

// CheckResult is the outcome of one readiness check.
type CheckResult struct {
	// Status is "ok" or "unhealthy"
	Status string `json:"status"`

	// Message describes the problem for an unhealthy check
	Message string `json:"message,omitempty"`
}

// BuildStatus summarizes the most recent build.
type BuildStatus struct {
	ID       string    `json:"id,omitempty"`
	Finished time.Time `json:"finished"`
	Entries  int       `json:"entries"`
	Failed   int       `json:"failed"`
	Error    string    `json:"error,omitempty"`
}

// HealthStatus is the body of the /health and /ready responses.
type HealthStatus struct {
	// Status is "ok" (liveness), "ready" or "degraded"
	Status string `json:"status"`

	Checks    map[string]CheckResult `json:"checks,omitempty"`
	LastBuild *BuildStatus           `json:"last_build,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Checker tracks the state watch mode is ready on: an engine that reports
// a library version and a last build without failures.
type Checker struct {
	engine sass.Engine

	mu   sync.RWMutex
	last *BuildStatus
}

// New creates a checker for engine. Readiness stays degraded until the
// first successful RecordBuild.
func New(engine sass.Engine) *Checker {
	return &Checker{engine: engine}
}

// RecordBuild stores the outcome of a build run. report may be nil when the
// run aborted before compiling; err is the error returned by the runner.
func (c *Checker) RecordBuild(report *build.Report, err error) {
	status := &BuildStatus{Finished: time.Now()}
	if report != nil {
		status.ID = report.ID
		status.Entries = len(report.Results)
		status.Failed = report.Failed()
		if err == nil {
			err = report.Err()
		}
	}
	if err != nil {
		status.Error = err.Error()
	}

	c.mu.Lock()
	c.last = status
	c.mu.Unlock()
}

// LastBuild returns the most recent build, if any.
func (c *Checker) LastBuild() (BuildStatus, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.last == nil {
		return BuildStatus{}, false
	}
	return *c.last, true
}

// CheckLiveness reports the process as alive.
func (c *Checker) CheckLiveness(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
	}
}

// CheckReadiness checks the engine and the last build. Any failure makes
// the status "degraded".
func (c *Checker) CheckReadiness(ctx context.Context) HealthStatus {
	checks := map[string]CheckResult{
		CheckEngine:    result(c.checkEngine()),
		CheckLastBuild: result(c.checkLastBuild()),
	}

	status := "ready"
	for _, r := range checks {
		if r.Status != "ok" {
			status = "degraded"
		}
	}

	hs := HealthStatus{
		Status:    status,
		Checks:    checks,
		Timestamp: time.Now(),
	}
	if last, ok := c.LastBuild(); ok {
		hs.LastBuild = &last
	}
	return hs
}

func (c *Checker) checkEngine() error {
	if c.engine == nil || sass.LibraryVersion(c.engine) == "" {
		return errors.New("sass engine reports no library version")
	}
	return nil
}

func (c *Checker) checkLastBuild() error {
	last, ok := c.LastBuild()
	switch {
	case !ok:
		return errNoBuild
	case last.Failed > 0:
		return fmt.Errorf("%d of %d entries failed", last.Failed, last.Entries)
	case last.Error != "":
		return fmt.Errorf("last build failed: %s", last.Error)
	}
	return nil
}

func result(err error) CheckResult {
	if err != nil {
		return CheckResult{Status: "unhealthy", Message: err.Error()}
	}
	return CheckResult{Status: "ok"}
}
