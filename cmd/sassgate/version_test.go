package main

import (
	"encoding/json"
	"runtime"
	"strings"
	"testing"

	"mercator-hq/sassgate/pkg/sass/sasstest"
	"mercator-hq/sassgate/pkg/telemetry/health"
)

func TestVersionCommand(t *testing.T) {
	useStubEngine(t)

	origVersion, origCommit := Version, GitCommit
	Version, GitCommit = "1.2.3-test", "abc123"
	defer func() { Version, GitCommit = origVersion, origCommit }()

	res := run("version")
	if res.err != nil {
		t.Fatalf("version: %v", res.err)
	}
	for _, want := range []string{"sassgate 1.2.3-test", "Git Commit: abc123", "libsass: " + sasstest.DefaultVersion, runtime.Version()} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("output missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestVersionCommand_JSON(t *testing.T) {
	engine := useStubEngine(t)
	engine.SetVersion("3.6.6")

	res := run("version", "--format", "json")
	if res.err != nil {
		t.Fatalf("version: %v", res.err)
	}

	var info health.VersionInfo
	if err := json.Unmarshal([]byte(res.stdout), &info); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, res.stdout)
	}
	if info.Version != Version || info.LibraryVersion != "3.6.6" || info.GoVersion != runtime.Version() {
		t.Errorf("unexpected version info: %+v", info)
	}
}
