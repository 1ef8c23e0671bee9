package build

import (
	"path/filepath"
	"strings"

	"mercator-hq/sassgate/pkg/config"
)

// Stdout is the output name that writes CSS to standard output.
const Stdout = "-"

// Entry is one input file and the CSS file it compiles to.
type Entry struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// EntriesFromConfig resolves the configured entries. An entry without an
// output writes <output_dir>/<input base name>.css.
func EntriesFromConfig(cfg config.BuildConfig) []Entry {
	entries := make([]Entry, 0, len(cfg.Entries))
	for _, e := range cfg.Entries {
		out := e.Output
		if out == "" {
			out = DefaultOutput(cfg.OutputDir, e.Input)
		}
		entries = append(entries, Entry{Input: e.Input, Output: out})
	}
	return entries
}

// DefaultOutput returns the CSS path for input inside dir.
func DefaultOutput(dir, input string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	// Partials keep their name without the leading underscore
	base = strings.TrimPrefix(base, "_")
	if dir == "" {
		dir = config.DefaultOutputDir
	}
	return filepath.Join(dir, base+".css")
}
