package sass

import (
	"fmt"
	"slices"
)

// Style is the CSS output style. The numeric values match libsass's
// Sass_Output_Style enum.
type Style int

const (
	// StyleNested indents rules to reflect the nesting of the Sass source.
	StyleNested Style = iota
	// StyleExpanded writes one declaration per line.
	StyleExpanded
	// StyleCompact writes one rule per line.
	StyleCompact
	// StyleCompressed removes all optional whitespace.
	StyleCompressed
)

var styleNames = map[Style]string{
	StyleNested:     "nested",
	StyleExpanded:   "expanded",
	StyleCompact:    "compact",
	StyleCompressed: "compressed",
}

// String returns the lowercase style name.
func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Style) MarshalText() ([]byte, error) {
	if err := ValidateStyle(s); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Style) UnmarshalText(text []byte) error {
	parsed, err := ParseStyle(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Default option values.
const (
	DefaultStyle     = StyleNested
	DefaultPrecision = 5
)

// Options is the validated configuration handed to the engine on every
// compile call. A Compiler owns its Options exclusively; engines receive a
// clone.
type Options struct {
	Style     Style
	Precision int
	Comments  bool

	// IncludePaths are absolute directories searched, in order, for imports.
	IncludePaths []string

	// MapPath is the absolute source map file path. Empty means unset.
	MapPath string

	// MapRoot is the absolute source map root directory. Empty means unset.
	MapRoot string

	OmitMapURL  bool
	MapEmbed    bool
	MapContents bool
}

// DefaultOptions returns the factory defaults.
func DefaultOptions() Options {
	return Options{
		Style:        DefaultStyle,
		Precision:    DefaultPrecision,
		IncludePaths: []string{},
	}
}

// Clone returns a deep copy of o.
func (o Options) Clone() Options {
	c := o
	c.IncludePaths = slices.Clone(o.IncludePaths)
	if c.IncludePaths == nil {
		c.IncludePaths = []string{}
	}
	return c
}

// SourceMapEnabled reports whether the engine should produce a source map.
func (o Options) SourceMapEnabled() bool {
	return o.MapPath != "" || o.MapEmbed
}
