package config

import (
	"mercator-hq/sassgate/pkg/sass"
)

// CompilerOptions converts the compiler section into sass options, in the
// order the options are applied: style, precision, flags, include paths,
// then source map paths. Paths are resolved and checked when the options
// are applied to a compiler.
func (c *CompilerConfig) CompilerOptions() ([]sass.Option, error) {
	style, err := sass.ParseStyle(c.Style)
	if err != nil {
		return nil, err
	}

	precision := DefaultPrecision
	if c.Precision != nil {
		precision = *c.Precision
	}

	opts := []sass.Option{
		sass.WithStyle(style),
		sass.WithPrecision(precision),
		sass.WithComments(c.Comments),
		sass.WithEmbed(c.SourceMap.Embed),
		sass.WithOmitMapURL(c.SourceMap.OmitURL),
		sass.WithMapContents(c.SourceMap.Contents),
	}

	if len(c.IncludePaths) > 0 {
		opts = append(opts, sass.WithIncludePaths(c.IncludePaths...))
	}
	if c.SourceMap.Path != "" {
		opts = append(opts, sass.WithMapPath(c.SourceMap.Path))
	}
	if c.SourceMap.Root != "" {
		opts = append(opts, sass.WithMapRoot(c.SourceMap.Root))
	}

	return opts, nil
}
