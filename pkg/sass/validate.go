package sass

import (
	"strconv"
	"strings"
)

// ValidateStyle fails unless s is one of the four output styles.
func ValidateStyle(s Style) error {
	if _, ok := styleNames[s]; !ok {
		return configError(CodeInvalidStyle, "style", "", "style %d is not supported", int(s))
	}
	return nil
}

// ParseStyle parses a style name such as "compressed". Matching is
// case-insensitive.
func ParseStyle(name string) (Style, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for style, styleName := range styleNames {
		if styleName == normalized {
			return style, nil
		}
	}
	return DefaultStyle, configError(CodeInvalidStyle, "style", "",
		"style %q is not supported: must be 'nested', 'expanded', 'compact' or 'compressed'", name)
}

// ValidatePrecision fails if precision is negative.
func ValidatePrecision(precision int) error {
	if precision < 0 {
		return configError(CodeInvalidPrecision, "precision", "",
			"the precision has to be greater or equal than 0, got %d", precision)
	}
	return nil
}

// Flag names accepted by ParseFlag.
const (
	FlagComments    = "comments"
	FlagMapEmbed    = "map_embed"
	FlagOmitMapURL  = "omit_map_url"
	FlagMapContents = "map_contents"
)

var flagCodes = map[string]int{
	FlagComments:    CodeInvalidComments,
	FlagMapEmbed:    CodeInvalidEmbed,
	FlagOmitMapURL:  CodeInvalidMapURL,
	FlagMapContents: CodeInvalidMapContents,
}

// ParseFlag parses a boolean option that arrives as text (config files,
// environment variables). Only genuine boolean tokens are accepted. Fields
// other than the compiler flags above fail with CodeInvalidFlag.
func ParseFlag(field, value string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		code, ok := flagCodes[field]
		if !ok {
			code = CodeInvalidFlag
		}
		return false, configError(code, field, "", "%q is not a boolean: use true or false", value)
	}
	return b, nil
}
