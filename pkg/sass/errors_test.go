package sass

import (
	"errors"
	"fmt"
	"testing"
)

func TestConfigurationError(t *testing.T) {
	err := &ConfigurationError{Code: CodeInvalidStyle, Field: "style", Message: "style 9 is not supported"}

	want := "sass configuration error [1435749818] in style: style 9 is not supported"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	noField := &ConfigurationError{Code: CodeEmptyFileName, Message: "the file name may not be empty"}
	if got := noField.Error(); got != "sass configuration error [1435750241]: the file name may not be empty" {
		t.Errorf("Error() = %q", got)
	}
}

func TestCompilationError(t *testing.T) {
	tests := []struct {
		name string
		err  *CompilationError
		want string
	}{
		{
			name: "message only",
			err:  &CompilationError{Message: "invalid property name"},
			want: "sass compilation error: invalid property name",
		},
		{
			name: "file and line",
			err:  &CompilationError{Message: "undefined variable", File: "main.scss", Line: 4},
			want: "sass compilation error in main.scss:4: undefined variable",
		},
		{
			name: "file line and column",
			err:  &CompilationError{Message: "expected \"{\"", File: "main.scss", Line: 4, Column: 12},
			want: "sass compilation error in main.scss:4:12: expected \"{\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKind(t *testing.T) {
	cfgErr := &ConfigurationError{Code: CodeInvalidPrecision}
	compErr := &CompilationError{Status: 1}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "configuration", err: cfgErr, want: "configuration"},
		{name: "wrapped configuration", err: fmt.Errorf("loading: %w", cfgErr), want: "configuration"},
		{name: "compilation", err: compErr, want: "compilation"},
		{name: "wrapped compilation", err: fmt.Errorf("build: %w", compErr), want: "compilation"},
		{name: "other", err: errors.New("disk full"), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Kind(tt.err); got != tt.want {
				t.Errorf("Kind() = %q, want %q", got, tt.want)
			}
		})
	}

	if errors.Is(cfgErr, ErrCompilation) || errors.Is(compErr, ErrConfiguration) {
		t.Error("error kinds must not match each other's sentinel")
	}
}
