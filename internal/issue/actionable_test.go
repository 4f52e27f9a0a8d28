// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableErrorError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{"operation only", &ActionableError{Operation: "load configuration"}, "failed to load configuration"},
		{
			"with resource",
			&ActionableError{Operation: "load manifest", Resource: "commands.cue"},
			"failed to load manifest: commands.cue",
		},
		{
			"with cause",
			&ActionableError{Operation: "load manifest", Resource: "commands.cue", Cause: errors.New("bad")},
			"failed to load manifest: commands.cue: bad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableErrorUnwrap(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("sentinel")
	err := error(Wrap(sentinel, "scan groups", "/srv/commands"))
	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if Wrap(nil, "x", "y") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestActionableErrorFormat(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().
		WithOperation("load manifest").
		WithResource("commands.cue").
		WithSuggestion("Check the CUE syntax").
		WithSuggestion("Remove unknown fields").
		WithIssue(ManifestInvalidId).
		Wrap(errors.Join(errors.New("outer"))).
		Build()

	plain := err.Format(false)
	for _, want := range []string{
		"failed to load manifest: commands.cue",
		"• Check the CUE syntax",
		"• Remove unknown fields",
		"grouprun explain manifest-invalid",
	} {
		if !strings.Contains(plain, want) {
			t.Errorf("Format(false) missing %q:\n%s", want, plain)
		}
	}
	if strings.Contains(plain, "Error chain") {
		t.Error("Format(false) should not include the error chain")
	}

	if verbose := err.Format(true); !strings.Contains(verbose, "Error chain:") || !strings.Contains(verbose, "1. outer") {
		t.Errorf("Format(true) missing error chain:\n%s", verbose)
	}
}

func TestErrorContextBuild(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want nil interface", err)
	}

	ctx := NewErrorContext().WithOperation("run command").WithSuggestion("one")
	first := ctx.Build()
	ctx.WithSuggestion("two")
	second := ctx.Build()

	if len(first.Suggestions) != 1 {
		t.Errorf("first build changed after reuse: %v", first.Suggestions)
	}
	if len(second.Suggestions) != 2 {
		t.Errorf("second build suggestions = %v, want 2", second.Suggestions)
	}
}
