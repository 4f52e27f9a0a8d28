// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"strings"
	"testing"
)

func TestCommandNameValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		value       CommandName
		wantErr     bool
		wantTooLong bool
	}{
		{"simple", "deploy", false, false},
		{"exactly twenty", CommandName(strings.Repeat("a", 20)), false, false},
		{"twenty one", CommandName(strings.Repeat("a", 21)), true, true},
		{"twenty multibyte runes", CommandName(strings.Repeat("é", 20)), false, false},
		{"empty", "", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.value.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if got := errors.Is(err, ErrConfiguration); got != tt.wantTooLong {
				t.Errorf("errors.Is(err, ErrConfiguration) = %v, want %v", got, tt.wantTooLong)
			}
			var tooLong *CommandNameTooLongError
			if got := errors.As(err, &tooLong); got != tt.wantTooLong {
				t.Errorf("errors.As(*CommandNameTooLongError) = %v, want %v", got, tt.wantTooLong)
			}
		})
	}
}

func TestConfigurationErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := &CommandNameTooLongError{Name: "x", Length: 21}
	err := error(&ConfigurationError{Group: "infra", Path: "/tmp/x.sh", Err: cause})

	if !errors.Is(err, ErrConfiguration) {
		t.Error("ConfigurationError should match ErrConfiguration")
	}
	var tooLong *CommandNameTooLongError
	if !errors.As(err, &tooLong) {
		t.Error("ConfigurationError should expose the wrapped *CommandNameTooLongError")
	}
	if !strings.Contains(err.Error(), "/tmp/x.sh") {
		t.Errorf("Error() = %q, want it to include the path", err)
	}
}
