// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestExitCodeValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     ExitCode
		wantValid bool
	}{
		{name: "ok", value: ExitOK, wantValid: true},
		{name: "command failed", value: ExitCommandFailed, wantValid: true},
		{name: "configuration", value: ExitConfiguration, wantValid: true},
		{name: "cancelled", value: ExitCancelled, wantValid: true},
		{name: "255 is valid", value: 255, wantValid: true},
		{name: "negative is invalid", value: -1, wantValid: false},
		{name: "256 is invalid", value: 256, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.value.Validate()
			if (err == nil) != tt.wantValid {
				t.Fatalf("ExitCode(%d).Validate() error = %v, wantValid %v", tt.value, err, tt.wantValid)
			}
			if !tt.wantValid && !errors.Is(err, ErrInvalidExitCode) {
				t.Errorf("error should wrap ErrInvalidExitCode, got: %v", err)
			}
		})
	}
}

func TestExitCodeIsSuccess(t *testing.T) {
	t.Parallel()

	if !ExitOK.IsSuccess() {
		t.Error("ExitOK.IsSuccess() = false, want true")
	}
	if ExitNotFound.IsSuccess() {
		t.Error("ExitNotFound.IsSuccess() = true, want false")
	}
	if got := ExitConfiguration.String(); got != "3" {
		t.Errorf("ExitConfiguration.String() = %q, want %q", got, "3")
	}
}
