// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestDescriptionText_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		desc    DescriptionText
		wantErr bool
	}{
		{"simple text", DescriptionText("Deploy the stack"), false},
		{"multiline", DescriptionText("Line 1\nLine 2"), false},
		{"empty is valid (zero value)", DescriptionText(""), false},
		{"whitespace only is invalid", DescriptionText("   "), true},
		{"tab only is invalid", DescriptionText("\t"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.desc.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("DescriptionText(%q).Validate() error = %v, wantErr %v", tt.desc, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDescriptionText) {
					t.Errorf("error should wrap ErrInvalidDescriptionText, got: %v", err)
				}
				var dtErr *InvalidDescriptionTextError
				if !errors.As(err, &dtErr) {
					t.Errorf("error should be *InvalidDescriptionTextError, got: %T", err)
				}
			}
		})
	}
}

func TestDescriptionText_String(t *testing.T) {
	t.Parallel()

	if got := DescriptionText("").String(); got != string(NoDescription) {
		t.Errorf("zero value String() = %q, want %q", got, NoDescription)
	}
	if got := DescriptionText("Show status").String(); got != "Show status" {
		t.Errorf("String() = %q, want %q", got, "Show status")
	}
	if !DescriptionText("").IsSentinel() || !NoDescription.IsSentinel() {
		t.Error("zero value and NoDescription must both report IsSentinel")
	}
	if DescriptionText("x").IsSentinel() {
		t.Error("a real description must not report IsSentinel")
	}
}
