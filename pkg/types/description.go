// SPDX-License-Identifier: MPL-2.0

// Package types defines cross-cutting value types shared by the grouprun
// packages: descriptions, exit codes and structured diagnostics.
//
// This package is a leaf dependency: it imports only the standard library.
package types

import (
	"errors"
	"fmt"
	"strings"
)

// NoDescription is the sentinel description attached to a command that has no
// manifest entry, or to every command when the manifest could not be read.
const NoDescription DescriptionText = "description not found"

// ErrInvalidDescriptionText is the sentinel error wrapped by InvalidDescriptionTextError.
var ErrInvalidDescriptionText = errors.New("invalid description text")

type (
	// DescriptionText is the human-readable description of a command.
	// The zero value ("") is valid and renders as NoDescription.
	// Non-zero values must not be whitespace-only.
	DescriptionText string

	// InvalidDescriptionTextError is returned when a DescriptionText value is
	// non-empty but whitespace-only.
	InvalidDescriptionTextError struct {
		Value DescriptionText
	}
)

// String returns the description, substituting NoDescription for the zero value.
func (d DescriptionText) String() string {
	if d == "" {
		return string(NoDescription)
	}
	return string(d)
}

// IsSentinel reports whether the description is the "not found" placeholder.
func (d DescriptionText) IsSentinel() bool { return d == "" || d == NoDescription }

// Validate returns an error if the description is non-empty but blank.
func (d DescriptionText) Validate() error {
	if d != "" && strings.TrimSpace(string(d)) == "" {
		return &InvalidDescriptionTextError{Value: d}
	}
	return nil
}

// Error implements the error interface for InvalidDescriptionTextError.
func (e *InvalidDescriptionTextError) Error() string {
	return fmt.Sprintf("invalid description text: non-empty value must not be whitespace-only (got %q)", e.Value)
}

// Unwrap returns ErrInvalidDescriptionText for errors.Is() compatibility.
func (e *InvalidDescriptionTextError) Unwrap() error { return ErrInvalidDescriptionText }
