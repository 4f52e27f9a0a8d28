// SPDX-License-Identifier: MPL-2.0

package types

import "fmt"

const (
	// SeverityInfo marks an expected degraded condition (e.g. no manifest file).
	SeverityInfo Severity = "info"
	// SeverityWarning indicates a recoverable discovery or build warning.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a non-fatal error diagnostic.
	SeverityError Severity = "error"
)

type (
	// Severity represents diagnostic severity.
	Severity string

	// Diagnostic is a structured, non-fatal condition that is returned to
	// callers (rather than written to stderr) so the CLI layer owns rendering.
	Diagnostic struct {
		// Severity is the diagnostic level.
		Severity Severity
		// Code is a machine-readable identifier (e.g., "root_not_found").
		Code string
		// Message is the human-readable description.
		Message string
		// Path is the filesystem path associated with this diagnostic (optional).
		Path string
		// Cause is the underlying error (optional, for programmatic inspection).
		Cause error
	}
)

// String renders the diagnostic as a single line.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// HasCode reports whether any diagnostic in diags carries the given code.
func HasCode(diags []Diagnostic, code string) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}
