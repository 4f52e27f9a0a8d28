// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// MaxCommandNameLength is the maximum number of characters in a command name.
// Help output lays names out in a column of exactly this width.
const MaxCommandNameLength = 20

var (
	// ErrConfiguration marks errors that abort a whole catalog build.
	ErrConfiguration = errors.New("configuration error")
	// ErrInvalidCommandName is the sentinel error wrapped by InvalidCommandNameError.
	ErrInvalidCommandName = errors.New("invalid command name")
)

type (
	// GroupName identifies a group. It is the directory name, case-sensitive.
	GroupName string

	// CommandName identifies a command within a group: the file name minus its extension.
	CommandName string

	// InvalidCommandNameError is returned for an empty command name.
	InvalidCommandNameError struct {
		Value CommandName
	}

	// CommandNameTooLongError is returned when a command name exceeds
	// MaxCommandNameLength. It wraps ErrConfiguration.
	CommandNameTooLongError struct {
		Name   CommandName
		Length int
	}

	// ConfigurationError aborts a catalog build. It matches both
	// ErrConfiguration and the wrapped cause with errors.Is/As.
	ConfigurationError struct {
		Group GroupName
		Path  string
		Err   error
	}
)

// String returns the string representation of the GroupName.
func (n GroupName) String() string { return string(n) }

// String returns the string representation of the CommandName.
func (n CommandName) String() string { return string(n) }

// Validate returns nil if the name is non-empty and at most
// MaxCommandNameLength characters long.
func (n CommandName) Validate() error {
	if n == "" {
		return &InvalidCommandNameError{Value: n}
	}
	if length := utf8.RuneCountInString(string(n)); length > MaxCommandNameLength {
		return &CommandNameTooLongError{Name: n, Length: length}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidCommandNameError) Error() string {
	return fmt.Sprintf("invalid command name %q: must not be empty", e.Value)
}

// Unwrap returns ErrInvalidCommandName for errors.Is() compatibility.
func (e *InvalidCommandNameError) Unwrap() error { return ErrInvalidCommandName }

// Error implements the error interface.
func (e *CommandNameTooLongError) Error() string {
	return fmt.Sprintf("command name %q is too long (%d characters, maximum is %d)",
		e.Name, e.Length, MaxCommandNameLength)
}

// Unwrap returns ErrConfiguration for errors.Is() compatibility.
func (e *CommandNameTooLongError) Unwrap() error { return ErrConfiguration }

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("configuration error in group %q (%s): %v", e.Group, e.Path, e.Err)
	}
	return fmt.Sprintf("configuration error in group %q: %v", e.Group, e.Err)
}

// Unwrap exposes ErrConfiguration and the underlying cause.
func (e *ConfigurationError) Unwrap() []error { return []error{ErrConfiguration, e.Err} }
