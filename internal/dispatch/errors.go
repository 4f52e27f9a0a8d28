// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/invowk/grouprun/internal/catalog"
)

var (
	// ErrNotFound matches every "nothing to run" outcome: unknown commands and
	// units without an entry point.
	ErrNotFound = errors.New("not found")
	// ErrInvocationFailure matches every failure raised while running a unit.
	ErrInvocationFailure = errors.New("invocation failure")
	// ErrSelectionCancelled is returned by a Chooser that gives up.
	ErrSelectionCancelled = errors.New("selection cancelled")
)

type (
	// UnknownCommandError reports a command name no group defines. Group is
	// set when the lookup was restricted to one group.
	UnknownCommandError struct {
		Command catalog.CommandName
		Group   catalog.GroupName
	}

	// NoEntryPointError reports a resolved unit that exposes nothing to invoke.
	NoEntryPointError struct {
		Group   catalog.GroupName
		Command catalog.CommandName
		Cause   error
	}

	// InvocationError reports a unit that failed, panicked or overran its deadline.
	InvocationError struct {
		Group   catalog.GroupName
		Command catalog.CommandName
		Args    []string
		Cause   error
	}

	// PanicError carries a recovered panic value and the goroutine stack.
	PanicError struct {
		Value any
		Stack []byte
	}
)

// Error implements the error interface.
func (e *UnknownCommandError) Error() string {
	if e.Group != "" {
		return fmt.Sprintf("unknown command %q in group %q", e.Command, e.Group)
	}
	return fmt.Sprintf("unknown command %q", e.Command)
}

// Unwrap returns ErrNotFound for errors.Is() compatibility.
func (e *UnknownCommandError) Unwrap() error { return ErrNotFound }

// Error implements the error interface.
func (e *NoEntryPointError) Error() string {
	return fmt.Sprintf("command %q in group %q has no entry point", e.Command, e.Group)
}

// Unwrap exposes ErrNotFound and the cause reported by the unit.
func (e *NoEntryPointError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrNotFound}
	}
	return []error{ErrNotFound, e.Cause}
}

// Error implements the error interface.
func (e *InvocationError) Error() string {
	return fmt.Sprintf("command %s.%s [%s] failed: %v", e.Group, e.Command, strings.Join(e.Args, " "), e.Cause)
}

// Unwrap exposes ErrInvocationFailure and the cause.
func (e *InvocationError) Unwrap() []error { return []error{ErrInvocationFailure, e.Cause} }

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}
