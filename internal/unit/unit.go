// SPDX-License-Identifier: MPL-2.0

package unit

import (
	"context"
	"errors"
	"fmt"
	"io"
)

const (
	// KindGo identifies units backed by a registered Go function.
	KindGo Kind = "go"
	// KindScript identifies units backed by a shell script file.
	KindScript Kind = "script"
)

// ErrNoEntryPoint is returned by Unit.Resolve when the unit exposes nothing invocable.
var ErrNoEntryPoint = errors.New("command has no entry point")

type (
	// Kind names the implementation behind a Unit.
	Kind string

	// Target identifies where a unit lives. Group and Command are the catalog
	// names; Path is the command file and Dir is the owning group directory.
	Target struct {
		Group   string
		Command string
		Path    string
		Dir     string
	}

	// Invocation is the ephemeral input handed to an entry point.
	Invocation struct {
		// ID correlates log records of one dispatch.
		ID string
		// Group and Command identify the resolved unit.
		Group   string
		Command string
		// Args is the ordered argument list after quote removal.
		Args []string

		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// EntryPoint runs a command. Success is a nil return.
	EntryPoint func(ctx context.Context, inv Invocation) error

	// Unit is an executable command unit.
	Unit interface {
		// Kind reports which implementation backs the unit.
		Kind() Kind
		// Target returns the location the unit was bound from.
		Target() Target
		// Resolve loads the unit and returns its entry point, or an error
		// wrapping ErrNoEntryPoint when there is nothing to invoke.
		Resolve(ctx context.Context) (EntryPoint, error)
	}

	// ExitStatusError reports a script that finished with a non-zero status.
	ExitStatusError struct {
		Target Target
		Status uint8
	}
)

// String returns "group.command".
func (t Target) String() string {
	return t.Group + "." + t.Command
}

// Error implements the error interface.
func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Target, e.Status)
}
