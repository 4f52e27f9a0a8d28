// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"fmt"

	"github.com/invowk/grouprun/internal/catalog"
	"github.com/invowk/grouprun/pkg/types"
)

// Outcome kinds of a dispatch.
const (
	KindNoop Kind = iota
	KindInvoked
	KindUnknown
	KindNoEntryPoint
	KindFailed
	KindCancelled
	KindParseError
)

type (
	// Kind classifies a Result.
	Kind int

	// Result is the outcome of one dispatch. Err is nil for KindNoop and
	// KindInvoked.
	Result struct {
		Kind    Kind
		Group   catalog.GroupName
		Command catalog.CommandName
		Args    []string
		// InvocationID is set once a unit was resolved.
		InvocationID string
		// AutoSelected is true when exactly one group defined the command.
		AutoSelected bool
		// Candidates lists the groups offered to the chooser, if any.
		Candidates []catalog.GroupName
		Err        error
	}
)

var kindNames = [...]string{"noop", "invoked", "unknown", "no-entry-point", "failed", "cancelled", "parse-error"}

// String returns a short name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// OK reports whether the result needs no user attention.
func (r Result) OK() bool {
	return r.Kind == KindNoop || r.Kind == KindInvoked
}

// Message returns the one-line text shown to the user, or "" when there is
// nothing to say.
func (r Result) Message() string {
	switch r.Kind {
	case KindUnknown:
		if r.Group != "" {
			return fmt.Sprintf("Unknown command '%s' in group '%s'. Type 'help' for a list of commands.", r.Command, r.Group)
		}
		return fmt.Sprintf("Unknown command '%s'. Type 'help' for a list of commands.", r.Command)
	case KindNoEntryPoint:
		return fmt.Sprintf("Command '%s' in group '%s' does not have a 'run' function.", r.Command, r.Group)
	case KindFailed:
		return fmt.Sprintf("Command '%s' in group '%s' failed: %v", r.Command, r.Group, causeOf(r.Err))
	case KindCancelled:
		return fmt.Sprintf("Command '%s' was not run: %v", r.Command, r.Err)
	case KindParseError:
		return fmt.Sprintf("Could not read the input: %v", causeOf(r.Err))
	default:
		return ""
	}
}

// ExitCode maps the result to a process exit code.
func (r Result) ExitCode() types.ExitCode {
	switch r.Kind {
	case KindNoop, KindInvoked:
		return types.ExitOK
	case KindUnknown, KindNoEntryPoint:
		return types.ExitNotFound
	case KindCancelled:
		return types.ExitCancelled
	default:
		return types.ExitCommandFailed
	}
}

func causeOf(err error) error {
	switch e := err.(type) {
	case *InvocationError:
		return e.Cause
	case *ParseError:
		return e.Err
	default:
		return err
	}
}
