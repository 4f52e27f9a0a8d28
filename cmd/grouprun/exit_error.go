// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/invowk/grouprun/internal/catalog"
	"github.com/invowk/grouprun/internal/config"
	"github.com/invowk/grouprun/internal/dispatch"
	"github.com/invowk/grouprun/internal/issue"
	"github.com/invowk/grouprun/pkg/types"
)

// ExitError carries a process exit code out of a RunE handler. When
// Reported is set the handler already told the user what happened.
type ExitError struct {
	Code     types.ExitCode
	Err      error
	Reported bool
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCodeFor maps an error returned by a command to the process exit code.
func exitCodeFor(err error) types.ExitCode {
	if err == nil {
		return types.ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var ae *issue.ActionableError
	switch {
	case errors.Is(err, catalog.ErrConfiguration), errors.Is(err, config.ErrInvalidConfig):
		return types.ExitConfiguration
	case errors.As(err, &ae) && ae.Issue == issue.ConfigLoadFailedId:
		return types.ExitConfiguration
	case errors.Is(err, dispatch.ErrNotFound):
		return types.ExitNotFound
	case errors.Is(err, dispatch.ErrSelectionCancelled), errors.Is(err, context.Canceled):
		return types.ExitCancelled
	default:
		return types.ExitCommandFailed
	}
}
