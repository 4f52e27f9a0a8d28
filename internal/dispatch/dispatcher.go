// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/invowk/grouprun/internal/catalog"
	"github.com/invowk/grouprun/internal/unit"
)

type (
	// CatalogSource yields the catalog in effect. *catalog.Holder satisfies it.
	CatalogSource interface {
		Current() *catalog.Catalog
	}

	// Dispatcher resolves and runs commands. It is driven by one caller at a
	// time; the catalog it reads may be swapped between dispatches.
	Dispatcher struct {
		source  CatalogSource
		chooser Chooser
		logger  *slog.Logger
		timeout time.Duration
		newID   func() string

		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer
	}

	// Option configures a Dispatcher.
	Option func(*Dispatcher)
)

// WithChooser sets the disambiguation strategy. The default is NoChooser.
func WithChooser(c Chooser) Option {
	return func(d *Dispatcher) {
		if c != nil {
			d.chooser = c
		}
	}
}

// WithLogger sets the logger. Failures are logged at error level.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithTimeout bounds each invocation. Zero disables the bound.
func WithTimeout(t time.Duration) Option {
	return func(d *Dispatcher) { d.timeout = t }
}

// WithStdio sets the streams handed to entry points.
func WithStdio(in io.Reader, out, errOut io.Writer) Option {
	return func(d *Dispatcher) {
		d.stdin, d.stdout, d.stderr = in, out, errOut
	}
}

// WithIDGenerator replaces the invocation ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(d *Dispatcher) {
		if fn != nil {
			d.newID = fn
		}
	}
}

// New creates a Dispatcher reading commands from source.
func New(source CatalogSource, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		source:  source,
		chooser: NoChooser{},
		logger:  slog.Default(),
		newID:   uuid.NewString,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch parses line and runs the command it names. Blank input is a no-op.
func (d *Dispatcher) Dispatch(ctx context.Context, line string) Result {
	req, err := Parse(line)
	if err != nil {
		d.logger.Debug("input rejected", "input", line, "error", err)
		return Result{Kind: KindParseError, Err: err}
	}
	if req.IsEmpty() {
		return Result{Kind: KindNoop}
	}
	return d.DispatchArgs(ctx, req.Command, req.Args)
}

// DispatchArgs runs an already tokenized command, resolving its group
// through the catalog and the chooser.
func (d *Dispatcher) DispatchArgs(ctx context.Context, name string, args []string) Result {
	cmdName := catalog.CommandName(name)
	res := Result{Command: cmdName, Args: args}
	cat := d.source.Current()

	matches := cat.Matches(cmdName)
	switch len(matches) {
	case 0:
		res.Kind = KindUnknown
		res.Err = &UnknownCommandError{Command: cmdName}
		return res
	case 1:
		res.Group = matches[0]
		res.AutoSelected = true
		d.logger.Debug("group selected automatically", "group", res.Group, "command", cmdName)
	default:
		res.Candidates = matches
		group, err := d.chooser.Choose(ctx, cmdName, matches)
		if err != nil {
			res.Kind = KindCancelled
			res.Err = err
			return res
		}
		if !slices.Contains(matches, group) {
			res.Kind = KindCancelled
			res.Err = fmt.Errorf("%w: %q is not one of the candidate groups", ErrSelectionCancelled, group)
			return res
		}
		res.Group = group
	}

	cmd, _ := cat.Lookup(res.Group, cmdName)
	return d.invoke(ctx, cmd, res)
}

// DispatchIn runs name from group only, without consulting the chooser.
func (d *Dispatcher) DispatchIn(ctx context.Context, group, name string, args []string) Result {
	res := Result{Group: catalog.GroupName(group), Command: catalog.CommandName(name), Args: args}
	cmd, ok := d.source.Current().Lookup(res.Group, res.Command)
	if !ok {
		res.Kind = KindUnknown
		res.Err = &UnknownCommandError{Command: res.Command, Group: res.Group}
		return res
	}
	return d.invoke(ctx, cmd, res)
}

func (d *Dispatcher) invoke(ctx context.Context, cmd catalog.Command, res Result) Result {
	res.InvocationID = d.newID()
	logger := d.logger.With("invocation", res.InvocationID, "group", res.Group, "command", res.Command)

	if cmd.Unit == nil {
		res.Kind = KindNoEntryPoint
		res.Err = &NoEntryPointError{Group: res.Group, Command: res.Command}
		logger.Warn("command has no unit")
		return res
	}

	entry, err := cmd.Unit.Resolve(ctx)
	switch {
	case errors.Is(err, unit.ErrNoEntryPoint):
		res.Kind = KindNoEntryPoint
		res.Err = &NoEntryPointError{Group: res.Group, Command: res.Command, Cause: err}
		logger.Warn("command has no entry point", "source", cmd.Path)
		return res
	case err != nil:
		return d.failed(logger, res, err)
	}

	logger.Debug("invoking command", "args", res.Args, "source", cmd.Path)
	if err := d.run(ctx, entry, res); err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			res.Kind = KindCancelled
			res.Err = err
			logger.Info("command cancelled", "args", res.Args)
			return res
		}
		return d.failed(logger, res, err)
	}

	res.Kind = KindInvoked
	return res
}

// run executes entry on its own goroutine so that panics and deadline
// overruns are contained. A unit that ignores its context keeps running in
// the background after the deadline; the dispatcher no longer waits for it.
func (d *Dispatcher) run(ctx context.Context, entry unit.EntryPoint, res Result) error {
	runCtx, cancel := ctx, context.CancelFunc(func() {})
	if d.timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, d.timeout)
	}
	defer cancel()

	inv := unit.Invocation{
		ID:      res.InvocationID,
		Group:   string(res.Group),
		Command: string(res.Command),
		Args:    append([]string(nil), res.Args...),
		Stdin:   d.stdin,
		Stdout:  d.stdout,
		Stderr:  d.stderr,
	}

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- &PanicError{Value: r, Stack: debug.Stack()}
			}
		}()
		done <- entry(runCtx, inv)
	}()

	select {
	case err := <-done:
		return err
	case <-runCtx.Done():
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("did not finish within %s: %w", d.timeout, runCtx.Err())
		}
		return runCtx.Err()
	}
}

func (d *Dispatcher) failed(logger *slog.Logger, res Result, cause error) Result {
	res.Kind = KindFailed
	res.Err = &InvocationError{Group: res.Group, Command: res.Command, Args: res.Args, Cause: cause}

	attrs := []any{"args", res.Args, "error", cause}
	var pe *PanicError
	if errors.As(cause, &pe) {
		attrs = append(attrs, "stack", string(pe.Stack))
	}
	logger.Error("command failed", attrs...)
	return res
}
