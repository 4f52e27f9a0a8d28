// SPDX-License-Identifier: MPL-2.0

package unit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

const (
	// EntryFunc is the shell function a script must declare at top level to be invocable.
	EntryFunc = "run"

	// Environment variables exported to every script invocation.
	EnvGroup        = "GROUPRUN_GROUP"
	EnvCommand      = "GROUPRUN_COMMAND"
	EnvInvocationID = "GROUPRUN_INVOCATION_ID"
)

// entryCall invokes the entry function with the positional parameters.
var entryCall = EntryFunc + ` "$@"`

// ScriptUnit executes a shell file with the embedded mvdan/sh interpreter.
type ScriptUnit struct {
	target Target
	// Environ is the base environment; nil means os.Environ().
	Environ []string
}

// NewScriptUnit creates a unit for the script at target.Path.
func NewScriptUnit(target Target) *ScriptUnit {
	return &ScriptUnit{target: target}
}

// Kind implements Unit.
func (s *ScriptUnit) Kind() Kind { return KindScript }

// Target implements Unit.
func (s *ScriptUnit) Target() Target { return s.target }

// Resolve parses the script and returns an entry point if it declares the
// "run" function at top level. A syntax error is returned as-is; a script
// without the function yields ErrNoEntryPoint.
func (s *ScriptUnit) Resolve(ctx context.Context) (EntryPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.target.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", s.target.Path, err)
	}

	prog, err := syntax.NewParser().Parse(bytes.NewReader(data), s.target.Path)
	if err != nil {
		return nil, fmt.Errorf("script syntax error: %w", err)
	}

	if !declaresFunc(prog, EntryFunc) {
		return nil, fmt.Errorf("%s: no top-level %q function in %s: %w", s.target, EntryFunc, s.target.Path, ErrNoEntryPoint)
	}

	call, err := syntax.NewParser().Parse(strings.NewReader(entryCall), "entry")
	if err != nil {
		return nil, fmt.Errorf("internal error: failed to parse entry call: %w", err)
	}

	return func(ctx context.Context, inv Invocation) error {
		return s.execute(ctx, prog, call, inv)
	}, nil
}

func (s *ScriptUnit) execute(ctx context.Context, prog, call *syntax.File, inv Invocation) error {
	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(s.environ(inv)...)),
		interp.StdIO(inv.Stdin, inv.Stdout, inv.Stderr),
	}
	if s.target.Dir != "" {
		opts = append(opts, interp.Dir(s.target.Dir))
	}

	// Prepend "--" to signal end of options; without it, arguments such as
	// "--dry-run" are parsed as shell options by interp.Params.
	if len(inv.Args) > 0 {
		params := append([]string{"--"}, inv.Args...)
		opts = append(opts, interp.Params(params...))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create interpreter: %w", err)
	}

	// The file body runs first so that the entry function and any globals are defined.
	if err := runner.Run(ctx, prog); err != nil {
		return s.classify(err)
	}
	if runner.Exited() {
		return nil
	}

	if err := runner.Run(ctx, call); err != nil {
		return s.classify(err)
	}
	return nil
}

func (s *ScriptUnit) environ(inv Invocation) []string {
	base := s.Environ
	if base == nil {
		base = os.Environ()
	}
	env := make([]string, 0, len(base)+3)
	env = append(env, base...)
	return append(env,
		EnvGroup+"="+inv.Group,
		EnvCommand+"="+inv.Command,
		EnvInvocationID+"="+inv.ID,
	)
}

func (s *ScriptUnit) classify(err error) error {
	var exitStatus interp.ExitStatus
	if errors.As(err, &exitStatus) {
		if exitStatus == 0 {
			return nil
		}
		return &ExitStatusError{Target: s.target, Status: uint8(exitStatus)}
	}
	return fmt.Errorf("script execution failed: %w", err)
}

// declaresFunc reports whether prog declares a function called name at top level.
func declaresFunc(prog *syntax.File, name string) bool {
	for _, stmt := range prog.Stmts {
		if fn, ok := stmt.Cmd.(*syntax.FuncDecl); ok && fn.Name != nil && fn.Name.Value == name {
			return true
		}
	}
	return false
}
