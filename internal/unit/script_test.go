// SPDX-License-Identifier: MPL-2.0

package unit

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeScript creates a script file in a fresh temp dir and returns its target.
func writeScript(t *testing.T, name, body string) Target {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name+".sh")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return Target{Group: "infra", Command: name, Path: path, Dir: dir}
}

func TestScriptUnitRunsEntryFunction(t *testing.T) {
	t.Parallel()

	target := writeScript(t, "deploy", `
greeting="deploying"
run() {
	printf '%s:' "$greeting"
	printf '[%s]' "$@"
	printf ' %s/%s' "$GROUPRUN_GROUP" "$GROUPRUN_COMMAND"
}
`)
	su := NewScriptUnit(target)
	su.Environ = []string{}

	fn, err := su.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	var stdout bytes.Buffer
	err = fn(context.Background(), Invocation{
		Group:   "infra",
		Command: "deploy",
		Args:    []string{"us east 1", "--dry-run"},
		Stdout:  &stdout,
		Stderr:  &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("entry point error: %v", err)
	}

	want := "deploying:[us east 1][--dry-run] infra/deploy"
	if got := stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestScriptUnitWithoutEntryFunction(t *testing.T) {
	t.Parallel()

	target := writeScript(t, "noentry", "echo top-level only\n")
	_, err := NewScriptUnit(target).Resolve(context.Background())
	if !errors.Is(err, ErrNoEntryPoint) {
		t.Fatalf("Resolve() error = %v, want ErrNoEntryPoint", err)
	}
}

func TestScriptUnitNestedFunctionIsNotAnEntryPoint(t *testing.T) {
	t.Parallel()

	target := writeScript(t, "nested", "outer() {\n  run() { echo hi; }\n}\n")
	_, err := NewScriptUnit(target).Resolve(context.Background())
	if !errors.Is(err, ErrNoEntryPoint) {
		t.Fatalf("Resolve() error = %v, want ErrNoEntryPoint", err)
	}
}

func TestScriptUnitNonZeroExit(t *testing.T) {
	t.Parallel()

	target := writeScript(t, "fails", "run() {\n  return 3\n}\n")
	fn, err := NewScriptUnit(target).Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	err = fn(context.Background(), Invocation{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})
	var statusErr *ExitStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("entry point error = %v, want *ExitStatusError", err)
	}
	if statusErr.Status != 3 {
		t.Errorf("Status = %d, want 3", statusErr.Status)
	}
}

func TestScriptUnitSyntaxError(t *testing.T) {
	t.Parallel()

	target := writeScript(t, "broken", "run() {\n  echo 'unterminated\n}\n")
	_, err := NewScriptUnit(target).Resolve(context.Background())
	if err == nil {
		t.Fatal("Resolve() expected syntax error, got nil")
	}
	if errors.Is(err, ErrNoEntryPoint) {
		t.Error("syntax errors must not be reported as a missing entry point")
	}
	if !strings.Contains(err.Error(), "syntax error") {
		t.Errorf("error = %q, want it to mention a syntax error", err)
	}
}

func TestScriptUnitCancelledContext(t *testing.T) {
	t.Parallel()

	target := writeScript(t, "status", "run() { :; }\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewScriptUnit(target).Resolve(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Resolve() error = %v, want context.Canceled", err)
	}
}

func TestBinderPrefersRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register("infra", "status", func(context.Context, Invocation) error { return nil })
	b := NewBinder(WithRegistry(reg))

	if u := b.Bind(Target{Group: "infra", Command: "status"}); u.Kind() != KindGo {
		t.Errorf("Bind(infra.status).Kind() = %q, want %q", u.Kind(), KindGo)
	}
	if u := b.Bind(Target{Group: "net", Command: "status", Path: "/x/status.sh"}); u.Kind() != KindScript {
		t.Errorf("Bind(net.status).Kind() = %q, want %q", u.Kind(), KindScript)
	}
}
