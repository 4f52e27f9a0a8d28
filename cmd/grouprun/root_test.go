// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/invowk/grouprun/internal/catalog"
	"github.com/invowk/grouprun/internal/config"
	"github.com/invowk/grouprun/internal/dispatch"
	"github.com/invowk/grouprun/internal/issue"
	"github.com/invowk/grouprun/pkg/types"
)

const script = "run() { echo \"ran $GROUPRUN_GROUP/$GROUPRUN_COMMAND $*\"; }\n"

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func commandsRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"infra/.cmdgroup": "",
		"infra/deploy.sh": script,
		"infra/status.sh": script,
		"infra/broken.sh": "run() { return 3; }\n",
		"infra/inert.sh":  "echo loaded\n",
		"net/.cmdgroup":   "",
		"net/deploy.sh":   script,
		"commands.cue": `groups: [{name: "infra", commands: [{name: "status", description: "Show stack status"}]}]
`,
	})
	return root
}

// execute runs the CLI in-process and returns stdout, stderr and the error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	a := NewApp(Dependencies{
		Stdin:     strings.NewReader(""),
		Stdout:    &stdout,
		Stderr:    &stderr,
		ConfigDir: t.TempDir(),
	})
	root := NewRootCommand(a)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRunCommand(t *testing.T) {
	root := commandsRoot(t)

	tests := []struct {
		name       string
		args       []string
		wantCode   types.ExitCode
		wantStdout string
		wantStderr string
	}{
		{name: "unique command", args: []string{"run", "--root", root, "status", "a b"}, wantStdout: "ran infra/status a b"},
		{name: "flags after the command belong to it", args: []string{"run", "--root", root, "status", "-x"}, wantStdout: "ran infra/status -x"},
		{name: "group flag", args: []string{"run", "--root", root, "-g", "net", "deploy"}, wantStdout: "ran net/deploy"},
		{
			name: "ambiguous without a terminal", args: []string{"run", "--root", root, "deploy"},
			wantCode: types.ExitCancelled, wantStderr: "explain ambiguous-command",
		},
		{
			name: "unknown command", args: []string{"run", "--root", root, "frobnicate"},
			wantCode: types.ExitNotFound, wantStderr: "Unknown command 'frobnicate'",
		},
		{
			name: "unknown in group", args: []string{"run", "--root", root, "--group", "net", "status"},
			wantCode: types.ExitNotFound, wantStderr: "in group 'net'",
		},
		{
			name: "no entry point", args: []string{"run", "--root", root, "inert"},
			wantCode: types.ExitNotFound, wantStderr: "does not have a 'run' function",
		},
		{
			name: "failing command", args: []string{"run", "--root", root, "broken"},
			wantCode: types.ExitCommandFailed, wantStderr: "failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := execute(t, tt.args...)
			if got := exitCodeFor(err); got != tt.wantCode {
				t.Fatalf("exit code = %d (err %v), want %d\nstderr: %s", got, err, tt.wantCode, stderr)
			}
			if !strings.Contains(stdout, tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", stdout, tt.wantStdout)
			}
			if !strings.Contains(stderr, tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.wantStderr)
			}
			var exitErr *ExitError
			if err != nil && (!errors.As(err, &exitErr) || !exitErr.Reported) {
				t.Errorf("error %v was not reported by the handler", err)
			}
		})
	}
}

func TestRunConfigurationError(t *testing.T) {
	root := commandsRoot(t)
	writeTree(t, root, map[string]string{"net/" + strings.Repeat("n", 21) + ".sh": script})

	_, _, err := execute(t, "run", "--root", root, "status")
	if got := exitCodeFor(err); got != types.ExitConfiguration {
		t.Fatalf("exit code = %d (err %v), want %d", got, err, types.ExitConfiguration)
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.Issue != issue.CommandNameTooLongId {
		t.Errorf("error %v is not linked to the name-too-long page", err)
	}
}

func TestBadLogLevel(t *testing.T) {
	_, _, err := execute(t, "list", "--root", commandsRoot(t), "--log-level", "loud")
	if got := exitCodeFor(err); got != types.ExitConfiguration {
		t.Fatalf("exit code = %d (err %v), want %d", got, err, types.ExitConfiguration)
	}
}

func TestListCommand(t *testing.T) {
	root := commandsRoot(t)

	stdout, _, err := execute(t, "list", "--root", root)
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	for _, want := range []string{
		"[infra]",
		"  status              - Show stack status",
		"  deploy              - description not found",
		"[net]",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("list output missing %q:\n%s", want, stdout)
		}
	}

	stdout, _, err = execute(t, "list", "--root", root, "--markdown", "--style", "notty")
	if err != nil {
		t.Fatalf("list --markdown error = %v", err)
	}
	if !strings.Contains(stdout, "Show stack status") || !strings.Contains(stdout, "net") {
		t.Errorf("markdown output:\n%s", stdout)
	}
}

func TestGroupsCommand(t *testing.T) {
	root := commandsRoot(t)
	writeTree(t, root, map[string]string{"shared/.cmdgroup": "", "shared/x.sh": script})

	stdout, _, err := execute(t, "groups", "--root", root)
	if err != nil {
		t.Fatalf("groups error = %v", err)
	}
	if !strings.Contains(stdout, "infra") || !strings.Contains(stdout, "net") {
		t.Errorf("groups output:\n%s", stdout)
	}
	if strings.Contains(stdout, "shared") {
		t.Errorf("ignored group listed:\n%s", stdout)
	}
}

func TestGroupsMissingRoot(t *testing.T) {
	stdout, stderr, err := execute(t, "groups", "--root", filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("groups error = %v", err)
	}
	if !strings.Contains(stdout, "no groups found") {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(stderr, "does not exist") || !strings.Contains(stderr, "explain root-not-found") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestConfigShow(t *testing.T) {
	stdout, _, err := execute(t, "config", "show", "--root", "/srv/commands", "--manifest", "docs.json")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	for _, want := range []string{`root:      "/srv/commands"`, `manifest:  "docs.json"`, `marker:    ".cmdgroup"`} {
		if !strings.Contains(stdout, want) {
			t.Errorf("config show missing %q:\n%s", want, stdout)
		}
	}
}

func TestConfigFileFlag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.cue")
	writeTree(t, dir, map[string]string{"custom.cue": "extension: \".bash\"\nwatch: true\n"})

	stdout, _, err := execute(t, "config", "show", "--config", path)
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	if !strings.Contains(stdout, "loaded from "+path) || !strings.Contains(stdout, `extension: ".bash"`) {
		t.Errorf("config show:\n%s", stdout)
	}
}

func TestExplain(t *testing.T) {
	stdout, _, err := execute(t, "explain")
	if err != nil {
		t.Fatalf("explain error = %v", err)
	}
	for _, page := range issue.Values() {
		if !strings.Contains(stdout, page.Slug()) {
			t.Errorf("explain listing missing %s", page.Slug())
		}
	}

	stdout, _, err = execute(t, "explain", "name-too-long", "--style", "notty")
	if err != nil {
		t.Fatalf("explain name-too-long error = %v", err)
	}
	if strings.TrimSpace(stdout) == "" {
		t.Error("explain printed nothing")
	}

	if _, _, err := execute(t, "explain", "no-such-topic"); err == nil {
		t.Error("explain accepted an unknown topic")
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want types.ExitCode
	}{
		{err: nil, want: types.ExitOK},
		{err: &ExitError{Code: types.ExitNotFound}, want: types.ExitNotFound},
		{err: fmt.Errorf("wrapped: %w", &ExitError{Code: 7}), want: 7},
		{err: &catalog.ConfigurationError{Err: &catalog.CommandNameTooLongError{Name: "x", Length: 21}}, want: types.ExitConfiguration},
		{err: &config.InvalidConfigError{}, want: types.ExitConfiguration},
		{err: issue.NewErrorContext().WithOperation("load configuration").WithIssue(issue.ConfigLoadFailedId).BuildError(), want: types.ExitConfiguration},
		{err: &dispatch.UnknownCommandError{Command: "x"}, want: types.ExitNotFound},
		{err: dispatch.ErrSelectionCancelled, want: types.ExitCancelled},
		{err: context.Canceled, want: types.ExitCancelled},
		{err: errors.New("boom"), want: types.ExitCommandFailed},
	}
	for _, tt := range tests {
		if got := exitCodeFor(tt.err); got != tt.want {
			t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestGetVersionString(t *testing.T) {
	// Not parallel: mutates package-level build variables.
	origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
	t.Cleanup(func() { Version, Commit, BuildDate = origVersion, origCommit, origBuildDate })

	Version, Commit, BuildDate = "v1.2.3", "abc1234", "2026-01-02"
	if got, want := getVersionString(), "v1.2.3 (commit: abc1234, built: 2026-01-02)"; got != want {
		t.Errorf("getVersionString() = %q, want %q", got, want)
	}
	Version = "dev"
	if got, want := getVersionString(), "dev (built from source)"; got != want {
		t.Errorf("getVersionString() = %q, want %q", got, want)
	}
}
