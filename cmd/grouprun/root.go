// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/invowk/grouprun/internal/issue"
	"github.com/invowk/grouprun/internal/render"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree bound to a.
func NewRootCommand(a *App) *cobra.Command {
	theme := render.DefaultTheme()
	root := &cobra.Command{
		Use:   "grouprun",
		Short: "Discover and run grouped shell commands",
		Long: theme.Title.Render("grouprun") + theme.Muted.Render(" - discover and run grouped shell commands") + `

grouprun looks for directories containing a .cmdgroup marker below the
commands root. Every script in such a directory is a command named after
the file. Commands with the same name in several groups are disambiguated
by a numbered menu, --group, or 'use <group>' in the shell.

` + theme.Muted.Render("Examples:") + `
  grouprun                      Start the interactive shell
  grouprun run deploy prod      Run 'deploy' with one argument
  grouprun run deploy -g net    Run 'deploy' from the net group
  grouprun list --markdown      Show every command as a table
  grouprun explain name-too-long`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd.Context(), a)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/grouprun/config.cue)")
	pf.StringVarP(&a.flags.root, "root", "r", "", "directory searched for command groups")
	pf.StringVar(&a.flags.manifest, "manifest", "", "command description manifest (relative to the root)")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "enable verbose output")

	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.AddCommand(
		newShellCommand(a),
		newRunCommand(a),
		newListCommand(a),
		newGroupsCommand(a),
		newConfigCommand(a),
		newExplainCommand(a),
	)
	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits the process. It is called by main.main().
func Execute() {
	a := NewApp(Dependencies{})
	err := fang.Execute(
		context.Background(),
		NewRootCommand(a),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler(a)),
	)
	os.Exit(int(exitCodeFor(err)))
}

// errorHandler prints errors that no handler reported yet. Actionable
// errors get their suggestions; everything else goes through fang.
func errorHandler(a *App) fang.ErrorHandler {
	return func(w io.Writer, styles fang.Styles, err error) {
		var exitErr *ExitError
		if errors.As(err, &exitErr) && exitErr.Reported {
			return
		}
		var ae *issue.ActionableError
		if errors.As(err, &ae) {
			fmt.Fprintln(w, render.DefaultTheme().Error.Render("Error: ")+ae.Format(a.flags.verbose))
			return
		}
		fang.DefaultErrorHandler(w, styles, err)
	}
}
