// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/invowk/grouprun/internal/config"
	"github.com/invowk/grouprun/internal/repl"
	"github.com/invowk/grouprun/internal/watch"
)

func newShellCommand(a *App) *cobra.Command {
	var noWatch bool
	c := &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell (the default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noWatch {
				return runShellWith(cmd.Context(), a, false)
			}
			return runShell(cmd.Context(), a)
		},
	}
	c.Flags().BoolVar(&noWatch, "no-watch", false, "do not rescan when files change, even if the config enables it")
	return c
}

func runShell(ctx context.Context, a *App) error {
	return runShellWith(ctx, a, true)
}

func runShellWith(ctx context.Context, a *App, allowWatch bool) error {
	sess, _, release, err := a.openSession(ctx)
	if err != nil {
		return err
	}
	defer release()
	cfg := sess.Config()

	var w *watch.Watcher
	if allowWatch && cfg.Watch {
		if w, err = sess.Watcher(); err != nil {
			sess.Logger().Warn("file watching disabled", "error", err)
			w = nil
		}
	}

	r, err := repl.New(repl.Options{
		Session:     sess,
		Out:         a.stdout,
		Err:         a.stderr,
		Theme:       a.theme(),
		Verbose:     a.verbose(cfg),
		Watcher:     w,
		In:          a.stdin,
		HistoryFile: a.historyFile(),
	})
	if err != nil {
		return err
	}
	return r.Run(ctx)
}

// historyFile keeps shell history next to the user configuration. History
// is in-memory only when the directory cannot be determined.
func (a *App) historyFile() string {
	dir := a.configDir
	if dir == "" {
		var err error
		if dir, err = config.ConfigDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "history")
}
