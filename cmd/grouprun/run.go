// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/invowk/grouprun/internal/dispatch"
	"github.com/invowk/grouprun/internal/issue"
)

func newRunCommand(a *App) *cobra.Command {
	var group string
	c := &cobra.Command{
		Use:   "run <command> [args...]",
		Short: "Run one command and exit",
		Long: `Run one command and exit with its status.

Exit codes: 0 success, 1 command failed, 2 unknown command or missing
'run' function, 3 configuration error, 130 no group was chosen.

When the command exists in several groups and --group is not given,
grouprun asks for a group if stdin is a terminal and gives up otherwise.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, _, release, err := a.openSession(ctx)
			if err != nil {
				return err
			}
			defer release()

			d := sess.Dispatcher(a.chooser())
			var res dispatch.Result
			if group != "" {
				res = d.DispatchIn(ctx, group, args[0], args[1:])
			} else {
				res = d.DispatchArgs(ctx, args[0], args[1:])
			}

			theme := a.theme()
			if res.Kind == dispatch.KindInvoked && res.AutoSelected && a.verbose(sess.Config()) {
				fmt.Fprintf(a.stderr, "Automatically selected group: %s\n", res.Group)
			}
			if res.OK() {
				return nil
			}
			fmt.Fprintln(a.stderr, theme.Error.Render(res.Message()))
			if page := hintFor(res); page != nil {
				fmt.Fprintln(a.stderr, theme.Muted.Render(fmt.Sprintf("Run 'grouprun explain %s' for details.", page.Slug())))
			}
			return &ExitError{Code: res.ExitCode(), Err: res.Err, Reported: true}
		},
	}
	c.Flags().SetInterspersed(false)
	c.Flags().StringVarP(&group, "group", "g", "", "run the command from this group without asking")
	return c
}

// chooser prompts on a terminal and cancels otherwise.
func (a *App) chooser() dispatch.Chooser {
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return &dispatch.PromptChooser{In: dispatch.NewScannerReader(a.stdin, a.stderr), Out: a.stderr}
	}
	return dispatch.NoChooser{}
}

func hintFor(res dispatch.Result) *issue.Issue {
	switch res.Kind {
	case dispatch.KindUnknown:
		return issue.Get(issue.UnknownCommandId)
	case dispatch.KindNoEntryPoint:
		return issue.Get(issue.NoEntryPointId)
	case dispatch.KindCancelled:
		if len(res.Candidates) > 1 {
			return issue.Get(issue.AmbiguousCommandId)
		}
	case dispatch.KindFailed:
		return issue.Get(issue.CommandFailedId)
	}
	return nil
}
