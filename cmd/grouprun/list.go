// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/invowk/grouprun/internal/render"
)

func newListCommand(a *App) *cobra.Command {
	var (
		markdown bool
		style    string
	)
	c := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every discovered command",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, _, release, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if !markdown {
				return render.Help(a.stdout, sess.Catalog(), a.theme())
			}
			out, err := render.RenderMarkdown(render.Markdown(sess.Catalog()), render.MarkdownOptions{
				Style: markdownStyle(style, string(sess.Config().UI.ColorScheme)),
				Width: a.width(),
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(a.stdout, out)
			return err
		},
	}
	c.Flags().BoolVar(&markdown, "markdown", false, "render the catalog as a markdown table")
	c.Flags().StringVar(&style, "style", "", "glamour style for --markdown (dark, light, notty)")
	return c
}

func newGroupsCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List discovered groups",
		Long: `List discovered groups with their command counts and directories.

Discovery problems such as duplicate group names are reported on stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, report, release, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			fmt.Fprintf(a.stdout, "Commands root: %s\n", report.Root)
			return render.Groups(a.stdout, sess.Catalog(), a.theme(), "")
		},
	}
}

// markdownStyle picks the glamour style: the flag wins, then the configured
// color scheme; "auto" lets glamour detect the background.
func markdownStyle(flag, scheme string) string {
	switch {
	case flag != "":
		return flag
	case scheme == "dark" || scheme == "light":
		return scheme
	default:
		return ""
	}
}

// width returns the terminal width for wrapping, or 0 off a terminal.
func (a *App) width() int {
	f, ok := a.stdout.(interface{ Fd() uintptr })
	if !ok {
		return 0
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return w
}
