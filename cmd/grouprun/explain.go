// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/invowk/grouprun/internal/issue"
)

func newExplainCommand(a *App) *cobra.Command {
	var style string
	c := &cobra.Command{
		Use:   "explain [issue]",
		Short: "Explain an error and how to fix it",
		Long:  "Explain an error and how to fix it. Without an argument, list the known topics.",
		Args:  cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			var slugs []string
			for _, page := range issue.Values() {
				slugs = append(slugs, page.Slug())
			}
			return slugs, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, page := range issue.Values() {
					fmt.Fprintf(a.stdout, "%-20s %s\n", page.Slug(), page.Title())
				}
				return nil
			}
			page, ok := issue.Lookup(strings.ToLower(args[0]))
			if !ok {
				return fmt.Errorf("unknown topic %q; run 'grouprun explain' to list topics", args[0])
			}
			out, err := page.Render(style)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(a.stdout, out)
			return err
		},
	}
	c.Flags().StringVar(&style, "style", "dark", "glamour style (dark, light, notty)")
	return c
}
