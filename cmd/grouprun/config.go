// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/invowk/grouprun/internal/config"
)

// newConfigCommand creates the `grouprun config` command tree.
func newConfigCommand(a *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect grouprun configuration",
		Long: `Inspect grouprun configuration.

Configuration is read from the first of:
  - the file given with --config
  - $XDG_CONFIG_HOME/grouprun/config.cue (~/.config/grouprun/config.cue)
  - ./grouprun.cue
and GROUPRUN_* environment variables override file values.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			if cfg.Source != "" {
				fmt.Fprintf(a.stdout, "// loaded from %s\n", cfg.Source)
			} else {
				fmt.Fprintln(a.stdout, "// built-in defaults")
			}
			_, err = fmt.Fprint(a.stdout, config.GenerateCUE(cfg))
			return err
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the user configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			dir := a.configDir
			if dir == "" {
				var err error
				if dir, err = config.ConfigDir(); err != nil {
					return err
				}
			}
			_, err := fmt.Fprintln(a.stdout, filepath.Join(dir, config.ConfigFileName))
			return err
		},
	})

	return cfgCmd
}
