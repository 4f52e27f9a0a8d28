// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/invowk/grouprun/internal/issue"
	"github.com/invowk/grouprun/pkg/cueutil"
)

const (
	// AppName is the application name.
	AppName = "grouprun"
	// ConfigFileName is the name of the config file in the config directory.
	ConfigFileName = "config.cue"
	// LocalConfigFileName is the project-local config file.
	LocalConfigFileName = "grouprun.cue"
	// EnvPrefix prefixes environment overrides.
	EnvPrefix = "GROUPRUN"
)

//go:embed config_schema.cue
var configSchema []byte

// ConfigDir returns the grouprun configuration directory: %APPDATA% on
// Windows, ~/Library/Application Support on macOS, and $XDG_CONFIG_HOME
// (defaulting to ~/.config) elsewhere.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	var dir string
	switch runtime.GOOS {
	case "windows":
		dir = os.Getenv("APPDATA")
		if dir == "" {
			dir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, "Library", "Application Support")
	default:
		dir = os.Getenv("XDG_CONFIG_HOME")
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			dir = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(dir, AppName), nil
}

func load(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := newViper()

	path, err := resolvePath(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Run 'grouprun config show' to see the effective configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Source = path

	if err := cfg.Validate(); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(path).
			WithSuggestion("Check GROUPRUN_* environment variables as well as the config file").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}
	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	d := DefaultConfig()
	v.SetDefault("root", d.Root)
	v.SetDefault("marker", d.Marker)
	v.SetDefault("extension", d.Extension)
	v.SetDefault("manifest", d.Manifest)
	v.SetDefault("ignore_groups", d.IgnoreGroups)
	v.SetDefault("ignore_subpaths", d.IgnoreSubpaths)
	v.SetDefault("command_timeout", d.CommandTimeout.String())
	v.SetDefault("log_level", string(d.LogLevel))
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("watch", d.Watch)
	v.SetDefault("ui.color_scheme", string(d.UI.ColorScheme))
	v.SetDefault("ui.verbose", d.UI.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// resolvePath picks the config file: the explicit path, then the config
// directory, then the project-local file. An empty result means defaults only.
func resolvePath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Omit --config to use the default lookup").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	dir := opts.ConfigDirPath
	if dir == "" {
		var err error
		if dir, err = ConfigDir(); err != nil {
			return "", err
		}
	}
	if p := filepath.Join(dir, ConfigFileName); fileExists(p) {
		return p, nil
	}

	if p := filepath.Join(opts.WorkDir, LocalConfigFileName); fileExists(p) {
		return p, nil
	}
	return "", nil
}

// loadCUEIntoViper validates the file against #Config and merges it into v,
// keeping defaults for absent fields and letting the environment win.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	values, err := cueutil.Decode[map[string]any](configSchema, "#Config", data, cueutil.WithFilename(path))
	if err != nil {
		return err
	}
	if err := v.MergeConfigMap(*values); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// GenerateCUE renders cfg as a config file accepted by the schema.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// grouprun configuration\n\n")
	fmt.Fprintf(&sb, "root:      %q\n", cfg.Root)
	fmt.Fprintf(&sb, "marker:    %q\n", cfg.Marker)
	fmt.Fprintf(&sb, "extension: %q\n", cfg.Extension)
	fmt.Fprintf(&sb, "manifest:  %q\n", cfg.Manifest)
	fmt.Fprintf(&sb, "ignore_groups: %s\n", cueList(cfg.IgnoreGroups))
	fmt.Fprintf(&sb, "ignore_subpaths: %s\n", cueList(cfg.IgnoreSubpaths))
	if cfg.CommandTimeout == 0 {
		sb.WriteString("command_timeout: \"0\"\n")
	} else {
		fmt.Fprintf(&sb, "command_timeout: %q\n", cfg.CommandTimeout.String())
	}
	fmt.Fprintf(&sb, "log_level: %q\n", cfg.LogLevel)
	if cfg.LogFile != "" {
		fmt.Fprintf(&sb, "log_file: %q\n", cfg.LogFile)
	}
	fmt.Fprintf(&sb, "watch: %v\n", cfg.Watch)

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}

func cueList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
