// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/invowk/grouprun/internal/app"
	"github.com/invowk/grouprun/internal/config"
	"github.com/invowk/grouprun/internal/discovery"
	"github.com/invowk/grouprun/internal/issue"
	"github.com/invowk/grouprun/internal/logging"
	"github.com/invowk/grouprun/internal/render"
	"github.com/invowk/grouprun/internal/unit"
	"github.com/invowk/grouprun/pkg/types"
)

type (
	// App is the composition root of the CLI. Every cobra handler receives
	// it and builds sessions through it.
	App struct {
		Config   config.Provider
		Registry *unit.Registry

		stdin     io.Reader
		stdout    io.Writer
		stderr    io.Writer
		configDir string
		flags     rootFlags
	}

	// Dependencies are the injection points for NewApp. Nil fields get
	// production defaults.
	Dependencies struct {
		Config   config.Provider
		Registry *unit.Registry
		Stdin    io.Reader
		Stdout   io.Writer
		Stderr   io.Writer
		// ConfigDir overrides the platform config directory.
		ConfigDir string
	}

	// rootFlags are the persistent flags shared by every subcommand.
	rootFlags struct {
		configFile string
		root       string
		manifest   string
		logLevel   string
		verbose    bool
	}
)

// NewApp creates an App.
func NewApp(deps Dependencies) *App {
	a := &App{
		Config:    deps.Config,
		Registry:  deps.Registry,
		stdin:     deps.Stdin,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
		configDir: deps.ConfigDir,
	}
	if a.Config == nil {
		a.Config = config.NewProvider()
	}
	if a.Registry == nil {
		a.Registry = unit.NewRegistry()
	}
	if a.stdin == nil {
		a.stdin = os.Stdin
	}
	if a.stdout == nil {
		a.stdout = os.Stdout
	}
	if a.stderr == nil {
		a.stderr = os.Stderr
	}
	return a
}

// loadConfig reads configuration and applies command line overrides.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{
		ConfigFilePath: a.flags.configFile,
		ConfigDirPath:  a.configDir,
	})
	if err != nil {
		return nil, err
	}
	if a.flags.root != "" {
		cfg.Root = a.flags.root
	}
	if a.flags.manifest != "" {
		cfg.Manifest = a.flags.manifest
	}
	if a.flags.logLevel != "" {
		level := config.LogLevel(a.flags.logLevel)
		if err := level.Validate(); err != nil {
			return nil, &ExitError{Code: types.ExitConfiguration, Err: fmt.Errorf("--log-level: %w", err)}
		}
		cfg.LogLevel = level
	}
	if a.flags.verbose {
		cfg.UI.Verbose = true
		cfg.LogLevel = config.LogLevelDebug
	}
	return cfg, nil
}

// openSession loads configuration, sets up logging and performs the first
// rescan. The returned close function releases the log file.
func (a *App) openSession(ctx context.Context) (*app.Session, app.ScanReport, func(), error) {
	noop := func() {}
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return nil, app.ScanReport{}, noop, err
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:  cfg.LogLevel.Slog(),
		File:   cfg.LogFile,
		Stderr: a.stderr,
	})
	if err != nil {
		return nil, app.ScanReport{}, noop, err
	}
	release := func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(a.stderr, "close log file: %v\n", err)
		}
	}

	sess, err := app.NewSession(cfg,
		app.WithLogger(logger),
		app.WithRegistry(a.Registry),
		app.WithStdio(a.stdin, a.stdout, a.stderr),
	)
	if err != nil {
		release()
		return nil, app.ScanReport{}, noop, err
	}

	report, err := sess.Rescan(ctx)
	render.Diagnostics(a.stderr, report.Diagnostics, a.theme(), cfg.UI.Verbose)
	if types.HasCode(report.Diagnostics, discovery.CodeRootNotFound) {
		fmt.Fprintf(a.stderr, "Run 'grouprun explain %s' for details.\n", issue.Get(issue.RootNotFoundId).Slug())
	}
	if err != nil {
		release()
		return nil, report, noop, &ExitError{Code: exitCodeFor(err), Err: err}
	}
	return sess, report, release, nil
}

func (a *App) theme() render.Theme {
	return render.DefaultTheme()
}

func (a *App) verbose(cfg *config.Config) bool {
	return a.flags.verbose || (cfg != nil && cfg.UI.Verbose)
}
