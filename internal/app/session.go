// SPDX-License-Identifier: MPL-2.0

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/invowk/grouprun/internal/catalog"
	"github.com/invowk/grouprun/internal/config"
	"github.com/invowk/grouprun/internal/discovery"
	"github.com/invowk/grouprun/internal/dispatch"
	"github.com/invowk/grouprun/internal/issue"
	"github.com/invowk/grouprun/internal/manifest"
	"github.com/invowk/grouprun/internal/unit"
	"github.com/invowk/grouprun/internal/watch"
	"github.com/invowk/grouprun/pkg/types"
)

type (
	// Session owns everything a running grouprun process needs. Its catalog
	// is replaced only by successful rescans.
	Session struct {
		cfg          *config.Config
		logger       *slog.Logger
		holder       *catalog.Holder
		registry     *unit.Registry
		discoverer   *discovery.Discoverer
		builder      *catalog.Builder
		root         string
		manifestPath string

		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer

		mu          sync.Mutex
		diagnostics []types.Diagnostic
	}

	// Option configures a Session.
	Option func(*Session)

	// ScanReport summarizes one rescan. Diagnostics are filled in even when
	// the rescan fails.
	ScanReport struct {
		Root        string
		Groups      int
		Commands    int
		Generation  uint64
		Changed     bool
		Diagnostics []types.Diagnostic
	}
)

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRegistry supplies Go entry points that take precedence over scripts.
func WithRegistry(r *unit.Registry) Option {
	return func(s *Session) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithStdio sets the streams handed to commands.
func WithStdio(in io.Reader, out, errOut io.Writer) Option {
	return func(s *Session) {
		s.stdin, s.stdout, s.stderr = in, out, errOut
	}
}

// NewSession validates cfg and prepares discovery. The catalog stays empty
// until the first Rescan. A nil cfg means config.DefaultConfig.
func NewSession(cfg *config.Config, opts ...Option) (*Session, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(cfg.Source).
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", cfg.Root, err)
	}

	s := &Session{
		cfg:      cfg,
		logger:   slog.Default(),
		holder:   catalog.NewHolder(),
		registry: unit.NewRegistry(),
		root:     root,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	for _, opt := range opts {
		opt(s)
	}

	subpaths, err := catalog.NewSubpathMatcher(cfg.IgnoreSubpaths)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("compile ignore_subpaths").
			WithResource(cfg.Source).
			WithSuggestion("Use plain directory names or doublestar patterns such as '**/fixtures'").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}

	s.manifestPath = manifest.Locate(root, cfg.Manifest)
	s.discoverer = discovery.New(
		discovery.WithMarker(cfg.Marker),
		discovery.WithIgnore(cfg.IgnoreGroups...),
		discovery.WithLogger(s.logger),
	)
	s.builder = catalog.NewBuilder(
		catalog.WithMarker(cfg.Marker),
		catalog.WithExtension(cfg.Extension),
		catalog.WithIgnore(subpaths),
		catalog.WithBinder(unit.NewBinder(unit.WithRegistry(s.registry))),
		catalog.WithLogger(s.logger),
	)
	return s, nil
}

// Config returns the effective configuration.
func (s *Session) Config() *config.Config { return s.cfg }

// Logger returns the session logger.
func (s *Session) Logger() *slog.Logger { return s.logger }

// Root returns the absolute discovery root.
func (s *Session) Root() string { return s.root }

// ManifestPath returns the manifest file the session reads descriptions from.
func (s *Session) ManifestPath() string { return s.manifestPath }

// Registry returns the Go entry point registry.
func (s *Session) Registry() *unit.Registry { return s.registry }

// Catalog returns the catalog in effect.
func (s *Session) Catalog() *catalog.Catalog { return s.holder.Current() }

// Generation counts successful rescans.
func (s *Session) Generation() uint64 { return s.holder.Generation() }

// Diagnostics returns the diagnostics of the most recent rescan.
func (s *Session) Diagnostics() []types.Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.diagnostics)
}

// Rescan discovers groups, builds the catalog and attaches manifest
// descriptions. The new catalog replaces the current one only when every
// step succeeds; a configuration error leaves the previous catalog active.
func (s *Session) Rescan(ctx context.Context) (ScanReport, error) {
	report := ScanReport{Root: s.root}
	previous := s.holder.Current()

	err := s.holder.Rebuild(ctx, func(ctx context.Context) (*catalog.Catalog, error) {
		groups, diags := s.discoverer.Discover(ctx, s.root)
		report.Diagnostics = append(report.Diagnostics, diags...)

		built, diags, err := s.builder.Build(ctx, groups)
		report.Diagnostics = append(report.Diagnostics, diags...)
		if err != nil {
			return nil, s.buildError(err)
		}

		descriptions, diags := manifest.Resolve(s.manifestPath)
		report.Diagnostics = append(report.Diagnostics, diags...)
		return catalog.AttachDescriptions(built, descriptions), nil
	})

	s.mu.Lock()
	s.diagnostics = report.Diagnostics
	s.mu.Unlock()

	for _, d := range report.Diagnostics {
		s.logDiagnostic(d)
	}

	current := s.holder.Current()
	report.Generation = s.holder.Generation()
	report.Groups = len(current.GroupNames())
	report.Commands = current.Len()
	if err != nil {
		s.logger.Error("rescan failed; keeping previous catalog", "error", err)
		return report, err
	}
	report.Changed = !previous.Equal(current)
	s.logger.Debug("rescan complete",
		"groups", report.Groups, "commands", report.Commands, "changed", report.Changed)
	return report, nil
}

func (s *Session) buildError(err error) error {
	var cfgErr *catalog.ConfigurationError
	if !errors.As(err, &cfgErr) {
		return err
	}
	ec := issue.NewErrorContext().
		WithOperation("build command catalog").
		WithResource(cfgErr.Path).
		Wrap(err)
	if errors.As(err, new(*catalog.CommandNameTooLongError)) {
		ec.WithSuggestion(fmt.Sprintf("Rename the file so the command name has at most %d characters", catalog.MaxCommandNameLength)).
			WithIssue(issue.CommandNameTooLongId)
	}
	return ec.BuildError()
}

func (s *Session) logDiagnostic(d types.Diagnostic) {
	attrs := []any{"code", d.Code}
	if d.Path != "" {
		attrs = append(attrs, "path", d.Path)
	}
	switch d.Severity {
	case types.SeverityError:
		s.logger.Error(d.Message, attrs...)
	case types.SeverityWarning:
		s.logger.Warn(d.Message, attrs...)
	default:
		s.logger.Debug(d.Message, attrs...)
	}
}

// Dispatcher returns a dispatcher that reads the session's live catalog, so
// later rescans are visible to it.
func (s *Session) Dispatcher(chooser dispatch.Chooser) *dispatch.Dispatcher {
	return dispatch.New(s.holder,
		dispatch.WithChooser(chooser),
		dispatch.WithLogger(s.logger),
		dispatch.WithTimeout(s.cfg.CommandTimeout),
		dispatch.WithStdio(s.stdin, s.stdout, s.stderr),
	)
}

// Watcher returns a watcher over the discovery root that marks the catalog
// stale when scripts, markers or the manifest change.
func (s *Session) Watcher() (*watch.Watcher, error) {
	ext := s.cfg.Extension
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	patterns := watch.RelevantPatterns(ext, s.cfg.Marker, "")
	if rel, err := filepath.Rel(s.root, s.manifestPath); err == nil && filepath.IsLocal(rel) {
		patterns = append(patterns, filepath.ToSlash(rel))
	}
	return watch.New(watch.Options{
		Root:     s.root,
		Patterns: patterns,
		Logger:   s.logger,
	})
}
