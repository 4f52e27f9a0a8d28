// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/invowk/grouprun/internal/unit"
	"github.com/invowk/grouprun/pkg/types"
)

const (
	// DefaultMarker is the presence-only file that opts a directory into discovery.
	DefaultMarker = ".cmdgroup"
	// DefaultExtension is the file extension of command units.
	DefaultExtension = ".sh"
)

type (
	// UnitBinder turns a command file into an executable unit.
	UnitBinder interface {
		Bind(target unit.Target) unit.Unit
	}

	// Builder enumerates the command files of discovered groups.
	Builder struct {
		marker    string
		extension string
		ignore    *SubpathMatcher
		binder    UnitBinder
		logger    *slog.Logger
	}

	// Option configures a Builder.
	Option func(*Builder)
)

// WithMarker sets the namespace marker file name, which is never a command.
func WithMarker(name string) Option {
	return func(b *Builder) { b.marker = name }
}

// WithExtension sets the command file extension (with or without the leading dot).
func WithExtension(ext string) Option {
	return func(b *Builder) {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		b.extension = ext
	}
}

// WithIgnore sets the subpath matcher used to prune directories.
func WithIgnore(m *SubpathMatcher) Option {
	return func(b *Builder) { b.ignore = m }
}

// WithBinder sets the unit binder.
func WithBinder(binder UnitBinder) Option {
	return func(b *Builder) { b.binder = binder }
}

// WithLogger sets the logger used for build tracing.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// NewBuilder creates a Builder. Without options it uses DefaultMarker,
// DefaultExtension, DefaultIgnoreSubpaths and a script-only binder.
func NewBuilder(opts ...Option) *Builder {
	defaultIgnore, _ := NewSubpathMatcher(DefaultIgnoreSubpaths)
	b := &Builder{
		marker:    DefaultMarker,
		extension: DefaultExtension,
		ignore:    defaultIgnore,
		binder:    unit.NewBinder(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build enumerates the commands of every group and returns a catalog in which
// every group of groups is present, possibly with no commands. Descriptions
// are left empty; see AttachDescriptions.
//
// An oversize command name anywhere aborts the whole build with a
// *ConfigurationError and no catalog.
func (b *Builder) Build(ctx context.Context, groups GroupSet) (*Catalog, []types.Diagnostic, error) {
	cat := newCatalog(groups)
	var diagnostics []types.Diagnostic

	groupDirs := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		groupDirs[filepath.Clean(g.Dir)] = struct{}{}
	}

	for _, name := range groups.Names() {
		if err := ctx.Err(); err != nil {
			return nil, diagnostics, fmt.Errorf("catalog build canceled: %w", err)
		}

		g := groups[name]
		b.logger.Debug("processing group", "group", name, "dir", g.Dir)

		diags, err := b.enumerate(ctx, g, groupDirs, cat.groups[name])
		diagnostics = append(diagnostics, diags...)
		if err != nil {
			return nil, diagnostics, err
		}
	}

	b.logger.Debug("catalog built", "groups", len(groups), "commands", cat.Len())
	return cat, diagnostics, nil
}

func (b *Builder) enumerate(ctx context.Context, g Group, groupDirs map[string]struct{}, entry *groupEntry) ([]types.Diagnostic, error) {
	var diagnostics []types.Diagnostic
	root := filepath.Clean(g.Dir)

	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return append(diagnostics, types.Diagnostic{
			Severity: types.SeverityWarning,
			Code:     "group_dir_missing",
			Message:  fmt.Sprintf("group %q directory is no longer available; it has no commands", g.Name),
			Path:     root,
			Cause:    err,
		}), nil
	}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			diagnostics = append(diagnostics, types.Diagnostic{
				Severity: types.SeverityWarning,
				Code:     "command_scan_skipped",
				Message:  fmt.Sprintf("skipping unreadable path %s: %v", path, err),
				Path:     path,
				Cause:    err,
			})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return filepath.SkipDir
			}
			if b.ignore.Match(filepath.ToSlash(rel)) {
				return filepath.SkipDir
			}
			// Nested groups own their commands.
			if _, nested := groupDirs[filepath.Clean(path)]; nested {
				return filepath.SkipDir
			}
			return nil
		}

		base := d.Name()
		if base == b.marker || filepath.Ext(base) != b.extension {
			return nil
		}

		name := CommandName(strings.TrimSuffix(base, b.extension))
		if vErr := name.Validate(); vErr != nil {
			if errors.Is(vErr, ErrInvalidCommandName) {
				diagnostics = append(diagnostics, types.Diagnostic{
					Severity: types.SeverityWarning,
					Code:     "command_name_empty",
					Message:  fmt.Sprintf("skipping %s: file name yields an empty command name", path),
					Path:     path,
				})
				return nil
			}
			return &ConfigurationError{Group: g.Name, Path: path, Err: vErr}
		}

		if existing, dup := entry.commands[name]; dup {
			diagnostics = append(diagnostics, types.Diagnostic{
				Severity: types.SeverityWarning,
				Code:     "duplicate_command",
				Message:  fmt.Sprintf("command %q in group %q is defined more than once; keeping %s", name, g.Name, existing.Path),
				Path:     path,
			})
			return nil
		}

		target := unit.Target{Group: string(g.Name), Command: string(name), Path: path, Dir: root}
		entry.commands[name] = Command{
			Name:  name,
			Group: g.Name,
			Path:  path,
			Unit:  b.binder.Bind(target),
		}
		return nil
	})
	if walkErr != nil {
		var cfgErr *ConfigurationError
		if errors.As(walkErr, &cfgErr) {
			return diagnostics, walkErr
		}
		return diagnostics, fmt.Errorf("failed to enumerate commands of group %q: %w", g.Name, walkErr)
	}
	return diagnostics, nil
}
