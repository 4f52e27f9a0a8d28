// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/invowk/grouprun/internal/catalog"
	"github.com/invowk/grouprun/pkg/types"
)

// DefaultIgnoreGroups are directory names that are never groups, compared
// case-insensitively.
var DefaultIgnoreGroups = []string{"lib", "tests", "shared", "internal"}

type (
	// Discoverer walks a root directory looking for groups.
	Discoverer struct {
		marker string
		ignore map[string]struct{}
		logger *slog.Logger
	}

	// Option configures a Discoverer.
	Option func(*Discoverer)
)

// WithMarker sets the namespace marker file name.
func WithMarker(name string) Option {
	return func(d *Discoverer) {
		if name != "" {
			d.marker = name
		}
	}
}

// WithIgnore replaces the ignored directory names. Names are case-folded.
func WithIgnore(names ...string) Option {
	return func(d *Discoverer) {
		d.ignore = foldSet(names)
	}
}

// WithLogger sets the logger used for discovery tracing.
func WithLogger(l *slog.Logger) Option {
	return func(d *Discoverer) {
		if l != nil {
			d.logger = l
		}
	}
}

// New creates a Discoverer using catalog.DefaultMarker and DefaultIgnoreGroups
// unless overridden.
func New(opts ...Option) *Discoverer {
	d := &Discoverer{
		marker: catalog.DefaultMarker,
		ignore: foldSet(DefaultIgnoreGroups),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Discover returns every group below root. The root itself is never a group.
// Directories are visited in lexical order; when two directories share a
// name, the first one wins and the later one is reported as duplicate_group.
//
// A missing or non-directory root yields an empty set and an error-severity
// diagnostic. Discover never modifies the filesystem.
func (d *Discoverer) Discover(ctx context.Context, root string) (catalog.GroupSet, []types.Diagnostic) {
	groups := make(catalog.GroupSet)
	var diagnostics []types.Diagnostic

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return groups, append(diagnostics, failure(CodeRootNotFound, root, err,
			"cannot resolve discovery root %q: %v", root, err))
	}

	info, err := os.Stat(absRoot)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return groups, append(diagnostics, failure(CodeRootNotFound, absRoot, err,
			"discovery root %s does not exist", absRoot))
	case err != nil:
		return groups, append(diagnostics, failure(CodeRootNotFound, absRoot, err,
			"cannot access discovery root %s: %v", absRoot, err))
	case !info.IsDir():
		return groups, append(diagnostics, failure(CodeRootNotDirectory, absRoot, nil,
			"discovery root %s is not a directory", absRoot))
	}

	d.logger.Debug("discovering groups", "root", absRoot, "marker", d.marker)

	walkErr := filepath.WalkDir(absRoot, func(path string, entry fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == absRoot {
				return err
			}
			diagnostics = append(diagnostics, warning(CodeDirUnreadable, path, err,
				"skipping unreadable directory %s: %v", path, err))
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.IsDir() || path == absRoot {
			return nil
		}

		name := entry.Name()
		// An ignored name disqualifies the directory itself, not its descendants.
		if _, ignored := d.ignore[strings.ToLower(name)]; ignored {
			return nil
		}
		if !d.hasMarker(path) {
			return nil
		}

		groupName := catalog.GroupName(name)
		if first, dup := groups[groupName]; dup {
			diagnostics = append(diagnostics, warning(CodeDuplicateGroup, path, nil,
				"group %q already discovered at %s; ignoring %s", name, first.Dir, path))
			return nil
		}
		groups[groupName] = catalog.Group{Name: groupName, Dir: path}
		d.logger.Debug("group discovered", "group", name, "dir", path)
		return nil
	})
	if walkErr != nil {
		diagnostics = append(diagnostics, failure(CodeDirUnreadable, absRoot, walkErr,
			"discovery of %s stopped: %v", absRoot, walkErr))
	}

	return groups, diagnostics
}

func (d *Discoverer) hasMarker(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, d.marker))
	return err == nil && !info.IsDir()
}

func foldSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			set[strings.ToLower(n)] = struct{}{}
		}
	}
	return set
}
