// SPDX-License-Identifier: MPL-2.0

// Package watch marks the command catalog stale when files under the
// discovery root change.
//
// Events are filtered through doublestar patterns and coalesced over a debounce
// window. The watcher never rebuilds the catalog itself: it raises a stale flag
// that the interactive loop consumes between inputs, so dispatch stays on a
// single goroutine.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 300 * time.Millisecond

// ErrAlreadyRunning is returned by Run when the watcher was started before.
var ErrAlreadyRunning = errors.New("watch: Run called more than once")

// defaultIgnores are noisy paths that never affect discovery.
var defaultIgnores = []string{
	"**/.git/**",
	"**/.git",
	"**/__pycache__/**",
	"**/*.swp",
	"**/*.swo",
	"**/*~",
	"**/.DS_Store",
}

type (
	// Options configures a Watcher.
	Options struct {
		// Root is the discovery root. Required.
		Root string
		// Patterns select files whose changes make the catalog stale. Use
		// RelevantPatterns to derive them from the discovery settings. An empty
		// slice treats every non-ignored file as relevant.
		Patterns []string
		// Ignore holds extra doublestar patterns merged with the defaults.
		Ignore   []string
		Debounce time.Duration
		Logger   *slog.Logger
		// OnStale runs after each debounced batch, once the flag is raised.
		OnStale func(ctx context.Context, changed []string)
	}

	// Watcher raises a stale flag after relevant filesystem changes.
	Watcher struct {
		opts     Options
		fsw      *fsnotify.Watcher
		ignores  []string
		logger   *slog.Logger
		debounce time.Duration
		root     string
		started  atomic.Bool

		stale   atomic.Bool
		mu      sync.Mutex
		changed map[string]struct{}
	}
)

// RelevantPatterns returns the globs that matter for command discovery: script
// files with the given extension, group marker files, and the manifest.
func RelevantPatterns(extension, marker, manifest string) []string {
	var out []string
	if extension != "" {
		out = append(out, "**/*"+extension)
	}
	if marker != "" {
		out = append(out, "**/"+marker)
	}
	if manifest != "" {
		out = append(out, filepath.ToSlash(manifest))
	}
	return out
}

// Validate checks the options without touching the filesystem.
func (o Options) Validate() error {
	var errs []error
	if o.Root == "" {
		errs = append(errs, errors.New("watch: root must not be empty"))
	}
	if o.Debounce < 0 {
		errs = append(errs, fmt.Errorf("watch: debounce %s must not be negative", o.Debounce))
	}
	errs = append(errs, validatePatterns(o.Patterns, "watch"), validatePatterns(o.Ignore, "ignore"))
	return errors.Join(errs...)
}

// New registers every non-ignored directory under opts.Root.
func New(opts Options) (*Watcher, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve root: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	debounce := opts.Debounce
	if debounce == 0 {
		debounce = defaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		opts:     opts,
		fsw:      fsw,
		ignores:  slices.Concat(defaultIgnores, opts.Ignore),
		logger:   logger.With("component", "watch"),
		debounce: debounce,
		root:     root,
		changed:  make(map[string]struct{}),
	}
	if err := w.addDirectories(); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			w.logger.Warn("close after init failure", "error", closeErr)
		}
		return nil, err
	}
	return w, nil
}

// Root returns the absolute directory being watched.
func (w *Watcher) Root() string { return w.root }

// Close releases a watcher that was never run. Run closes its own resources.
func (w *Watcher) Close() error {
	if !w.started.CompareAndSwap(false, true) {
		return nil
	}
	return w.fsw.Close()
}

// Stale reports whether a change was seen since the last Take.
func (w *Watcher) Stale() bool { return w.stale.Load() }

// Take clears the stale flag and returns the sorted relative paths that
// changed. ok is false when nothing changed.
func (w *Watcher) Take() (changed []string, ok bool) {
	if !w.stale.Swap(false) {
		return nil, false
	}
	w.mu.Lock()
	changed = slices.Sorted(maps.Keys(w.changed))
	clear(w.changed)
	w.mu.Unlock()
	return changed, true
}

// Run processes events until ctx is cancelled. It returns nil on
// cancellation and an error when fsnotify fails irrecoverably.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		busy    atomic.Bool
	)

	flush := func() {
		if ctx.Err() != nil {
			return
		}
		if !busy.CompareAndSwap(false, true) {
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer busy.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		batch := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		w.mark(batch)
		w.logger.Debug("catalog marked stale", "changed", batch)
		if w.opts.OnStale != nil {
			w.opts.OnStale(ctx, batch)
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("close fsnotify", "error", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: event channel closed unexpectedly")
			}
			rel, ok := w.relevant(evt)
			if !ok {
				continue
			}
			mu.Lock()
			pending[rel] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, flush)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: error channel closed unexpectedly")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			w.logger.Warn("fsnotify error", "error", err)
		}
	}
}

func (w *Watcher) mark(batch []string) {
	w.mu.Lock()
	for _, p := range batch {
		w.changed[p] = struct{}{}
	}
	w.mu.Unlock()
	w.stale.Store(true)
}

// relevant filters an event and returns its root-relative slash path.
// Removals and renames always count since the vanished path may have been a
// group directory. New directories are registered and count as well.
func (w *Watcher) relevant(evt fsnotify.Event) (string, bool) {
	rel, err := filepath.Rel(w.root, evt.Name)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if w.isIgnored(rel) {
		return "", false
	}
	if evt.Has(fsnotify.Create) && w.maybeAddDir(evt.Name, rel) {
		return rel, true
	}
	if evt.Has(fsnotify.Remove) || evt.Has(fsnotify.Rename) {
		return rel, true
	}
	if evt.Op == fsnotify.Chmod {
		return "", false
	}
	return rel, w.matches(rel)
}

func (w *Watcher) addDirectories() error {
	err := filepath.WalkDir(w.root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == w.root {
				return walkErr
			}
			w.logger.Debug("skipping unreadable path", "path", path, "error", walkErr)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return nil //nolint:nilerr // unreachable for paths under root
		}
		if path != w.root && w.isIgnored(filepath.ToSlash(rel)) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch: walk %s: %w", w.root, err)
	}
	return nil
}

// maybeAddDir registers a directory created after startup. It reports
// whether path was a directory.
func (w *Watcher) maybeAddDir(path, rel string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	if w.isIgnored(rel) {
		return false
	}
	if err := w.fsw.Add(path); err != nil {
		w.logger.Warn("watch new directory", "path", path, "error", err)
	}
	return true
}

func (w *Watcher) isIgnored(rel string) bool {
	return matchAny(w.ignores, rel)
}

func (w *Watcher) matches(rel string) bool {
	return len(w.opts.Patterns) == 0 || matchAny(w.opts.Patterns, rel)
}

func matchAny(patterns []string, rel string) bool {
	for _, pat := range patterns {
		if ok, err := doublestar.Match(pat, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// DefaultIgnores returns a copy of the built-in ignore patterns.
func DefaultIgnores() []string {
	return slices.Clone(defaultIgnores)
}

func validatePatterns(patterns []string, label string) error {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("watch: invalid %s pattern %q", label, pat)
		}
	}
	return nil
}
