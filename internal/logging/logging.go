// SPDX-License-Identifier: MPL-2.0

// Package logging builds the slog.Logger used across grouprun. Records are
// rendered by charmbracelet/log: styled text on the terminal and, when a log
// file is configured, logfmt lines appended to that file.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Prefix tags every terminal record.
const Prefix = "grouprun"

type (
	// Options configures New.
	Options struct {
		Level slog.Level
		// File, when set, receives every record at Level or above in logfmt.
		File string
		// Stderr is the terminal destination; os.Stderr when nil.
		Stderr io.Writer
	}

	// fanout sends each record to every handler that accepts it.
	fanout []slog.Handler
)

// New returns the logger and a close function releasing the log file.
func New(opts Options) (*slog.Logger, func() error, error) {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	term := log.NewWithOptions(stderr, log.Options{
		Level:           log.Level(opts.Level),
		Prefix:          Prefix,
		ReportTimestamp: opts.Level <= slog.LevelDebug,
	})

	if opts.File == "" {
		return slog.New(term), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	file := log.NewWithOptions(f, log.Options{
		Level:           log.Level(opts.Level),
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02T15:04:05.000Z07:00",
		Formatter:       log.LogfmtFormatter,
	})

	return slog.New(fanout{term, file}), f.Close, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
