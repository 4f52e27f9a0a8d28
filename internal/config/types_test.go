// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"log/slog"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty root", func(c *Config) { c.Root = " " }, true},
		{"marker with slash", func(c *Config) { c.Marker = "a/b" }, true},
		{"dot-only extension", func(c *Config) { c.Extension = "." }, true},
		{"negative timeout", func(c *Config) { c.CommandTimeout = -1 }, true},
		{"bad pattern", func(c *Config) { c.IgnoreSubpaths = []string{"[x"} }, true},
		{"bad color", func(c *Config) { c.UI.ColorScheme = "neon" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error should wrap ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLogLevelSlog(t *testing.T) {
	t.Parallel()

	tests := map[LogLevel]slog.Level{
		LogLevelDebug: slog.LevelDebug,
		LogLevelInfo:  slog.LevelInfo,
		LogLevelWarn:  slog.LevelWarn,
		LogLevelError: slog.LevelError,
		"bogus":       slog.LevelInfo,
	}
	for level, want := range tests {
		if got := level.Slog(); got != want {
			t.Errorf("LogLevel(%q).Slog() = %v, want %v", level, got, want)
		}
	}
	if err := LogLevel("bogus").Validate(); !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("Validate() = %v, want ErrInvalidLogLevel", err)
	}
}
