// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme selects the terminal palette.
	ColorScheme string

	// LogLevel is the minimum level of emitted log records.
	LogLevel string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// InvalidConfigError collects every field problem of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// UIConfig holds presentation settings.
	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		Verbose     bool        `json:"verbose" mapstructure:"verbose"`
	}

	// Config is the effective grouprun configuration.
	Config struct {
		Root           string        `json:"root" mapstructure:"root"`
		Marker         string        `json:"marker" mapstructure:"marker"`
		Extension      string        `json:"extension" mapstructure:"extension"`
		Manifest       string        `json:"manifest" mapstructure:"manifest"`
		IgnoreGroups   []string      `json:"ignore_groups" mapstructure:"ignore_groups"`
		IgnoreSubpaths []string      `json:"ignore_subpaths" mapstructure:"ignore_subpaths"`
		CommandTimeout time.Duration `json:"command_timeout" mapstructure:"command_timeout"`
		LogLevel       LogLevel      `json:"log_level" mapstructure:"log_level"`
		LogFile        string        `json:"log_file" mapstructure:"log_file"`
		Watch          bool          `json:"watch" mapstructure:"watch"`
		UI             UIConfig      `json:"ui" mapstructure:"ui"`

		// Source is the file the configuration was read from; empty when only
		// defaults and environment applied.
		Source string `json:"-" mapstructure:"-"`
	}
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Root:           ".",
		Marker:         ".cmdgroup",
		Extension:      ".sh",
		Manifest:       "commands.cue",
		IgnoreGroups:   []string{"lib", "tests", "shared", "internal"},
		IgnoreSubpaths: []string{"lib", "tests"},
		CommandTimeout: 0,
		LogLevel:       LogLevelInfo,
		LogFile:        "",
		Watch:          false,
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}

// Validate checks constraints the schema cannot see once environment
// overrides have been applied.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Root) == "" {
		errs = append(errs, errors.New("root must not be empty"))
	}
	if c.Marker == "" || strings.ContainsAny(c.Marker, `/\`) {
		errs = append(errs, fmt.Errorf("marker %q must be a plain file name", c.Marker))
	}
	if strings.Trim(c.Extension, ".") == "" {
		errs = append(errs, fmt.Errorf("extension %q must not be empty", c.Extension))
	}
	if c.CommandTimeout < 0 {
		errs = append(errs, fmt.Errorf("command_timeout %s must not be negative", c.CommandTimeout))
	}
	for _, p := range c.IgnoreSubpaths {
		if !doublestar.ValidatePattern(p) {
			errs = append(errs, fmt.Errorf("ignore_subpaths entry %q is not a valid pattern", p))
		}
	}
	if err := c.LogLevel.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// Validate returns nil for auto, dark and light.
func (cs ColorScheme) Validate() error {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: cs}
	}
}

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// Validate returns nil for the four supported levels.
func (l LogLevel) Validate() error {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return &InvalidLogLevelError{Value: l}
	}
}

// Slog maps the level to its slog equivalent; unknown levels map to info.
func (l LogLevel) Slog() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Error implements the error interface.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }
