// SPDX-License-Identifier: MPL-2.0

// Package config loads grouprun settings with Viper, using CUE as the file
// format.
//
// The file is validated against an embedded schema (config_schema.cue) before
// it is merged over the built-in defaults. Environment variables prefixed with
// GROUPRUN_ override both, e.g. GROUPRUN_ROOT or GROUPRUN_UI_VERBOSE.
package config
