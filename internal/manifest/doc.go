// SPDX-License-Identifier: MPL-2.0

// Package manifest reads the command description manifest.
//
// The manifest is a CUE (or JSON, or TOML) document listing, per group, the
// commands and their one-line descriptions. It is optional: Resolve never
// fails, and any problem loading it leaves every command with the
// "description not found" sentinel.
package manifest
