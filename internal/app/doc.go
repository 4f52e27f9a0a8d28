// SPDX-License-Identifier: MPL-2.0

// Package app holds the Session, the context object that ties configuration,
// discovery, the command catalog and dispatch together. The CLI builds one
// Session per process and passes it to every surface instead of relying on
// package-level state.
package app
