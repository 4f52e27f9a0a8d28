// SPDX-License-Identifier: MPL-2.0

// Package discovery finds command groups: directories below a root that carry
// the namespace marker file and whose name is not ignored.
//
// Discovery is read-only. Problems such as a missing root or unreadable
// subdirectories are returned as structured diagnostics rather than printed,
// so the CLI layer decides how to render them.
package discovery
