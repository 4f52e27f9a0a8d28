// SPDX-License-Identifier: MPL-2.0

// Package repl implements the interactive shell. Builtins (help, groups,
// use, rescan, exit) are handled here and every other line goes to the
// dispatcher. Disambiguation menus read from the same line editor as the
// main prompt.
package repl
