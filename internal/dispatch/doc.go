// SPDX-License-Identifier: MPL-2.0

// Package dispatch turns a line of user input into a command invocation.
//
// A Dispatcher parses the line with shell quoting rules, resolves the command
// name against the active catalog, asks a Chooser when several groups define
// the command, and runs the unit's entry point in isolation. Every outcome is
// reported as a Result; nothing a command does can stop the dispatcher.
package dispatch
