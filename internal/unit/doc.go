// SPDX-License-Identifier: MPL-2.0

// Package unit defines executable command units and binds discovered command
// files to them.
//
// A unit is resolved lazily: catalog construction only records which unit
// backs a (group, command) pair, and the dispatcher asks the unit for its
// entry point at invocation time. Two kinds of units exist:
//   - Go units, registered in a Registry under their (group, command) key
//   - script units, shell files interpreted in-process by mvdan/sh whose entry
//     point is a top-level function named "run"
//
// The Binder prefers a registered Go unit over the script file, so an embedder
// can replace any script with compiled code without renaming anything.
package unit
