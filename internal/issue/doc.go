// SPDX-License-Identifier: MPL-2.0

// Package issue carries user-facing error context and the catalog of
// markdown help pages shown by "grouprun explain".
//
// ActionableError pairs a failed operation with the resource involved, a list
// of remediation hints, and optionally the Id of a help page. The CLI renders
// the hints under the error line and points at the page.
package issue
