// SPDX-License-Identifier: MPL-2.0

// Package render turns catalogs and diagnostics into terminal output: the
// fixed-width help table, group listings, and markdown tables rendered
// through glamour.
package render
