// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the grouprun command line interface.
package cmd
