// SPDX-License-Identifier: MPL-2.0

// Package catalog holds the Group -> Command registry and builds it from
// discovered groups.
//
// File organization:
//   - names.go: GroupName/CommandName value types and the configuration error
//   - catalog.go: Group, GroupSet, Command and the immutable Catalog
//   - builder.go: enumeration of command files per group (Builder.Build)
//   - describe.go: merging manifest descriptions (AttachDescriptions)
//   - holder.go: the active catalog with all-or-nothing rebuilds
//   - ignore.go: ignored-subpath matching
package catalog
