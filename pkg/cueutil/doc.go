// SPDX-License-Identifier: MPL-2.0

// Package cueutil decodes user documents against embedded CUE schemas.
//
// Both the configuration file and the command manifest go through the same
// flow: compile the schema, compile the document, unify it with a root
// definition, validate, and decode into a Go value. Failures are reported as
// a *DocumentError whose issues carry JSON-style paths such as
// "groups[0].commands[1].name".
//
//	//go:embed manifest_schema.cue
//	var schema []byte
//
//	m, err := cueutil.Decode[Manifest](schema, "#Manifest", data,
//	    cueutil.WithFilename("commands.cue"))
package cueutil
