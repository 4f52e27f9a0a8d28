// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Decode unifies data with the definition def of schema and decodes the
// result into a new T. Schema problems are programming errors and are
// reported as plain errors; problems with data are reported as *DocumentError.
func Decode[T any](schema []byte, def string, data []byte, opts ...Option) (*T, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if size := int64(len(data)); size > o.maxSize {
		return nil, &DocumentError{File: o.filename, Issues: []Issue{{
			Message: fmt.Sprintf("file size %d bytes exceeds maximum %d bytes", size, o.maxSize),
		}}}
	}

	cctx := cuecontext.New()

	schemaValue := cctx.CompileBytes(schema, cue.Filename("schema.cue"))
	if err := schemaValue.Err(); err != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", err)
	}
	root := schemaValue.LookupPath(cue.ParsePath(def))
	if err := root.Err(); err != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", def, err)
	}

	doc := cctx.CompileBytes(data, cue.Filename(o.filename))
	if err := doc.Err(); err != nil {
		return nil, FormatError(err, o.filename)
	}

	unified := root.Unify(doc)
	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return nil, FormatError(err, o.filename)
	}

	out := new(T)
	if err := unified.Decode(out); err != nil {
		return nil, FormatError(err, o.filename)
	}
	return out, nil
}
