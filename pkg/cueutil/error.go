// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// ErrInvalidDocument is the sentinel wrapped by DocumentError.
var ErrInvalidDocument = errors.New("invalid document")

type (
	// Issue is one problem found in a document.
	Issue struct {
		// Path is the JSON-style location, e.g. "groups[0].name". Empty for
		// document-level problems such as syntax errors.
		Path    string
		Message string
	}

	// DocumentError reports every issue found while decoding a document.
	DocumentError struct {
		File   string
		Issues []Issue
	}
)

// Error implements the error interface.
func (e *DocumentError) Error() string {
	lines := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		if is.Path != "" {
			lines = append(lines, is.Path+": "+is.Message)
		} else {
			lines = append(lines, is.Message)
		}
	}
	switch len(lines) {
	case 0:
		return e.File + ": invalid document"
	case 1:
		return e.File + ": " + lines[0]
	default:
		return fmt.Sprintf("%s: validation failed:\n  %s", e.File, strings.Join(lines, "\n  "))
	}
}

// Unwrap returns ErrInvalidDocument for errors.Is() compatibility.
func (e *DocumentError) Unwrap() error { return ErrInvalidDocument }

// FormatError converts err into a *DocumentError for file. CUE errors are
// split into one issue each with their path; other errors become a single
// path-less issue. A nil err yields nil.
func FormatError(err error, file string) error {
	if err == nil {
		return nil
	}

	docErr := &DocumentError{File: file}
	cueErrs := cueerrors.Errors(err)
	if len(cueErrs) == 0 {
		docErr.Issues = []Issue{{Message: err.Error()}}
		return docErr
	}

	for _, ce := range cueErrs {
		p := JSONPath(ce.Path())
		format, args := ce.Msg()
		msg := fmt.Sprintf(format, args...)
		docErr.Issues = append(docErr.Issues, Issue{Path: p, Message: msg})
	}
	return docErr
}

// JSONPath renders CUE path selectors as a JSON-style path: numeric
// selectors become indexes, everything else is dot-joined.
func JSONPath(selectors []string) string {
	var b strings.Builder
	for i, sel := range selectors {
		if i > 0 && isIndex(sel) {
			b.WriteString("[" + sel + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(sel)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
