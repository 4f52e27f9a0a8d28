// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

type (
	// Request is a parsed input line.
	Request struct {
		Command string
		Args    []string
	}

	// ParseError reports input that could not be tokenized, such as an
	// unterminated quote or a shell operator.
	ParseError struct {
		Input string
		Err   error
	}
)

// IsEmpty reports whether the request has no command.
func (r Request) IsEmpty() bool { return r.Command == "" }

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %v", e.Input, e.Err)
}

// Unwrap returns the underlying syntax error.
func (e *ParseError) Unwrap() error { return e.Err }

// Parse splits line into a command and its arguments using shell quoting:
// single quotes, double quotes and backslash escapes group and protect
// characters, and are removed. Nothing is expanded: "$HOME", "*.txt" and
// "$(date)" reach the command literally. A blank line yields an empty Request.
func Parse(line string) (Request, error) {
	if strings.TrimSpace(line) == "" {
		return Request{}, nil
	}

	var words []string
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	for w, err := range parser.WordsSeq(strings.NewReader(line)) {
		if err != nil {
			return Request{}, &ParseError{Input: line, Err: err}
		}
		words = append(words, literal(line, w))
	}
	if len(words) == 0 {
		return Request{}, nil
	}
	return Request{Command: words[0], Args: words[1:]}, nil
}

// literal returns the word after quote removal, keeping expansions as the
// text they were written with.
func literal(src string, w *syntax.Word) string {
	var b strings.Builder
	for _, part := range w.Parts {
		writePart(&b, src, part, false)
	}
	return b.String()
}

func writePart(b *strings.Builder, src string, part syntax.WordPart, quoted bool) {
	switch p := part.(type) {
	case *syntax.Lit:
		b.WriteString(unescape(p.Value, quoted))
	case *syntax.SglQuoted:
		b.WriteString(p.Value)
	case *syntax.DblQuoted:
		for _, inner := range p.Parts {
			writePart(b, src, inner, true)
		}
	default:
		b.WriteString(src[part.Pos().Offset():part.End().Offset()])
	}
}

// unescape applies backslash removal. Outside quotes a backslash protects any
// character; inside double quotes only $, `, ", \ and newline.
func unescape(s string, quoted bool) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		next := s[i+1]
		switch {
		case next == '\n':
			i++
		case !quoted || strings.IndexByte("$`\"\\", next) >= 0:
			b.WriteByte(next)
			i++
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
