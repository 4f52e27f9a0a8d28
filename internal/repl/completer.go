// SPDX-License-Identifier: MPL-2.0

package repl

import (
	"maps"
	"slices"
	"strings"
)

var builtinWords = []string{"exit", "groups", "help", "quit", "rescan", "use"}

// completer completes builtins and command names in the first word and
// group names after "use".
type completer struct {
	r *REPL
}

// Do implements readline.AutoCompleter.
func (c *completer) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	fields := strings.Fields(text)
	trailingSpace := strings.HasSuffix(text, " ")

	var (
		candidates []string
		prefix     string
	)
	switch {
	case len(fields) == 0:
		candidates = c.firstWords()
	case len(fields) == 1 && !trailingSpace:
		candidates, prefix = c.firstWords(), fields[0]
	case strings.EqualFold(fields[0], "use") && (len(fields) == 1 || (len(fields) == 2 && !trailingSpace)):
		candidates = c.groupNames()
		if len(fields) == 2 {
			prefix = fields[1]
		}
	default:
		return nil, 0
	}

	var out [][]rune
	for _, cand := range candidates {
		if strings.HasPrefix(cand, prefix) {
			out = append(out, []rune(cand[len(prefix):]+" "))
		}
	}
	return out, len([]rune(prefix))
}

func (c *completer) firstWords() []string {
	words := make(map[string]struct{}, len(builtinWords))
	for _, w := range builtinWords {
		words[w] = struct{}{}
	}
	cat := c.r.session.Catalog()
	for _, g := range cat.GroupNames() {
		for _, cmd := range cat.Commands(g) {
			words[cmd.Name.String()] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(words))
}

func (c *completer) groupNames() []string {
	var out []string
	for _, g := range c.r.session.Catalog().GroupNames() {
		out = append(out, g.String())
	}
	return out
}
