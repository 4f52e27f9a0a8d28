// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultIgnoreSubpaths are helper and test directory names never searched for commands.
var DefaultIgnoreSubpaths = []string{"lib", "tests"}

// SubpathMatcher decides which directories inside a group are pruned before
// command enumeration. Plain entries match any directory whose name equals
// the entry case-insensitively; entries containing glob syntax or a slash are
// doublestar patterns matched against the slash-separated path relative to
// the group directory.
type SubpathMatcher struct {
	names    map[string]struct{}
	patterns []string
}

// NewSubpathMatcher validates entries and builds a matcher.
func NewSubpathMatcher(entries []string) (*SubpathMatcher, error) {
	m := &SubpathMatcher{names: make(map[string]struct{})}
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if !strings.ContainsAny(entry, "*?[{/") {
			m.names[strings.ToLower(entry)] = struct{}{}
			continue
		}
		if !doublestar.ValidatePattern(entry) {
			return nil, fmt.Errorf("invalid ignore pattern %q", entry)
		}
		m.patterns = append(m.patterns, entry)
	}
	return m, nil
}

// Match reports whether the directory at rel (slash-separated, relative to
// the group directory) is ignored.
func (m *SubpathMatcher) Match(rel string) bool {
	if m == nil || rel == "" || rel == "." {
		return false
	}
	if _, ok := m.names[strings.ToLower(path.Base(rel))]; ok {
		return true
	}
	for _, pat := range m.patterns {
		if matched, err := doublestar.Match(pat, rel); err == nil && matched {
			return true
		}
	}
	return false
}
