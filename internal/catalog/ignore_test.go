// SPDX-License-Identifier: MPL-2.0

package catalog

import "testing"

func TestSubpathMatcher(t *testing.T) {
	t.Parallel()

	m, err := NewSubpathMatcher([]string{"lib", "Tests", "**/fixtures/**", "tmp/*"})
	if err != nil {
		t.Fatalf("NewSubpathMatcher() error: %v", err)
	}

	tests := []struct {
		rel  string
		want bool
	}{
		{"lib", true},
		{"LIB", true},
		{"nested/lib", true},
		{"tests", true},
		{"a/b/fixtures/c", true},
		{"tmp/cache", true},
		{"tmp", false},
		{"library", false},
		{"src", false},
		{".", false},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			t.Parallel()
			if got := m.Match(tt.rel); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.rel, got, tt.want)
			}
		})
	}
}

func TestSubpathMatcherInvalidPattern(t *testing.T) {
	t.Parallel()

	if _, err := NewSubpathMatcher([]string{"[unclosed"}); err == nil {
		t.Fatal("NewSubpathMatcher() expected error for invalid pattern")
	}
}
