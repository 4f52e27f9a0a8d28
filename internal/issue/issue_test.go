// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestValuesOrderedAndComplete(t *testing.T) {
	t.Parallel()

	values := Values()
	if len(values) != len(issues) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), len(issues))
	}
	for i, v := range values {
		if v.Id() != Id(i+1) {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, v.Id(), i+1)
		}
	}
}

func TestIssuesHaveContent(t *testing.T) {
	t.Parallel()

	slugs := make(map[string]bool)
	for _, i := range Values() {
		if strings.TrimSpace(string(i.MarkdownMsg())) == "" {
			t.Errorf("issue %d has no markdown", i.Id())
		}
		if i.Title() == "" {
			t.Errorf("issue %d has no title", i.Id())
		}
		if slugs[i.Slug()] {
			t.Errorf("duplicate slug %q", i.Slug())
		}
		slugs[i.Slug()] = true
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	got, ok := Lookup("  Manifest-Invalid ")
	if !ok || got.Id() != ManifestInvalidId {
		t.Errorf("Lookup(manifest-invalid) = %v, %v", got, ok)
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup(nope) should fail")
	}
	if Get(0) != nil {
		t.Error("Get(0) should be nil")
	}
}

func TestIssueRender(t *testing.T) {
	t.Parallel()

	for _, i := range Values() {
		out, err := i.Render("notty")
		if err != nil {
			t.Errorf("Render(%s) error: %v", i.Slug(), err)
			continue
		}
		if strings.TrimSpace(out) == "" {
			t.Errorf("Render(%s) produced empty output", i.Slug())
		}
	}
}
