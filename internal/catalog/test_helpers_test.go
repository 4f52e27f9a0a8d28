// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

// writeTree creates files (relative path -> content) under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
}

// groupsOf builds a GroupSet for directories directly under root.
func groupsOf(root string, names ...string) GroupSet {
	set := make(GroupSet, len(names))
	for _, n := range names {
		set[GroupName(filepath.Base(n))] = Group{Name: GroupName(filepath.Base(n)), Dir: filepath.Join(root, filepath.FromSlash(n))}
	}
	return set
}

type mapSource map[string]map[string]string

func (m mapSource) Describe(group, command string) (string, bool) {
	d, ok := m[group][command]
	return d, ok
}
