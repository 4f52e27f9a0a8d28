// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

// createGroup creates dir (relative to root) and, if marked, the marker file in it.
func createGroup(t *testing.T, root, dir string, marked bool) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(dir))
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
	if marked {
		if err := os.WriteFile(filepath.Join(path, ".cmdgroup"), nil, 0o644); err != nil {
			t.Fatalf("failed to write marker in %s: %v", dir, err)
		}
	}
	return path
}
