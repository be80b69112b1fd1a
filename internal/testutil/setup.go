// Package testutil builds synthetic appinfo.vdf and shortcuts.vdf files for
// tests. The builders encode bytes independently of internal/format so they
// can serve as an oracle for the decoders.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteTemp writes data to name inside a per-test temporary directory and
// returns the full path.
//
// Example:
//
//	path := testutil.WriteTemp(t, "appinfo.vdf", testutil.NewAppInfo(testutil.MagicV29).Build())
func WriteTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
