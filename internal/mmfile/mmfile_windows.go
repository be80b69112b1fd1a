//go:build windows

package mmfile

import "os"

// Map reads the entire file. Windows keeps mapped files locked against
// replacement, which would block WriteShortcuts on the same path.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, noop, err
	}
	return data, noop, nil
}
