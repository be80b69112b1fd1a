// Package writer exposes sinks for encoded VDF files.
package writer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// BackupSuffix is appended to the target path when a backup copy is made.
const BackupSuffix = ".bak"

// DefaultPerm is the mode given to files that did not exist before.
const DefaultPerm os.FileMode = 0o644

// Sink receives a complete encoded file.
type Sink interface {
	WriteFile(data []byte) error
}

// FileWriter writes encoded bytes to a filesystem path atomically.
type FileWriter struct {
	Path string
	// Backup copies the existing file to Path+BackupSuffix before it is
	// replaced. A missing original is not an error.
	Backup bool
}

// WriteFile writes data to the configured path via temp file + rename, so a
// failed write never leaves a partially written target behind. An existing
// file keeps its permission bits.
func (w *FileWriter) WriteFile(data []byte) error {
	perm := DefaultPerm
	if info, err := os.Stat(w.Path); err == nil {
		perm = info.Mode().Perm()
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat target: %w", err)
	}

	if w.Backup {
		if err := copyFile(w.Path, w.Path+BackupSuffix, perm); err != nil &&
			!errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("backup: %w", err)
		}
	}

	dir := filepath.Dir(w.Path)
	tmpFile, err := os.CreateTemp(dir, ".vdfkit-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, writeErr := tmpFile.Write(data); writeErr != nil {
		return fmt.Errorf("write temp file: %w", writeErr)
	}
	if chmodErr := tmpFile.Chmod(perm); chmodErr != nil {
		return fmt.Errorf("chmod temp file: %w", chmodErr)
	}
	if syncErr := tmpFile.Sync(); syncErr != nil {
		return fmt.Errorf("sync temp file: %w", syncErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("close temp file: %w", closeErr)
	}
	tmpFile = nil

	if renameErr := os.Rename(tmpPath, w.Path); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", renameErr)
	}
	return nil
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
