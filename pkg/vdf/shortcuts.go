package vdf

import (
	"fmt"

	"github.com/joshuapare/vdfkit/internal/format"
	"github.com/joshuapare/vdfkit/internal/mmfile"
	"github.com/joshuapare/vdfkit/internal/writer"
	"github.com/joshuapare/vdfkit/pkg/types"
)

// DecodeShortcuts decodes an in-memory shortcuts.vdf file and returns the
// map of shortcut entries keyed "0", "1", ...
func DecodeShortcuts(data []byte, enc types.StringEncoding) (*types.Map, error) {
	return format.DecodeShortcuts(data, enc)
}

// OpenShortcuts reads and decodes the shortcuts.vdf file at path.
func OpenShortcuts(path string, enc types.StringEncoding) (*types.Map, error) {
	data, release, err := mmfile.Map(path)
	if err != nil {
		return nil, fmt.Errorf("open shortcuts: %w", err)
	}
	defer release()

	root, err := DecodeShortcuts(data, enc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

// EncodeShortcuts serializes root, which must be a *types.Map, as a complete
// shortcuts.vdf file.
func EncodeShortcuts(root types.Node, opts types.EncodeOptions) ([]byte, error) {
	return format.EncodeShortcuts(root, opts)
}

// WriteShortcuts encodes root and atomically replaces the file at path.
// Nothing on disk changes if encoding fails.
func WriteShortcuts(path string, root types.Node, opts types.WriteOptions) error {
	return writeShortcuts(&writer.FileWriter{Path: path, Backup: opts.CreateBackup}, root, opts.EncodeOptions)
}

func writeShortcuts(sink writer.Sink, root types.Node, opts types.EncodeOptions) error {
	data, err := EncodeShortcuts(root, opts)
	if err != nil {
		return err
	}
	if err := sink.WriteFile(data); err != nil {
		return fmt.Errorf("write shortcuts: %w", err)
	}
	return nil
}

// EncodedSize returns the number of bytes root occupies once encoded.
func EncodedSize(root types.Node, opts types.EncodeOptions) (int, error) {
	var mem writer.MemWriter
	if err := writeShortcuts(&mem, root, opts); err != nil {
		return 0, err
	}
	return len(mem.Buf), nil
}
