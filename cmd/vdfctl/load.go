package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/joshuapare/vdfkit/cmd/vdfctl/logger"
	"github.com/joshuapare/vdfkit/pkg/types"
	"github.com/joshuapare/vdfkit/pkg/vdf"
)

type fileKind int

const (
	kindUnknown fileKind = iota
	kindAppInfo
	kindShortcuts
)

func (k fileKind) String() string {
	switch k {
	case kindAppInfo:
		return "appinfo"
	case kindShortcuts:
		return "shortcuts"
	default:
		return "unknown"
	}
}

var shortcutsPrefix = []byte("shortcuts\x00")

// detectKind identifies a VDF file by its appinfo magic or shortcuts header.
func detectKind(data []byte) fileKind {
	if len(data) >= 4 {
		switch binary.LittleEndian.Uint32(data) {
		case vdf.MagicV27, vdf.MagicV28, vdf.MagicV29:
			return kindAppInfo
		}
	}
	if len(data) > 1 && bytes.HasPrefix(data[1:], shortcutsPrefix) {
		return kindShortcuts
	}
	return kindUnknown
}

// readVDF reads path and identifies its kind.
func readVDF(path string) ([]byte, fileKind, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, kindUnknown, err
	}
	kind := detectKind(data)
	logger.Debug("read file", "path", path, "size", len(data), "kind", kind.String())
	if kind == kindUnknown {
		return nil, kind, fmt.Errorf("%s: not an appinfo.vdf or shortcuts.vdf file", path)
	}
	return data, kind, nil
}

// decodeAny decodes either kind of file into a value ready for Marshal:
// every appinfo entry, or the shortcuts root.
func decodeAny(path string) (any, fileKind, error) {
	data, kind, err := readVDF(path)
	if err != nil {
		return nil, kind, err
	}
	switch kind {
	case kindAppInfo:
		info, err := vdf.DecodeAppInfo(data, types.DecodeOptions{
			IncludeNonGames: true,
			Encoding:        stringEncoding(),
			Logger:          logger.L,
		})
		if err != nil {
			return nil, kind, fmt.Errorf("%s: %w", path, err)
		}
		return nonNil(info.Entries), kind, nil
	default:
		root, err := vdf.DecodeShortcuts(data, stringEncoding())
		if err != nil {
			return nil, kind, fmt.Errorf("%s: %w", path, err)
		}
		return root, kind, nil
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// structured reports whether output should be machine-readable rather than
// a human listing.
func structured(formatName string) bool {
	return jsonOut || formatName != ""
}

// writeFormatted marshals v in the named format (JSON when empty) to stdout.
func writeFormatted(v any, formatName string) error {
	f, err := vdf.ParseFormat(formatName)
	if err != nil {
		return err
	}
	data, err := vdf.Marshal(v, f)
	if err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	if _, err := os.Stdout.Write(data); err != nil {
		return err
	}
	if f != vdf.FormatMsgpack && !bytes.HasSuffix(data, []byte("\n")) {
		_, err = os.Stdout.Write([]byte("\n"))
	}
	return err
}
