package format

import (
	"fmt"

	"github.com/joshuapare/vdfkit/internal/buf"
	"github.com/joshuapare/vdfkit/pkg/types"
)

// DecodeShortcuts decodes a shortcuts.vdf buffer and returns the map of
// shortcut entries (keyed "0", "1", ...). Bytes after the root map, normally
// the TagEnd of the implicit outer map, are ignored.
func DecodeShortcuts(data []byte, enc types.StringEncoding) (*types.Map, error) {
	r := buf.NewReader(data, ByteOrder).WithText(TextEncoding(enc))
	if err := r.Seek(ShortcutsLeadSize, buf.Absolute); err != nil {
		return nil, fmt.Errorf("shortcuts header: %w", err)
	}
	name, err := r.CString()
	if err != nil {
		return nil, fmt.Errorf("shortcuts header: %w", err)
	}
	if name != ShortcutsHeader {
		return nil, errBadHeader(name)
	}
	m, err := DecodeMap(r, InlineKeys{})
	if err != nil {
		return nil, fmt.Errorf("shortcuts: %w", err)
	}
	return m, nil
}

// EncodeShortcuts serializes root as a complete shortcuts.vdf file. The
// output is built in memory and trimmed to its exact length, so nothing is
// produced unless the whole tree encodes.
func EncodeShortcuts(root types.Node, opts types.EncodeOptions) ([]byte, error) {
	m, ok := root.(*types.Map)
	if !ok || m == nil {
		return nil, errNotAnObject(root)
	}
	w := buf.NewWriter(opts.InitialSize, ByteOrder).WithText(TextEncoding(opts.Encoding))
	w.PutU8(TagMap)
	if _, err := w.PutString(ShortcutsHeader, false, true); err != nil {
		return nil, err
	}
	if err := EncodeMap(w, m); err != nil {
		return nil, fmt.Errorf("shortcuts: %w", err)
	}
	w.PutU8(TagEnd)
	return w.Trim(), nil
}
