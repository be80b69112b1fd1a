package format

import (
	"fmt"
	"strings"

	"github.com/joshuapare/vdfkit/internal/buf"
	"github.com/joshuapare/vdfkit/pkg/types"
)

// KeyReader reads one map key at the cursor.
type KeyReader interface {
	ReadKey(r *buf.Reader) (string, error)
}

// InlineKeys reads keys stored as NUL-terminated strings (shortcuts.vdf and
// appinfo V27/V28).
type InlineKeys struct{}

// ReadKey implements KeyReader.
func (InlineKeys) ReadKey(r *buf.Reader) (string, error) {
	return r.CString()
}

// StringTable resolves keys stored as u32 indexes (appinfo V29). The table is
// read-only once loaded and is shared by concurrent chunk decoders.
type StringTable []string

// ReadKey implements KeyReader.
func (t StringTable) ReadKey(r *buf.Reader) (string, error) {
	at := r.Offset()
	idx, err := r.U32()
	if err != nil {
		return "", err
	}
	if uint64(idx) >= uint64(len(t)) {
		return "", errStringIndex(idx, len(t), at)
	}
	return t[idx], nil
}

// DecodeMap reads map fields until TagEnd and returns them in file order.
// Tags are validated before the key is read, so an unknown tag is always
// reported as such rather than as a bad key. Maps nested deeper than
// types.MaxNestingDepth are rejected.
func DecodeMap(r *buf.Reader, keys KeyReader) (*types.Map, error) {
	return decodeMap(r, keys, 1)
}

func decodeMap(r *buf.Reader, keys KeyReader, depth int) (*types.Map, error) {
	if depth > types.MaxNestingDepth {
		return nil, errTooDeep(r.Offset())
	}
	m := types.NewMap()
	for {
		at := r.Offset()
		tag, err := r.U8()
		if err != nil {
			return nil, err
		}
		switch tag {
		case TagEnd:
			return m, nil
		case TagMap, TagString, TagUInt32:
		default:
			return nil, errUnexpectedTag(tag, at)
		}

		key, err := keys.ReadKey(r)
		if err != nil {
			return nil, fmt.Errorf("key at offset %d: %w", at+1, err)
		}

		var v types.Node
		switch tag {
		case TagMap:
			v, err = decodeMap(r, keys, depth+1)
		case TagString:
			var s string
			s, err = r.CString()
			v = types.Text(s)
		case TagUInt32:
			var u uint32
			u, err = r.U32()
			v = types.UInt32(u)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		m.Set(key, v)
	}
}

// EncodeMap writes m depth-first as the inverse of DecodeMap with inline
// keys, closing it with TagEnd. It applies the same nesting limit as
// DecodeMap, so every tree it accepts decodes again.
func EncodeMap(w *buf.Writer, m *types.Map) error {
	return encodeMap(w, m, 1)
}

func encodeMap(w *buf.Writer, m *types.Map, depth int) error {
	if depth > types.MaxNestingDepth {
		return errTooDeep(w.Offset())
	}
	for key, v := range m.All() {
		if strings.IndexByte(key, 0) >= 0 {
			return errEmbeddedNUL("key", key)
		}
		var tag byte
		switch v.(type) {
		case *types.Map:
			tag = TagMap
		case types.Text:
			tag = TagString
		case types.UInt32:
			tag = TagUInt32
		default:
			panic(fmt.Sprintf("format: unknown node kind %T", v))
		}
		w.PutU8(tag)
		if _, err := w.PutString(key, false, true); err != nil {
			return err
		}

		switch v := v.(type) {
		case *types.Map:
			if err := encodeMap(w, v, depth+1); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		case types.Text:
			if strings.IndexByte(string(v), 0) >= 0 {
				return errEmbeddedNUL("value of "+key, string(v))
			}
			if _, err := w.PutString(string(v), false, true); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		case types.UInt32:
			w.PutU32(uint32(v))
		}
	}
	w.PutU8(TagEnd)
	return nil
}
