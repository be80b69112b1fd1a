package buf

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"golang.org/x/text/encoding"

	"github.com/joshuapare/vdfkit/pkg/types"
)

// Whence selects how Reader.Seek interprets its offset.
type Whence int

const (
	// Absolute seeks to the offset from the start of the buffer.
	Absolute Whence = iota
	// Forward advances the cursor by the offset.
	Forward
	// FromEnd seeks to len(buffer) - offset.
	FromEnd
)

// Reader is a cursor over an immutable byte slice. Every read is bounds
// checked and fails with types.ErrTruncatedInput instead of panicking.
//
// A Reader is not safe for concurrent use, but any number of Readers may
// share the same backing slice; Slice hands out independent cursors for that.
type Reader struct {
	data  []byte
	off   int
	order binary.ByteOrder

	// text converts string bytes; nil keeps them as-is (UTF-8).
	text encoding.Encoding
	dec  *encoding.Decoder
}

// NewReader returns a Reader at offset 0 that decodes integers in order.
func NewReader(data []byte, order binary.ByteOrder) *Reader {
	return &Reader{data: data, order: order}
}

// WithText sets the character encoding used to decode strings. A nil
// encoding keeps string bytes unchanged.
func (r *Reader) WithText(enc encoding.Encoding) *Reader {
	r.text = enc
	r.dec = nil
	return r
}

// Offset returns the current cursor position.
func (r *Reader) Offset() int { return r.off }

// Len returns the length of the underlying buffer.
func (r *Reader) Len() int { return len(r.data) }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.off }

// Seek moves the cursor. The resulting position must lie within [0, Len()].
func (r *Reader) Seek(offset int, whence Whence) error {
	var target int
	switch whence {
	case Absolute:
		target = offset
	case Forward:
		if offset < 0 {
			return types.Newf(types.ErrKindTruncatedInput, "seek forward by negative offset %d", offset)
		}
		var ok bool
		if target, ok = AddOverflowSafe(r.off, offset); !ok {
			return types.Newf(types.ErrKindTruncatedInput, "seek forward by %d overflows", offset)
		}
	case FromEnd:
		target = len(r.data) - offset
	default:
		return fmt.Errorf("seek: unknown whence %d", whence)
	}
	if target < 0 || target > len(r.data) {
		return types.Newf(types.ErrKindTruncatedInput, "seek to %d outside buffer of %d bytes", target, len(r.data))
	}
	r.off = target
	return nil
}

// Slice returns an independent Reader over data[offset:offset+n]. The new
// cursor starts at 0, shares the backing array and inherits byte order and
// text encoding.
func (r *Reader) Slice(offset, n int) (*Reader, error) {
	b, ok := Slice(r.data, offset, n)
	if !ok {
		return nil, types.Newf(types.ErrKindTruncatedInput,
			"slice [%d:+%d] outside buffer of %d bytes", offset, n, len(r.data))
	}
	return &Reader{data: b, order: r.order, text: r.text}, nil
}

// Bytes returns the next n bytes without copying and advances past them.
func (r *Reader) Bytes(n int) ([]byte, error) {
	b, ok := Slice(r.data, r.off, n)
	if !ok {
		return nil, types.Newf(types.ErrKindTruncatedInput,
			"read %d bytes at offset %d: %d remaining", n, r.off, r.Remaining())
	}
	r.off += n
	return b, nil
}

// Read decodes the next fixed-width value of type T and advances past it.
func Read[T Fixed](r *Reader) (T, error) {
	var v T
	b, err := r.Bytes(sizeOf[T]())
	if err != nil {
		return v, err
	}
	if _, err := binary.Decode(b, r.order, &v); err != nil {
		return v, fmt.Errorf("decode %T: %w", v, err)
	}
	return v, nil
}

// U8 reads one byte.
func (r *Reader) U8() (uint8, error) {
	if r.off >= len(r.data) {
		return 0, types.Newf(types.ErrKindTruncatedInput, "read u8 at offset %d: end of buffer", r.off)
	}
	v := r.data[r.off]
	r.off++
	return v, nil
}

func (r *Reader) U16() (uint16, error)  { return Read[uint16](r) }
func (r *Reader) U32() (uint32, error)  { return Read[uint32](r) }
func (r *Reader) U64() (uint64, error)  { return Read[uint64](r) }
func (r *Reader) I8() (int8, error)     { return Read[int8](r) }
func (r *Reader) I16() (int16, error)   { return Read[int16](r) }
func (r *Reader) I32() (int32, error)   { return Read[int32](r) }
func (r *Reader) I64() (int64, error)   { return Read[int64](r) }
func (r *Reader) F32() (float32, error) { return Read[float32](r) }
func (r *Reader) F64() (float64, error) { return Read[float64](r) }

// CString reads bytes up to the next NUL and advances past the terminator.
func (r *Reader) CString() (string, error) {
	n := bytes.IndexByte(r.data[r.off:], 0)
	if n < 0 {
		return "", types.Newf(types.ErrKindTruncatedInput,
			"unterminated string at offset %d", r.off)
	}
	start := r.off
	raw := r.data[start : start+n]
	r.off += n + 1
	return r.decode(raw, start)
}

// FixedString reads exactly n bytes as a string.
func (r *Reader) FixedString(n int) (string, error) {
	start := r.off
	raw, err := r.Bytes(n)
	if err != nil {
		return "", err
	}
	return r.decode(raw, start)
}

func (r *Reader) decode(raw []byte, at int) (string, error) {
	if r.text == nil {
		return string(raw), nil
	}
	if r.dec == nil {
		r.dec = r.text.NewDecoder()
	}
	out, err := r.dec.Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode string at offset %d: %w", at, err)
	}
	return string(out), nil
}
