package buf

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/text/encoding"

	"github.com/joshuapare/vdfkit/pkg/types"
)

// DefaultWriterSize is the initial backing size used when NewWriter is given
// a non-positive size.
const DefaultWriterSize = 4096

// Writer is an append-only cursor over a growable byte slice. The backing
// store doubles whenever a write does not fit; Trim shrinks it to exactly
// the bytes written. A Writer is not safe for concurrent use.
type Writer struct {
	buf   []byte
	off   int
	order binary.ByteOrder

	text encoding.Encoding
	enc  *encoding.Encoder
}

// NewWriter returns a Writer whose backing store starts at size bytes.
func NewWriter(size int, order binary.ByteOrder) *Writer {
	if size <= 0 {
		size = DefaultWriterSize
	}
	return &Writer{buf: make([]byte, size), order: order}
}

// WithText sets the character encoding used to encode strings. A nil
// encoding writes string bytes unchanged.
func (w *Writer) WithText(enc encoding.Encoding) *Writer {
	w.text = enc
	w.enc = nil
	return w
}

// Offset returns the number of bytes written so far.
func (w *Writer) Offset() int { return w.off }

// Cap returns the current size of the backing store.
func (w *Writer) Cap() int { return len(w.buf) }

// Bytes returns the written bytes. The slice aliases the backing store and
// is invalidated by the next write.
func (w *Writer) Bytes() []byte { return w.buf[:w.off] }

// Trim shrinks the backing store to exactly the bytes written and returns it.
func (w *Writer) Trim() []byte {
	if len(w.buf) != w.off {
		out := make([]byte, w.off)
		copy(out, w.buf[:w.off])
		w.buf = out
	}
	return w.buf
}

// grow doubles the backing store until n more bytes fit.
func (w *Writer) grow(n int) {
	need := w.off + n
	if need <= len(w.buf) {
		return
	}
	size := len(w.buf)
	if size == 0 {
		size = DefaultWriterSize
	}
	for size < need {
		size *= 2
	}
	next := make([]byte, size)
	copy(next, w.buf[:w.off])
	w.buf = next
}

// Write appends v in the writer's byte order.
func Write[T Fixed](w *Writer, v T) {
	n := sizeOf[T]()
	w.grow(n)
	// The destination is sized for T, so Encode cannot fail.
	_, _ = binary.Encode(w.buf[w.off:w.off+n], w.order, v)
	w.off += n
}

// PutU8 appends one byte.
func (w *Writer) PutU8(v uint8) {
	w.grow(1)
	w.buf[w.off] = v
	w.off++
}

func (w *Writer) PutU16(v uint16)  { Write(w, v) }
func (w *Writer) PutU32(v uint32)  { Write(w, v) }
func (w *Writer) PutU64(v uint64)  { Write(w, v) }
func (w *Writer) PutI8(v int8)     { Write(w, v) }
func (w *Writer) PutI16(v int16)   { Write(w, v) }
func (w *Writer) PutI32(v int32)   { Write(w, v) }
func (w *Writer) PutI64(v int64)   { Write(w, v) }
func (w *Writer) PutF32(v float32) { Write(w, v) }
func (w *Writer) PutF64(v float64) { Write(w, v) }

// PutBytes appends raw bytes.
func (w *Writer) PutBytes(b []byte) {
	w.grow(len(b))
	w.off += copy(w.buf[w.off:], b)
}

// PutString appends s after converting it with the writer's text encoding.
// With lengthPrefix the encoded byte length is written first as a u32; with
// nulTerminate a 0x00 byte follows the string. It returns the number of
// bytes appended.
func (w *Writer) PutString(s string, lengthPrefix, nulTerminate bool) (int, error) {
	b, err := w.encode(s)
	if err != nil {
		return 0, err
	}
	start := w.off
	if lengthPrefix {
		if uint64(len(b)) > uint64(^uint32(0)) {
			return 0, types.Newf(types.ErrKindUnencodableText, "string of %d bytes exceeds u32 length prefix", len(b))
		}
		w.PutU32(uint32(len(b)))
	}
	w.PutBytes(b)
	if nulTerminate {
		w.PutU8(0)
	}
	return w.off - start, nil
}

func (w *Writer) encode(s string) ([]byte, error) {
	if w.text == nil {
		return []byte(s), nil
	}
	if w.enc == nil {
		w.enc = w.text.NewEncoder()
	}
	b, err := w.enc.Bytes([]byte(s))
	if err != nil {
		return nil, &types.Error{
			Kind: types.ErrKindUnencodableText,
			Msg:  fmt.Sprintf("encode %q", s),
			Err:  err,
		}
	}
	return b, nil
}
