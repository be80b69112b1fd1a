// Package buf contains the bounds-aware byte cursors used by the VDF codecs:
// a Reader over an immutable buffer and a growable, append-only Writer.
package buf

import "encoding/binary"

// Fixed lists the fixed-width scalars the cursors can read and write.
type Fixed interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~int8 | ~int16 | ~int32 | ~int64 |
		~float32 | ~float64
}

// sizeOf returns the encoded width of T in bytes.
func sizeOf[T Fixed]() int {
	var v T
	return binary.Size(v)
}

// Order returns the byte order selected by littleEndian.
func Order(littleEndian bool) binary.ByteOrder {
	if littleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}
