package buf

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/vdfkit/pkg/types"
)

func TestWriterMirrorsReader(t *testing.T) {
	w := NewWriter(1, binary.LittleEndian)
	w.PutU8(0x01)
	w.PutU16(0x4523)
	w.PutU32(0xcdab8967)
	w.PutU64(0x1122334455667788)
	w.PutI32(-2)
	w.PutI64(-3)
	w.PutF64(2.5)

	r := NewReader(w.Trim(), binary.LittleEndian)
	u8, _ := r.U8()
	u16, _ := r.U16()
	u32, _ := r.U32()
	u64, _ := r.U64()
	i32, _ := r.I32()
	i64, _ := r.I64()
	f64, err := r.F64()
	require.NoError(t, err)

	assert.Equal(t, uint8(0x01), u8)
	assert.Equal(t, uint16(0x4523), u16)
	assert.Equal(t, uint32(0xcdab8967), u32)
	assert.Equal(t, uint64(0x1122334455667788), u64)
	assert.Equal(t, int32(-2), i32)
	assert.Equal(t, int64(-3), i64)
	assert.Equal(t, 2.5, f64)
	assert.Equal(t, 0, r.Remaining())
}

func TestWriterGrowthAndTrim(t *testing.T) {
	w := NewWriter(4, binary.LittleEndian)
	assert.Equal(t, 4, w.Cap())

	w.PutU32(1)
	assert.Equal(t, 4, w.Cap(), "exact fit does not grow")

	w.PutU8(2)
	assert.Equal(t, 8, w.Cap(), "overflow doubles the backing store")

	w.PutBytes(make([]byte, 20))
	assert.Equal(t, 32, w.Cap())
	assert.Equal(t, 25, w.Offset())

	out := w.Trim()
	assert.Len(t, out, 25)
	assert.Equal(t, 25, w.Cap())
	assert.Equal(t, []byte{1, 0, 0, 0, 2}, out[:5])
}

func TestWriterDefaultSize(t *testing.T) {
	w := NewWriter(0, binary.LittleEndian)
	assert.Equal(t, DefaultWriterSize, w.Cap())
}

func TestWriterPutString(t *testing.T) {
	tests := []struct {
		name      string
		prefix    bool
		nul       bool
		want      []byte
		wantCount int
	}{
		{name: "plain", want: []byte("ab"), wantCount: 2},
		{name: "nul terminated", nul: true, want: []byte("ab\x00"), wantCount: 3},
		{name: "length prefixed", prefix: true, want: []byte{2, 0, 0, 0, 'a', 'b'}, wantCount: 6},
		{name: "both", prefix: true, nul: true, want: []byte{2, 0, 0, 0, 'a', 'b', 0}, wantCount: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter(2, binary.LittleEndian)
			n, err := w.PutString("ab", tt.prefix, tt.nul)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, n)
			assert.Equal(t, tt.want, w.Trim())
		})
	}
}

func TestWriterLatin1(t *testing.T) {
	w := NewWriter(0, binary.LittleEndian).WithText(charmap.ISO8859_1)
	_, err := w.PutString("café", false, true)
	require.NoError(t, err)
	assert.Equal(t, []byte{'c', 'a', 'f', 0xe9, 0x00}, w.Trim())

	_, err = w.PutString("日本", false, true)
	require.ErrorIs(t, err, types.ErrUnencodableText)
}

func TestWriterUTF8Passthrough(t *testing.T) {
	w := NewWriter(0, binary.LittleEndian)
	_, err := w.PutString("café", false, false)
	require.NoError(t, err)
	assert.Equal(t, []byte{'c', 'a', 'f', 0xc3, 0xa9}, w.Trim())
}
