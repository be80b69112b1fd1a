package buf

import (
	"encoding/binary"
	"testing"
)

func TestOrder(t *testing.T) {
	if Order(true) != binary.LittleEndian {
		t.Fatalf("Order(true) should be little-endian")
	}
	if Order(false) != binary.BigEndian {
		t.Fatalf("Order(false) should be big-endian")
	}
}

func TestSizeOf(t *testing.T) {
	cases := map[string][2]int{
		"u8":  {sizeOf[uint8](), 1},
		"u16": {sizeOf[uint16](), 2},
		"u32": {sizeOf[uint32](), 4},
		"u64": {sizeOf[uint64](), 8},
		"i64": {sizeOf[int64](), 8},
		"f32": {sizeOf[float32](), 4},
		"f64": {sizeOf[float64](), 8},
	}
	for name, c := range cases {
		if c[0] != c[1] {
			t.Fatalf("sizeOf %s = %d, want %d", name, c[0], c[1])
		}
	}
}
