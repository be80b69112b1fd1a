package writer

// MemWriter captures encoded bytes in memory.
type MemWriter struct {
	Buf []byte
}

// WriteFile replaces the captured bytes with a copy of data.
func (w *MemWriter) WriteFile(data []byte) error {
	w.Buf = append(w.Buf[:0], data...)
	return nil
}

var (
	_ Sink = (*FileWriter)(nil)
	_ Sink = (*MemWriter)(nil)
)
