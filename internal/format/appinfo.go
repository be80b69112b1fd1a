package format

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/joshuapare/vdfkit/internal/buf"
	"github.com/joshuapare/vdfkit/pkg/types"
)

// Header is the decoded appinfo.vdf file header.
type Header struct {
	Magic    uint32
	Universe uint32

	// StringTableOffset is the absolute offset of the string table. It is
	// only meaningful when HasStringTable is true.
	StringTableOffset int64
	HasStringTable    bool
}

// Version returns the low byte of the magic (27, 28 or 29 for known files).
func (h Header) Version() int {
	return int(h.Magic & 0xff)
}

// Chunk locates one application's record. Offset points just past the
// length field, i.e. at the 60-byte chunk header, and Length covers the
// header and the map body.
type Chunk struct {
	AppID  uint32
	Offset int
	Length int
}

// ChunkHeader is the fixed 60-byte header that precedes every chunk body.
// Body decoding skips it; it is decoded only for inspection.
type ChunkHeader struct {
	InfoState    uint32
	LastUpdated  uint32 // unix seconds
	PICSToken    uint64
	SHA1         [20]byte
	ChangeNumber uint32
	BinarySHA1   [20]byte
}

// AppInfo is an indexed appinfo.vdf buffer: the header, the optional string
// table, and the location of every chunk. Chunk bodies are decoded on
// demand. An AppInfo is read-only after ParseAppInfo returns and may be used
// from multiple goroutines.
type AppInfo struct {
	Header  Header
	Strings StringTable
	Chunks  []Chunk

	data []byte
	text types.StringEncoding
}

// ParseAppInfo reads the header, loads the string table for V29 files, and
// indexes the chunk list. The chunk list is walked sequentially because each
// chunk's start depends on the previous chunk's declared length.
func ParseAppInfo(data []byte, enc types.StringEncoding) (*AppInfo, error) {
	r := buf.NewReader(data, ByteOrder).WithText(TextEncoding(enc))
	a := &AppInfo{data: data, text: enc}

	magic, err := r.U32()
	if err != nil {
		return nil, fmt.Errorf("appinfo magic: %w", err)
	}
	universe, err := r.U32()
	if err != nil {
		return nil, fmt.Errorf("appinfo universe: %w", err)
	}
	a.Header = Header{Magic: magic, Universe: universe}

	// Legacy files have no declared end; reads past the buffer still fail
	// at the cursor, and the sentinel is never used in arithmetic.
	boundary := math.MaxInt

	switch magic {
	case MagicV29:
		sto, err := r.I64()
		if err != nil {
			return nil, fmt.Errorf("appinfo string table offset: %w", err)
		}
		a.Header.StringTableOffset = sto
		a.Header.HasStringTable = true

		dataStart := r.Offset()
		if sto < int64(dataStart) || sto > int64(len(data)) {
			return nil, types.Newf(types.ErrKindTruncatedInput,
				"string table offset %d outside [%d, %d]", sto, dataStart, len(data))
		}
		if a.Strings, err = readStringTable(r, int(sto)); err != nil {
			return nil, fmt.Errorf("appinfo string table: %w", err)
		}
		if err := r.Seek(dataStart, buf.Absolute); err != nil {
			return nil, err
		}
		boundary = int(sto) - StringTableBoundaryAdjust
	case MagicV28, MagicV27:
	default:
		return nil, errUnsupportedMagic(magic)
	}

	if a.Chunks, err = indexChunks(r, boundary); err != nil {
		return nil, err
	}
	return a, nil
}

func readStringTable(r *buf.Reader, offset int) (StringTable, error) {
	if err := r.Seek(offset, buf.Absolute); err != nil {
		return nil, err
	}
	count, err := r.U32()
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	// Every entry needs at least its terminator.
	if int64(count) > int64(r.Remaining()) {
		return nil, types.Newf(types.ErrKindTruncatedInput,
			"string count %d exceeds %d remaining bytes", count, r.Remaining())
	}
	table := make(StringTable, 0, count)
	for i := uint32(0); i < count; i++ {
		s, err := r.CString()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		table = append(table, s)
	}
	return table, nil
}

func indexChunks(r *buf.Reader, boundary int) ([]Chunk, error) {
	var chunks []Chunk
	appid, err := r.U32()
	if err != nil {
		return nil, fmt.Errorf("appinfo chunk %d appid: %w", 0, err)
	}
	for appid != 0 && r.Offset() < boundary {
		length, err := r.U32()
		if err != nil {
			return nil, fmt.Errorf("appinfo chunk %d (appid %d) length: %w", len(chunks), appid, err)
		}
		off := r.Offset()
		end, err := buf.CheckRange(r.Len(), off, int(length))
		if err != nil {
			return nil, &types.Error{
				Kind: types.ErrKindTruncatedInput,
				Msg:  fmt.Sprintf("appinfo chunk %d (appid %d) at offset %d", len(chunks), appid, off),
				Err:  err,
			}
		}
		chunks = append(chunks, Chunk{AppID: appid, Offset: off, Length: int(length)})
		if err := r.Seek(end, buf.Absolute); err != nil {
			return nil, err
		}
		if appid, err = r.U32(); err != nil {
			return nil, fmt.Errorf("appinfo chunk %d appid: %w", len(chunks), err)
		}
	}
	return chunks, nil
}

// keys returns the key reader for the file's version. Legacy files never
// consult the string table and V29 files never read inline keys.
func (a *AppInfo) keys() KeyReader {
	if a.Header.HasStringTable {
		return a.Strings
	}
	return InlineKeys{}
}

func (a *AppInfo) chunkReader(c Chunk) (*buf.Reader, error) {
	return buf.NewReader(a.data, ByteOrder).WithText(TextEncoding(a.text)).Slice(c.Offset, c.Length)
}

// ChunkHeader decodes the 60-byte header of c.
func (a *AppInfo) ChunkHeader(c Chunk) (ChunkHeader, error) {
	r, err := a.chunkReader(c)
	if err != nil {
		return ChunkHeader{}, err
	}
	raw, err := r.Bytes(ChunkHeaderSize)
	if err != nil {
		return ChunkHeader{}, fmt.Errorf("chunk header: %w", err)
	}
	var h ChunkHeader
	h.InfoState = ByteOrder.Uint32(raw[ChunkInfoStateOffset:])
	h.LastUpdated = ByteOrder.Uint32(raw[ChunkLastUpdatedOffset:])
	h.PICSToken = ByteOrder.Uint64(raw[ChunkPICSTokenOffset:])
	copy(h.SHA1[:], raw[ChunkSHA1Offset:ChunkChangeNumberOffset])
	h.ChangeNumber = ByteOrder.Uint32(raw[ChunkChangeNumberOffset:])
	copy(h.BinarySHA1[:], raw[ChunkBinarySHA1Offset:ChunkHeaderSize])
	return h, nil
}

// DecodeChunk decodes the map body of c on its own bounded cursor.
func (a *AppInfo) DecodeChunk(c Chunk) (*types.Map, error) {
	r, err := a.chunkReader(c)
	if err != nil {
		return nil, err
	}
	if err := r.Seek(ChunkHeaderSize, buf.Forward); err != nil {
		return nil, fmt.Errorf("chunk header: %w", err)
	}
	return DecodeMap(r, a.keys())
}

// UnwrapAppInfo returns the nested "appinfo" map when present, otherwise m.
func UnwrapAppInfo(m *types.Map) *types.Map {
	if inner, ok := m.GetMap(KeyAppInfo); ok {
		return inner
	}
	return m
}

// IsGame reports whether common.type equals "game", ignoring case. Entries
// without a common map or a string type are not games.
func IsGame(m *types.Map) bool {
	common, ok := m.GetMap(KeyCommon)
	if !ok {
		return false
	}
	typ, ok := common.GetText(KeyType)
	return ok && strings.EqualFold(typ, TypeGame)
}

// SkippedChunk records a chunk dropped by a tolerant decode.
type SkippedChunk struct {
	Chunk Chunk
	Err   error
}

// DecodeResult is the output of AppInfo.Decode. Entries are in file order.
type DecodeResult struct {
	Entries []*types.Map
	Skipped []SkippedChunk
}

// Decode decodes every chunk body, applies the appinfo unwrap and the
// optional game filter, and collects the survivors.
//
// Chunk bodies own disjoint byte ranges and write to their own result slot,
// so they are decoded on up to opts.Workers goroutines without locking.
func (a *AppInfo) Decode(opts types.DecodeOptions) (DecodeResult, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log.Debug("decoding appinfo",
		"magic", fmt.Sprintf("0x%08x", a.Header.Magic),
		"strings", len(a.Strings),
		"chunks", len(a.Chunks),
		"workers", workers)

	decoded := make([]*types.Map, len(a.Chunks))
	failed := make([]error, len(a.Chunks))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	for i, c := range a.Chunks {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			m, err := a.DecodeChunk(c)
			if err != nil {
				err = fmt.Errorf("appinfo chunk %d (appid %d) at offset %d: %w", i, c.AppID, c.Offset, err)
				if opts.Tolerant {
					failed[i] = err
					return nil
				}
				return err
			}
			decoded[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return DecodeResult{}, err
	}

	var res DecodeResult
	for i, m := range decoded {
		if m == nil {
			if failed[i] != nil {
				log.Warn("skipping appinfo chunk", "appid", a.Chunks[i].AppID, "err", failed[i])
				res.Skipped = append(res.Skipped, SkippedChunk{Chunk: a.Chunks[i], Err: failed[i]})
			}
			continue
		}
		entry := UnwrapAppInfo(m)
		if !opts.IncludeNonGames && !IsGame(entry) {
			continue
		}
		res.Entries = append(res.Entries, entry)
	}
	log.Debug("decoded appinfo", "entries", len(res.Entries), "skipped", len(res.Skipped))
	return res, nil
}
