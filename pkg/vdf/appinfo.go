package vdf

import (
	"fmt"

	"github.com/joshuapare/vdfkit/internal/format"
	"github.com/joshuapare/vdfkit/internal/mmfile"
	"github.com/joshuapare/vdfkit/pkg/types"
)

// Known appinfo.vdf magics.
const (
	MagicV27 = format.MagicV27
	MagicV28 = format.MagicV28
	MagicV29 = format.MagicV29
)

// AppInfo is a decoded appinfo.vdf file.
type AppInfo struct {
	Magic    uint32
	Universe uint32

	// Entries holds one map per application in file order, with the
	// "appinfo" wrapper removed.
	Entries []*types.Map

	// Skipped lists chunks dropped by a tolerant decode.
	Skipped []SkippedChunk
}

// SkippedChunk describes a chunk whose body failed to decode.
type SkippedChunk struct {
	AppID  uint32
	Offset int
	Length int
	Err    error
}

// ChunkInfo describes one chunk without decoding its body.
type ChunkInfo struct {
	AppID  uint32
	Offset int
	Length int

	InfoState    uint32
	LastUpdated  uint32 // unix seconds
	PICSToken    uint64
	SHA1         [20]byte
	ChangeNumber uint32
	BinarySHA1   [20]byte
}

// Index summarizes an appinfo.vdf file's layout.
type Index struct {
	Magic    uint32
	Version  int
	Universe uint32

	// Strings is the string table of a V29 file, nil for older files.
	Strings []string
	Chunks  []ChunkInfo
}

// DecodeAppInfo decodes an in-memory appinfo.vdf file.
func DecodeAppInfo(data []byte, opts types.DecodeOptions) (*AppInfo, error) {
	a, err := format.ParseAppInfo(data, opts.Encoding)
	if err != nil {
		return nil, err
	}
	res, err := a.Decode(opts)
	if err != nil {
		return nil, err
	}

	out := &AppInfo{
		Magic:    a.Header.Magic,
		Universe: a.Header.Universe,
		Entries:  res.Entries,
	}
	for _, s := range res.Skipped {
		out.Skipped = append(out.Skipped, SkippedChunk{
			AppID:  s.Chunk.AppID,
			Offset: s.Chunk.Offset,
			Length: s.Chunk.Length,
			Err:    s.Err,
		})
	}
	return out, nil
}

// OpenAppInfo maps the file at path and decodes it.
func OpenAppInfo(path string, opts types.DecodeOptions) (*AppInfo, error) {
	data, release, err := mmfile.Map(path)
	if err != nil {
		return nil, fmt.Errorf("open appinfo: %w", err)
	}
	defer release()

	info, err := DecodeAppInfo(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return info, nil
}

// IndexAppInfo reads the header, string table and chunk headers of an
// appinfo.vdf file without decoding any chunk body.
func IndexAppInfo(data []byte) (*Index, error) {
	a, err := format.ParseAppInfo(data, types.EncodingUTF8)
	if err != nil {
		return nil, err
	}
	idx := &Index{
		Magic:    a.Header.Magic,
		Version:  a.Header.Version(),
		Universe: a.Header.Universe,
		Strings:  a.Strings,
		Chunks:   make([]ChunkInfo, 0, len(a.Chunks)),
	}
	for _, c := range a.Chunks {
		h, err := a.ChunkHeader(c)
		if err != nil {
			return nil, fmt.Errorf("appinfo chunk (appid %d) header: %w", c.AppID, err)
		}
		idx.Chunks = append(idx.Chunks, ChunkInfo{
			AppID:        c.AppID,
			Offset:       c.Offset,
			Length:       c.Length,
			InfoState:    h.InfoState,
			LastUpdated:  h.LastUpdated,
			PICSToken:    h.PICSToken,
			SHA1:         h.SHA1,
			ChangeNumber: h.ChangeNumber,
			BinarySHA1:   h.BinarySHA1,
		})
	}
	return idx, nil
}

// IndexAppInfoFile maps the file at path and indexes it.
func IndexAppInfoFile(path string) (*Index, error) {
	data, release, err := mmfile.Map(path)
	if err != nil {
		return nil, fmt.Errorf("open appinfo: %w", err)
	}
	defer release()

	idx, err := IndexAppInfo(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return idx, nil
}
