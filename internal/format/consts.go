// Package format houses the low-level decoders and encoders for Valve's
// binary KeyValue ("VDF") files: appinfo.vdf, the per-application metadata
// cache, and shortcuts.vdf, the list of non-Steam shortcuts. It works on
// in-memory buffers through internal/buf cursors and stays independent from
// the public API so higher-level packages can orchestrate file access.
package format

import "encoding/binary"

// ByteOrder is the byte order of every multi-byte integer in both formats.
var ByteOrder binary.ByteOrder = binary.LittleEndian

// AppInfo magic numbers. The low byte is the format version; the upper three
// bytes spell "\x07VD" little-endian.
const (
	// MagicV27 is the oldest supported layout: inline keys, no string table.
	MagicV27 uint32 = 0x07564427
	// MagicV28 is the legacy layout: inline keys, no string table.
	MagicV28 uint32 = 0x07564428
	// MagicV29 stores map keys as indexes into a string table located at the
	// offset recorded in the file header.
	MagicV29 uint32 = 0x07564429
)

// Field tags shared by appinfo chunk bodies and shortcuts.vdf.
const (
	TagMap    byte = 0x00
	TagString byte = 0x01
	TagUInt32 byte = 0x02
	TagEnd    byte = 0x08
)

// AppInfo layout.
//
//	Header (little-endian):
//	  0x00  u32  magic
//	  0x04  u32  universe (always 1)
//	  0x08  i64  string table offset (MagicV29 only)
//
//	Chunk:
//	  u32  appid (0 terminates the chunk list)
//	  u32  length of everything that follows, up to the next appid
//	  60-byte chunk header (see ChunkHeader)
//	  map body
const (
	// AppInfoHeaderSize is the size of the magic and universe fields.
	AppInfoHeaderSize = 8
	// StringTableOffsetSize is the size of the V29 string table offset field.
	StringTableOffsetSize = 8
	// ChunkHeaderSize is the fixed header at the start of every chunk body.
	ChunkHeaderSize = 60
	// StringTableBoundaryAdjust is subtracted from the string table offset to
	// get the end-of-chunk-table boundary in V29 files.
	StringTableBoundaryAdjust = 4
)

// Chunk header field offsets relative to the start of the chunk body.
const (
	ChunkInfoStateOffset    = 0x00 // u32
	ChunkLastUpdatedOffset  = 0x04 // u32 unix seconds
	ChunkPICSTokenOffset    = 0x08 // u64
	ChunkSHA1Offset         = 0x10 // [20]byte text SHA-1
	ChunkChangeNumberOffset = 0x24 // u32
	ChunkBinarySHA1Offset   = 0x28 // [20]byte binary SHA-1
)

// Shortcuts layout: one tag byte (0x00), the NUL-terminated header name,
// the root map body, and a final TagEnd closing the implicit outer map.
const (
	// ShortcutsHeader is the name of the single top-level map.
	ShortcutsHeader = "shortcuts"
	// ShortcutsLeadSize is the number of bytes skipped before the header.
	ShortcutsLeadSize = 1
)

// Keys consulted while post-processing appinfo entries.
const (
	KeyAppInfo = "appinfo"
	KeyCommon  = "common"
	KeyType    = "type"
	KeyName    = "name"
	KeyAppID   = "appid"
	TypeGame   = "game"
)

// Shortcut entry fields read by listings and the icon editor. Older clients
// write KeyLegacyAppName instead of KeyAppName.
const (
	KeyAppName       = "AppName"
	KeyLegacyAppName = "appname"
	KeyExe           = "Exe"
	KeyIcon          = "icon"
)
