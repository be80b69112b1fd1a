package types

import "log/slog"

// StringEncoding selects how string bytes in a VDF file map to Go strings.
type StringEncoding int

const (
	// EncodingUTF8 keeps string bytes unchanged. Steam writes UTF-8, so this
	// is the default, and arbitrary bytes still round-trip exactly.
	EncodingUTF8 StringEncoding = iota
	// EncodingLatin1 widens every byte to the rune of the same value
	// (ISO-8859-1). Non-ASCII UTF-8 text decodes as mojibake; this mode exists
	// for callers that must match output produced that way.
	EncodingLatin1
)

func (e StringEncoding) String() string {
	switch e {
	case EncodingUTF8:
		return "utf-8"
	case EncodingLatin1:
		return "latin-1"
	default:
		return "unknown"
	}
}

// DecodeOptions controls appinfo.vdf and shortcuts.vdf decoding.
type DecodeOptions struct {
	// IncludeNonGames disables the default game-only filter, keeping every
	// decoded appinfo entry whatever its common.type.
	IncludeNonGames bool

	// Workers bounds the number of chunk bodies decoded concurrently.
	// Zero or negative selects GOMAXPROCS; 1 decodes strictly in file order.
	Workers int

	// Encoding selects string decoding. The zero value is UTF-8.
	Encoding StringEncoding

	// Tolerant skips appinfo chunks whose body fails to decode and reports
	// them instead of failing the whole file. Header, string table and chunk
	// index errors are still fatal.
	Tolerant bool

	// Logger receives debug records about dispatch and skipped chunks.
	// Nil discards them.
	Logger *slog.Logger
}

// EncodeOptions controls shortcuts.vdf encoding.
type EncodeOptions struct {
	// Encoding selects string encoding. The zero value is UTF-8.
	Encoding StringEncoding

	// InitialSize is the starting size of the output buffer.
	// Zero selects a default; the buffer grows as needed and is trimmed.
	InitialSize int
}

// WriteOptions controls writing an encoded shortcuts.vdf to disk.
type WriteOptions struct {
	EncodeOptions

	// CreateBackup copies the existing file to <path>.bak before replacing it.
	CreateBackup bool
}
