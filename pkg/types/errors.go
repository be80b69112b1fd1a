package types

import "fmt"

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindUnsupportedMagic        ErrKind = iota + 1 // appinfo magic is not a known version
	ErrKindUnexpectedFieldTag                         // field tag outside {0x00,0x01,0x02,0x08}
	ErrKindTruncatedInput                             // a read or seek ran past the buffer
	ErrKindInvalidStringTableIndex                    // indexed key outside the string table
	ErrKindNotAnObject                                // encoder root is not a map
	ErrKindInvalidHeader                              // shortcuts header mismatch
	ErrKindUnencodableText                            // text cannot be written in the chosen encoding
	ErrKindNestingTooDeep                             // maps nested beyond MaxNestingDepth
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindUnsupportedMagic:
		return "UnsupportedMagic"
	case ErrKindUnexpectedFieldTag:
		return "UnexpectedFieldTag"
	case ErrKindTruncatedInput:
		return "TruncatedInput"
	case ErrKindInvalidStringTableIndex:
		return "InvalidStringTableIndex"
	case ErrKindNotAnObject:
		return "NotAnObject"
	case ErrKindInvalidHeader:
		return "InvalidHeader"
	case ErrKindUnencodableText:
		return "UnencodableText"
	case ErrKindNestingTooDeep:
		return "NestingTooDeep"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind, so detailed errors
// still match the sentinels below with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Newf builds an *Error of the given kind with a formatted message.
func Newf(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Sentinels commonly returned by implementations.
var (
	// ErrUnsupportedMagic indicates an appinfo.vdf version this package cannot read.
	ErrUnsupportedMagic = &Error{Kind: ErrKindUnsupportedMagic, Msg: "unsupported appinfo magic"}
	// ErrUnexpectedFieldTag indicates a field tag byte that is not map, string, uint32 or end.
	ErrUnexpectedFieldTag = &Error{Kind: ErrKindUnexpectedFieldTag, Msg: "unexpected field tag"}
	// ErrTruncatedInput indicates the buffer ended before a structure did.
	ErrTruncatedInput = &Error{Kind: ErrKindTruncatedInput, Msg: "truncated input"}
	// ErrInvalidStringTableIndex indicates a key index outside the loaded string table.
	ErrInvalidStringTableIndex = &Error{Kind: ErrKindInvalidStringTableIndex, Msg: "invalid string table index"}
	// ErrNotAnObject indicates the encoder was handed a non-map root.
	ErrNotAnObject = &Error{Kind: ErrKindNotAnObject, Msg: "root is not an object"}
	// ErrInvalidHeader indicates a shortcuts.vdf file without the "shortcuts" header.
	ErrInvalidHeader = &Error{Kind: ErrKindInvalidHeader, Msg: "invalid shortcuts header"}
	// ErrUnencodableText indicates a key or string that cannot be stored, either
	// because it holds a NUL byte or because the text encoding cannot represent it.
	ErrUnencodableText = &Error{Kind: ErrKindUnencodableText, Msg: "text cannot be encoded"}
	// ErrNestingTooDeep indicates maps nested deeper than MaxNestingDepth.
	ErrNestingTooDeep = &Error{Kind: ErrKindNestingTooDeep, Msg: "maps nested too deeply"}
)
