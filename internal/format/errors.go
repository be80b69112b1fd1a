package format

import (
	"fmt"

	"github.com/joshuapare/vdfkit/pkg/types"
)

func errUnsupportedMagic(magic uint32) error {
	return types.Newf(types.ErrKindUnsupportedMagic,
		"unsupported appinfo magic 0x%08x (want 0x%08x, 0x%08x or 0x%08x)",
		magic, MagicV27, MagicV28, MagicV29)
}

func errUnexpectedTag(tag byte, off int) error {
	return types.Newf(types.ErrKindUnexpectedFieldTag, "unexpected field tag 0x%02x at offset %d", tag, off)
}

func errStringIndex(idx uint32, size, off int) error {
	return types.Newf(types.ErrKindInvalidStringTableIndex,
		"string table index %d out of range (%d entries) at offset %d", idx, size, off)
}

func errBadHeader(got string) error {
	return types.Newf(types.ErrKindInvalidHeader, "shortcuts header %q, want %q", got, ShortcutsHeader)
}

func errNotAnObject(n types.Node) error {
	kind := "nil"
	if n != nil {
		kind = n.Kind().String()
	}
	return types.Newf(types.ErrKindNotAnObject, "encode root: got %s, want map", kind)
}

func errEmbeddedNUL(what, s string) error {
	return &types.Error{
		Kind: types.ErrKindUnencodableText,
		Msg:  fmt.Sprintf("%s %q contains a NUL byte", what, s),
	}
}

func errTooDeep(off int) error {
	return types.Newf(types.ErrKindNestingTooDeep, "maps nested deeper than %d at offset %d", types.MaxNestingDepth, off)
}
