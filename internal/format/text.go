package format

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/vdfkit/pkg/types"
)

// TextEncoding maps a StringEncoding to the x/text encoding used by the
// cursors. UTF-8 returns nil, which keeps string bytes unchanged.
func TextEncoding(e types.StringEncoding) encoding.Encoding {
	switch e {
	case types.EncodingLatin1:
		return charmap.ISO8859_1
	default:
		return nil
	}
}
