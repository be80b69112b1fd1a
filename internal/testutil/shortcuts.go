package testutil

import (
	"encoding/binary"
	"strconv"

	"github.com/joshuapare/vdfkit/internal/buf"
	"github.com/joshuapare/vdfkit/pkg/types"
)

// Shortcut returns a shortcut entry shaped like the ones Steam writes.
func Shortcut(appid uint32, name, exe string, tags ...string) *types.Map {
	tagMap := types.NewMap()
	for i, tag := range tags {
		tagMap.Set(strconv.Itoa(i), types.Text(tag))
	}
	return types.NewMap().
		Set("appid", types.UInt32(appid)).
		Set("AppName", types.Text(name)).
		Set("Exe", types.Text(exe)).
		Set("StartDir", types.Text("")).
		Set("icon", types.Text("")).
		Set("IsHidden", types.UInt32(0)).
		Set("LastPlayTime", types.UInt32(0)).
		Set("tags", tagMap)
}

// Shortcuts returns the root map holding entries keyed "0", "1", ...
func Shortcuts(entries ...*types.Map) *types.Map {
	root := types.NewMap()
	for i, e := range entries {
		root.Set(strconv.Itoa(i), e)
	}
	return root
}

// ShortcutsFile encodes root the way Steam lays out shortcuts.vdf.
func ShortcutsFile(root *types.Map) []byte {
	w := buf.NewWriter(512, binary.LittleEndian)
	w.PutU8(0x00)
	_, _ = w.PutString("shortcuts", false, true)
	writeInlineMap(w, root)
	w.PutU8(0x08)
	return w.Trim()
}
