package testutil

import (
	"encoding/binary"
	"fmt"

	"github.com/joshuapare/vdfkit/internal/buf"
	"github.com/joshuapare/vdfkit/pkg/types"
)

// Magic numbers, duplicated here so fixtures do not depend on the decoder.
const (
	MagicV27 uint32 = 0x07564427
	MagicV28 uint32 = 0x07564428
	MagicV29 uint32 = 0x07564429
)

const chunkHeaderSize = 60

// AppInfoBuilder assembles an appinfo.vdf file from app bodies.
type AppInfoBuilder struct {
	Magic    uint32
	Universe uint32

	// Wrap nests every body under an "appinfo" key, as newer clients do.
	Wrap bool

	// ExtraStrings are appended to the V29 string table after the keys in use.
	ExtraStrings []string

	apps []fixtureApp
}

type fixtureApp struct {
	id   uint32
	body *types.Map
	raw  []byte
}

// NewAppInfo returns a builder for the given magic with universe 1.
func NewAppInfo(magic uint32) *AppInfoBuilder {
	return &AppInfoBuilder{Magic: magic, Universe: 1}
}

// Add appends an app whose body is encoded from m.
func (b *AppInfoBuilder) Add(appid uint32, m *types.Map) *AppInfoBuilder {
	b.apps = append(b.apps, fixtureApp{id: appid, body: m})
	return b
}

// AddRaw appends an app whose body bytes (after the 60-byte header) are
// used verbatim, for corrupt-input tests.
func (b *AppInfoBuilder) AddRaw(appid uint32, body []byte) *AppInfoBuilder {
	b.apps = append(b.apps, fixtureApp{id: appid, raw: body})
	return b
}

// Game returns a typical app body: appid plus a common section.
func Game(appid uint32, name, typ string) *types.Map {
	return types.NewMap().
		Set("appid", types.UInt32(appid)).
		Set("common", types.NewMap().
			Set("name", types.Text(name)).
			Set("type", types.Text(typ)).
			Set("gameid", types.Text(fmt.Sprint(appid))))
}

// ChunkHeaderFor returns the deterministic 60-byte header the builder writes
// for appid.
func ChunkHeaderFor(appid uint32) []byte {
	h := make([]byte, chunkHeaderSize)
	binary.LittleEndian.PutUint32(h[0x00:], 2)                // info state
	binary.LittleEndian.PutUint32(h[0x04:], 1700000000+appid) // last updated
	binary.LittleEndian.PutUint64(h[0x08:], uint64(appid)*10) // PICS token
	for i := 0; i < 20; i++ {
		h[0x10+i] = byte(appid) + byte(i) // text SHA-1
		h[0x28+i] = 0xA0 + byte(i)        // binary SHA-1
	}
	binary.LittleEndian.PutUint32(h[0x24:], appid+1000) // change number
	return h
}

// Build encodes the file.
func (b *AppInfoBuilder) Build() []byte {
	indexed := b.Magic == MagicV29
	table := newKeyTable()

	bodies := make([][]byte, len(b.apps))
	for i, a := range b.apps {
		if a.raw != nil {
			bodies[i] = a.raw
			continue
		}
		body := a.body
		if b.Wrap {
			body = types.NewMap().Set("appinfo", body)
		}
		w := buf.NewWriter(256, binary.LittleEndian)
		if indexed {
			writeIndexedMap(w, body, table)
		} else {
			writeInlineMap(w, body)
		}
		bodies[i] = w.Trim()
	}
	for _, s := range b.ExtraStrings {
		table.index(s)
	}

	w := buf.NewWriter(1024, binary.LittleEndian)
	w.PutU32(b.Magic)
	w.PutU32(b.Universe)
	stoAt := w.Offset()
	if indexed {
		w.PutI64(0) // patched below
	}
	for i, a := range b.apps {
		w.PutU32(a.id)
		w.PutU32(uint32(chunkHeaderSize + len(bodies[i])))
		w.PutBytes(ChunkHeaderFor(a.id))
		w.PutBytes(bodies[i])
	}
	w.PutU32(0)

	if !indexed {
		return w.Trim()
	}
	sto := w.Offset()
	w.PutU32(uint32(len(table.keys)))
	for _, k := range table.keys {
		_, _ = w.PutString(k, false, true)
	}
	out := w.Trim()
	binary.LittleEndian.PutUint64(out[stoAt:], uint64(sto))
	return out
}

type keyTable struct {
	keys []string
	at   map[string]uint32
}

func newKeyTable() *keyTable {
	return &keyTable{at: map[string]uint32{}}
}

func (t *keyTable) index(k string) uint32 {
	if i, ok := t.at[k]; ok {
		return i
	}
	i := uint32(len(t.keys))
	t.at[k] = i
	t.keys = append(t.keys, k)
	return i
}

func tagOf(v types.Node) byte {
	switch v.(type) {
	case *types.Map:
		return 0x00
	case types.Text:
		return 0x01
	case types.UInt32:
		return 0x02
	default:
		panic(fmt.Sprintf("testutil: unknown node %T", v))
	}
}

func writeValue(w *buf.Writer, v types.Node, child func(*types.Map)) {
	switch v := v.(type) {
	case *types.Map:
		child(v)
	case types.Text:
		_, _ = w.PutString(string(v), false, true)
	case types.UInt32:
		w.PutU32(uint32(v))
	}
}

func writeInlineMap(w *buf.Writer, m *types.Map) {
	for k, v := range m.All() {
		w.PutU8(tagOf(v))
		_, _ = w.PutString(k, false, true)
		writeValue(w, v, func(c *types.Map) { writeInlineMap(w, c) })
	}
	w.PutU8(0x08)
}

func writeIndexedMap(w *buf.Writer, m *types.Map, t *keyTable) {
	for k, v := range m.All() {
		w.PutU8(tagOf(v))
		w.PutU32(t.index(k))
		writeValue(w, v, func(c *types.Map) { writeIndexedMap(w, c, t) })
	}
	w.PutU8(0x08)
}
