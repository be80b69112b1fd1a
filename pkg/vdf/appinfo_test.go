package vdf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/vdfkit/internal/testutil"
	"github.com/joshuapare/vdfkit/pkg/types"
	"github.com/joshuapare/vdfkit/pkg/vdf"
)

func sampleAppInfo(magic uint32) []byte {
	b := testutil.NewAppInfo(magic)
	b.Wrap = magic == testutil.MagicV29
	return b.
		Add(440, testutil.Game(440, "Team Fortress 2", "Game")).
		Add(441, testutil.Game(441, "TF2 Soundtrack", "DLC")).
		Add(10, testutil.Game(10, "Counter-Strike", "game")).
		Build()
}

func TestDecodeAppInfo(t *testing.T) {
	for _, magic := range []uint32{testutil.MagicV27, testutil.MagicV28, testutil.MagicV29} {
		info, err := vdf.DecodeAppInfo(sampleAppInfo(magic), types.DecodeOptions{})
		require.NoError(t, err, "magic 0x%08x", magic)
		assert.Equal(t, magic, info.Magic)
		assert.Equal(t, uint32(1), info.Universe)
		require.Len(t, info.Entries, 2)
		assert.True(t, types.Equal(testutil.Game(440, "Team Fortress 2", "Game"), info.Entries[0]))
		assert.True(t, types.Equal(testutil.Game(10, "Counter-Strike", "game"), info.Entries[1]))
		assert.Empty(t, info.Skipped)
	}
}

func TestDecodeAppInfoIncludeNonGames(t *testing.T) {
	info, err := vdf.DecodeAppInfo(sampleAppInfo(testutil.MagicV29), types.DecodeOptions{IncludeNonGames: true})
	require.NoError(t, err)
	assert.Len(t, info.Entries, 3)
}

func TestDecodeAppInfoTolerant(t *testing.T) {
	data := testutil.NewAppInfo(testutil.MagicV28).
		Add(1, testutil.Game(1, "One", "game")).
		AddRaw(2, []byte{0x03, 'x', 0x00, 0x08}).
		Add(3, testutil.Game(3, "Three", "game")).
		Build()

	_, err := vdf.DecodeAppInfo(data, types.DecodeOptions{})
	require.ErrorIs(t, err, types.ErrUnexpectedFieldTag)

	info, err := vdf.DecodeAppInfo(data, types.DecodeOptions{Tolerant: true})
	require.NoError(t, err)
	assert.Len(t, info.Entries, 2)
	require.Len(t, info.Skipped, 1)
	assert.Equal(t, uint32(2), info.Skipped[0].AppID)
	assert.Equal(t, 64, info.Skipped[0].Length)
	assert.ErrorIs(t, info.Skipped[0].Err, types.ErrUnexpectedFieldTag)
}

func TestOpenAppInfo(t *testing.T) {
	path := testutil.WriteTemp(t, "appinfo.vdf", sampleAppInfo(testutil.MagicV29))
	info, err := vdf.OpenAppInfo(path, types.DecodeOptions{Workers: 2})
	require.NoError(t, err)
	require.Len(t, info.Entries, 2)

	name, ok := info.Entries[0].GetMap("common")
	require.True(t, ok)
	got, _ := name.GetText("name")
	assert.Equal(t, "Team Fortress 2", got)
}

func TestOpenAppInfoErrorsNamePath(t *testing.T) {
	path := testutil.WriteTemp(t, "appinfo.vdf", []byte{1, 2, 3, 4, 5, 6, 7, 8})
	_, err := vdf.OpenAppInfo(path, types.DecodeOptions{})
	require.ErrorIs(t, err, types.ErrUnsupportedMagic)
	assert.Contains(t, err.Error(), path)

	_, err = vdf.OpenAppInfo(path+".missing", types.DecodeOptions{})
	require.Error(t, err)
}

func TestIndexAppInfo(t *testing.T) {
	b := testutil.NewAppInfo(testutil.MagicV29)
	b.ExtraStrings = []string{"extra"}
	data := b.Add(730, testutil.Game(730, "CS", "game")).Add(570, testutil.Game(570, "Dota", "game")).Build()

	idx, err := vdf.IndexAppInfo(data)
	require.NoError(t, err)
	assert.Equal(t, vdf.MagicV29, idx.Magic)
	assert.Equal(t, 41, idx.Version)
	assert.Equal(t, []string{"appid", "common", "name", "type", "gameid", "extra"}, idx.Strings)

	require.Len(t, idx.Chunks, 2)
	c := idx.Chunks[0]
	assert.Equal(t, uint32(730), c.AppID)
	assert.Equal(t, 24, c.Offset)
	assert.Equal(t, uint32(2), c.InfoState)
	assert.Equal(t, uint32(1700000730), c.LastUpdated)
	assert.Equal(t, uint64(7300), c.PICSToken)
	assert.Equal(t, uint32(1730), c.ChangeNumber)
	assert.Equal(t, byte(0xA0), c.BinarySHA1[0])
	assert.Equal(t, uint32(570), idx.Chunks[1].AppID)
	assert.Equal(t, c.Offset+c.Length+8, idx.Chunks[1].Offset)

	path := testutil.WriteTemp(t, "appinfo.vdf", data)
	fromFile, err := vdf.IndexAppInfoFile(path)
	require.NoError(t, err)
	assert.Equal(t, idx, fromFile)
}

func TestIndexAppInfoLegacyHasNoStrings(t *testing.T) {
	idx, err := vdf.IndexAppInfo(sampleAppInfo(testutil.MagicV28))
	require.NoError(t, err)
	assert.Nil(t, idx.Strings)
	assert.Equal(t, 40, idx.Version)
	assert.Len(t, idx.Chunks, 3)
	assert.Equal(t, 16, idx.Chunks[0].Offset)
}
