package vdf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/vdfkit/internal/testutil"
	"github.com/joshuapare/vdfkit/pkg/types"
	"github.com/joshuapare/vdfkit/pkg/vdf"
)

func TestParseFormat(t *testing.T) {
	tests := map[string]vdf.Format{
		"":        vdf.FormatJSON,
		"JSON":    vdf.FormatJSON,
		"yml":     vdf.FormatYAML,
		"yaml":    vdf.FormatYAML,
		"msgpack": vdf.FormatMsgpack,
	}
	for in, want := range tests {
		got, err := vdf.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := vdf.ParseFormat("xml")
	require.Error(t, err)
}

func TestMarshalJSONKeepsOrder(t *testing.T) {
	root := types.NewMap().Set("b", types.UInt32(2)).Set("a", types.Text("x"))
	out, err := vdf.Marshal(root, vdf.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"b\": 2,\n  \"a\": \"x\"\n}", string(out))
}

func TestMarshalEntries(t *testing.T) {
	entries := []*types.Map{types.NewMap().Set("appid", types.UInt32(1))}
	out, err := vdf.Marshal(entries, vdf.FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"appid":1}]`, string(out))

	out, err = vdf.Marshal(entries, vdf.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "- appid: 1\n", string(out))
}

func TestTransportRoundTrips(t *testing.T) {
	root := testutil.Shortcuts(testutil.Shortcut(3000000001, "Emulator", "emu", "a", "b"))
	for _, f := range []vdf.Format{vdf.FormatJSON, vdf.FormatMsgpack} {
		t.Run(f.String(), func(t *testing.T) {
			out, err := vdf.Marshal(root, f)
			require.NoError(t, err)
			back, err := vdf.Unmarshal(out, f)
			require.NoError(t, err)
			assert.True(t, types.Equal(root, back))
		})
	}
}

func TestUnmarshalRejects(t *testing.T) {
	_, err := vdf.Unmarshal([]byte(`"text"`), vdf.FormatJSON)
	require.ErrorIs(t, err, types.ErrNotAnObject)

	_, err = vdf.Unmarshal([]byte("a: 1"), vdf.FormatYAML)
	require.Error(t, err)

	// {"appid": nil} and {"appid": -1} have no UInt32 rendering.
	for _, data := range [][]byte{
		{0x81, 0xa5, 'a', 'p', 'p', 'i', 'd', 0xc0},
		{0x81, 0xa5, 'a', 'p', 'p', 'i', 'd', 0xff},
	} {
		_, err = vdf.Unmarshal(data, vdf.FormatMsgpack)
		require.Error(t, err)
	}
}
