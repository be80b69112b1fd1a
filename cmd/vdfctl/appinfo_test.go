package main

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/vdfkit/cmd/vdfctl/logger"
	"github.com/joshuapare/vdfkit/internal/testutil"
	"github.com/joshuapare/vdfkit/pkg/vdf"
)

func TestAppInfoDefaultJSON(t *testing.T) {
	resetFlags(t)
	path := appInfoFixture(t)

	out, err := captureOutput(t, func() error { return runAppInfo([]string{path}) })
	require.NoError(t, err)

	var entries []map[string]any
	assertJSON(t, out, &entries)
	require.Len(t, entries, 2)
	assert.EqualValues(t, 440, entries[0]["appid"])
	assert.EqualValues(t, 10, entries[1]["appid"])
	assert.NotContains(t, out, "Soundtrack")
}

func TestAppInfoAllYAML(t *testing.T) {
	resetFlags(t)
	appinfoAll = true
	appinfoFormat = "yaml"
	path := appInfoFixture(t)

	out, err := captureOutput(t, func() error { return runAppInfo([]string{path}) })
	require.NoError(t, err)
	assert.Contains(t, out, "- appid: 440\n  common:\n    name: Team Fortress 2\n")
	assert.Contains(t, out, "TF2 Soundtrack")
}

func TestAppInfoGamesText(t *testing.T) {
	resetFlags(t)
	appinfoGames = true
	path := appInfoFixture(t)

	out, err := captureOutput(t, func() error { return runAppInfo([]string{path}) })
	require.NoError(t, err)
	assert.Contains(t, out, "2 games")
	assert.Less(t, strings.Index(out, "Counter-Strike"), strings.Index(out, "Team Fortress 2"))
}

func TestAppInfoGamesJSON(t *testing.T) {
	resetFlags(t)
	appinfoGames = true
	jsonOut = true
	path := appInfoFixture(t)

	out, err := captureOutput(t, func() error { return runAppInfo([]string{path}) })
	require.NoError(t, err)

	var games []vdf.GameSummary
	assertJSON(t, out, &games)
	assert.Equal(t, []vdf.GameSummary{
		{AppID: 10, Name: "Counter-Strike"},
		{AppID: 440, Name: "Team Fortress 2"},
	}, games)
}

func TestAppInfoIndex(t *testing.T) {
	resetFlags(t)
	appinfoIndex = true
	appinfoFormat = "json"
	path := appInfoFixture(t)

	out, err := captureOutput(t, func() error { return runAppInfo([]string{path}) })
	require.NoError(t, err)

	var views []ChunkView
	assertJSON(t, out, &views)
	require.Len(t, views, 3)
	assert.Equal(t, uint32(440), views[0].AppID)
	assert.Equal(t, uint32(1440), views[0].ChangeNumber)
	assert.Equal(t, int64(1700000440), views[0].LastUpdated.Unix())
	assert.Equal(t, "a0a1a2a3a4a5a6a7a8a9aaabacadaeafb0b1b2b3", views[0].BinarySHA1)
}

func TestAppInfoIndexText(t *testing.T) {
	resetFlags(t)
	appinfoIndex = true
	path := appInfoFixture(t)

	out, err := captureOutput(t, func() error { return runAppInfo([]string{path}) })
	require.NoError(t, err)
	assert.Contains(t, out, "appinfo.vdf version 41, 3 apps, 6 strings")
	assert.Contains(t, out, "APPID")
}

func TestAppInfoTolerant(t *testing.T) {
	data := testutil.NewAppInfo(testutil.MagicV28).
		Add(1, testutil.Game(1, "One", "game")).
		AddRaw(2, []byte{0x03, 0x00, 0x08}).
		Build()
	path := testutil.WriteTemp(t, "appinfo.vdf", data)

	resetFlags(t)
	_, err := captureOutput(t, func() error { return runAppInfo([]string{path}) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected field tag 0x03")

	resetFlags(t)
	appinfoTolerant = true
	appinfoWorkers = 1
	dir := t.TempDir()
	closeFile, err := logger.Init(logger.Options{Enabled: true, LogDir: dir, Level: slog.LevelInfo})
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = logger.Init(logger.Options{}) })

	out, err := captureOutput(t, func() error { return runAppInfo([]string{path}) })
	require.NoError(t, err)
	assert.Contains(t, out, `"One"`)

	require.NoError(t, closeFile())
	log := readLogDir(t, dir)
	assert.Contains(t, log, `"msg":"skipped appinfo chunk"`)
	assert.Contains(t, log, `"appid":2`)
	assert.Contains(t, log, "unexpected field tag 0x03")
}

func TestAppInfoBadFormat(t *testing.T) {
	resetFlags(t)
	appinfoFormat = "xml"
	path := appInfoFixture(t)
	_, err := captureOutput(t, func() error { return runAppInfo([]string{path}) })
	require.Error(t, err)
}
