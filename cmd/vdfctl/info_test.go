package main

import (
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/vdfkit/cmd/vdfctl/logger"
	"github.com/joshuapare/vdfkit/internal/testutil"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want fileKind
	}{
		{"v27", []byte{0x27, 0x44, 0x56, 0x07}, kindAppInfo},
		{"v28", []byte{0x28, 0x44, 0x56, 0x07}, kindAppInfo},
		{"v29", []byte{0x29, 0x44, 0x56, 0x07, 0, 0}, kindAppInfo},
		{"shortcuts", []byte("\x00shortcuts\x00\x08\x08"), kindShortcuts},
		{"other header", []byte("\x00screenshots\x00"), kindUnknown},
		{"short", []byte{0x29}, kindUnknown},
		{"empty", nil, kindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectKind(tt.data))
		})
	}
}

func TestInfoAppInfoText(t *testing.T) {
	resetFlags(t)
	path := appInfoFixture(t)

	out, err := captureOutput(t, func() error { return runInfo([]string{path}) })
	require.NoError(t, err)
	assert.Contains(t, out, "appinfo.vdf")
	assert.Contains(t, out, "Magic: 0x07564429 (version 41)")
	assert.Contains(t, out, "String table: 6 entries")
	assert.Contains(t, out, "Apps: 3")
}

func TestInfoAppInfoJSON(t *testing.T) {
	resetFlags(t)
	jsonOut = true
	path := appInfoFixture(t)

	out, err := captureOutput(t, func() error { return runInfo([]string{path}) })
	require.NoError(t, err)

	var info FileInfo
	assertJSON(t, out, &info)
	assert.Equal(t, "appinfo", info.Kind)
	assert.Equal(t, 41, info.Version)
	assert.Equal(t, 3, info.Chunks)
	assert.Equal(t, 0, info.Shortcuts)
}

func TestInfoShortcuts(t *testing.T) {
	resetFlags(t)
	jsonOut = true
	path := shortcutsFixture(t)

	out, err := captureOutput(t, func() error { return runInfo([]string{path}) })
	require.NoError(t, err)

	var info FileInfo
	assertJSON(t, out, &info)
	assert.Equal(t, "shortcuts", info.Kind)
	assert.Equal(t, 2, info.Shortcuts)
	assert.Empty(t, info.Magic)
}

func TestInfoUnknownFile(t *testing.T) {
	resetFlags(t)
	path := testutil.WriteTemp(t, "notes.txt", []byte("hello"))
	_, err := captureOutput(t, func() error { return runInfo([]string{path}) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an appinfo.vdf or shortcuts.vdf file")
}

func TestRootCommandRunsWithLogging(t *testing.T) {
	resetFlags(t)
	t.Cleanup(func() {
		resetFlags(t)
		rootCmd.SetArgs(nil)
		_, _ = logger.Init(logger.Options{})
	})
	path := shortcutsFixture(t)
	dir := t.TempDir()

	rootCmd.SetArgs([]string{"info", path, "--json", "--log-dir", dir, "--verbose"})
	out, err := captureOutput(t, rootCmd.Execute)
	require.NoError(t, err)
	assert.Contains(t, out, `"kind": "shortcuts"`)
	assert.True(t, color.NoColor, "piped stdout disables color")
}

func TestRunLogsCommandFailure(t *testing.T) {
	resetFlags(t)
	t.Cleanup(func() {
		resetFlags(t)
		rootCmd.SetArgs(nil)
		_, _ = logger.Init(logger.Options{})
	})
	dir := t.TempDir()
	missing := filepath.Join(t.TempDir(), "missing.vdf")

	rootCmd.SetArgs([]string{"info", missing, "--log-dir", dir})
	_, err := captureOutput(t, run)
	require.Error(t, err)

	log := readLogDir(t, dir)
	assert.Contains(t, log, `"level":"ERROR"`)
	assert.Contains(t, log, `"msg":"command failed"`)
	assert.Contains(t, log, "missing.vdf")
}
