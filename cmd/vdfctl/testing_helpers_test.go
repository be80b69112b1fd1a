package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/vdfkit/internal/testutil"
)

// resetFlags restores every global flag to its default.
func resetFlags(t *testing.T) {
	t.Helper()
	verbose, quiet, jsonOut, noColor, latin1 = false, false, false, false, false
	logDir = ""
	appinfoAll, appinfoGames, appinfoIndex, appinfoTolerant = false, false, false, false
	appinfoWorkers, appinfoFormat = 0, ""
	shortcutsList, shortcutsFormat = false, ""
	importBackup, importDryRun, setIconBackup = false, false, false
	diffFull = false
	color.NoColor = true
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.Bytes()
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	return string(<-done), fnErr
}

// readLogDir returns the contents of the single log file in dir.
func readLogDir(t *testing.T, dir string) string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	return string(data)
}

// assertJSON decodes output as JSON into v
func assertJSON(t *testing.T, output string, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(output), v), "invalid JSON output:\n%s", output)
}

func appInfoFixture(t *testing.T) string {
	t.Helper()
	b := testutil.NewAppInfo(testutil.MagicV29)
	b.Wrap = true
	data := b.
		Add(440, testutil.Game(440, "Team Fortress 2", "Game")).
		Add(441, testutil.Game(441, "TF2 Soundtrack", "DLC")).
		Add(10, testutil.Game(10, "Counter-Strike", "game")).
		Build()
	return testutil.WriteTemp(t, "appinfo.vdf", data)
}

func shortcutsFixture(t *testing.T) string {
	t.Helper()
	root := testutil.Shortcuts(
		testutil.Shortcut(3000000001, "Emulator", "/usr/bin/emu", "Retro"),
		testutil.Shortcut(3000000002, "Launcher", "/usr/bin/launcher"),
	)
	return testutil.WriteTemp(t, "shortcuts.vdf", testutil.ShortcutsFile(root))
}
