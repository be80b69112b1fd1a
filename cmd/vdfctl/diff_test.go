package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/vdfkit/internal/testutil"
	"github.com/joshuapare/vdfkit/pkg/types"
	"github.com/joshuapare/vdfkit/pkg/vdf"
)

func TestDiffIdentical(t *testing.T) {
	resetFlags(t)
	a := shortcutsFixture(t)
	b := shortcutsFixture(t)

	out, err := captureOutput(t, func() error { return runDiff([]string{a, b}) })
	require.NoError(t, err)
	assert.Contains(t, out, "files are identical")
}

func TestDiffChangedIcon(t *testing.T) {
	resetFlags(t)
	a := shortcutsFixture(t)
	b := shortcutsFixture(t)

	root, err := vdf.OpenShortcuts(b, stringEncoding())
	require.NoError(t, err)
	require.NoError(t, vdf.SetShortcutIcon(root, 3000000001, "/art/new.png"))
	data, err := vdf.EncodeShortcuts(root, types.EncodeOptions{})
	require.NoError(t, err)
	b = testutil.WriteTemp(t, "changed.vdf", data)

	jsonOut = true
	out, err := captureOutput(t, func() error { return runDiff([]string{a, b}) })
	require.NoError(t, err)

	var res DiffResult
	assertJSON(t, out, &res)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Removed)
	assert.Contains(t, res.Lines, DiffLine{Op: "-", Text: `  icon: ""`})
	assert.Contains(t, res.Lines, DiffLine{Op: "+", Text: "  icon: /art/new.png"})
}

func TestDiffText(t *testing.T) {
	resetFlags(t)
	res := diffLines("a: 1\nb: 2\n", "a: 1\nb: 3\nc: 4\n")
	assert.Equal(t, 2, res.Added)
	assert.Equal(t, 1, res.Removed)

	out, err := captureOutput(t, func() error {
		a := testutil.WriteTemp(t, "a.vdf", testutil.ShortcutsFile(testutil.Shortcuts(testutil.Shortcut(1, "A", "a"))))
		b := testutil.WriteTemp(t, "b.vdf", testutil.ShortcutsFile(testutil.Shortcuts(testutil.Shortcut(1, "B", "a"))))
		return runDiff([]string{a, b})
	})
	require.NoError(t, err)
	assert.Contains(t, out, "-   AppName: A")
	assert.Contains(t, out, "+   AppName: B")
	assert.Contains(t, out, "1 added, 1 removed")
}

func TestDiffKindMismatch(t *testing.T) {
	resetFlags(t)
	_, err := captureOutput(t, func() error {
		return runDiff([]string{appInfoFixture(t), shortcutsFixture(t)})
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot compare appinfo file with shortcuts file")
}
