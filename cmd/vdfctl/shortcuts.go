package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/vdfkit/cmd/vdfctl/logger"
	"github.com/joshuapare/vdfkit/pkg/types"
	"github.com/joshuapare/vdfkit/pkg/vdf"
)

var (
	shortcutsList   bool
	shortcutsFormat string
	importBackup    bool
	importDryRun    bool
	setIconBackup   bool
)

func init() {
	cmd := newShortcutsCmd()
	cmd.Flags().BoolVar(&shortcutsList, "list", false, "List appid, name, exe and icon only")
	cmd.Flags().StringVar(&shortcutsFormat, "format", "", "Output format (json, yaml, msgpack)")

	imp := newShortcutsImportCmd()
	imp.Flags().BoolVar(&importBackup, "backup", false, "Copy the existing file to <out>.bak first")
	imp.Flags().BoolVar(&importDryRun, "dry-run", false, "Encode only, report the size, write nothing")

	icon := newShortcutsSetIconCmd()
	icon.Flags().BoolVar(&setIconBackup, "backup", false, "Copy the existing file to <file>.bak first")

	cmd.AddCommand(imp, icon)
	rootCmd.AddCommand(cmd)
}

func newShortcutsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shortcuts <shortcuts.vdf>",
		Short: "Decode shortcuts.vdf",
		Long: `The shortcuts command decodes a user's shortcuts.vdf, the list of
non-Steam games added to the library.

Example:
  vdfctl shortcuts shortcuts.vdf
  vdfctl shortcuts shortcuts.vdf --list
  vdfctl shortcuts shortcuts.vdf --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShortcuts(args)
		},
	}
	return cmd
}

func newShortcutsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <shortcuts.json> <shortcuts.vdf>",
		Short: "Encode a JSON tree as shortcuts.vdf",
		Long: `The import command reads a JSON object, as printed by
"vdfctl shortcuts --format json", and writes it as shortcuts.vdf. Objects
become maps, strings become strings, and integers become uint32 fields. A
root of the form {"shortcuts": {...}} is unwrapped.

Example:
  vdfctl shortcuts import edited.json shortcuts.vdf --backup`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShortcutsImport(args)
		},
	}
}

func newShortcutsSetIconCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-icon <shortcuts.vdf> <appid> <icon>",
		Short: "Set the icon of a non-Steam shortcut",
		Long: `The set-icon command sets the icon field of the shortcut with the given
appid and rewrites the file atomically.

Example:
  vdfctl shortcuts set-icon shortcuts.vdf 3000000001 /art/3000000001_icon.png`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShortcutsSetIcon(args)
		},
	}
}

func runShortcuts(args []string) error {
	path := args[0]
	printVerbose("Decoding %s (encoding=%s)\n", path, stringEncoding())

	root, err := vdf.OpenShortcuts(path, stringEncoding())
	if err != nil {
		return err
	}
	if !shortcutsList {
		return writeFormatted(root, shortcutsFormat)
	}

	list := nonNil(vdf.ShortcutSummaries(root))
	if structured(shortcutsFormat) {
		return writeFormatted(list, shortcutsFormat)
	}
	printHeading("%d shortcuts\n", len(list))
	for _, s := range list {
		printInfo("  [%s] %-10d %s\n", s.Key, s.AppID, s.Name)
		printVerbose("        exe:  %s\n        icon: %s\n", s.Exe, s.Icon)
	}
	return nil
}

func runShortcutsImport(args []string) error {
	in, out := args[0], args[1]

	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	root, err := vdf.Unmarshal(data, vdf.FormatJSON)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	if inner, ok := root.GetMap("shortcuts"); ok && root.Len() == 1 {
		root = inner
	}

	opts := types.EncodeOptions{Encoding: stringEncoding()}
	if importDryRun {
		n, err := vdf.EncodedSize(root, opts)
		if err != nil {
			return err
		}
		printInfo("Would write %d bytes (%d shortcuts) to %s\n", n, root.Len(), out)
		return nil
	}

	if err := vdf.WriteShortcuts(out, root, types.WriteOptions{EncodeOptions: opts, CreateBackup: importBackup}); err != nil {
		return err
	}
	logger.Info("imported shortcuts", "from", in, "to", out, "count", root.Len())
	printInfo("%s wrote %d shortcuts to %s\n", okColor.Sprint("✓"), root.Len(), out)
	return nil
}

func runShortcutsSetIcon(args []string) error {
	path, icon := args[0], args[2]
	appid, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid appid %q: %w", args[1], err)
	}

	root, err := vdf.OpenShortcuts(path, stringEncoding())
	if err != nil {
		return err
	}
	if err := vdf.SetShortcutIcon(root, uint32(appid), icon); err != nil {
		return err
	}
	opts := types.WriteOptions{
		EncodeOptions: types.EncodeOptions{Encoding: stringEncoding()},
		CreateBackup:  setIconBackup,
	}
	if err := vdf.WriteShortcuts(path, root, opts); err != nil {
		return err
	}
	logger.Info("set shortcut icon", "path", path, "appid", appid, "icon", icon)
	printInfo("%s icon for %d set to %s\n", okColor.Sprint("✓"), appid, icon)
	return nil
}
