package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/vdfkit/pkg/vdf"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Identify a VDF file and report basic metadata",
		Long: `The info command detects whether a file is appinfo.vdf or shortcuts.vdf
and reports its layout: magic and version, string table size and chunk count
for appinfo.vdf, or the number of shortcuts for shortcuts.vdf.

Example:
  vdfctl info ~/.steam/steam/appcache/appinfo.vdf
  vdfctl info shortcuts.vdf --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

// FileInfo is the info command's report.
type FileInfo struct {
	File      string `json:"file"`
	Kind      string `json:"kind"`
	Size      int    `json:"size"`
	Magic     string `json:"magic,omitempty"`
	Version   int    `json:"version,omitempty"`
	Universe  uint32 `json:"universe,omitempty"`
	Strings   int    `json:"strings,omitempty"`
	Chunks    int    `json:"chunks,omitempty"`
	Shortcuts int    `json:"shortcuts,omitempty"`
}

func runInfo(args []string) error {
	path := args[0]
	printVerbose("Opening: %s\n", path)

	data, kind, err := readVDF(path)
	if err != nil {
		return err
	}
	info := FileInfo{File: path, Kind: kind.String(), Size: len(data)}

	switch kind {
	case kindAppInfo:
		idx, err := vdf.IndexAppInfo(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		info.Magic = fmt.Sprintf("0x%08x", idx.Magic)
		info.Version = idx.Version
		info.Universe = idx.Universe
		info.Strings = len(idx.Strings)
		info.Chunks = len(idx.Chunks)
	case kindShortcuts:
		root, err := vdf.DecodeShortcuts(data, stringEncoding())
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		info.Shortcuts = root.Len()
	}

	if jsonOut {
		return printJSON(info)
	}

	printHeading("\n%s\n", kindTitle(kind))
	printInfo("  File: %s\n", info.File)
	printInfo("  Size: %d bytes\n", info.Size)
	if kind == kindAppInfo {
		printInfo("  Magic: %s (version %d)\n", info.Magic, info.Version)
		printInfo("  Universe: %d\n", info.Universe)
		if info.Strings > 0 {
			printInfo("  String table: %d entries\n", info.Strings)
		} else {
			printInfo("  String table: none (inline keys)\n")
		}
		printInfo("  Apps: %d\n", info.Chunks)
	} else {
		printInfo("  Shortcuts: %d\n", info.Shortcuts)
	}
	return nil
}

func kindTitle(k fileKind) string {
	if k == kindAppInfo {
		return "appinfo.vdf"
	}
	return "shortcuts.vdf"
}
