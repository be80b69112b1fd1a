package main

import (
	"fmt"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/joshuapare/vdfkit/pkg/vdf"
)

var diffFull bool

func init() {
	cmd := newDiffCmd()
	cmd.Flags().BoolVar(&diffFull, "full", false, "Print unchanged lines too")
	rootCmd.AddCommand(cmd)
}

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <file1> <file2>",
		Short: "Compare two VDF files and show differences",
		Long: `The diff command decodes two appinfo.vdf or shortcuts.vdf files, renders
both as YAML, and prints a line diff of the renderings. Appinfo files are
compared with every app included, games or not.

Example:
  vdfctl diff shortcuts.vdf.bak shortcuts.vdf
  vdfctl diff old/appinfo.vdf new/appinfo.vdf --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args)
		},
	}
	return cmd
}

// DiffLine is one line of diff output.
type DiffLine struct {
	Op   string `json:"op"` // "+", "-" or " "
	Text string `json:"text"`
}

// DiffResult is the diff command's report.
type DiffResult struct {
	Added   int        `json:"added"`
	Removed int        `json:"removed"`
	Lines   []DiffLine `json:"lines"`
}

func runDiff(args []string) error {
	printVerbose("Comparing %s and %s...\n", args[0], args[1])

	a, kindA, err := renderYAML(args[0])
	if err != nil {
		return err
	}
	b, kindB, err := renderYAML(args[1])
	if err != nil {
		return err
	}
	if kindA != kindB {
		return fmt.Errorf("cannot compare %s file with %s file", kindA, kindB)
	}

	res := diffLines(a, b)

	if jsonOut {
		return printJSON(res)
	}
	if res.Added == 0 && res.Removed == 0 {
		printInfo("%s files are identical\n", okColor.Sprint("✓"))
		return nil
	}
	for _, l := range res.Lines {
		switch l.Op {
		case "+":
			printInfo("%s\n", addColor.Sprint("+ "+l.Text))
		case "-":
			printInfo("%s\n", delColor.Sprint("- "+l.Text))
		default:
			if diffFull {
				printInfo("  %s\n", l.Text)
			}
		}
	}
	printHeading("\n%d added, %d removed\n", res.Added, res.Removed)
	return nil
}

func renderYAML(path string) (string, fileKind, error) {
	v, kind, err := decodeAny(path)
	if err != nil {
		return "", kind, err
	}
	out, err := vdf.Marshal(v, vdf.FormatYAML)
	if err != nil {
		return "", kind, fmt.Errorf("%s: render: %w", path, err)
	}
	return string(out), kind, nil
}

// diffLines computes a line-level diff of a and b.
func diffLines(a, b string) DiffResult {
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	res := DiffResult{Lines: []DiffLine{}}
	for _, d := range diffs {
		op := " "
		switch d.Type {
		case diffpatch.DiffInsert:
			op = "+"
		case diffpatch.DiffDelete:
			op = "-"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			res.Lines = append(res.Lines, DiffLine{Op: op, Text: strings.TrimSuffix(line, "\n")})
			switch op {
			case "+":
				res.Added++
			case "-":
				res.Removed++
			}
		}
	}
	return res
}
