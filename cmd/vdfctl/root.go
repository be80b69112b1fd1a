package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/joshuapare/vdfkit/cmd/vdfctl/logger"
	"github.com/joshuapare/vdfkit/pkg/types"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	noColor bool
	logDir  string
	latin1  bool

	closeLog = func() error { return nil }
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	okColor      = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	addColor     = color.New(color.FgGreen)
	delColor     = color.New(color.FgRed)
)

var rootCmd = &cobra.Command{
	Use:   "vdfctl",
	Short: "Inspect and edit Steam binary VDF files",
	Long: `vdfctl reads Steam's binary VDF files: the appinfo.vdf metadata cache
and the per-user shortcuts.vdf list of non-Steam games. It can export either
file as JSON, YAML or MessagePack, and rewrite shortcuts.vdf safely.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		color.NoColor = !useColor()
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		c, err := logger.Init(logger.Options{Enabled: logDir != "", LogDir: logDir, Level: level})
		if err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		closeLog = c
		logger.Debug("command start", "cmd", cmd.CommandPath(), "args", args)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().
		StringVar(&logDir, "log-dir", "", "Write a debug log to this directory")
	rootCmd.PersistentFlags().
		BoolVar(&latin1, "latin1", false, "Treat VDF strings as Latin-1 instead of UTF-8")
}

func execute() {
	if err := run(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// run executes the root command. A failed command skips PersistentPostRunE,
// so the failure is logged and the log file closed here.
func run() error {
	err := rootCmd.Execute()
	if err != nil {
		logger.Error("command failed", "err", err)
		_ = closeLog()
	}
	closeLog = func() error { return nil }
	return err
}

// useColor reports whether styled output should be emitted.
func useColor() bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// stringEncoding returns the encoding selected by --latin1.
func stringEncoding() types.StringEncoding {
	if latin1 {
		return types.EncodingLatin1
	}
	return types.EncodingUTF8
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printHeading prints a section heading if not in quiet mode
func printHeading(format string, args ...any) {
	if !quiet {
		headingColor.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprint(os.Stderr, delColor.Sprint("Error: "))
	fmt.Fprintf(os.Stderr, format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
