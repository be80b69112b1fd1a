package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/vdfkit/cmd/vdfctl/logger"
	"github.com/joshuapare/vdfkit/pkg/types"
	"github.com/joshuapare/vdfkit/pkg/vdf"
)

var (
	appinfoAll      bool
	appinfoGames    bool
	appinfoIndex    bool
	appinfoTolerant bool
	appinfoWorkers  int
	appinfoFormat   string
)

func init() {
	cmd := newAppInfoCmd()
	cmd.Flags().BoolVar(&appinfoAll, "all", false, "Include non-game apps (DLC, tools, ...)")
	cmd.Flags().BoolVar(&appinfoGames, "games", false, "List appid and name only, sorted by name")
	cmd.Flags().BoolVar(&appinfoIndex, "index", false, "Show chunk headers without decoding bodies")
	cmd.Flags().BoolVar(&appinfoTolerant, "tolerant", false, "Skip apps that fail to decode")
	cmd.Flags().IntVar(&appinfoWorkers, "workers", 0, "Concurrent chunk decoders (0 = GOMAXPROCS)")
	cmd.Flags().StringVar(&appinfoFormat, "format", "", "Output format (json, yaml, msgpack)")
	rootCmd.AddCommand(cmd)
}

func newAppInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appinfo <appinfo.vdf>",
		Short: "Decode appinfo.vdf",
		Long: `The appinfo command decodes Steam's appinfo.vdf metadata cache. By
default only apps whose common.type is "game" are printed.

Example:
  vdfctl appinfo appinfo.vdf --games
  vdfctl appinfo appinfo.vdf --all --format yaml
  vdfctl appinfo appinfo.vdf --index
  vdfctl appinfo appinfo.vdf --tolerant --workers 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAppInfo(args)
		},
	}
	return cmd
}

// ChunkView is one row of the --index report.
type ChunkView struct {
	AppID        uint32    `json:"appid" yaml:"appid" msgpack:"appid"`
	Offset       int       `json:"offset" yaml:"offset" msgpack:"offset"`
	Length       int       `json:"length" yaml:"length" msgpack:"length"`
	InfoState    uint32    `json:"info_state" yaml:"info_state" msgpack:"info_state"`
	LastUpdated  time.Time `json:"last_updated" yaml:"last_updated" msgpack:"last_updated"`
	PICSToken    uint64    `json:"pics_token" yaml:"pics_token" msgpack:"pics_token"`
	ChangeNumber uint32    `json:"change_number" yaml:"change_number" msgpack:"change_number"`
	SHA1         string    `json:"sha1" yaml:"sha1" msgpack:"sha1"`
	BinarySHA1   string    `json:"binary_sha1" yaml:"binary_sha1" msgpack:"binary_sha1"`
}

func chunkViews(idx *vdf.Index) []ChunkView {
	out := make([]ChunkView, 0, len(idx.Chunks))
	for _, c := range idx.Chunks {
		out = append(out, ChunkView{
			AppID:        c.AppID,
			Offset:       c.Offset,
			Length:       c.Length,
			InfoState:    c.InfoState,
			LastUpdated:  time.Unix(int64(c.LastUpdated), 0).UTC(),
			PICSToken:    c.PICSToken,
			ChangeNumber: c.ChangeNumber,
			SHA1:         hex.EncodeToString(c.SHA1[:]),
			BinarySHA1:   hex.EncodeToString(c.BinarySHA1[:]),
		})
	}
	return out
}

func runAppInfo(args []string) error {
	path := args[0]

	if appinfoIndex {
		return runAppInfoIndex(path)
	}

	printVerbose("Decoding %s (workers=%d, encoding=%s)\n", path, appinfoWorkers, stringEncoding())
	start := time.Now()
	info, err := vdf.OpenAppInfo(path, types.DecodeOptions{
		IncludeNonGames: appinfoAll,
		Workers:         appinfoWorkers,
		Encoding:        stringEncoding(),
		Tolerant:        appinfoTolerant,
		Logger:          logger.L,
	})
	if err != nil {
		return err
	}
	logger.Info("decoded appinfo", "path", path, "entries", len(info.Entries),
		"skipped", len(info.Skipped), "elapsed", time.Since(start))

	for _, s := range info.Skipped {
		logger.Warn("skipped appinfo chunk", "path", path, "appid", s.AppID,
			"offset", s.Offset, "length", s.Length, "err", s.Err)
		fmt.Fprintln(os.Stderr, warnColor.Sprintf("skipped appid %d: %v", s.AppID, s.Err))
	}

	if !appinfoGames {
		return writeFormatted(nonNil(info.Entries), appinfoFormat)
	}

	games := nonNil(vdf.GameSummaries(info.Entries))
	if structured(appinfoFormat) {
		return writeFormatted(games, appinfoFormat)
	}
	printHeading("%d games\n", len(games))
	for _, g := range games {
		printInfo("  %-10d %s\n", g.AppID, g.Name)
	}
	return nil
}

func runAppInfoIndex(path string) error {
	idx, err := vdf.IndexAppInfoFile(path)
	if err != nil {
		return err
	}
	views := chunkViews(idx)
	if structured(appinfoFormat) {
		return writeFormatted(views, appinfoFormat)
	}

	printHeading("appinfo.vdf version %d, %d apps, %d strings\n", idx.Version, len(views), len(idx.Strings))
	printInfo("  %-10s %-10s %-8s %-10s %s\n", "APPID", "OFFSET", "LENGTH", "CHANGE", "UPDATED")
	for _, v := range views {
		printInfo("  %-10d %-10d %-8d %-10d %s\n",
			v.AppID, v.Offset, v.Length, v.ChangeNumber, v.LastUpdated.Format(time.RFC3339))
	}
	return nil
}
