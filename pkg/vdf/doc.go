/*
Package vdf reads and writes Steam's binary VDF files: the appinfo.vdf
metadata cache and the per-user shortcuts.vdf list of non-Steam games.

# Reading appinfo.vdf

	info, err := vdf.OpenAppInfo("/path/to/appcache/appinfo.vdf", types.DecodeOptions{})
	if err != nil {
	    log.Fatal(err)
	}
	for _, g := range vdf.GameSummaries(info.Entries) {
	    fmt.Println(g.AppID, g.Name)
	}

Only entries whose common.type is "game" are returned by default; set
DecodeOptions.IncludeNonGames to keep everything. Chunk bodies are decoded
concurrently; DecodeOptions.Workers bounds the goroutine count.

# Editing shortcuts.vdf

	root, err := vdf.OpenShortcuts(path, types.EncodingUTF8)
	if err != nil {
	    log.Fatal(err)
	}
	if err := vdf.SetShortcutIcon(root, 3000000001, "/art/icon.png"); err != nil {
	    log.Fatal(err)
	}
	err = vdf.WriteShortcuts(path, root, types.WriteOptions{CreateBackup: true})

WriteShortcuts encodes the whole tree in memory before the file is touched,
and replaces the file with an atomic rename.

# Errors

Every error produced by a malformed file matches one of the sentinels in
package types with errors.Is:

	if errors.Is(err, types.ErrTruncatedInput) {
	    // file was cut short
	}
*/
package vdf
