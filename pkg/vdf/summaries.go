package vdf

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/joshuapare/vdfkit/internal/format"
	"github.com/joshuapare/vdfkit/pkg/types"
)

// ErrShortcutNotFound is returned when no shortcut carries the requested appid.
var ErrShortcutNotFound = errors.New("shortcut not found")

// GameSummary is the appid and display name of an appinfo entry.
type GameSummary struct {
	AppID uint32 `json:"appid" yaml:"appid" msgpack:"appid"`
	Name  string `json:"name" yaml:"name" msgpack:"name"`
}

// GameSummaries extracts appid and common.name from decoded appinfo entries,
// sorted case-insensitively by name. Entries without an appid are dropped;
// a missing name sorts as the empty string.
func GameSummaries(entries []*types.Map) []GameSummary {
	out := make([]GameSummary, 0, len(entries))
	for _, e := range entries {
		id, ok := e.GetUInt32(format.KeyAppID)
		if !ok {
			continue
		}
		var name string
		if common, ok := e.GetMap(format.KeyCommon); ok {
			name, _ = common.GetText(format.KeyName)
		}
		out = append(out, GameSummary{AppID: id, Name: name})
	}
	slices.SortStableFunc(out, func(a, b GameSummary) int {
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return cmp.Compare(a.AppID, b.AppID)
	})
	return out
}

// ShortcutSummary is the subset of a shortcut entry shown in listings.
type ShortcutSummary struct {
	Key   string `json:"key" yaml:"key" msgpack:"key"`
	AppID uint32 `json:"appid" yaml:"appid" msgpack:"appid"`
	Name  string `json:"name" yaml:"name" msgpack:"name"`
	Exe   string `json:"exe" yaml:"exe" msgpack:"exe"`
	Icon  string `json:"icon" yaml:"icon" msgpack:"icon"`
}

// ShortcutSummaries lists the entries of a decoded shortcuts.vdf root in
// file order. Non-map children are ignored. Older Steam clients write the
// name field as "appname", which is used when "AppName" is absent.
func ShortcutSummaries(root *types.Map) []ShortcutSummary {
	var out []ShortcutSummary
	for key, v := range root.All() {
		e, ok := v.(*types.Map)
		if !ok {
			continue
		}
		s := ShortcutSummary{Key: key}
		s.AppID, _ = e.GetUInt32(format.KeyAppID)
		if name, ok := e.GetText(format.KeyAppName); ok {
			s.Name = name
		} else {
			s.Name, _ = e.GetText(format.KeyLegacyAppName)
		}
		s.Exe, _ = e.GetText(format.KeyExe)
		s.Icon, _ = e.GetText(format.KeyIcon)
		out = append(out, s)
	}
	return out
}

// SetShortcutIcon sets the icon field of every shortcut whose appid matches.
func SetShortcutIcon(root *types.Map, appid uint32, icon string) error {
	found := false
	for _, v := range root.All() {
		e, ok := v.(*types.Map)
		if !ok {
			continue
		}
		if id, ok := e.GetUInt32(format.KeyAppID); ok && id == appid {
			e.Set(format.KeyIcon, types.Text(icon))
			found = true
		}
	}
	if !found {
		return fmt.Errorf("appid %d: %w", appid, ErrShortcutNotFound)
	}
	return nil
}
