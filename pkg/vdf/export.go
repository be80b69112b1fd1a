package vdf

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/joshuapare/vdfkit/pkg/types"
)

// Format is a transport encoding for decoded trees.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatMsgpack
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatMsgpack:
		return "msgpack"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat parses a format name as accepted on the command line.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	default:
		return 0, fmt.Errorf("unknown format %q (want json, yaml or msgpack)", s)
	}
}

// Marshal encodes v in format f. Trees keep their key order in every format.
// v is typically a *types.Map, a []*types.Map of appinfo entries, or a
// summary slice.
func Marshal(v any, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return json.MarshalIndent(v, "", "  ")
	case FormatYAML:
		return yaml.Marshal(v)
	case FormatMsgpack:
		return msgpack.Marshal(v)
	default:
		return nil, fmt.Errorf("unknown format %v", f)
	}
}

// Unmarshal decodes a tree encoded in format f. JSON input goes through
// types.ParseJSON so that numbers map to UInt32 and strings to Text.
func Unmarshal(data []byte, f Format) (*types.Map, error) {
	switch f {
	case FormatJSON:
		n, err := types.ParseJSON(data)
		if err != nil {
			return nil, err
		}
		m, ok := n.(*types.Map)
		if !ok {
			return nil, fmt.Errorf("json root is %s, want map: %w", n.Kind(), types.ErrNotAnObject)
		}
		return m, nil
	case FormatMsgpack:
		m := types.NewMap()
		if err := msgpack.Unmarshal(data, m); err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("decoding %v is not supported", f)
	}
}
