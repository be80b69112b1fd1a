package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/goccy/go-yaml"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

var (
	_ json.Marshaler          = (*Map)(nil)
	_ json.Unmarshaler        = (*Map)(nil)
	_ msgpack.CustomEncoder   = (*Map)(nil)
	_ msgpack.CustomDecoder   = (*Map)(nil)
	_ yaml.InterfaceMarshaler = (*Map)(nil)
)

// -----------------------------------------------------------------------------
// JSON
// -----------------------------------------------------------------------------

// MarshalJSON writes the map as a JSON object with keys in map order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, e := range m.Entries() {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		val, err := marshalJSONNode(e.Value)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", e.Key, err)
		}
		b.Write(val)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func marshalJSONNode(n Node) ([]byte, error) {
	switch v := n.(type) {
	case *Map:
		return v.MarshalJSON()
	case Text:
		return json.Marshal(string(v))
	case UInt32:
		return json.Marshal(uint32(v))
	default:
		panic(fmt.Sprintf("types: unknown node kind %T", n))
	}
}

// UnmarshalJSON replaces the map's contents with a JSON object, keeping the
// object's key order. See ParseJSON for the accepted value shapes.
func (m *Map) UnmarshalJSON(data []byte) error {
	n, err := ParseJSON(data)
	if err != nil {
		return err
	}
	mm, ok := n.(*Map)
	if !ok {
		return fmt.Errorf("json: expected object, got %s", n.Kind())
	}
	*m = *mm
	return nil
}

// ParseJSON builds a tree from JSON. Objects become maps (key order kept),
// strings become Text, and integers in [0, 2^32-1] become UInt32. Arrays,
// booleans, null and fractional or out-of-range numbers have no VDF
// representation and are rejected.
func ParseJSON(data []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	n, err := parseJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("json: trailing data after value")
	}
	return n, nil
}

func parseJSONValue(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	switch v := tok.(type) {
	case json.Delim:
		if v != '{' {
			return nil, fmt.Errorf("json: unsupported %q at offset %d", v, dec.InputOffset())
		}
		m := NewMap()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("json: %w", err)
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("json: expected key, got %v", keyTok)
			}
			val, err := parseJSONValue(dec)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			m.Set(key, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("json: %w", err)
		}
		return m, nil
	case string:
		return Text(v), nil
	case json.Number:
		u, err := parseUint32(v.String())
		if err != nil {
			return nil, err
		}
		return UInt32(u), nil
	default:
		return nil, fmt.Errorf("json: unsupported value %v", tok)
	}
}

func parseUint32(s string) (uint32, error) {
	n := json.Number(s)
	i, err := n.Int64()
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil || f != math.Trunc(f) {
			return 0, fmt.Errorf("json: number %s is not an integer", s)
		}
		i = int64(f)
		if float64(i) != f {
			return 0, fmt.Errorf("json: number %s out of uint32 range", s)
		}
	}
	if i < 0 || i > math.MaxUint32 {
		return 0, fmt.Errorf("json: number %s out of uint32 range", s)
	}
	return uint32(i), nil
}

// -----------------------------------------------------------------------------
// YAML
// -----------------------------------------------------------------------------

// MarshalYAML renders the map as an ordered YAML mapping.
func (m *Map) MarshalYAML() (any, error) {
	out := make(yaml.MapSlice, 0, m.Len())
	for k, v := range m.All() {
		switch v.(type) {
		case *Map, Text, UInt32:
		default:
			panic(fmt.Sprintf("types: unknown node kind %T", v))
		}
		out = append(out, yaml.MapItem{Key: k, Value: v})
	}
	return out, nil
}

// MarshalYAML renders any node as YAML.
func MarshalYAML(n Node) ([]byte, error) {
	return yaml.Marshal(n)
}

// -----------------------------------------------------------------------------
// MessagePack
// -----------------------------------------------------------------------------

// EncodeMsgpack writes the map as a MessagePack map in key order.
func (m *Map) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(m.Len()); err != nil {
		return err
	}
	for k, v := range m.All() {
		if err := enc.EncodeString(k); err != nil {
			return err
		}
		var err error
		switch v := v.(type) {
		case *Map:
			err = v.EncodeMsgpack(enc)
		case Text:
			err = enc.EncodeString(string(v))
		case UInt32:
			err = enc.EncodeUint(uint64(v))
		default:
			panic(fmt.Sprintf("types: unknown node kind %T", v))
		}
		if err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
	}
	return nil
}

// DecodeMsgpack replaces the map's contents with a MessagePack map. Nested
// maps, strings and integers in [0, 2^32-1] are accepted.
func (m *Map) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return err
	}
	*m = Map{}
	for i := 0; i < n; i++ {
		key, err := dec.DecodeString()
		if err != nil {
			return err
		}
		code, err := dec.PeekCode()
		if err != nil {
			return err
		}
		switch {
		case msgpcode.IsFixedMap(code) || code == msgpcode.Map16 || code == msgpcode.Map32:
			child := NewMap()
			if err := child.DecodeMsgpack(dec); err != nil {
				return fmt.Errorf("key %q: %w", key, err)
			}
			m.Set(key, child)
		case msgpcode.IsString(code):
			s, err := dec.DecodeString()
			if err != nil {
				return fmt.Errorf("key %q: %w", key, err)
			}
			m.Set(key, Text(s))
		default:
			u, err := decodeMsgpackUint32(dec, code)
			if err != nil {
				return fmt.Errorf("key %q: %w", key, err)
			}
			m.Set(key, UInt32(u))
		}
	}
	return nil
}

// decodeMsgpackUint32 reads an integer in [0, 2^32-1]. Nil, booleans, floats,
// arrays and negative or wider integers are rejected rather than coerced.
func decodeMsgpackUint32(dec *msgpack.Decoder, code byte) (uint32, error) {
	switch {
	case code <= msgpcode.PosFixedNumHigh,
		code == msgpcode.Uint8, code == msgpcode.Uint16,
		code == msgpcode.Uint32, code == msgpcode.Uint64:
		u, err := dec.DecodeUint64()
		if err != nil {
			return 0, err
		}
		if u > math.MaxUint32 {
			return 0, fmt.Errorf("msgpack: number %d out of uint32 range", u)
		}
		return uint32(u), nil
	case code >= msgpcode.NegFixedNumLow,
		code == msgpcode.Int8, code == msgpcode.Int16,
		code == msgpcode.Int32, code == msgpcode.Int64:
		i, err := dec.DecodeInt64()
		if err != nil {
			return 0, err
		}
		if i < 0 || i > math.MaxUint32 {
			return 0, fmt.Errorf("msgpack: number %d out of uint32 range", i)
		}
		return uint32(i), nil
	default:
		return 0, fmt.Errorf("msgpack: unsupported value code 0x%02x", code)
	}
}
