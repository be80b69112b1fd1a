package types

import (
	"fmt"
	"iter"
)

// Kind enumerates the value shapes a binary KeyValue file can express.
type Kind uint8

const (
	KindMap Kind = iota + 1
	KindText
	KindUInt32
)

func (k Kind) String() string {
	switch k {
	case KindMap:
		return "map"
	case KindText:
		return "text"
	case KindUInt32:
		return "uint32"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Node is a decoded KeyValue value: exactly one of *Map, Text or UInt32.
// The set is closed; the unexported method keeps other packages from adding
// variants, so a type switch over these three cases is exhaustive.
type Node interface {
	Kind() Kind
	node()
}

// Text is a string field (tag 0x01).
type Text string

// UInt32 is a 32-bit unsigned field (tag 0x02).
type UInt32 uint32

func (Text) Kind() Kind   { return KindText }
func (UInt32) Kind() Kind { return KindUInt32 }
func (*Map) Kind() Kind   { return KindMap }

func (Text) node()   {}
func (UInt32) node() {}
func (*Map) node()   {}

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   string
	Value Node
}

// Map is an insertion-ordered collection of uniquely keyed nodes (tag 0x00).
// Iteration order is the order keys were first set, which is the order the
// encoder writes them back.
type Map struct {
	entries []Entry
	index   map[string]int
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{}
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Set stores v under key. An existing key keeps its position and has its
// value replaced; a new key is appended. Set returns m so trees can be built
// inline.
func (m *Map) Set(key string, v Node) *Map {
	if v == nil {
		panic("types: Map.Set with nil node for key " + key)
	}
	if m.index == nil {
		m.index = make(map[string]int, len(m.entries)+1)
		for i, e := range m.entries {
			m.index[e.Key] = i
		}
	}
	if i, ok := m.index[key]; ok {
		m.entries[i].Value = v
		return m
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: v})
	return m
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Node, bool) {
	if m == nil {
		return nil, false
	}
	if m.index == nil {
		for _, e := range m.entries {
			if e.Key == key {
				return e.Value, true
			}
		}
		return nil, false
	}
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// GetMap returns the nested map under key, if key holds a map.
func (m *Map) GetMap(key string) (*Map, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	mm, ok := v.(*Map)
	return mm, ok
}

// GetText returns the string under key, if key holds a string.
func (m *Map) GetText(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	t, ok := v.(Text)
	return string(t), ok
}

// GetUInt32 returns the integer under key, if key holds an integer.
func (m *Map) GetUInt32(key string) (uint32, bool) {
	v, ok := m.Get(key)
	if !ok {
		return 0, false
	}
	u, ok := v.(UInt32)
	return uint32(u), ok
}

// Delete removes key and reports whether it was present. The order of the
// remaining entries is unchanged.
func (m *Map) Delete(key string) bool {
	if m == nil {
		return false
	}
	at := -1
	for i, e := range m.entries {
		if e.Key == key {
			at = i
			break
		}
	}
	if at < 0 {
		return false
	}
	m.entries = append(m.entries[:at], m.entries[at+1:]...)
	m.index = nil
	return true
}

// Keys returns the keys in order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, m.Len())
	for k := range m.All() {
		keys = append(keys, k)
	}
	return keys
}

// Entries returns a copy of the entries in order.
func (m *Map) Entries() []Entry {
	if m == nil {
		return nil
	}
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// All iterates the entries in order.
func (m *Map) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		if m == nil {
			return
		}
		for _, e := range m.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Equal reports whether a and b are structurally identical, including the
// order of map entries.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case Text:
		bv, ok := b.(Text)
		return ok && av == bv
	case UInt32:
		bv, ok := b.(UInt32)
		return ok && av == bv
	case *Map:
		bv, ok := b.(*Map)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		if av.Len() == 0 {
			return true
		}
		for i, e := range av.entries {
			o := bv.entries[i]
			if e.Key != o.Key || !Equal(e.Value, o.Value) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("types: unknown node kind %T", a))
	}
}
