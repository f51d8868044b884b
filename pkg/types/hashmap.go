package types

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// keywordMarker prefixes encoded keyword keys. 0xFF never occurs in valid
// UTF-8, so an encoded keyword can not equal any valid text key.
const keywordMarker = "\xff"

// Map is an immutable hash map keyed by Str or Keyword values.
type Map struct {
	entries map[string]Value
	Meta    Value
}

func (Map) malValue() {}

// MapKey encodes a Str or Keyword as an internal map key.
func MapKey(k Value) (string, bool) {
	switch key := k.(type) {
	case Str:
		return key.Value, true
	case Keyword:
		return keywordMarker + key.Name, true
	}
	return "", false
}

// KeyValue decodes an internal map key back into a Str or Keyword.
func KeyValue(k string) Value {
	if strings.HasPrefix(k, keywordMarker) {
		return Keyword{Name: k[len(keywordMarker):]}
	}
	return Str{Value: k}
}

// ValidText reports whether s may be stored as Str without colliding with
// encoded keyword keys.
func ValidText(s string) bool {
	return utf8.ValidString(s)
}

// NewMap builds a map from alternating key/value arguments.
func NewMap(kvs ...Value) (Map, error) {
	return Map{}.Assoc(kvs...)
}

// Len returns the number of entries.
func (m Map) Len() int {
	return len(m.entries)
}

// Get looks up key. Non-key values are never present.
func (m Map) Get(key Value) (Value, bool) {
	k, ok := MapKey(key)
	if !ok {
		return nil, false
	}
	v, found := m.entries[k]
	return v, found
}

// Assoc returns a copy of m with the given key/value pairs added.
func (m Map) Assoc(kvs ...Value) (Map, error) {
	if len(kvs)%2 != 0 {
		return Map{}, fmt.Errorf("odd number of map arguments")
	}
	out := make(map[string]Value, len(m.entries)+len(kvs)/2)
	for k, v := range m.entries {
		out[k] = v
	}
	for i := 0; i < len(kvs); i += 2 {
		k, ok := MapKey(kvs[i])
		if !ok {
			return Map{}, fmt.Errorf("map keys must be strings or keywords, got %s", TypeName(kvs[i]))
		}
		out[k] = kvs[i+1]
	}
	return Map{entries: out, Meta: m.Meta}, nil
}

// Dissoc returns a copy of m without the given keys.
func (m Map) Dissoc(keys ...Value) Map {
	out := make(map[string]Value, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	for _, key := range keys {
		if k, ok := MapKey(key); ok {
			delete(out, k)
		}
	}
	return Map{entries: out, Meta: m.Meta}
}

// Keys returns the keys in sorted encoded order so iteration is deterministic.
func (m Map) Keys() []Value {
	out := make([]Value, 0, len(m.entries))
	for _, k := range m.sortedKeys() {
		out = append(out, KeyValue(k))
	}
	return out
}

// Range calls fn for every entry in sorted key order until fn returns false.
func (m Map) Range(fn func(key, val Value) bool) {
	for _, k := range m.sortedKeys() {
		if !fn(KeyValue(k), m.entries[k]) {
			return
		}
	}
}

func (m Map) sortedKeys() []string {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
