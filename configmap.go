package linecfg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
)

// Map holds coerced values keyed by schema key.
// Keys iterate in order of first successful assignment; a later assignment to
// the same key replaces the value but keeps the key's position.
type Map struct {
	keys    []string
	entries map[string]*entry
}

type entry struct {
	value Value
	prov  Provenance
}

func newMap(capacity int) *Map {
	return &Map{
		keys:    make([]string, 0, capacity),
		entries: make(map[string]*entry, capacity),
	}
}

func (m *Map) set(key string, v Value, prov Provenance) {
	if e, ok := m.entries[key]; ok {
		e.value = v
		e.prov = prov
		return
	}
	m.keys = append(m.keys, key)
	m.entries[key] = &entry{value: v, prov: prov}
}

// Len returns the number of assigned keys.
func (m *Map) Len() int { return len(m.keys) }

// Keys returns assigned keys in insertion order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Has reports whether key was assigned.
func (m *Map) Has(key string) bool {
	_, ok := m.entries[key]
	return ok
}

// Get returns the value for key.
func (m *Map) Get(key string) (Value, bool) {
	e, ok := m.entries[key]
	if !ok {
		return Value{}, false
	}
	return e.value, true
}

// All iterates over keys and values in insertion order.
func (m *Map) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range m.keys {
			if !yield(k, m.entries[k].value) {
				return
			}
		}
	}
}

// Int returns the integer value for key. False if absent or not an integer.
func (m *Map) Int(key string) (int64, bool) {
	v, ok := m.Get(key)
	if !ok {
		return 0, false
	}
	return v.AsInt()
}

// Double returns the floating-point value for key. False if absent or not a double.
func (m *Map) Double(key string) (float64, bool) {
	v, ok := m.Get(key)
	if !ok {
		return 0, false
	}
	return v.AsDouble()
}

// String returns the string value for key. False if absent or not a string.
func (m *Map) String(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	return v.AsString()
}

// Set replaces or adds a value, as callers do when overriding a key from
// another input (e.g. a command-line argument). The provenance source is "set".
func (m *Map) Set(key string, v Value) {
	m.set(key, v, Provenance{Key: key, Source: "set"})
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", k, err)
		}
		vb, err := json.Marshal(m.entries[k].value.Interface())
		if err != nil {
			return nil, fmt.Errorf("marshal value for %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
