package artifacts

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EntryMap is a JSON object that marshals its keys in insertion order. The
// generated documents key audio entries by id, and the id order must follow
// the project's entry order no matter which host produced the file.
type EntryMap struct {
	keys   []string
	values map[string]any
}

func NewEntryMap() *EntryMap {
	return &EntryMap{values: make(map[string]any)}
}

// Set adds or replaces a key. A replaced key keeps its original position.
func (m *EntryMap) Set(key string, value any) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Len returns the number of keys.
func (m *EntryMap) Len() int {
	return len(m.keys)
}

// Get returns the value stored under key.
func (m *EntryMap) Get(key string) (any, bool) {
	value, ok := m.values[key]
	return value, ok
}

// Keys returns the keys in insertion order.
func (m *EntryMap) Keys() []string {
	return append([]string(nil), m.keys...)
}

func (m *EntryMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", key, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, fmt.Errorf("marshal value for %q: %w", key, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// EncodeJSON renders a document the way every packaging profile writes it:
// four-space indentation and no trailing newline. Folder and zip exports
// must produce byte-identical documents for the same project.
func EncodeJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}
