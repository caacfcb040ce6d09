package graphql

import (
	"bytes"
	"encoding/json"
)

// OrderedMap is a response object: a name->value mapping that remembers
// insertion order so JSON encoding reproduces the field collection order
// required by the spec's ordering guarantees, something Go's built-in map
// cannot do on its own.
type OrderedMap struct {
	keys   []string
	values map[string]interface{}
}

func newOrderedMap(capacity int) *OrderedMap {
	return &OrderedMap{
		keys:   make([]string, 0, capacity),
		values: make(map[string]interface{}, capacity),
	}
}

func (m *OrderedMap) set(key string, val interface{}) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = val
}

// Get returns the value stored under key.
func (m *OrderedMap) Get(key string) (interface{}, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the response keys in collection order.
func (m *OrderedMap) Keys() []string {
	return m.keys
}

// Len reports the number of fields in the object.
func (m *OrderedMap) Len() int {
	return len(m.keys)
}

// MarshalJSON emits the object with fields in collection order.
func (m *OrderedMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		valJSON, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(valJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
