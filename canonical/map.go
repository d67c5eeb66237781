package canonical

// Map is a string-keyed object that remembers the order in which keys were
// first set. The zero value is an empty map ready to use.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// Set stores value under key and returns m so calls can be chained.
// Setting an existing key replaces its value but keeps its position.
func (m *Map) Set(key string, value any) *Map {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return m
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Delete removes key. Deleting a missing key is a no-op.
func (m *Map) Delete(key string) {
	if m == nil {
		return
	}
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// MarshalJSON implements json.Marshaler, keeping key order.
func (m *Map) MarshalJSON() ([]byte, error) {
	e := &encoder{}
	if err := e.encodeMap(m, 0); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. Nested objects decode to *Map.
func (m *Map) UnmarshalJSON(data []byte) error {
	v, err := Unmarshal(data)
	if err != nil {
		return err
	}
	src, ok := v.(*Map)
	if !ok {
		return ErrMalformedJSON
	}
	*m = *src
	return nil
}
