package keystore

import (
	"bytes"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is a Store held in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key, or ErrNotFound.
func (s *MemoryStore) Get(key []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(v), nil
}

// Put stores a copy of value under key.
func (s *MemoryStore) Put(key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[string(key)] = bytes.Clone(value)
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *MemoryStore) Delete(key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, string(key))
	return nil
}

// Keys returns the keys starting with prefix in sorted order.
func (s *MemoryStore) Keys(prefix []byte) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var names []string
	for k := range s.values {
		if strings.HasPrefix(k, string(prefix)) {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	out := make([][]byte, len(names))
	for i, k := range names {
		out[i] = []byte(k)
	}
	return out, nil
}

// Close is a no-op; the values stay readable.
func (s *MemoryStore) Close() error {
	return nil
}
