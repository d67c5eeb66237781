// Package keystore keeps named identities in a key-value store.
//
// The store is injected: MemoryStore for tests and short-lived processes,
// leveldbkv and badgerkv for identities that must survive a restart.
package keystore

import "errors"

// ErrNotFound is returned by a Store when a key has no value.
var ErrNotFound = errors.New("keystore: not found")

// Store is a byte-oriented key-value store. Implementations must be safe for
// concurrent use and must return ErrNotFound (possibly wrapped) for missing
// keys.
type Store interface {
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	Delete(key []byte) error
	// Keys lists every key starting with prefix, in byte order.
	Keys(prefix []byte) ([][]byte, error)
	Close() error
}
