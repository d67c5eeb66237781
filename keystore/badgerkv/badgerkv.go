// Package badgerkv implements keystore.Store using badger.
package badgerkv

import (
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/scuttlekit/ssbkeys/keystore"
)

type badgerkv struct {
	db *badger.DB
}

// Open opens (creating if needed) a badger database in dir. Writes are
// synced before they return.
func Open(dir string) (keystore.Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	opts.SyncWrites = true
	return open(opts)
}

// OpenInMemory returns a store that keeps everything in memory.
func OpenInMemory() (keystore.Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (keystore.Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &badgerkv{db: db}, nil
}

func (s *badgerkv) Get(key []byte) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, keystore.ErrNotFound
	}
	return value, err
}

func (s *badgerkv) Put(key, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

func (s *badgerkv) Delete(key []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

func (s *badgerkv) Keys(prefix []byte) ([][]byte, error) {
	var keys [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	return keys, err
}

func (s *badgerkv) Close() error {
	return s.db.Close()
}
