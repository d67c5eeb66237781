// Package leveldbkv implements keystore.Store using leveldb.
package leveldbkv

import (
	"errors"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/scuttlekit/ssbkeys/keystore"
)

type leveldbkv leveldb.DB

// Open opens (creating if needed) a leveldb database at path.
func Open(path string) (keystore.Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return Wrap(db), nil
}

// Wrap uses a leveldb.DB as a keystore.Store the obvious way (and with Sync:true).
func Wrap(db *leveldb.DB) keystore.Store {
	return (*leveldbkv)(db)
}

func (db *leveldbkv) Get(key []byte) ([]byte, error) {
	v, err := (*leveldb.DB)(db).Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, keystore.ErrNotFound
	}
	return v, err
}

func (db *leveldbkv) Put(key, value []byte) error {
	return (*leveldb.DB)(db).Put(key, value, &opt.WriteOptions{Sync: true})
}

func (db *leveldbkv) Delete(key []byte) error {
	return (*leveldb.DB)(db).Delete(key, &opt.WriteOptions{Sync: true})
}

func (db *leveldbkv) Keys(prefix []byte) ([][]byte, error) {
	iter := (*leveldb.DB)(db).NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()

	var keys [][]byte
	for iter.Next() {
		k := make([]byte, len(iter.Key()))
		copy(k, iter.Key())
		keys = append(keys, k)
	}
	return keys, iter.Error()
}

func (db *leveldbkv) Close() error {
	return (*leveldb.DB)(db).Close()
}
