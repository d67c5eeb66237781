// Package storetest checks that a keystore.Store behaves as Keystore expects.
package storetest

import (
	"bytes"
	"errors"
	"testing"

	"github.com/scuttlekit/ssbkeys/keystore"
)

// Run exercises a fresh, empty store returned by open.
func Run(t *testing.T, open func(t *testing.T) keystore.Store) {
	t.Run("GetMissing", func(t *testing.T) {
		s := open(t)
		if _, err := s.Get([]byte("absent")); !errors.Is(err, keystore.ErrNotFound) {
			t.Errorf("Get() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("PutGet", func(t *testing.T) {
		s := open(t)
		if err := s.Put([]byte("a"), []byte("1")); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		if err := s.Put([]byte("a"), []byte("2")); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		got, err := s.Get([]byte("a"))
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if string(got) != "2" {
			t.Errorf("Get() = %q, want %q", got, "2")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		s := open(t)
		if err := s.Put([]byte("a"), []byte("1")); err != nil {
			t.Fatal(err)
		}
		if err := s.Delete([]byte("a")); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := s.Get([]byte("a")); !errors.Is(err, keystore.ErrNotFound) {
			t.Errorf("Get() after Delete error = %v, want ErrNotFound", err)
		}
		if err := s.Delete([]byte("never-set")); err != nil {
			t.Errorf("Delete(missing) error = %v", err)
		}
	})

	t.Run("KeysByPrefix", func(t *testing.T) {
		s := open(t)
		for _, k := range []string{"p/b", "q/x", "p/a", "p/c", "pp"} {
			if err := s.Put([]byte(k), []byte("v")); err != nil {
				t.Fatal(err)
			}
		}
		keys, err := s.Keys([]byte("p/"))
		if err != nil {
			t.Fatalf("Keys() error = %v", err)
		}
		want := [][]byte{[]byte("p/a"), []byte("p/b"), []byte("p/c")}
		if len(keys) != len(want) {
			t.Fatalf("Keys() = %q, want %q", keys, want)
		}
		for i := range want {
			if !bytes.Equal(keys[i], want[i]) {
				t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], want[i])
			}
		}
	})

	t.Run("ValueIsCopied", func(t *testing.T) {
		s := open(t)
		v := []byte("original")
		if err := s.Put([]byte("k"), v); err != nil {
			t.Fatal(err)
		}
		v[0] = 'X'
		got, err := s.Get([]byte("k"))
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "original" {
			t.Errorf("Get() = %q; store kept a reference to the caller's slice", got)
		}
	})
}
