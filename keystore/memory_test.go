package keystore_test

import (
	"testing"

	"github.com/scuttlekit/ssbkeys/keystore"
	"github.com/scuttlekit/ssbkeys/keystore/storetest"
)

func TestMemoryStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) keystore.Store {
		return keystore.NewMemoryStore()
	})
}
