package keystore

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/scuttlekit/ssbkeys"
)

var (
	// ErrExists is returned by Create when the name is already taken.
	ErrExists = errors.New("keystore: identity already exists")

	// ErrInvalidName is returned for an empty identity name.
	ErrInvalidName = errors.New("keystore: invalid identity name")
)

const keyPrefix = "ssb-keys/"

// Keystore creates, loads and removes named keypairs. It is safe for
// concurrent use; creations through one Keystore never overwrite each other.
type Keystore struct {
	mu    sync.Mutex // serializes the lookup and write of Create and Remove
	store Store
	log   *zap.Logger
}

// Option configures a Keystore.
type Option func(*Keystore)

// WithLogger sets the logger. The default discards all output.
func WithLogger(l *zap.Logger) Option {
	return func(k *Keystore) {
		if l != nil {
			k.log = l
		}
	}
}

// New returns a Keystore backed by store.
func New(store Store, opts ...Option) *Keystore {
	ks := &Keystore{
		store: store,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(ks)
	}
	return ks
}

func storeKey(name string) ([]byte, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}
	return []byte(keyPrefix + name), nil
}

// Create generates a keypair and stores it under name.
func (ks *Keystore) Create(name string) (*ssbkeys.Keypair, error) {
	key, err := storeKey(name)
	if err != nil {
		return nil, err
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()

	switch _, err := ks.store.Get(key); {
	case err == nil:
		return nil, fmt.Errorf("%w: %q", ErrExists, name)
	case !errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("lookup %q: %w", name, err)
	}

	k, err := ssbkeys.Generate()
	if err != nil {
		return nil, err
	}
	text, err := ssbkeys.EncodeKeypair(k)
	if err != nil {
		k.Zero()
		return nil, err
	}
	if err := ks.store.Put(key, []byte(text)); err != nil {
		k.Zero()
		return nil, fmt.Errorf("store %q: %w", name, err)
	}

	ks.log.Info("created identity", zap.String("name", name), zap.String("id", k.ID))
	return k, nil
}

// Load returns the keypair stored under name.
func (ks *Keystore) Load(name string) (*ssbkeys.Keypair, error) {
	key, err := storeKey(name)
	if err != nil {
		return nil, err
	}
	text, err := ks.store.Get(key)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	k, err := ssbkeys.DecodeKeypair(string(text))
	if err != nil {
		ks.log.Warn("stored identity is unreadable", zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("load %q: %w", name, err)
	}

	ks.log.Debug("loaded identity", zap.String("name", name), zap.String("id", k.ID))
	return k, nil
}

// LoadOrCreate loads name, creating it first if it does not exist.
func (ks *Keystore) LoadOrCreate(name string) (*ssbkeys.Keypair, error) {
	k, err := ks.Load(name)
	if !errors.Is(err, ErrNotFound) {
		return k, err
	}
	k, err = ks.Create(name)
	if errors.Is(err, ErrExists) {
		// Lost a race with another creator.
		return ks.Load(name)
	}
	return k, err
}

// Remove deletes the keypair stored under name.
func (ks *Keystore) Remove(name string) error {
	key, err := storeKey(name)
	if err != nil {
		return err
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()

	if _, err := ks.store.Get(key); err != nil {
		return fmt.Errorf("remove %q: %w", name, err)
	}
	if err := ks.store.Delete(key); err != nil {
		return fmt.Errorf("remove %q: %w", name, err)
	}
	ks.log.Info("removed identity", zap.String("name", name))
	return nil
}

// Names lists stored identity names in sorted order.
func (ks *Keystore) Names() ([]string, error) {
	keys, err := ks.store.Keys([]byte(keyPrefix))
	if err != nil {
		return nil, err
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = strings.TrimPrefix(string(k), keyPrefix)
	}
	return names, nil
}

// Close closes the underlying store.
func (ks *Keystore) Close() error {
	return ks.store.Close()
}
