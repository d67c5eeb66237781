package ssbkeys

import (
	"fmt"

	"github.com/scuttlekit/ssbkeys/canonical"
	"github.com/scuttlekit/ssbkeys/internal/crypto"
)

// SecretBoxKeySize is the size of a single-key box key.
const SecretBoxKeySize = crypto.SecretBoxKeySize

// SecretBox encrypts the canonical encoding of v under a 32-byte key.
// A fresh random nonce is drawn per call and prefixed to the output:
//
//	nonce (24 bytes) || secretbox(canonical(v))
func SecretBox(v any, key []byte, opts ...BoxOption) ([]byte, error) {
	if len(key) != SecretBoxKeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeySize, len(key), SecretBoxKeySize)
	}
	msg, err := canonical.Marshal(v)
	if err != nil {
		return nil, err
	}

	sealed, err := crypto.SealWithRandomNonce(newBoxConfig(opts).rand, key, msg)
	if err != nil {
		return nil, mapCryptoError(err)
	}
	return sealed, nil
}

// SecretUnbox reverses SecretBox. It returns ok == false for empty input,
// a wrong key, tampered ciphertext or a payload that is not JSON.
func SecretUnbox(ciphertext, key []byte) (any, bool) {
	if len(ciphertext) == 0 || len(key) != SecretBoxKeySize {
		return nil, false
	}
	msg, err := crypto.OpenWithNonce(key, ciphertext)
	if err != nil || len(msg) == 0 {
		return nil, false
	}
	v, err := canonical.Unmarshal(msg)
	if err != nil {
		return nil, false
	}
	return v, true
}
