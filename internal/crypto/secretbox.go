package crypto

import (
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

// ZeroNonce is the all-zero nonce used where every key seals exactly one
// message.
var ZeroNonce [SecretBoxNonceSize]byte

// Seal encrypts and authenticates plaintext with key and nonce.
// Returns: ciphertext || tag (16 bytes), without the nonce.
func Seal(key, nonce, plaintext []byte) ([]byte, error) {
	k, n, err := boxParams(key, nonce)
	if err != nil {
		return nil, err
	}
	return secretbox.Seal(nil, plaintext, n, k), nil
}

// Open authenticates and decrypts a box produced by [Seal].
func Open(key, nonce, box []byte) ([]byte, error) {
	k, n, err := boxParams(key, nonce)
	if err != nil {
		return nil, err
	}
	plaintext, ok := secretbox.Open(nil, box, n, k)
	if !ok {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

// SealWithRandomNonce encrypts plaintext under a fresh nonce read from r,
// or from [Reader] when r is nil.
// Returns: nonce (24 bytes) || ciphertext || tag (16 bytes)
func SealWithRandomNonce(r io.Reader, key, plaintext []byte) ([]byte, error) {
	if r == nil {
		r = Reader()
	}
	nonce := make([]byte, SecretBoxNonceSize)
	if _, err := io.ReadFull(r, nonce); err != nil {
		return nil, fmt.Errorf("read nonce: %w", err)
	}
	sealed, err := Seal(key, nonce, plaintext)
	if err != nil {
		return nil, err
	}
	return append(nonce, sealed...), nil
}

// OpenWithNonce opens a box produced by [SealWithRandomNonce].
func OpenWithNonce(key, box []byte) ([]byte, error) {
	if len(box) < SecretBoxNonceSize+SecretBoxOverhead {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecryptionFailed)
	}
	return Open(key, box[:SecretBoxNonceSize], box[SecretBoxNonceSize:])
}

func boxParams(key, nonce []byte) (*[SecretBoxKeySize]byte, *[SecretBoxNonceSize]byte, error) {
	if len(key) != SecretBoxKeySize {
		return nil, nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), SecretBoxKeySize)
	}
	if len(nonce) != SecretBoxNonceSize {
		return nil, nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(nonce), SecretBoxNonceSize)
	}
	var k [SecretBoxKeySize]byte
	var n [SecretBoxNonceSize]byte
	copy(k[:], key)
	copy(n[:], nonce)
	return &k, &n, nil
}
