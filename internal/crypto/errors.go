package crypto

import "errors"

var (
	// ErrInvalidSeedSize is returned when a seed is not SeedSize bytes.
	ErrInvalidSeedSize = errors.New("invalid seed size")

	// ErrInvalidPrivateKeySize is returned when an Ed25519 private key is not
	// PrivateKeySize bytes.
	ErrInvalidPrivateKeySize = errors.New("invalid private key size")

	// ErrInvalidPublicKeySize is returned when a public key has the wrong size.
	ErrInvalidPublicKeySize = errors.New("invalid public key size")

	// ErrInvalidSignatureSize is returned when a signature is not
	// SignatureSize bytes.
	ErrInvalidSignatureSize = errors.New("invalid signature size")

	// ErrInvalidPoint is returned when a public key does not decode to a
	// point on the curve.
	ErrInvalidPoint = errors.New("invalid curve point")

	// ErrKeyAgreement is returned when X25519 yields the all-zero output,
	// which happens for low-order peer keys.
	ErrKeyAgreement = errors.New("key agreement failed")

	// ErrInvalidKeySize is returned when a secretbox key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when a secretbox nonce size is invalid.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrDecryptionFailed is returned when a secretbox fails to open.
	ErrDecryptionFailed = errors.New("decryption failed")
)
