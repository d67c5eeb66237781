package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/cloudflare/circl/sign/ed25519"
)

// randReader is the random source used for key generation and nonces.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

// Reader returns the random source in effect.
func Reader() io.Reader {
	if randReader != nil {
		return randReader
	}
	return rand.Reader
}

// RandomBytes returns n bytes read from [Reader].
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(Reader(), b); err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}
	return b, nil
}

// SigningKeypair is a raw Ed25519 keypair.
type SigningKeypair struct {
	// PublicKey is the 32-byte Ed25519 public key.
	PublicKey []byte
	// PrivateKey is the 64-byte expanded private key (seed || public key).
	PrivateKey []byte
}

// GenerateSigningKeypair creates an Ed25519 keypair from a fresh random seed.
func GenerateSigningKeypair() (*SigningKeypair, error) {
	seed, err := RandomBytes(SeedSize)
	if err != nil {
		return nil, err
	}
	defer Wipe(seed)
	return SigningKeypairFromSeed(seed)
}

// SigningKeypairFromSeed deterministically derives an Ed25519 keypair.
func SigningKeypairFromSeed(seed []byte) (*SigningKeypair, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidSeedSize, len(seed), SeedSize)
	}

	priv := ed25519.NewKeyFromSeed(seed)
	pub := make([]byte, PublicKeySize)
	copy(pub, priv[SeedSize:])

	return &SigningKeypair{
		PublicKey:  pub,
		PrivateKey: []byte(priv),
	}, nil
}

// SigningKeypairFromPrivateKey rebuilds a keypair from an expanded private
// key. The embedded public key must match the one derived from the seed.
func SigningKeypairFromPrivateKey(privateKey []byte) (*SigningKeypair, error) {
	if len(privateKey) != PrivateKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidPrivateKeySize, len(privateKey), PrivateKeySize)
	}

	kp, err := SigningKeypairFromSeed(privateKey[:SeedSize])
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare(kp.PublicKey, privateKey[SeedSize:]) != 1 {
		return nil, fmt.Errorf("%w: embedded public key does not match seed", ErrInvalidPrivateKeySize)
	}
	return kp, nil
}

// Sign produces an Ed25519 signature over message.
func Sign(privateKey, message []byte) ([]byte, error) {
	if len(privateKey) != PrivateKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidPrivateKeySize, len(privateKey), PrivateKeySize)
	}
	return ed25519.Sign(ed25519.PrivateKey(privateKey), message), nil
}

// Verify checks an Ed25519 signature. A mismatch is reported as false; only
// malformed inputs produce an error.
func Verify(publicKey, signature, message []byte) (bool, error) {
	if len(publicKey) != PublicKeySize {
		return false, fmt.Errorf("%w: got %d, want %d", ErrInvalidPublicKeySize, len(publicKey), PublicKeySize)
	}
	if len(signature) != SignatureSize {
		return false, fmt.Errorf("%w: got %d, want %d", ErrInvalidSignatureSize, len(signature), SignatureSize)
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), message, signature), nil
}

// Hash returns the SHA-256 digest of data.
func Hash(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// Wipe overwrites b with zeros.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
