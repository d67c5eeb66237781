package crypto

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"io"

	"filippo.io/edwards25519"
	"github.com/cloudflare/circl/dh/x25519"
)

// CurveKeypair is an X25519 keypair.
type CurveKeypair struct {
	PublicKey [CurveKeySize]byte
	SecretKey [CurveKeySize]byte
}

// GenerateCurveKeypair creates an X25519 keypair with a secret drawn from r.
func GenerateCurveKeypair(r io.Reader) (*CurveKeypair, error) {
	kp := new(CurveKeypair)
	if _, err := io.ReadFull(r, kp.SecretKey[:]); err != nil {
		return nil, fmt.Errorf("read ephemeral secret: %w", err)
	}
	pub, sec := (*x25519.Key)(&kp.PublicKey), (*x25519.Key)(&kp.SecretKey)
	x25519.KeyGen(pub, sec)
	return kp, nil
}

// Wipe clears the secret half of the keypair.
func (kp *CurveKeypair) Wipe() {
	Wipe(kp.SecretKey[:])
}

// CurvePublicKey returns the X25519 public key for secret.
func CurvePublicKey(secret []byte) ([CurveKeySize]byte, error) {
	var pub [CurveKeySize]byte
	if len(secret) != CurveKeySize {
		return pub, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(secret), CurveKeySize)
	}
	var sec x25519.Key
	copy(sec[:], secret)
	defer Wipe(sec[:])
	x25519.KeyGen((*x25519.Key)(&pub), &sec)
	return pub, nil
}

// SharedKey derives the symmetric key shared between secret and the peer
// public key as sha256(X25519(secret, public) || keyPublic). keyPublic is the
// public key that both sides agree to bind into the hash.
func SharedKey(secret, public, keyPublic []byte) ([SecretBoxKeySize]byte, error) {
	var out [SecretBoxKeySize]byte
	if len(secret) != CurveKeySize {
		return out, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(secret), CurveKeySize)
	}
	if len(public) != CurveKeySize || len(keyPublic) != CurveKeySize {
		return out, ErrInvalidPublicKeySize
	}

	var sec, pub, shared x25519.Key
	copy(sec[:], secret)
	copy(pub[:], public)
	defer Wipe(sec[:])
	defer Wipe(shared[:])

	if !x25519.Shared(&shared, &sec, &pub) {
		return out, ErrKeyAgreement
	}

	h := sha256.New()
	h.Write(shared[:])
	h.Write(keyPublic)
	copy(out[:], h.Sum(nil))
	return out, nil
}

// Ed25519PublicToCurve25519 maps an Ed25519 public key to the birationally
// equivalent Curve25519 public key.
func Ed25519PublicToCurve25519(publicKey []byte) ([]byte, error) {
	if len(publicKey) != PublicKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidPublicKeySize, len(publicKey), PublicKeySize)
	}
	p, err := new(edwards25519.Point).SetBytes(publicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	return p.BytesMontgomery(), nil
}

// Ed25519PrivateToCurve25519 derives the Curve25519 secret from an expanded
// Ed25519 private key: the clamped lower half of sha512(seed).
func Ed25519PrivateToCurve25519(privateKey []byte) ([]byte, error) {
	if len(privateKey) != PrivateKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidPrivateKeySize, len(privateKey), PrivateKeySize)
	}
	h := sha512.Sum512(privateKey[:SeedSize])
	defer Wipe(h[:])

	out := make([]byte, CurveKeySize)
	copy(out, h[:CurveKeySize])
	out[0] &= 248
	out[31] &= 127
	out[31] |= 64
	return out, nil
}
