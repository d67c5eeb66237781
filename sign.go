package ssbkeys

import (
	"errors"
	"fmt"

	"github.com/scuttlekit/ssbkeys/canonical"
	"github.com/scuttlekit/ssbkeys/internal/crypto"
)

// Sign signs message with a 64-byte private key and returns the tagged
// signature "<base64>.sig.ed25519".
func Sign(privateKey, message []byte) (string, error) {
	if len(privateKey) != PrivateKeySize {
		return "", fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPrivateKeyFormat, len(privateKey), PrivateKeySize)
	}
	sig, err := crypto.Sign(privateKey, message)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPrivateKeyFormat, err)
	}
	return tagged(sig, TagSignature), nil
}

// Verify checks a raw 64-byte signature over message. A signature that does
// not match returns false and no error.
func Verify(publicKey, signature, message []byte) (bool, error) {
	if len(publicKey) != PublicKeySize {
		return false, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPublicKeyFormat, len(publicKey), PublicKeySize)
	}
	if len(signature) != SignatureSize {
		return false, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSignatureFormat, len(signature), SignatureSize)
	}
	ok, err := crypto.Verify(publicKey, signature, message)
	if err != nil {
		return false, mapCryptoError(err)
	}
	return ok, nil
}

// SignValue signs the canonical encoding of v.
func SignValue(privateKey []byte, v any) (string, error) {
	msg, err := canonical.Marshal(v)
	if err != nil {
		return "", err
	}
	return Sign(privateKey, msg)
}

// VerifyValue checks a raw signature over the canonical encoding of v.
func VerifyValue(publicKey, signature []byte, v any) (bool, error) {
	msg, err := canonical.Marshal(v)
	if err != nil {
		return false, err
	}
	return Verify(publicKey, signature, msg)
}

// SignString signs message with a tagged private key.
func SignString(privateKey, message string) (string, error) {
	priv, err := ToBytes(privateKey)
	if err != nil {
		return "", err
	}
	defer crypto.Wipe(priv)
	return Sign(priv, []byte(message))
}

// VerifyString checks a tagged signature over message. publicKey may be a
// tagged public key or a feed id.
func VerifyString(publicKey, signature, message string) (bool, error) {
	pub, sig, err := decodeVerifyArgs(publicKey, signature)
	if err != nil {
		return false, err
	}
	return Verify(pub, sig, []byte(message))
}

// VerifyValueString is VerifyValue with a tagged public key and signature.
func VerifyValueString(publicKey, signature string, v any) (bool, error) {
	pub, sig, err := decodeVerifyArgs(publicKey, signature)
	if err != nil {
		return false, err
	}
	return VerifyValue(pub, sig, v)
}

func decodeVerifyArgs(publicKey, signature string) ([]byte, []byte, error) {
	pub, err := ToBytes(publicKey)
	if err != nil {
		return nil, nil, err
	}
	sig, err := ToBytes(signature)
	if err != nil {
		return nil, nil, err
	}
	return pub, sig, nil
}

// Sign signs message with k.
func (k *Keypair) Sign(message []byte) (string, error) {
	return Sign(k.Private, message)
}

// SignValue signs the canonical encoding of v with k.
func (k *Keypair) SignValue(v any) (string, error) {
	return SignValue(k.Private, v)
}

// Verify checks a tagged signature over message against k's public key.
func (k *Keypair) Verify(signature string, message []byte) (bool, error) {
	sig, err := ToBytes(signature)
	if err != nil {
		return false, err
	}
	return Verify(k.Public, sig, message)
}

// VerifyValue checks a tagged signature over the canonical encoding of v.
func (k *Keypair) VerifyValue(signature string, v any) (bool, error) {
	sig, err := ToBytes(signature)
	if err != nil {
		return false, err
	}
	return VerifyValue(k.Public, sig, v)
}

// mapCryptoError converts internal crypto errors to public sentinel errors
// so that errors.Is() checks work correctly.
func mapCryptoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, crypto.ErrInvalidSeedSize):
		return fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	case errors.Is(err, crypto.ErrInvalidPrivateKeySize):
		return fmt.Errorf("%w: %v", ErrInvalidPrivateKeyFormat, err)
	case errors.Is(err, crypto.ErrInvalidPublicKeySize), errors.Is(err, crypto.ErrInvalidPoint):
		return fmt.Errorf("%w: %v", ErrInvalidPublicKeyFormat, err)
	case errors.Is(err, crypto.ErrInvalidSignatureSize):
		return fmt.Errorf("%w: %v", ErrInvalidSignatureFormat, err)
	case errors.Is(err, crypto.ErrInvalidKeySize):
		return fmt.Errorf("%w: %v", ErrInvalidKeySize, err)
	}
	return err
}
