package ssbkeys

import (
	"fmt"
	"io"

	"github.com/scuttlekit/ssbkeys/canonical"
	"github.com/scuttlekit/ssbkeys/internal/crypto"
	"github.com/scuttlekit/ssbkeys/privatebox"
)

// PublicKeyToPrivateBoxPublic converts an Ed25519 public key to the
// Curve25519 key used as a private-box recipient.
func PublicKeyToPrivateBoxPublic(publicKey []byte) ([]byte, error) {
	pub, err := crypto.Ed25519PublicToCurve25519(publicKey)
	if err != nil {
		return nil, mapCryptoError(err)
	}
	return pub, nil
}

// SecretKeyToPrivateBoxSecret converts a 64-byte Ed25519 private key to the
// Curve25519 secret that opens private boxes.
func SecretKeyToPrivateBoxSecret(privateKey []byte) ([]byte, error) {
	sec, err := crypto.Ed25519PrivateToCurve25519(privateKey)
	if err != nil {
		return nil, mapCryptoError(err)
	}
	return sec, nil
}

// RecipientKeys decodes tagged public keys or feed ids into raw public keys
// suitable for Box.
func RecipientKeys(refs ...string) ([][]byte, error) {
	keys := make([][]byte, len(refs))
	for i, ref := range refs {
		b, err := ToBytes(ref)
		if err != nil {
			return nil, fmt.Errorf("recipient %d: %w", i, err)
		}
		keys[i] = b
	}
	return keys, nil
}

// Box encrypts the canonical encoding of v so that the holder of any of the
// given Ed25519 public keys can read it. The result is tagged ".box".
func Box(v any, recipients [][]byte, opts ...BoxOption) (string, error) {
	msg, err := canonical.Marshal(v)
	if err != nil {
		return "", err
	}
	return BoxMessage(msg, recipients, opts...)
}

// BoxMessage encrypts raw message bytes for the given Ed25519 public keys.
func BoxMessage(msg []byte, recipients [][]byte, opts ...BoxOption) (string, error) {
	cfg := newBoxConfig(opts)

	curveKeys := make([][]byte, len(recipients))
	for i, r := range recipients {
		pub, err := PublicKeyToPrivateBoxPublic(r)
		if err != nil {
			return "", fmt.Errorf("%w: recipient %d: %w", ErrInvalidRecipientKey, i, err)
		}
		curveKeys[i] = pub
	}

	env, err := privatebox.NewBoxer(cfg.rand).Encrypt(msg, curveKeys...)
	if err != nil {
		return "", err
	}
	return tagged(env, TagBox), nil
}

// UnboxMessage decrypts a boxed string with a 64-byte private key. ok is
// false, with a nil error, when the key is not a recipient, the envelope is
// corrupt or the text is not base64 at all. Only a bad private key and an
// envelope too short to hold its ephemeral key are errors.
func UnboxMessage(boxed string, privateKey []byte) ([]byte, bool, error) {
	secret, err := SecretKeyToPrivateBoxSecret(privateKey)
	if err != nil {
		return nil, false, err
	}
	defer crypto.Wipe(secret)

	env, err := ToBytes(boxed)
	if err != nil {
		return nil, false, nil
	}
	return privatebox.Decrypt(secret, env)
}

// Unbox decrypts a boxed string and parses the message. A message that
// opens but is not JSON is reported like any other unreadable envelope.
func Unbox(boxed string, privateKey []byte) (any, bool, error) {
	msg, ok, err := UnboxMessage(boxed, privateKey)
	if err != nil || !ok {
		return nil, false, err
	}
	return parseBoxed(msg)
}

// UnboxReader decrypts a raw (not base64) envelope read from r. Only the
// header slots up to this key's own are read before skipping to the body.
func UnboxReader(r io.Reader, privateKey []byte) (any, bool, error) {
	secret, err := SecretKeyToPrivateBoxSecret(privateKey)
	if err != nil {
		return nil, false, err
	}
	defer crypto.Wipe(secret)

	msg, ok, err := privatebox.DecryptReader(r, secret)
	if err != nil || !ok {
		return nil, false, err
	}
	return parseBoxed(msg)
}

func parseBoxed(msg []byte) (any, bool, error) {
	v, err := canonical.Unmarshal(msg)
	if err != nil {
		return nil, false, nil
	}
	return v, true, nil
}

// Unbox decrypts a boxed string with k.
func (k *Keypair) Unbox(boxed string) (any, bool, error) {
	return Unbox(boxed, k.Private)
}

// UnboxMessage decrypts a boxed string with k without parsing it.
func (k *Keypair) UnboxMessage(boxed string) ([]byte, bool, error) {
	return UnboxMessage(boxed, k.Private)
}
