package ssbkeys

import (
	"errors"
	"fmt"

	"github.com/scuttlekit/ssbkeys/canonical"
	"github.com/scuttlekit/ssbkeys/privatebox"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidSeed is returned when a seed is not exactly 32 bytes.
	ErrInvalidSeed = errors.New("invalid seed")

	// ErrInvalidPrivateKeyFormat is returned when a private key is not a
	// 64-byte expanded Ed25519 key.
	ErrInvalidPrivateKeyFormat = errors.New("invalid private key format")

	// ErrInvalidPublicKeyFormat is returned when a public key is not 32 bytes
	// or is not a point on the curve.
	ErrInvalidPublicKeyFormat = errors.New("invalid public key format")

	// ErrInvalidSignatureFormat is returned when a signature is not 64 bytes.
	ErrInvalidSignatureFormat = errors.New("invalid signature format")

	// ErrMalformedKeyText is returned when keypair text is missing a field or
	// cannot be parsed.
	ErrMalformedKeyText = errors.New("malformed key text")

	// ErrInvalidEncoding is returned when a tagged string is not valid base64.
	ErrInvalidEncoding = errors.New("invalid encoding")

	// ErrUnsupportedCurve is returned for keys on any curve but ed25519.
	ErrUnsupportedCurve = errors.New("unsupported curve")

	// ErrInvalidKeySize is returned when a secret box key is not 32 bytes.
	ErrInvalidKeySize = errors.New("invalid secret box key size")

	// ErrEmptyPath is returned when a secret file path is empty.
	ErrEmptyPath = errors.New("empty secret file path")

	// ErrUnencodableValue is returned for values with no canonical encoding.
	ErrUnencodableValue = canonical.ErrUnencodableValue

	// ErrTruncatedEnvelope is returned when a boxed message is shorter than
	// its ephemeral key.
	ErrTruncatedEnvelope = privatebox.ErrTruncatedEnvelope

	// ErrNoRecipients is returned when boxing for nobody.
	ErrNoRecipients = privatebox.ErrNoRecipients

	// ErrTooManyRecipients is returned when boxing for more than 65535 keys.
	ErrTooManyRecipients = privatebox.ErrTooManyRecipients

	// ErrInvalidRecipientKey is returned when a recipient key cannot be used
	// for key agreement.
	ErrInvalidRecipientKey = privatebox.ErrInvalidRecipientKey
)

// KeysError is implemented by the typed errors of this package.
type KeysError interface {
	error
	KeysError() // marker method
}

// KeyTextError describes which field of keypair text was rejected.
type KeyTextError struct {
	Field string // "curve", "public", "private", "id", or "" for the document
	Err   error
}

func (e *KeyTextError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed key text: %v", e.Err)
	}
	return fmt.Sprintf("malformed key text: field %q: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *KeyTextError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *KeyTextError) Is(target error) bool {
	return target == ErrMalformedKeyText
}

// KeysError implements the KeysError interface.
func (e *KeyTextError) KeysError() {}

// EncodingError reports a tagged string whose payload could not be decoded.
type EncodingError struct {
	Tag string
	Err error
}

func (e *EncodingError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("invalid encoding of .%s value: %v", e.Tag, e.Err)
	}
	return fmt.Sprintf("invalid encoding: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *EncodingError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *EncodingError) Is(target error) bool {
	return target == ErrInvalidEncoding
}

// KeysError implements the KeysError interface.
func (e *EncodingError) KeysError() {}
