package privatebox

import "errors"

var (
	// ErrTruncatedEnvelope is returned when an envelope is too short to hold
	// the ephemeral public key.
	ErrTruncatedEnvelope = errors.New("truncated envelope")

	// ErrNoRecipients is returned when Encrypt is called without recipients.
	ErrNoRecipients = errors.New("no recipients")

	// ErrTooManyRecipients is returned when the recipient count does not fit
	// the 16-bit skip field.
	ErrTooManyRecipients = errors.New("too many recipients")

	// ErrInvalidRecipientKey is returned for a recipient key that is not a
	// usable 32-byte Curve25519 public key.
	ErrInvalidRecipientKey = errors.New("invalid recipient key")

	// ErrInvalidKeySize is returned when a decryption secret is not 32 bytes.
	ErrInvalidKeySize = errors.New("invalid secret key size")
)
