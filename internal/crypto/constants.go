package crypto

const (
	// SeedSize is the size of an Ed25519 seed in bytes.
	SeedSize = 32
	// PublicKeySize is the size of an Ed25519 public key in bytes.
	PublicKeySize = 32
	// PrivateKeySize is the size of an expanded Ed25519 private key in bytes.
	PrivateKeySize = 64
	// SignatureSize is the size of an Ed25519 signature in bytes.
	SignatureSize = 64

	// CurveKeySize is the size of a Curve25519 public or secret key in bytes.
	CurveKeySize = 32

	// SecretBoxKeySize is the size of a secretbox key in bytes.
	SecretBoxKeySize = 32
	// SecretBoxNonceSize is the size of a secretbox nonce in bytes.
	SecretBoxNonceSize = 24
	// SecretBoxOverhead is the number of bytes secretbox adds to a plaintext.
	SecretBoxOverhead = 16

	// HashSize is the size of a SHA-256 digest in bytes.
	HashSize = 32
)
