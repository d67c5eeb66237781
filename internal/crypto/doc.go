// Package crypto adapts the primitive operations used by the key and
// private-box protocols. Nothing in this package defines a wire format; it
// only fixes the primitives and their sizes.
//
// # Algorithm Suite
//
//   - Ed25519 (RFC 8032): identity keys and signatures. Private keys are
//     always the 64-byte expanded form (seed followed by public key).
//
//   - X25519 (RFC 7748): key agreement for private boxes. Ed25519 keys are
//     mapped to their Curve25519 counterparts with [Ed25519PublicToCurve25519]
//     and [Ed25519PrivateToCurve25519].
//
//   - XSalsa20-Poly1305 (NaCl secretbox): authenticated encryption of box
//     headers, box bodies and single-key boxes.
//
//   - SHA-256: content hashes and shared-secret derivation.
//
// # Randomness
//
// Seeds, ephemeral keys, body keys and nonces are drawn from crypto/rand
// unless a reader is installed with [SetRandReaderForTesting].
//
// # Base64 Encoding
//
// Key material travels as standard base64 with padding (RFC 4648 §4). Use
// [ToBase64] and [FromBase64].
package crypto
