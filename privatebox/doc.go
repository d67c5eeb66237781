// Package privatebox encrypts one message for up to 65535 recipients so that
// each of them can open it with their own Curve25519 secret, while an
// observer learns only how many recipients there are.
//
// An envelope is laid out as
//
//	ephemeral public key  32 bytes
//	header 0..n-1         50 bytes each
//	body                  16-byte tag + message
//
// Every header is secretbox(bodyKey || skip) sealed under
// sha256(X25519(ephemeral, recipient) || recipient) with the all-zero nonce,
// where skip is the big-endian uint16 count of headers that follow. The body
// is secretbox(message) under bodyKey, again with the all-zero nonce. Both
// keys are used exactly once, which is what makes the fixed nonce safe.
//
// Decryption tries each header slot in turn. Failing to find a matching
// header and failing to open the body are both reported as ok == false with
// a nil error, so callers cannot distinguish "not for me" from "corrupt".
package privatebox
