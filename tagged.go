package ssbkeys

import (
	"strings"

	"github.com/scuttlekit/ssbkeys/internal/crypto"
)

// Tags used in tagged strings.
const (
	TagEd25519   = "ed25519"
	TagSignature = "sig.ed25519"
	TagSHA256    = "sha256"
	TagBox       = "box"
)

// Sigils prefixed to references.
const (
	SigilFeed    = "@"
	SigilMessage = "%"
	SigilBlob    = "&"
)

const sigils = SigilFeed + SigilMessage + SigilBlob

// Tag returns everything after the first '.' of s, so a signature string
// yields "sig.ed25519". It returns "" when s has no tag.
func Tag(s string) string {
	_, tag, ok := strings.Cut(s, ".")
	if !ok {
		return ""
	}
	return tag
}

// ToBytes decodes the payload of a tagged string. A leading sigil is
// dropped and the tag is removed at the first '.'.
func ToBytes(s string) ([]byte, error) {
	payload, tag, _ := strings.Cut(s, ".")
	if payload != "" && strings.ContainsRune(sigils, rune(payload[0])) {
		payload = payload[1:]
	}
	b, err := crypto.DecodeBase64(payload)
	if err != nil {
		return nil, &EncodingError{Tag: tag, Err: err}
	}
	return b, nil
}

// HasSigil reports whether s contains a feed, message or blob sigil.
func HasSigil(s string) bool {
	return strings.ContainsAny(s, sigils)
}

// tagged encodes b and appends tag.
func tagged(b []byte, tag string) string {
	return crypto.ToBase64(b) + "." + tag
}

// identity returns the feed id for a public key.
func identity(public []byte) string {
	return SigilFeed + tagged(public, TagEd25519)
}
