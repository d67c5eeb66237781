package ssbkeys

import (
	"github.com/scuttlekit/ssbkeys/canonical"
	"github.com/scuttlekit/ssbkeys/internal/crypto"
)

// Hash returns the tagged SHA-256 digest of data, "<base64>.sha256".
func Hash(data []byte) string {
	return tagged(crypto.Hash(data), TagSHA256)
}

// HashValue returns the message id of v: the SHA-256 of its canonical
// encoding after each UTF-16 code unit is truncated to one byte, which is
// how ids on existing feeds were computed.
func HashValue(v any) (string, error) {
	s, err := canonical.MarshalString(v)
	if err != nil {
		return "", err
	}
	return Hash(canonical.LegacyBytes(s)), nil
}
