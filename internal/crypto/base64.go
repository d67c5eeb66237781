package crypto

import (
	"encoding/base64"
)

// ToBase64 encodes bytes to standard base64 with padding.
func ToBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// FromBase64 decodes standard base64 (with padding) to bytes.
func FromBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}

// DecodeBase64 decodes standard base64 with or without padding. Some
// implementations strip the trailing '=' from key strings.
func DecodeBase64(s string) ([]byte, error) {
	data, err := FromBase64(s)
	if err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}
