package canonical

import "unicode/utf16"

// LegacyBytes returns the low byte of every UTF-16 code unit of s. This is
// the "binary" string conversion older feed software applied before hashing
// a message, so message ids computed over text with non-Latin-1 characters
// only reproduce when the same truncation is applied.
func LegacyBytes(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r < 0x10000 {
			out = append(out, byte(r))
			continue
		}
		hi, lo := utf16.EncodeRune(r)
		out = append(out, byte(hi), byte(lo))
	}
	return out
}
