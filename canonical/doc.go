// Package canonical produces the deterministic text form of structured values
// that is hashed and signed.
//
// The output is byte-for-byte what JavaScript's JSON.stringify(value, null, 2)
// produces for the same logical value: two-space indentation, "\n" line
// endings, object keys in insertion order, and numbers formatted the way
// ECMAScript formats a double. Because Go maps have no order, values that
// must keep a specific key order are built with [Map]:
//
//	msg := canonical.NewMap().
//		Set("type", "post").
//		Set("text", "hello")
//	b, err := canonical.Marshal(msg)
//
// Go numbers are written as the double JavaScript would hold: float32 values
// are widened and integers beyond 2^53 lose their low digits, exactly as
// they would once parsed by JSON.parse.
//
// Plain map[string]T values are accepted and written with sorted keys.
// Structs and types implementing json.Marshaler are first rendered with
// encoding/json and then re-read with their field order preserved.
//
// [Unmarshal] is the inverse: it reads JSON into *Map, []any, string,
// float64, bool and nil, so that a decoded message re-encodes to the same
// bytes it was read from.
package canonical
