package canonical

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"unicode/utf8"
)

const (
	indentUnit = "  "

	// maxDepth bounds nesting. Cycles through pointers, maps or slices hit
	// it instead of recursing forever.
	maxDepth = 1000
)

var jsonMarshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()

// Marshal returns the canonical indented encoding of v.
func Marshal(v any) ([]byte, error) {
	e := &encoder{indent: true}
	if err := e.encode(v, 0); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

// MarshalString is Marshal returning a string.
func MarshalString(v any) (string, error) {
	b, err := Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type encoder struct {
	buf    bytes.Buffer
	indent bool
}

func (e *encoder) encode(v any, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("%w: nesting deeper than %d (cyclic value?)", ErrUnencodableValue, maxDepth)
	}

	switch x := v.(type) {
	case nil:
		e.buf.WriteString("null")
		return nil
	case *Map:
		if x == nil {
			e.buf.WriteString("null")
			return nil
		}
		return e.encodeMap(x, depth)
	case Map:
		return e.encodeMap(&x, depth)
	case string:
		writeString(&e.buf, x)
		return nil
	case bool:
		e.buf.WriteString(strconv.FormatBool(x))
		return nil
	case float64:
		return e.encodeFloat(x)
	case float32:
		return e.encodeFloat(float64(x))
	case int:
		return e.encodeInt(int64(x))
	case int64:
		return e.encodeInt(x)
	case json.Number:
		return e.encodeNumber(x)
	case []any:
		return e.encodeArray(len(x), func(i int) any { return x[i] }, depth)
	case map[string]any:
		return e.encodeStringMap(reflect.ValueOf(x), depth)
	}

	return e.encodeReflect(reflect.ValueOf(v), depth)
}

func (e *encoder) encodeReflect(rv reflect.Value, depth int) error {
	if rv.Type().Implements(jsonMarshalerType) {
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			e.buf.WriteString("null")
			return nil
		}
		return e.encodeViaJSON(rv.Interface(), depth)
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			e.buf.WriteString("null")
			return nil
		}
		return e.encode(rv.Elem().Interface(), depth+1)
	case reflect.String:
		writeString(&e.buf, rv.String())
		return nil
	case reflect.Bool:
		e.buf.WriteString(strconv.FormatBool(rv.Bool()))
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return e.encodeInt(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u := rv.Uint(); u > maxSafeInteger {
			return e.encodeFloat(float64(u))
		}
		e.buf.WriteString(strconv.FormatUint(rv.Uint(), 10))
		return nil
	case reflect.Float32, reflect.Float64:
		return e.encodeFloat(rv.Float())
	case reflect.Slice:
		if rv.IsNil() {
			e.buf.WriteString("null")
			return nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return e.encodeViaJSON(rv.Interface(), depth)
		}
		return e.encodeArray(rv.Len(), func(i int) any { return rv.Index(i).Interface() }, depth)
	case reflect.Array:
		return e.encodeArray(rv.Len(), func(i int) any { return rv.Index(i).Interface() }, depth)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("%w: map key type %s", ErrUnencodableValue, rv.Type().Key())
		}
		if rv.IsNil() {
			e.buf.WriteString("null")
			return nil
		}
		return e.encodeStringMap(rv, depth)
	case reflect.Struct:
		return e.encodeViaJSON(rv.Interface(), depth)
	}

	return fmt.Errorf("%w: %s", ErrUnencodableValue, rv.Type())
}

// encodeViaJSON renders v with encoding/json and re-encodes the result with
// its key order intact.
func (e *encoder) encodeViaJSON(v any, depth int) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnencodableValue, err)
	}
	decoded, err := Unmarshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnencodableValue, err)
	}
	return e.encode(decoded, depth+1)
}

func (e *encoder) encodeMap(m *Map, depth int) error {
	if m.Len() == 0 {
		e.buf.WriteString("{}")
		return nil
	}
	e.buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newline(depth + 1)
		writeString(&e.buf, k)
		e.colon()
		if err := e.encode(m.values[k], depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.buf.WriteByte('}')
	return nil
}

func (e *encoder) encodeStringMap(rv reflect.Value, depth int) error {
	if rv.Len() == 0 {
		e.buf.WriteString("{}")
		return nil
	}
	keys := make([]string, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		keys = append(keys, iter.Key().String())
	}
	sort.Strings(keys)

	e.buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newline(depth + 1)
		writeString(&e.buf, k)
		e.colon()
		val := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()))
		if err := e.encode(val.Interface(), depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.buf.WriteByte('}')
	return nil
}

func (e *encoder) encodeArray(n int, at func(int) any, depth int) error {
	if n == 0 {
		e.buf.WriteString("[]")
		return nil
	}
	e.buf.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newline(depth + 1)
		if err := e.encode(at(i), depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.buf.WriteByte(']')
	return nil
}

func (e *encoder) newline(depth int) {
	if !e.indent {
		return
	}
	e.buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		e.buf.WriteString(indentUnit)
	}
}

func (e *encoder) colon() {
	if e.indent {
		e.buf.WriteString(": ")
		return
	}
	e.buf.WriteByte(':')
}

// maxSafeInteger is 2^53, past which a JavaScript number no longer holds
// every integer.
const maxSafeInteger = 1 << 53

// encodeInt writes integers beyond 2^53 as the double they become in
// JavaScript.
func (e *encoder) encodeInt(i int64) error {
	if i > maxSafeInteger || i < -maxSafeInteger {
		return e.encodeFloat(float64(i))
	}
	e.buf.WriteString(strconv.FormatInt(i, 10))
	return nil
}

// encodeFloat writes f the way ECMAScript's Number::toString does: the
// shortest round-tripping digits of the double, in plain notation for
// 1e-6 <= |f| < 1e21 and exponent notation otherwise. Narrower floats are
// widened first, as JavaScript has no other number type.
func (e *encoder) encodeFloat(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: %v", ErrUnencodableValue, f)
	}
	if f == 0 {
		// Covers -0, which JavaScript prints as "0".
		e.buf.WriteByte('0')
		return nil
	}

	abs := math.Abs(f)
	format := byte('f')
	if abs < 1e-6 || abs >= 1e21 {
		format = 'e'
	}
	b := strconv.AppendFloat(nil, f, format, -1, 64)
	if format == 'e' {
		// Go writes e-07; ECMAScript writes e-7.
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	e.buf.Write(b)
	return nil
}

func (e *encoder) encodeNumber(n json.Number) error {
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("%w: number %q", ErrUnencodableValue, string(n))
	}
	return e.encodeFloat(f)
}

const hexDigits = "0123456789abcdef"

// writeString quotes s with JSON.stringify's escaping rules. Unlike
// encoding/json, '<', '>', '&', U+2028 and U+2029 are written unescaped.
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"':
				buf.WriteString(`\"`)
			case '\\':
				buf.WriteString(`\\`)
			case '\b':
				buf.WriteString(`\b`)
			case '\f':
				buf.WriteString(`\f`)
			case '\n':
				buf.WriteString(`\n`)
			case '\r':
				buf.WriteString(`\r`)
			case '\t':
				buf.WriteString(`\t`)
			default:
				if c < 0x20 {
					buf.WriteString(`\u00`)
					buf.WriteByte(hexDigits[c>>4])
					buf.WriteByte(hexDigits[c&0xf])
				} else {
					buf.WriteByte(c)
				}
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			buf.WriteString("\ufffd")
			i++
			continue
		}
		buf.WriteString(s[i : i+size])
		i += size
	}
	buf.WriteByte('"')
}
