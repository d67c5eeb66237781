package canonical

import "errors"

var (
	// ErrUnencodableValue is returned for values that have no canonical form:
	// non-finite numbers, cyclic or excessively deep structures, and Go types
	// with no JSON equivalent (channels, functions, complex numbers).
	ErrUnencodableValue = errors.New("unencodable value")

	// ErrMalformedJSON is returned by Unmarshal when its input is not a
	// single well-formed JSON value.
	ErrMalformedJSON = errors.New("malformed json")
)
