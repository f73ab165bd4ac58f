package jsonx

import (
	"github.com/goccy/go-json"
)

// Canonical encodes val as compact JSON with map keys sorted and without HTML
// escaping. Two maps holding the same entries always encode to the same bytes,
// whatever order they were built in.
func Canonical(val any) ([]byte, error) {
	return json.MarshalNoEscape(val)
}

// String is Canonical for callers that want text and can live with a
// placeholder when val cannot be encoded.
func String(val any) string {
	b, err := Canonical(val)
	if err != nil {
		return "null"
	}
	return string(b)
}
