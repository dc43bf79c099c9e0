// Package safejson parses untrusted JSON request bodies within a fixed size
// budget and without routing numeric literals through binary floating point.
// Monetary values survive a parse/serialize round trip exactly because every
// number is surfaced as a json.Number token.
package safejson

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// MaxBodyBytes is the hard cap on accepted input size.
const MaxBodyBytes = 2_000_000

var (
	// ErrTooLarge is returned when the raw input exceeds MaxBodyBytes.
	ErrTooLarge = errors.New("json body too large")

	// ErrInvalidFormat is returned when the input is not valid JSON or its
	// top-level value is not an object.
	ErrInvalidFormat = errors.New("invalid json format")
)

// Parse decodes raw into a map with all numbers preserved as json.Number.
// The top-level value must be a JSON object; arrays, scalars and null are
// rejected with ErrInvalidFormat.
func Parse(raw []byte) (map[string]any, error) {
	if len(raw) > MaxBodyBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(raw))
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	// Trailing garbage after the first value is not a valid document.
	if err := dec.Decode(new(any)); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after top-level value", ErrInvalidFormat)
	}

	obj, ok := data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: root must be an object", ErrInvalidFormat)
	}
	return obj, nil
}
