package codec

import (
	"bytes"
	"encoding/json"
	"io"
)

// JSON is the standard-library JSON codec.
type JSON struct {
	// Indent pretty-prints output with the given indent when non-empty.
	Indent string
}

// Marshal encodes the value to JSON.
func (c JSON) Marshal(v any) ([]byte, error) {
	return marshal(c, v)
}

// Encode implements Codec.
func (c JSON) Encode(w io.Writer, v any) error {
	return encode(json.NewEncoder(w), c.Indent, v)
}

// Unmarshal decodes exactly one JSON value into v.
func (JSON) Unmarshal(data []byte, v any) error {
	return unmarshal(json.NewDecoder(bytes.NewReader(data)), v)
}

// Name returns "json".
func (JSON) Name() string { return "json" }
