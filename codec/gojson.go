package codec

import (
	"bytes"
	"io"

	gojson "github.com/goccy/go-json"
)

// GoJSON is a JSON codec backed by github.com/goccy/go-json.
type GoJSON struct {
	// Indent pretty-prints output with the given indent when non-empty.
	Indent string
}

// Marshal encodes the value to JSON.
func (c GoJSON) Marshal(v any) ([]byte, error) {
	return marshal(c, v)
}

// Encode implements Codec.
func (c GoJSON) Encode(w io.Writer, v any) error {
	return encode(gojson.NewEncoder(w), c.Indent, v)
}

// Unmarshal decodes exactly one JSON value into v.
func (GoJSON) Unmarshal(data []byte, v any) error {
	return unmarshal(gojson.NewDecoder(bytes.NewReader(data)), v)
}

// Name returns "go-json".
func (GoJSON) Name() string { return "go-json" }
