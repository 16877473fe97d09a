// Package codec selects the JSON encoder used to serialize ranking tables.
//
// Tables are handed to downstream scoring tools as JSON. The default codec is
// backed by github.com/goccy/go-json; the standard library codec is available
// for callers that want the lowest-dependency option. Both write feature and
// identifier names verbatim (no HTML escaping), can stream to an io.Writer,
// and reject unknown fields and trailing data when decoding.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	// Encode writes v to w followed by a newline.
	Encode(w io.Writer, v any) error
	Name() string
}

// Default is the codec used when none is configured.
var Default Codec = GoJSON{}

// ErrTrailingData is returned by Unmarshal when data holds more than one value.
var ErrTrailingData = errors.New("codec: trailing data after value")

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// MustMarshal is a helper for tests.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}

// streamEncoder is satisfied by the encoders of encoding/json and go-json.
type streamEncoder interface {
	Encode(v any) error
	SetEscapeHTML(on bool)
	SetIndent(prefix, indent string)
}

// streamDecoder is satisfied by the decoders of encoding/json and go-json.
type streamDecoder interface {
	Decode(v any) error
	DisallowUnknownFields()
	More() bool
}

func encode(enc streamEncoder, indent string, v any) error {
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(v)
}

func marshal(c Codec, v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Encode(&buf, v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

func unmarshal(dec streamDecoder, v any) error {
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return ErrTrailingData
	}
	return nil
}
