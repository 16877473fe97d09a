package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Features []string `json:"features"`
	Ranks    []int32  `json:"ranks"`
}

func codecs() []Codec {
	return []Codec{JSON{}, GoJSON{}}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestCodecsAgree(t *testing.T) {
	in := payload{Features: []string{"motif1", "motif2"}, Ranks: []int32{0, 7}}

	std := MustMarshal(JSON{}, in)
	fast := MustMarshal(GoJSON{}, in)
	assert.Equal(t, string(std), string(fast))
	assert.Equal(t, `{"features":["motif1","motif2"],"ranks":[0,7]}`, string(std))

	var out payload
	require.NoError(t, GoJSON{}.Unmarshal(std, &out))
	assert.Equal(t, in, out)
}

func TestMarshal_NamesVerbatim(t *testing.T) {
	in := payload{Features: []string{"<H3K27ac>&ChIP"}}

	for _, c := range codecs() {
		t.Run(c.Name(), func(t *testing.T) {
			b, err := c.Marshal(in)
			require.NoError(t, err)
			assert.Contains(t, string(b), `"<H3K27ac>&ChIP"`)
			assert.False(t, bytes.HasSuffix(b, []byte("\n")))
		})
	}
}

func TestMarshal_Indent(t *testing.T) {
	in := payload{Features: []string{"m"}, Ranks: []int32{1}}
	want := "{\n  \"features\": [\n    \"m\"\n  ],\n  \"ranks\": [\n    1\n  ]\n}"

	for _, c := range []Codec{JSON{Indent: "  "}, GoJSON{Indent: "  "}} {
		t.Run(c.Name(), func(t *testing.T) {
			b, err := c.Marshal(in)
			require.NoError(t, err)
			assert.Equal(t, want, string(b))
		})
	}
}

func TestEncode_Stream(t *testing.T) {
	for _, c := range codecs() {
		t.Run(c.Name(), func(t *testing.T) {
			var sb strings.Builder
			require.NoError(t, c.Encode(&sb, payload{Ranks: []int32{3}}))
			require.NoError(t, c.Encode(&sb, payload{Ranks: []int32{4}}))

			lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
			require.Len(t, lines, 2)

			var out payload
			require.NoError(t, c.Unmarshal([]byte(lines[1]), &out))
			assert.Equal(t, []int32{4}, out.Ranks)
		})
	}
}

func TestUnmarshal_Strict(t *testing.T) {
	for _, c := range codecs() {
		t.Run(c.Name(), func(t *testing.T) {
			var out payload
			assert.Error(t, c.Unmarshal([]byte(`{"features":[],"counts":[1]}`), &out))
			assert.ErrorIs(t, c.Unmarshal([]byte(`{"ranks":[1]} {"ranks":[2]}`), &out), ErrTrailingData)
			assert.Error(t, c.Unmarshal([]byte(`{`), &out))

			require.NoError(t, c.Unmarshal([]byte(" {\"ranks\":[2]}\n"), &out))
			assert.Equal(t, []int32{2}, out.Ranks)
		})
	}
}

func TestMustMarshal_Default(t *testing.T) {
	b := MustMarshal(nil, map[string]int{"a": 1})
	assert.JSONEq(t, `{"a":1}`, string(b))

	assert.Panics(t, func() { MustMarshal(JSON{}, make(chan int)) })
}
