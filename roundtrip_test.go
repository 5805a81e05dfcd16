package pathdoc_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sanity-io/pathdoc"
)

var Documents = []string{
	`{}`,
	`[]`,
	`1`,
	`"a"`,
	`null`,
	`{"a": "b"}`,
	`{"a": "a", "b": "b", "c": "c", "d": "d"}`,
	`{"d": "d", "c": "c", "b": "b", "a": "a"}`,
	`{"a": "a", "b": {"a": "b", "b": "a"}}`,
	`{"a": ["a", "b", "c"]}`,
	`{"a": [1, 2.5, -3e-7, 0.1, 1E+30]}`,
	`{"id": 1234567890123456789, "id_str": "1234567890123456789"}`,
	`{"big": 123456789012345678901234567890}`,
	`{"text": "<b>&amp; \"quoted\" é 😀 \n\t"}`,
	`{"nested": [[[]], [{}], [{"a": [null, true, false]}]]}`,
	`{"coordinates":{"coordinates":[138.604,-34.918],"type":"Point"},"created_at":"Tue Mar 05 09:30:15 +1030 2024","full_text":"","id":1709593215000123,"id_str":"1709593215000123","text":"","user":{"screen_name":""}}`,
}

func TestRoundtrip(t *testing.T) {
	for idx, src := range Documents {
		t.Run(fmt.Sprintf("N%d", idx), func(t *testing.T) {
			doc, err := pathdoc.Parse([]byte(src))
			require.NoError(t, err)

			compact, err := doc.Bytes()
			require.NoError(t, err)
			require.JSONEq(t, src, string(compact))

			again, err := pathdoc.Parse(compact)
			require.NoError(t, err)
			require.True(t, pathdoc.Equal(doc.Root(), again.Root()))

			againCompact, err := again.Bytes()
			require.NoError(t, err)
			require.Equal(t, string(compact), string(againCompact), "serialization is canonical")

			pretty, err := doc.Indent("", "  ")
			require.NoError(t, err)
			fromPretty, err := pathdoc.Parse(pretty)
			require.NoError(t, err)
			require.True(t, pathdoc.Equal(doc.Root(), fromPretty.Root()))
		})
	}
}

func TestRoundtripKeepsIdentifiers(t *testing.T) {
	doc, err := pathdoc.Parse([]byte(`{"id":1234567890123456789,"id_str":"1234567890123456789"}`))
	require.NoError(t, err)

	id, ok := doc.Get("id").(pathdoc.Number)
	require.True(t, ok)
	n, err := id.Int64()
	require.NoError(t, err)
	require.Equal(t, int64(1234567890123456789), n)
	require.Equal(t, id.String(), doc.Get("id_str"))
}

func TestKeyOrderPreserved(t *testing.T) {
	src := `{"z":1,"a":2,"m":{"y":1,"b":2}}`
	doc, err := pathdoc.Parse([]byte(src))
	require.NoError(t, err)

	out, err := doc.Bytes()
	require.NoError(t, err)
	require.Equal(t, src, string(out))
}

func TestMarshalJSONEmbedded(t *testing.T) {
	doc, err := pathdoc.Parse([]byte(`{"b":1,"a":2}`))
	require.NoError(t, err)

	out, err := json.Marshal(map[string]interface{}{"doc": doc})
	require.NoError(t, err)
	require.Equal(t, `{"doc":{"b":1,"a":2}}`, string(out))

	var wrapper struct {
		Doc *pathdoc.Document `json:"doc"`
	}
	require.NoError(t, json.Unmarshal(out, &wrapper))
	require.Equal(t, pathdoc.Number("2"), wrapper.Doc.Get("a"))
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	for _, src := range []string{``, `   `, `{`, `{"a":}`, `{"a":1}x`, `{"a":1} {}`, `[1,]`, `{'a':1}`} {
		_, err := pathdoc.Parse([]byte(src))
		require.ErrorIs(t, err, pathdoc.ErrInvalidJSON, "input %q", src)
	}
}

func TestIndent(t *testing.T) {
	doc, err := pathdoc.Parse([]byte(`{"a":[1,{"b":null}]}`))
	require.NoError(t, err)

	out, err := doc.Indent("", "  ")
	require.NoError(t, err)
	require.Equal(t, "{\n  \"a\": [\n    1,\n    {\n      \"b\": null\n    }\n  ]\n}", string(out))
}
