package pathdocmsgpack_test

import (
	"testing"

	"github.com/sanity-io/pathdoc"
	"github.com/sanity-io/pathdoc/pkg/pathdocmsgpack"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v4"
)

func TestEncodingSize(t *testing.T) {
	doc, err := pathdoc.Parse([]byte(`{"a":1}`))
	require.NoError(t, err)

	b, err := pathdocmsgpack.Marshal(doc)
	require.NoError(t, err)
	// fixmap(1), fixstr "a", positive fixint
	require.Len(t, b, 4)
}

func TestRoundtrip(t *testing.T) {
	src := `{"id":1234567890123456789,"id_str":"1234567890123456789","big":18446744073709551615,` +
		`"neg":-42,"coordinates":{"coordinates":[138.604,-34.918],"type":"Point"},` +
		`"flags":[true,false,null],"empty":{},"none":[],"text":"héllo & <bye>"}`
	doc, err := pathdoc.Parse([]byte(src))
	require.NoError(t, err)

	b, err := pathdocmsgpack.Marshal(doc)
	require.NoError(t, err)

	decoded, err := pathdocmsgpack.Unmarshal(b)
	require.NoError(t, err)

	require.True(t, pathdoc.Equal(doc.Root(), decoded.Root()))

	// Key order and integer literals come back untouched.
	out, err := decoded.Bytes()
	require.NoError(t, err)
	require.JSONEq(t, src, string(out))
	require.Equal(t, pathdoc.Number("1234567890123456789"), decoded.Get("id"))
	require.Equal(t, []string{"id", "id_str", "big", "neg", "coordinates", "flags", "empty", "none", "text"},
		decoded.Root().(*pathdoc.Object).Keys())
}

func TestEmbedded(t *testing.T) {
	type envelope struct {
		Name string
		Doc  *pathdocmsgpack.MsgpackDocument
	}

	doc, err := pathdoc.Parse([]byte(`{"user":{"screen_name":"alice"}}`))
	require.NoError(t, err)

	b, err := msgpack.Marshal(&envelope{Name: "x", Doc: (*pathdocmsgpack.MsgpackDocument)(doc)})
	require.NoError(t, err)

	var decoded envelope
	require.NoError(t, msgpack.Unmarshal(b, &decoded))
	require.Equal(t, "x", decoded.Name)
	require.Equal(t, "alice", (*pathdoc.Document)(decoded.Doc).Get("user.screen_name"))
}

func TestForeignMsgpack(t *testing.T) {
	b, err := msgpack.Marshal(map[string]interface{}{"f": 1.5, "s": "x", "n": nil})
	require.NoError(t, err)

	doc, err := pathdocmsgpack.Unmarshal(b)
	require.NoError(t, err)
	require.Equal(t, pathdoc.Number("1.5"), doc.Get("f"))
	require.Equal(t, "x", doc.Get("s"))
	require.True(t, doc.Has("n"))
}

func TestMarshalValue(t *testing.T) {
	b, err := pathdocmsgpack.MarshalValue([]interface{}{pathdoc.Number("1"), "a"})
	require.NoError(t, err)

	doc, err := pathdocmsgpack.Unmarshal(b)
	require.NoError(t, err)
	require.Equal(t, []interface{}{pathdoc.Number("1"), "a"}, doc.Root())
}

func TestUnsupportedNumber(t *testing.T) {
	obj := pathdoc.NewObject()
	obj.Set("n", pathdoc.Number("1e999"))
	doc, err := pathdoc.New(obj)
	require.NoError(t, err)

	_, err = pathdocmsgpack.Marshal(doc)
	require.ErrorIs(t, err, pathdoc.ErrUnsupportedValue)
}
