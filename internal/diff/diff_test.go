package diff_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sanity-io/pathdoc"
	"github.com/sanity-io/pathdoc/internal/diff"
)

type change struct {
	op   diff.Op
	path string
	old  interface{}
	new  interface{}
}

func parse(t *testing.T, src string) interface{} {
	t.Helper()
	value, err := pathdoc.ParseValue([]byte(src))
	require.NoError(t, err)
	return value
}

func TestChanges(t *testing.T) {
	for _, tc := range []struct {
		name   string
		left   string
		right  string
		result []change
	}{
		{
			name:  "no diff",
			left:  `{"a":1,"b":[true,null]}`,
			right: `{"b":[true,null],"a":1.0}`,
		},
		{
			name:   "single field",
			left:   `{"a":1,"b":3}`,
			right:  `{"a":1,"b":2}`,
			result: []change{{diff.OpChanged, "b", pathdoc.Number("3"), pathdoc.Number("2")}},
		},
		{
			name:  "added and removed fields",
			left:  `{"a":1,"user":{"name":"x"}}`,
			right: `{"user":{"screen_name":"x"},"text":""}`,
			result: []change{
				{diff.OpRemoved, "a", pathdoc.Number("1"), nil},
				{diff.OpRemoved, "user.name", "x", nil},
				{diff.OpAdded, "user.screen_name", nil, "x"},
				{diff.OpAdded, "text", nil, ""},
			},
		},
		{
			name:  "array elements",
			left:  `{"m":[1,2,3]}`,
			right: `{"m":[1,5]}`,
			result: []change{
				{diff.OpChanged, "m.[1]", pathdoc.Number("2"), pathdoc.Number("5")},
				{diff.OpRemoved, "m.[2]", pathdoc.Number("3"), nil},
			},
		},
		{
			name:   "kind change",
			left:   `{"geo":null}`,
			right:  `{"geo":{"type":"Point"}}`,
			result: []change{{diff.OpChanged, "geo", nil, parse(t, `{"type":"Point"}`)}},
		},
		{
			name:   "root",
			left:   `1`,
			right:  `"1"`,
			result: []change{{diff.OpChanged, "", pathdoc.Number("1"), "1"}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			changes := diff.Changes(parse(t, tc.left), parse(t, tc.right))
			require.Len(t, changes, len(tc.result))
			for i, expected := range tc.result {
				require.Equal(t, expected.op, changes[i].Op)
				require.Equal(t, expected.path, changes[i].Path.String())
				require.True(t, pathdoc.Equal(expected.old, changes[i].Old), "old value of %s", expected.path)
				require.True(t, pathdoc.Equal(expected.new, changes[i].New), "new value of %s", expected.path)
			}
		})
	}
}

func TestDocuments(t *testing.T) {
	left, err := pathdoc.Parse([]byte(`{"text":"a"}`))
	require.NoError(t, err)
	right := left.Clone()
	require.NoError(t, right.Set("text", "b"))

	changes := diff.Documents(left, right)
	require.Len(t, changes, 1)
	require.Equal(t, "changed", changes[0].Op.String())
	require.Equal(t, pathdoc.Path{pathdoc.Field("text")}, changes[0].Path)
}
