package pathdoc_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sanity-io/pathdoc"
)

var propertyDocuments = []string{
	`{"user":{"screen_name":"alice"},"text":"hi","id":1234567890123456789,"id_str":"1234567890123456789"}`,
	`{"coordinates":{"coordinates":[138.604,-34.918],"type":"Point"},"geo":null}`,
	`{"entities":{"media":[{"url":"u","sizes":[1,2]}],"hashtags":[]},"a":{"b":{"c":[[1],[2,3]]}}}`,
}

var probePaths = []string{
	"user", "user.screen_name", "user.name", "user.screen_name.x", "text.[0]",
	"coordinates.coordinates.[0]", "coordinates.coordinates.[2]", "coordinates.[0]", "geo.type",
	"entities.media.[0].url", "entities.media.[1].url", "entities.hashtags.[0]", "a.b.c.[1].[1]",
	"a.b.c.[1].[2]", "missing.deeper.still", "a.b.x.y",
}

// allPaths lists every existing path of the document, containers included.
func allPaths(value interface{}, prefix pathdoc.Path) []pathdoc.Path {
	var result []pathdoc.Path
	if len(prefix) > 0 {
		result = append(result, prefix)
	}
	switch value := value.(type) {
	case []interface{}:
		for i, elem := range value {
			result = append(result, allPaths(elem, prefix.Append(pathdoc.Index(i)))...)
		}
	case *pathdoc.Object:
		value.Range(func(key string, elem interface{}) bool {
			result = append(result, allPaths(elem, prefix.Append(pathdoc.Field(key)))...)
			return true
		})
	}
	return result
}

func arrayLengths(doc *pathdoc.Document) map[string]int {
	lengths := map[string]int{}
	for _, p := range allPaths(doc.Root(), nil) {
		if arr, ok := doc.Get(p.String()).([]interface{}); ok {
			lengths[p.String()] = len(arr)
		}
	}
	return lengths
}

func TestGetSetInverse(t *testing.T) {
	for idx, src := range propertyDocuments {
		for _, p := range allPaths(parse(t, src).Root(), nil) {
			t.Run(fmt.Sprintf("N%d/%s", idx, p), func(t *testing.T) {
				doc := parse(t, src)
				for _, value := range []interface{}{"v", pathdoc.Number("42"), true, nil} {
					require.NoError(t, doc.Set(p.String(), value))
					require.Equal(t, value, doc.Get(p.String()))
					require.True(t, doc.Has(p.String()))
				}
			})
		}
	}
}

func TestFailedSetIsNoop(t *testing.T) {
	for idx, src := range propertyDocuments {
		for _, path := range probePaths {
			t.Run(fmt.Sprintf("N%d/%s", idx, path), func(t *testing.T) {
				doc := parse(t, src)
				before := doc.Clone()
				lengths := arrayLengths(doc)

				err := doc.Set(path, "v")
				if err != nil {
					require.True(t, pathdoc.Equal(before.Root(), doc.Root()), "failed set changed the document")
					return
				}
				require.Equal(t, "v", doc.Get(path))
				require.Equal(t, lengths, arrayLengths(doc), "set never changes array lengths")
			})
		}
	}
}

func TestHasGetConsistency(t *testing.T) {
	for idx, src := range propertyDocuments {
		doc := parse(t, src)
		for _, path := range probePaths {
			t.Run(fmt.Sprintf("N%d/%s", idx, path), func(t *testing.T) {
				_, err := doc.Lookup(path)
				require.Equal(t, err == nil, doc.Has(path))
				if !doc.Has(path) {
					require.Nil(t, doc.Get(path))
				}
			})
		}
	}
}

func TestObjectsAreOpen(t *testing.T) {
	for idx, src := range propertyDocuments {
		for _, p := range allPaths(parse(t, src).Root(), nil) {
			doc := parse(t, src)
			if _, ok := doc.Get(p.String()).(*pathdoc.Object); !ok {
				continue
			}
			t.Run(fmt.Sprintf("N%d/%s", idx, p), func(t *testing.T) {
				path := p.Append(pathdoc.Field("brand_new")).String()
				require.False(t, doc.Has(path))
				require.NoError(t, doc.Set(path, "x"))
				require.Equal(t, "x", doc.Get(path))
			})
		}
	}
}
