package fuzz

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"github.com/sanity-io/pathdoc"
	"github.com/sanity-io/pathdoc/internal/digest"
)

var options = pathdoc.DefaultOptions.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

// Fuzz expects a JSON value followed by a path expression. It checks that the
// document survives a serialization round trip and that setting the path
// either stores the value or leaves the document untouched.
func Fuzz(data []byte) int {
	dec := json.NewDecoder(bytes.NewReader(data))
	var raw json.RawMessage
	err := dec.Decode(&raw)
	if err != nil {
		return -1
	}
	path := strings.TrimSpace(string(data[dec.InputOffset():]))

	doc, err := options.Parse(raw)
	if err != nil {
		return -1
	}

	encoded, err := doc.Bytes()
	if err != nil {
		panic(err)
	}
	reparsed, err := options.Parse(encoded)
	if err != nil {
		panic(err)
	}
	if !pathdoc.Equal(doc.Root(), reparsed.Root()) {
		panic("round trip changed the document")
	}
	encodedAgain, err := reparsed.Bytes()
	if err != nil {
		panic(err)
	}
	if !bytes.Equal(encoded, encodedAgain) {
		panic("serialization is not stable")
	}

	before, err := digest.Document(doc)
	if err != nil {
		panic(err)
	}

	p, err := pathdoc.ParsePath(path)
	if err != nil {
		return 0
	}
	if !pathEqual(p, pathdoc.MustParsePath(p.String())) {
		panic("path does not survive String")
	}

	_, lookupErr := doc.Lookup(path)
	if (lookupErr == nil) != doc.Has(path) {
		panic("has and lookup disagree")
	}

	err = doc.Set(path, "fuzz")
	if err != nil {
		after, err := digest.Document(doc)
		if err != nil {
			panic(err)
		}
		if before != after {
			panic("failed set changed the document")
		}
		return 0
	}

	if doc.Get(path) != "fuzz" {
		panic("set value can't be read back")
	}

	return 1
}

func pathEqual(a, b pathdoc.Path) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
