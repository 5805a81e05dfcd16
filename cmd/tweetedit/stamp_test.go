package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanity-io/pathdoc"
	"github.com/sanity-io/pathdoc/internal/tweet"
)

func TestStampCmd(t *testing.T) {
	fixedGenerators(t)

	bare := writeTemp(t, "bare.json", `{"text":"a"}`)
	complete := `{"created_at":"x","id":1,"id_str":"1"}`
	done := writeTemp(t, "done.json", complete)

	out, err := execute(t, "", "stamp", "--parallel", "2", bare, done)
	require.NoError(t, err)
	assert.Equal(t, bare+"\tstamped\n"+done+"\tunchanged\n", out)

	assert.Equal(t, complete, readTemp(t, done))

	doc, err := pathdoc.Parse([]byte(readTemp(t, bare)))
	require.NoError(t, err)
	assert.Equal(t, "a", doc.Get(tweet.PathText))
	assert.Equal(t, fixedCreatedAt, doc.Get(tweet.PathCreatedAt))
	idStr, ok := doc.Get(tweet.PathIDStr).(string)
	require.True(t, ok)
	assert.Equal(t, pathdoc.Number(idStr), doc.Get(tweet.PathID))

	out, err = execute(t, "", "stamp", bare)
	require.NoError(t, err)
	assert.Equal(t, bare+"\tunchanged\n", out)
}

func TestStampCmd_SkipDate(t *testing.T) {
	fixedGenerators(t)

	path := writeTemp(t, "record.json", `{}`)
	_, err := execute(t, "", "stamp", "--skip-date", path)
	require.NoError(t, err)

	doc, err := pathdoc.Parse([]byte(readTemp(t, path)))
	require.NoError(t, err)
	assert.False(t, doc.Has(tweet.PathCreatedAt))
	assert.True(t, doc.Has(tweet.PathID))
}

func TestStampFiles_Many(t *testing.T) {
	fixedGenerators(t)

	names := make([]string, 12)
	for i := range names {
		names[i] = writeTemp(t, "record.json", `{"n":1}`)
	}

	stamped, err := stampFiles(names, stampOptions{parallel: 3})
	require.NoError(t, err)
	require.Len(t, stamped, len(names))

	for i, name := range names {
		assert.True(t, stamped[i])
		doc, err := pathdoc.Parse([]byte(readTemp(t, name)))
		require.NoError(t, err)
		assert.Equal(t, pathdoc.Number("1"), doc.Get("n"))
		assert.Len(t, doc.Get(tweet.PathIDStr), tweet.IDLength)
	}
}

func TestStampFiles_Failures(t *testing.T) {
	broken := writeTemp(t, "broken.json", `{"a":`)

	_, err := stampFiles([]string{broken}, stampOptions{parallel: 1})
	require.ErrorIs(t, err, pathdoc.ErrInvalidJSON)

	_, err = stampFiles([]string{stdinName}, stampOptions{parallel: 1})
	require.Error(t, err)

	// A record that is not an object can't take the new fields.
	array := writeTemp(t, "array.json", `[1]`)
	_, err = stampFiles([]string{array}, stampOptions{parallel: 1})
	require.ErrorIs(t, err, pathdoc.ErrTypeMismatch)
	assert.Equal(t, `[1]`, readTemp(t, array))
}
