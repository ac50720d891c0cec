package source

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `Rank,Title,Genre,Description,Director,Actors,Year,Runtime (Minutes),Rating,Votes,Revenue (Millions),Metascore
1,Her,"Drama,Romance,Sci-Fi","A writer, lonely.",Spike Jonze,"Joaquin Phoenix, Amy Adams",2013,126,8.0,390531,25.56,90
2,The Master,Drama,"Lancaster's cult.",Paul Thomas Anderson,"Philip Seymour Hoffman, Joaquin Phoenix",2012,144,7.1,112902,16.38,86
`

func TestReaderNext(t *testing.T) {
	r, err := NewReader(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, "Title", r.Header()[1])

	rec, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, r.Row())
	assert.Equal(t, "Her", rec["Title"])
	assert.Equal(t, "Drama,Romance,Sci-Fi", rec["Genre"])
	assert.Equal(t, "A writer, lonely.", rec["Description"])

	rec, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, r.Row())
	assert.Equal(t, "Paul Thomas Anderson", rec["Director"])
	assert.Equal(t, "Lancaster's cult.", rec["Description"])

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderShortRowMissingField(t *testing.T) {
	r, err := NewReader(strings.NewReader("Title,Genre\nHer\n"))
	require.NoError(t, err)

	rec, err := r.Next()
	require.NoError(t, err)

	title, err := rec.Field("Title")
	require.NoError(t, err)
	assert.Equal(t, "Her", title)

	_, err = rec.Field("Genre")
	assert.ErrorIs(t, err, ErrMissingField)

	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "Genre", fieldErr.Field)
}

func TestReaderStripsBOM(t *testing.T) {
	r, err := NewReader(strings.NewReader("\ufeffTitle,Genre\nHer,Drama\n"))
	require.NoError(t, err)

	rec, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "Her", rec["Title"])
}

func TestReaderEmptyInput(t *testing.T) {
	_, err := NewReader(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReaderMalformedRowAdvances(t *testing.T) {
	r, err := NewReader(strings.NewReader("Title,Genre\n\"Her,Drama\n"))
	require.NoError(t, err)

	_, err = r.Next()
	var parseErr *csv.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 1, r.Row())
}
