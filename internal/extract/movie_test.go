package extract

import (
	"testing"

	"movie-loader/internal/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func herRecord() source.Record {
	return source.Record{
		FieldTitle:       "Her",
		FieldDescription: "A lonely writer develops an unlikely relationship with an operating system.",
		FieldYear:        "2013",
		FieldRuntime:     "126",
		FieldRating:      "8.0",
		FieldVotes:       "390531",
		FieldRevenue:     "25.56",
		FieldMetascore:   "90",
		FieldGenre:       "Drama, Romance, Sci-Fi",
		FieldActors:      "Joaquin Phoenix, Amy Adams",
		FieldDirector:    "Spike Jonze",
	}
}

func TestParseMovie(t *testing.T) {
	movie, err := ParseMovie(herRecord())
	require.NoError(t, err)

	assert.Equal(t, "Her", movie.Title)
	assert.Equal(t, 2013, movie.ReleaseYear)
	assert.Equal(t, 126, movie.RuntimeMinutes)
	assert.InDelta(t, 8.0, movie.Rating, 0.0001)
	assert.Equal(t, 390531, movie.Votes)
	require.NotNil(t, movie.RevenueMillions)
	assert.InDelta(t, 25.56, *movie.RevenueMillions, 0.0001)
	require.NotNil(t, movie.Metascore)
	assert.Equal(t, 90, *movie.Metascore)
}

func TestParseMovieKeepsQuotes(t *testing.T) {
	rec := herRecord()
	rec[FieldTitle] = "Ocean's Eleven"
	rec[FieldDescription] = "Danny's crew robs 'three' casinos."

	movie, err := ParseMovie(rec)
	require.NoError(t, err)
	assert.Equal(t, "Ocean's Eleven", movie.Title)
	assert.Equal(t, "Danny's crew robs 'three' casinos.", movie.Description)
}

func TestParseMovieNullableColumns(t *testing.T) {
	rec := herRecord()
	rec[FieldRevenue] = ""
	rec[FieldMetascore] = " "

	movie, err := ParseMovie(rec)
	require.NoError(t, err)
	assert.Nil(t, movie.RevenueMillions)
	assert.Nil(t, movie.Metascore)
}

func TestParseMovieErrors(t *testing.T) {
	t.Run("invalid year", func(t *testing.T) {
		rec := herRecord()
		rec[FieldYear] = "twenty"
		_, err := ParseMovie(rec)
		assert.ErrorIs(t, err, ErrInvalidNumber)
	})

	t.Run("invalid revenue", func(t *testing.T) {
		rec := herRecord()
		rec[FieldRevenue] = "n/a"
		_, err := ParseMovie(rec)
		assert.ErrorIs(t, err, ErrInvalidNumber)
	})

	t.Run("missing votes", func(t *testing.T) {
		rec := herRecord()
		delete(rec, FieldVotes)
		_, err := ParseMovie(rec)
		assert.ErrorIs(t, err, source.ErrMissingField)
	})
}

func TestParseRecord(t *testing.T) {
	parsed, err := ParseRecord(herRecord(), false)
	require.NoError(t, err)

	assert.Equal(t, "Her", parsed.Movie.Title)
	assert.Equal(t, []string{"Drama", "Romance", "Sci-Fi"}, parsed.Genres)
	require.Len(t, parsed.Actors, 2)
	assert.Equal(t, "Joaquin", parsed.Actors[0].FirstName)
	assert.Equal(t, "Adams", parsed.Actors[1].LastName)
	require.Len(t, parsed.Directors, 1)
	assert.Equal(t, "Spike Jonze", parsed.Directors[0].String())
}

func TestParseRecordDuplicates(t *testing.T) {
	rec := herRecord()
	rec[FieldActors] = "Amy Adams, Joaquin Phoenix, Amy Adams"

	parsed, err := ParseRecord(rec, false)
	require.NoError(t, err)
	assert.Len(t, parsed.Actors, 3)

	parsed, err = ParseRecord(rec, true)
	require.NoError(t, err)
	assert.Len(t, parsed.Actors, 2)
}

func TestParseRecordBadName(t *testing.T) {
	rec := herRecord()
	rec[FieldDirector] = "Jean Claude Van Damme"

	_, err := ParseRecord(rec, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedNameShape)
	assert.Contains(t, err.Error(), FieldDirector)
}
