package extract

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"movie-loader/internal/models"
	"movie-loader/internal/source"
)

var ErrInvalidNumber = errors.New("invalid number")

// MovieRecord is a source record after extraction, ready to be written.
type MovieRecord struct {
	Movie     models.Movie
	Genres    []string
	Actors    []models.PersonName
	Directors []models.PersonName
}

// ParseRecord extracts everything one row contributes. When dedupe is set,
// repeated genres and names within the row are collapsed so each produces a
// single link.
func ParseRecord(rec source.Record, dedupe bool) (*MovieRecord, error) {
	movie, err := ParseMovie(rec)
	if err != nil {
		return nil, err
	}

	genres, err := SplitMultiValue(rec, FieldGenre)
	if err != nil {
		return nil, err
	}
	actorNames, err := SplitMultiValue(rec, FieldActors)
	if err != nil {
		return nil, err
	}
	directorNames, err := SplitMultiValue(rec, FieldDirector)
	if err != nil {
		return nil, err
	}

	if dedupe {
		genres = Unique(genres)
		actorNames = Unique(actorNames)
		directorNames = Unique(directorNames)
	}

	actors, err := DisambiguateAll(actorNames)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", FieldActors, err)
	}
	directors, err := DisambiguateAll(directorNames)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", FieldDirector, err)
	}

	return &MovieRecord{
		Movie:     *movie,
		Genres:    genres,
		Actors:    actors,
		Directors: directors,
	}, nil
}

// ParseMovie builds the movies row. Title, description and the numeric
// columns are required; revenue and metascore may be blank.
func ParseMovie(rec source.Record) (*models.Movie, error) {
	var (
		movie models.Movie
		err   error
	)

	if movie.Title, err = rec.Field(FieldTitle); err != nil {
		return nil, err
	}
	if movie.Description, err = rec.Field(FieldDescription); err != nil {
		return nil, err
	}
	if movie.ReleaseYear, err = intField(rec, FieldYear); err != nil {
		return nil, err
	}
	if movie.RuntimeMinutes, err = intField(rec, FieldRuntime); err != nil {
		return nil, err
	}
	if movie.Rating, err = floatField(rec, FieldRating); err != nil {
		return nil, err
	}
	if movie.Votes, err = intField(rec, FieldVotes); err != nil {
		return nil, err
	}
	if movie.RevenueMillions, err = optionalFloatField(rec, FieldRevenue); err != nil {
		return nil, err
	}
	if movie.Metascore, err = optionalIntField(rec, FieldMetascore); err != nil {
		return nil, err
	}

	return &movie, nil
}

func intField(rec source.Record, field string) (int, error) {
	value, err := rec.Field(field)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidNumber, field, value)
	}
	return n, nil
}

func floatField(rec source.Record, field string) (float64, error) {
	value, err := rec.Field(field)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidNumber, field, value)
	}
	return f, nil
}

func optionalIntField(rec source.Record, field string) (*int, error) {
	value, err := rec.Field(field)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	n, err := intField(rec, field)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func optionalFloatField(rec source.Record, field string) (*float64, error) {
	value, err := rec.Field(field)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	f, err := floatField(rec, field)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
