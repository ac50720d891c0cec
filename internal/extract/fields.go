// Package extract turns raw source records into typed movie data: numeric
// columns, multi-value fields split into atomic values, and person names
// decomposed into their natural-key parts.
package extract

import (
	"strings"

	"movie-loader/internal/source"
)

// Column names of the movies CSV header.
const (
	FieldTitle       = "Title"
	FieldDescription = "Description"
	FieldYear        = "Year"
	FieldRuntime     = "Runtime (Minutes)"
	FieldRating      = "Rating"
	FieldVotes       = "Votes"
	FieldRevenue     = "Revenue (Millions)"
	FieldMetascore   = "Metascore"
	FieldGenre       = "Genre"
	FieldActors      = "Actors"
	FieldDirector    = "Director"
)

// SplitMultiValue splits a comma separated field into its values, in order of
// appearance. ", " is folded to "," first so "A, B,C" and "A,B,C" agree.
// Duplicates are kept. An empty value yields no entries.
func SplitMultiValue(rec source.Record, field string) ([]string, error) {
	value, err := rec.Field(field)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	value = strings.ReplaceAll(value, ", ", ",")
	return strings.Split(value, ","), nil
}

// Unique drops repeated values, keeping the first occurrence.
func Unique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
