package extract

import (
	"errors"
	"fmt"
	"strings"

	"movie-loader/internal/models"
)

var ErrUnsupportedNameShape = errors.New("unsupported name shape")

// Disambiguate splits a full name on single spaces. Two tokens are first and
// last name, three tokens add a middle name. Every other shape is rejected
// rather than guessed at.
func Disambiguate(fullName string) (models.PersonName, error) {
	parts := strings.Split(fullName, " ")

	switch len(parts) {
	case 2:
		return models.PersonName{FirstName: parts[0], LastName: parts[1]}, nil
	case 3:
		middle := parts[1]
		return models.PersonName{FirstName: parts[0], MiddleName: &middle, LastName: parts[2]}, nil
	default:
		return models.PersonName{}, fmt.Errorf("%w: %q has %d tokens", ErrUnsupportedNameShape, fullName, len(parts))
	}
}

// DisambiguateAll applies Disambiguate to every name, stopping at the first failure.
func DisambiguateAll(fullNames []string) ([]models.PersonName, error) {
	names := make([]models.PersonName, 0, len(fullNames))
	for _, full := range fullNames {
		name, err := Disambiguate(full)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}
