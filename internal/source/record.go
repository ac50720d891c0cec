package source

import (
	"errors"
	"fmt"
)

var ErrMissingField = errors.New("missing field")

// FieldError names the field a record could not provide.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMissingField, e.Field)
}

func (e *FieldError) Unwrap() error {
	return ErrMissingField
}

// Record is one data row keyed by header name.
type Record map[string]string

func (r Record) Field(name string) (string, error) {
	value, ok := r[name]
	if !ok {
		return "", &FieldError{Field: name}
	}
	return value, nil
}
