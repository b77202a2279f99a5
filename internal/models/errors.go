package models

import (
	"errors"
	"fmt"
)

var (
	ErrNoRecord         = errors.New("models: no matching record found")
	ErrUnknownKind      = errors.New("models: unknown class")
	ErrInvalidAttribute = errors.New("models: invalid attribute")
	ErrMissingField     = errors.New("models: missing field")
	ErrNotJSON          = errors.New("models: body is not a JSON object")
)

// FieldError names the attribute that failed a presence or type check.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Field)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func missing(field string) error {
	return &FieldError{Field: field, Err: ErrMissingField}
}

func invalid(field string) error {
	return &FieldError{Field: field, Err: ErrInvalidAttribute}
}
