package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedList is returned when a list cell is not a valid list literal.
	ErrMalformedList = errors.New("malformed list literal")

	// ErrMissingColumn is returned when a required header column is absent.
	ErrMissingColumn = errors.New("missing required column")
)

// ParseError points at the cell of an input file that could not be decoded.
type ParseError struct {
	File   string
	Line   int
	Column int
	Field  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s: %v", e.File, e.Line, e.Column, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
