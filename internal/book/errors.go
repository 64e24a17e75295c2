package book

import "fmt"

// ParseError indicates a malformed numeric value in a raw book payload.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaError indicates a required field is missing from a raw book payload.
type SchemaError struct {
	Field string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}
