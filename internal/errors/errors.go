// Package errors defines the error taxonomy shared by the sounding pipeline.
//
// Three failure classes exist: schema errors (required columns missing from
// an input file), parse errors (a cell that is not a valid float64), and
// invalid-data errors (a table that cannot be processed at all). Numeric
// outcomes such as NaN, infinity, or solver non-convergence are recorded
// results, never errors.
package errors

import (
	"fmt"
	"strings"
)

// SchemaError reports required input columns missing from a sounding file.
// It always carries the complete list of missing columns, not just the
// first one encountered.
type SchemaError struct {
	Missing []string
}

// NewSchemaError creates a SchemaError for the given missing columns.
func NewSchemaError(missing ...string) *SchemaError {
	return &SchemaError{Missing: missing}
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// ParseError reports a cell value that could not be parsed as a float64.
type ParseError struct {
	Line   int    // 1-based line number including the header row
	Column string // header name of the offending column
	Value  string // raw cell content
	Err    error
}

// NewParseError creates a ParseError with the given location and cause.
func NewParseError(line int, column, value string, err error) *ParseError {
	return &ParseError{Line: line, Column: column, Value: value, Err: err}
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %q: cannot parse %q as float64", e.Line, e.Column, e.Value)
}

// Unwrap returns the underlying parse failure.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidDataError reports a table that cannot be processed by a pipeline
// stage, for example an empty table handed to the depth adjuster.
type InvalidDataError struct {
	Op     string // pipeline operation that rejected the data
	Reason string
}

// NewInvalidDataError creates an InvalidDataError for the given operation.
func NewInvalidDataError(op, reason string) *InvalidDataError {
	return &InvalidDataError{Op: op, Reason: reason}
}

// Error implements the error interface
func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// ConfigError reports an invalid configuration value detected during
// startup validation, before any row is processed.
type ConfigError struct {
	Field  string
	Reason string
}

// NewConfigError creates a ConfigError for the given field.
func NewConfigError(field, reason string) *ConfigError {
	return &ConfigError{Field: field, Reason: reason}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}
