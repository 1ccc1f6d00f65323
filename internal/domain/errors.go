package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrEmailTaken is returned when registering an email that already exists
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthorized is returned for a missing, malformed or expired token
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned for resources that do not exist or are not
	// owned by the caller. The two cases are never distinguished.
	ErrNotFound = errors.New("not found")

	// ErrGeneration is returned when the external generator call fails
	ErrGeneration = errors.New("generation failed")
)

// ValidationError lists every violated field constraint
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// ExtractionError means no parseable JSON object was found in generator output
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Reason, e.Err)
	}
	return "extraction failed: " + e.Reason
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// SchemaError names the first field of a generated plan that is missing or mistyped
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error at %s: %s", e.Field, e.Reason)
}
