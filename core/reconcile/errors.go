package reconcile

import (
	"errors"
	"fmt"
)

// Sentinel errors for structural failures. Both abort the run.
var (
	// ErrConfiguration indicates options or column roles that cannot produce a meaningful report.
	ErrConfiguration = errors.New("configuration error")

	// ErrSchemaMismatch indicates a measure that is missing from one side after classification.
	ErrSchemaMismatch = errors.New("schema mismatch")
)

// ConfigurationError is returned when the run is misconfigured, for example
// when dimensional mode finds no identity columns.
type ConfigurationError struct {
	Reason string
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// Is implements errors.Is support
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// SchemaMismatchError is returned when a measure is absent from one side.
type SchemaMismatchError struct {
	Side   Side
	Column string
}

// Error implements the error interface
func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch: measure %q is missing from %s", e.Column, e.Side)
}

// Is implements errors.Is support
func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

// WarningKind classifies non-fatal conditions.
type WarningKind string

const (
	// WarningTypeCoercion: a cell did not fit its column's declared type and was kept raw.
	WarningTypeCoercion WarningKind = "type_coercion"
	// WarningKeyCollision: distinct identity tuples rendered to the same key and were merged.
	WarningKeyCollision WarningKind = "key_collision"
)

// Warning is a non-fatal condition reported alongside the result.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Side    Side        `json:"side,omitempty"`
	Column  string      `json:"column,omitempty"`
	Row     int         `json:"row,omitempty"`
	Value   string      `json:"value,omitempty"`
	Message string      `json:"message"`
}

// String renders the warning for logs.
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}
