package model

import "fmt"

// ValidationError represents validation failures
type ValidationError struct {
	Field   string
	Value   interface{}
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed on %s: %s (value=%v, rule=%s)", e.Field, e.Message, e.Value, e.Rule)
	}
	return fmt.Sprintf("validation failed on %s: %s (rule=%s)", e.Field, e.Message, e.Rule)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}

// LineItemError represents an unusable numeric field on an invoice line.
// Unlike header-level fields, line fields are never defaulted: a missing or
// malformed line amount would corrupt totals the receiver reconciles
// against, so serialization of the whole invoice is aborted.
type LineItemError struct {
	Line    int
	Field   string
	Message string
	Cause   error
}

func (e *LineItemError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("line %d %s: %s (%v)", e.Line, e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("line %d %s: %s", e.Line, e.Field, e.Message)
}

func (e *LineItemError) Unwrap() error {
	return e.Cause
}

// NewLineItemError creates a new line item error
func NewLineItemError(line int, field, message string, cause error) *LineItemError {
	return &LineItemError{
		Line:    line,
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}

// ContainerParseError represents a PDF container that could not be parsed.
type ContainerParseError struct {
	Message string
	Cause   error
}

func (e *ContainerParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("container parse failed: %s (%v)", e.Message, e.Cause)
	}
	return fmt.Sprintf("container parse failed: %s", e.Message)
}

func (e *ContainerParseError) Unwrap() error {
	return e.Cause
}

// NewContainerParseError creates a new container parse error
func NewContainerParseError(message string, cause error) *ContainerParseError {
	return &ContainerParseError{
		Message: message,
		Cause:   cause,
	}
}

// EmbedError represents any failure while attaching the payload, stamping
// metadata or writing the container back out. Embedding is atomic: callers
// get either a fully compliant container or an EmbedError, never a
// partially modified container.
type EmbedError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *EmbedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding failed [%s]: %s (%v)", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("embedding failed [%s]: %s", e.Stage, e.Message)
}

func (e *EmbedError) Unwrap() error {
	return e.Cause
}

// NewEmbedError creates a new embed error
func NewEmbedError(stage, message string, cause error) *EmbedError {
	return &EmbedError{
		Stage:   stage,
		Message: message,
		Cause:   cause,
	}
}
