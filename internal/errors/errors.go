// Package errors provides custom error types for pawsitive.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrEmptyInput      = errors.New("input is empty")
	ErrUnknownCategory = errors.New("unknown tip category")
	ErrNoReply         = errors.New("no companion reply yet")
	ErrInvalidData     = errors.New("invalid data format")
)

// ParseError represents a failure to parse a data file (tip catalog, progress snapshot)
type ParseError struct {
	Message string
	Path    string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse error: %s", e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Is allows comparison with sentinel errors
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidData {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}

// ValidationError represents a value that parsed but is out of range
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is allows comparison with sentinel errors
func (e *ValidationError) Is(target error) bool {
	if target == ErrInvalidData {
		return true
	}
	_, ok := target.(*ValidationError)
	return ok
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// CategoryError reports a tip category that is not in the catalog
type CategoryError struct {
	Category string
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("unknown tip category %q", e.Category)
}

// Unwrap returns the matching sentinel
func (e *CategoryError) Unwrap() error {
	return ErrUnknownCategory
}

// NewCategoryError creates a new CategoryError
func NewCategoryError(category string) *CategoryError {
	return &CategoryError{Category: category}
}

// IsParseError reports whether err is (or wraps) a ParseError
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsValidationError reports whether err is (or wraps) a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// GetPath returns the file path attached to a ParseError, if any
func GetPath(err error) string {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Path
	}
	return ""
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}
