package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")

	// ErrMalformedSyllable: a syllable has no vowel, or more vowel characters
	// than a single (possibly long) nucleus allows.
	ErrMalformedSyllable = errors.New("malformed syllable")
	// ErrAmbiguousSyllable: configuration extraction found more than one vowel run.
	ErrAmbiguousSyllable = errors.New("ambiguous syllable")
	// ErrUnresolvedConfiguration: a scored segment is missing from the surprisal table.
	ErrUnresolvedConfiguration = errors.New("unresolved configuration")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// SyllableError reports a syllable the vowel predicates could not decompose.
// Kind is ErrMalformedSyllable or ErrAmbiguousSyllable.
type SyllableError struct {
	Kind     error
	Syllable string
	// Vowels is the number of vowel positions (splitter) or vowel runs (extractor) found.
	Vowels int
}

func (e *SyllableError) Error() string {
	return fmt.Sprintf("%s %q: %d vowel matches", e.Kind, e.Syllable, e.Vowels)
}

func (e *SyllableError) Unwrap() error { return e.Kind }

// UnresolvedError reports a segment of a scored word that has no usable
// surprisal in the slot it was looked up in.
type UnresolvedError struct {
	Word          string
	Slot          Slot
	Configuration string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("%s: word %q: %q in slot %s",
		ErrUnresolvedConfiguration, e.Word, e.Configuration, e.Slot.Label())
}

func (e *UnresolvedError) Unwrap() error { return ErrUnresolvedConfiguration }
