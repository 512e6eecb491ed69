package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("vowels", "required")

	if got := err.Error(); got != "validation: vowels: required" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "vowels", Message: "required"},
		{Field: "store.dsn", Message: "required when store is enabled"},
	})

	if got := err.Error(); got != "validation: 2 errors" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
	if len(err.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Errors))
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrValidation,
		ErrMalformedSyllable, ErrAmbiguousSyllable, ErrUnresolvedConfiguration,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}

func TestSyllableError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("word %q: %w", "ɐ.ptk", &SyllableError{
		Kind:     ErrMalformedSyllable,
		Syllable: "ptk",
	})

	if !errors.Is(err, ErrMalformedSyllable) {
		t.Fatal("errors.Is(err, ErrMalformedSyllable) = false")
	}
	if errors.Is(err, ErrAmbiguousSyllable) {
		t.Fatal("malformed syllable must not match ErrAmbiguousSyllable")
	}

	var synErr *SyllableError
	if !errors.As(err, &synErr) {
		t.Fatal("errors.As(*SyllableError) = false")
	}
	if want := `malformed syllable "ptk": 0 vowel matches`; synErr.Error() != want {
		t.Errorf("Error() = %q, want %q", synErr.Error(), want)
	}
}

func TestUnresolvedError(t *testing.T) {
	t.Parallel()

	err := &UnresolvedError{Word: "ɐ.ŋə", Slot: IndexedSlot(1, Onset), Configuration: "ŋ"}

	if !errors.Is(err, ErrUnresolvedConfiguration) {
		t.Fatal("errors.Is(err, ErrUnresolvedConfiguration) = false")
	}
	want := `unresolved configuration: word "ɐ.ŋə": "ŋ" in slot 1_onset`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
