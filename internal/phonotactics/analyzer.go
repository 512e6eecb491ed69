// Package phonotactics decomposes syllabified words into onset, nucleus and
// coda and derives positional frequency, entropy and surprisal statistics.
// Pure functions over in-memory values: no I/O, no shared state.
package phonotactics

import (
	"fmt"
	"strings"

	"github.com/kroot-kaytetye/kroot-anonymous/internal/domain"
)

// DefaultVowels is the vowel class of the Kaytetye phoneme inventory.
// The length mark ':' is part of the class so "i:" forms one nucleus.
const DefaultVowels = "ɐəiu:"

// VowelClass is the set of characters that can make up a nucleus.
type VowelClass struct {
	chars string
	set   map[rune]struct{}
}

// NewVowelClass builds a class from every rune in chars.
func NewVowelClass(chars string) (VowelClass, error) {
	if strings.TrimSpace(chars) == "" {
		return VowelClass{}, domain.NewValidationError("vowels", "vowel class must not be empty")
	}
	set := make(map[rune]struct{}, len(chars))
	for _, r := range chars {
		set[r] = struct{}{}
	}
	return VowelClass{chars: chars, set: set}, nil
}

// Contains reports whether r is a vowel character.
func (v VowelClass) Contains(r rune) bool {
	_, ok := v.set[r]
	return ok
}

// String returns the characters the class was built from.
func (v VowelClass) String() string { return v.chars }

// Analyzer runs the statistics stages for one vowel class.
type Analyzer struct {
	vowels VowelClass
}

// New creates an Analyzer.
func New(vowels VowelClass) *Analyzer {
	return &Analyzer{vowels: vowels}
}

// Vowels returns the analyzer's vowel class.
func (a *Analyzer) Vowels() VowelClass { return a.vowels }

// Analyze tabulates lex over vocab and derives entropies, surprisals and
// per-word scores. Either every stage succeeds or no Analysis is returned.
func (a *Analyzer) Analyze(lex domain.Lexicon, vocab domain.Vocabulary) (domain.Analysis, error) {
	freq, err := a.Tabulate(lex, vocab)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("tabulate: %w", err)
	}

	surprisals := Surprisals(freq)

	scores, err := a.ScoreLexicon(lex, surprisals)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("score lexicon: %w", err)
	}

	return domain.Analysis{
		Vocabulary:  vocab,
		Frequencies: freq,
		Entropies:   Entropies(freq),
		Surprisals:  surprisals,
		Scores:      scores,
	}, nil
}

func orEmpty(s string) string {
	if s == "" {
		return domain.EmptySegment
	}
	return s
}
