package phonotactics

import (
	"fmt"

	"github.com/kroot-kaytetye/kroot-anonymous/internal/domain"
)

// span is a half-open rune range.
type span struct {
	start, end int
}

// Extract collects every onset, coda and nucleus configuration occurring in
// lex. Each syllable must contain exactly one maximal run of vowel
// characters: more than one run is ErrAmbiguousSyllable, none is
// ErrMalformedSyllable. The result is sorted.
func (a *Analyzer) Extract(lex domain.Lexicon) (domain.Vocabulary, error) {
	var configs []string
	for _, w := range lex {
		for i, syl := range w.Syllables {
			runes := []rune(syl)
			runs := a.vowelRuns(runes)

			switch {
			case len(runs) == 0:
				return domain.Vocabulary{}, fmt.Errorf("word %q syllable %d: %w", w.Text, i, &domain.SyllableError{
					Kind:     domain.ErrMalformedSyllable,
					Syllable: syl,
				})
			case len(runs) > 1:
				return domain.Vocabulary{}, fmt.Errorf("word %q syllable %d: %w", w.Text, i, &domain.SyllableError{
					Kind:     domain.ErrAmbiguousSyllable,
					Syllable: syl,
					Vowels:   len(runs),
				})
			}

			run := runs[0]
			configs = append(configs,
				orEmpty(string(runes[:run.start])),
				orEmpty(string(runes[run.end:])),
				string(runes[run.start:run.end]),
			)
		}
	}
	return domain.NewVocabulary(configs...).Sorted(), nil
}

// vowelRuns returns the maximal runs of consecutive vowel characters.
func (a *Analyzer) vowelRuns(runes []rune) []span {
	var runs []span
	start := -1
	for i, r := range runes {
		switch {
		case a.vowels.Contains(r) && start < 0:
			start = i
		case !a.vowels.Contains(r) && start >= 0:
			runs = append(runs, span{start: start, end: i})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, span{start: start, end: len(runes)})
	}
	return runs
}
