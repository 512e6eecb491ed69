package phonotactics

import (
	"github.com/kroot-kaytetye/kroot-anonymous/internal/domain"
)

// Split decomposes a syllable into onset, nucleus and coda.
//
// The nucleus is located by individual vowel characters: one character is a
// short nucleus, two characters delimit a long one (first through second,
// inclusive). Any other count is ErrMalformedSyllable.
func (a *Analyzer) Split(syllable string) (domain.Segments, error) {
	runes := []rune(syllable)
	pos := a.vowelPositions(runes)

	var start, end int
	switch len(pos) {
	case 1:
		start, end = pos[0], pos[0]+1
	case 2:
		start, end = pos[0], pos[1]+1
	default:
		return domain.Segments{}, &domain.SyllableError{
			Kind:     domain.ErrMalformedSyllable,
			Syllable: syllable,
			Vowels:   len(pos),
		}
	}

	return domain.Segments{
		Onset:   orEmpty(string(runes[:start])),
		Nucleus: string(runes[start:end]),
		Coda:    orEmpty(string(runes[end:])),
	}, nil
}

// vowelPositions returns the rune index of every vowel character.
// Not to be confused with vowelRuns, which the extractor uses.
func (a *Analyzer) vowelPositions(runes []rune) []int {
	var pos []int
	for i, r := range runes {
		if a.vowels.Contains(r) {
			pos = append(pos, i)
		}
	}
	return pos
}
