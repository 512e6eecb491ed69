package domain

import (
	"fmt"
	"slices"
	"strings"
)

// EmptySegment is the configuration token for an empty onset or coda.
const EmptySegment = "0"

// DefaultSyllableDelimiter separates syllables in lexicon entries.
const DefaultSyllableDelimiter = "."

// Word is a lexicon entry split into its syllables.
type Word struct {
	Text      string
	Syllables []string
}

// ParseWord splits text on delim. An empty text is rejected; every other
// text yields at least one syllable.
func ParseWord(text, delim string) (Word, error) {
	if text == "" {
		return Word{}, NewValidationError("word", "must not be empty")
	}
	if delim == "" {
		return Word{}, NewValidationError("delimiter", "must not be empty")
	}
	return Word{Text: text, Syllables: strings.Split(text, delim)}, nil
}

// Len returns the number of syllables.
func (w Word) Len() int { return len(w.Syllables) }

// Last returns the index of the final syllable.
func (w Word) Last() int { return len(w.Syllables) - 1 }

// Lexicon is an ordered word list.
type Lexicon []Word

// ParseLexicon parses every line with ParseWord.
func ParseLexicon(lines []string, delim string) (Lexicon, error) {
	lex := make(Lexicon, 0, len(lines))
	for i, line := range lines {
		w, err := ParseWord(line, delim)
		if err != nil {
			return nil, fmt.Errorf("lexicon entry %d: %w", i+1, err)
		}
		lex = append(lex, w)
	}
	return lex, nil
}

// MaxSyllables returns the syllable count of the longest word.
func (l Lexicon) MaxSyllables() int {
	longest := 0
	for _, w := range l {
		longest = max(longest, w.Len())
	}
	return longest
}

// Texts returns the original entries in order.
func (l Lexicon) Texts() []string {
	out := make([]string, len(l))
	for i, w := range l {
		out[i] = w.Text
	}
	return out
}

// Vocabulary is the closed set of segmental configurations. It remembers
// insertion order so tables have stable columns.
type Vocabulary struct {
	items []string
	index map[string]struct{}
}

// NewVocabulary builds a vocabulary from configs, dropping duplicates
// and keeping the first occurrence's position.
func NewVocabulary(configs ...string) Vocabulary {
	v := Vocabulary{
		items: make([]string, 0, len(configs)),
		index: make(map[string]struct{}, len(configs)),
	}
	for _, c := range configs {
		if _, ok := v.index[c]; ok {
			continue
		}
		v.index[c] = struct{}{}
		v.items = append(v.items, c)
	}
	return v
}

// Items returns the configurations in vocabulary order.
func (v Vocabulary) Items() []string {
	return slices.Clone(v.items)
}

// Contains reports whether c is part of the vocabulary.
func (v Vocabulary) Contains(c string) bool {
	_, ok := v.index[c]
	return ok
}

// Len returns the number of configurations.
func (v Vocabulary) Len() int { return len(v.items) }

// Sorted returns a copy ordered lexicographically.
func (v Vocabulary) Sorted() Vocabulary {
	items := v.Items()
	slices.Sort(items)
	return NewVocabulary(items...)
}
