package orthography

import (
	"fmt"
	"regexp"
)

type compiledRule struct {
	re   *regexp.Regexp
	repl string
}

// Transcriber applies a RuleSet to words.
type Transcriber struct {
	phon []compiledRule
	syl  []compiledRule
}

// Transcription is the result for one word.
type Transcription struct {
	Word    string
	Phon    string
	PhonSyl string
}

// NewTranscriber compiles every rule of set. An invalid pattern fails with
// an error naming the rule's source line.
func NewTranscriber(set RuleSet) (*Transcriber, error) {
	phon, err := compileRules(set.Phon)
	if err != nil {
		return nil, err
	}
	syl, err := compileRules(set.Syl)
	if err != nil {
		return nil, err
	}
	return &Transcriber{phon: phon, syl: syl}, nil
}

func compileRules(rules []Rule) ([]compiledRule, error) {
	out := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %s: pattern %q: %w", r.Source, r.Pattern, err)
		}
		out = append(out, compiledRule{re: re, repl: convertReplacement(r.Replacement)})
	}
	return out, nil
}

// Transcribe applies the phon rules in order to word, then the syl rules
// in order to that phonemic form.
func (t *Transcriber) Transcribe(word string) (phon, phonSyl string) {
	phon = apply(t.phon, word)
	return phon, apply(t.syl, phon)
}

// TranscribeAll transcribes words in order.
func (t *Transcriber) TranscribeAll(words []string) []Transcription {
	out := make([]Transcription, len(words))
	for i, w := range words {
		phon, syl := t.Transcribe(w)
		out[i] = Transcription{Word: w, Phon: phon, PhonSyl: syl}
	}
	return out
}

func apply(rules []compiledRule, s string) string {
	for _, r := range rules {
		s = r.re.ReplaceAllString(s, r.repl)
	}
	return s
}
