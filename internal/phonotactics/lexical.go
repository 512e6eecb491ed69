package phonotactics

import (
	"fmt"

	"github.com/kroot-kaytetye/kroot-anonymous/internal/domain"
)

var positionKinds = [...]domain.PositionKind{domain.Onset, domain.Nucleus, domain.Coda}

// Score returns the mean surprisal of w: the sum of the surprisals of each
// syllable's onset, nucleus and coda divided by 3n-1, where n is the number
// of syllables. The last syllable's nucleus and coda are looked up in the
// final rows; its coda is summed like any other position and the divisor
// discounts it.
func (a *Analyzer) Score(w domain.Word, table domain.SurprisalTable) (float64, error) {
	n := w.Len()
	if n == 0 {
		return 0, domain.NewValidationError("word", "has no syllables")
	}

	var sum float64
	for i, syl := range w.Syllables {
		seg, err := a.Split(syl)
		if err != nil {
			return 0, fmt.Errorf("word %q syllable %d: %w", w.Text, i, err)
		}

		slots := [3]domain.Slot{
			domain.IndexedSlot(i, domain.Onset),
			domain.IndexedSlot(i, domain.Nucleus),
			domain.IndexedSlot(i, domain.Coda),
		}
		if i == w.Last() {
			slots[1] = domain.FinalNucleusSlot()
			slots[2] = domain.FinalCodaSlot()
		}

		for k, slot := range slots {
			bits, err := resolve(table, slot, seg.At(positionKinds[k]), w.Text)
			if err != nil {
				return 0, err
			}
			sum += bits
		}
	}

	return sum / float64(3*n-1), nil
}

// ScoreLexicon scores every word, in lexicon order.
func (a *Analyzer) ScoreLexicon(lex domain.Lexicon, table domain.SurprisalTable) ([]domain.LexicalScore, error) {
	scores := make([]domain.LexicalScore, 0, len(lex))
	for _, w := range lex {
		mean, err := a.Score(w, table)
		if err != nil {
			return nil, err
		}
		scores = append(scores, domain.LexicalScore{Lexeme: w.Text, MeanSurprisal: mean})
	}
	return scores, nil
}

// resolve looks up the surprisal of config in slot. A missing row, a missing
// column or an unattested value all mean the word cannot be scored against
// this table.
func resolve(table domain.SurprisalTable, slot domain.Slot, config, word string) (float64, error) {
	unresolved := &domain.UnresolvedError{Word: word, Slot: slot, Configuration: config}

	row, ok := table.Row(slot)
	if !ok {
		return 0, unresolved
	}
	s, ok := row.Lookup(config)
	if !ok {
		return 0, unresolved
	}
	bits, ok := s.Bits()
	if !ok {
		return 0, unresolved
	}
	return bits, nil
}
