package phonotactics

import (
	"fmt"

	"github.com/kroot-kaytetye/kroot-anonymous/internal/domain"
)

// Tabulate counts how often each vocabulary configuration fills each slot.
//
// For every syllable index i it emits i_onset, i_nucleus and i_coda. A word's
// last syllable contributes only its onset to the indexed rows; its nucleus
// and coda go to final_nucleus and final_coda, which close the table.
func (a *Analyzer) Tabulate(lex domain.Lexicon, vocab domain.Vocabulary) (domain.FrequencyTable, error) {
	for i, w := range lex {
		if w.Len() == 0 {
			return domain.FrequencyTable{}, fmt.Errorf("lexicon entry %d: %w", i+1,
				domain.NewValidationError("word", "has no syllables"))
		}
	}

	maxSyl := lex.MaxSyllables()
	rows := make([]domain.FrequencyRow, 0, maxSyl*3+2)

	for i := range maxSyl {
		var onsets, nuclei, codas []string
		for _, w := range lex {
			if w.Len() <= i {
				continue
			}
			seg, err := a.Split(w.Syllables[i])
			if err != nil {
				return domain.FrequencyTable{}, fmt.Errorf("word %q syllable %d: %w", w.Text, i, err)
			}
			onsets = append(onsets, seg.Onset)
			if i == w.Last() {
				continue
			}
			nuclei = append(nuclei, seg.Nucleus)
			codas = append(codas, seg.Coda)
		}

		rows = append(rows,
			countRow(domain.IndexedSlot(i, domain.Onset), onsets, vocab),
			countRow(domain.IndexedSlot(i, domain.Nucleus), nuclei, vocab),
			countRow(domain.IndexedSlot(i, domain.Coda), codas, vocab),
		)
	}

	finalNuclei := make([]string, 0, len(lex))
	finalCodas := make([]string, 0, len(lex))
	for _, w := range lex {
		seg, err := a.Split(w.Syllables[w.Last()])
		if err != nil {
			return domain.FrequencyTable{}, fmt.Errorf("word %q final syllable: %w", w.Text, err)
		}
		finalNuclei = append(finalNuclei, seg.Nucleus)
		finalCodas = append(finalCodas, seg.Coda)
	}
	rows = append(rows,
		countRow(domain.FinalNucleusSlot(), finalNuclei, vocab),
		countRow(domain.FinalCodaSlot(), finalCodas, vocab),
	)

	return domain.FrequencyTable{Vocabulary: vocab, Rows: rows}, nil
}

// countRow counts segments per vocabulary configuration, zero-filled.
// Segments outside the vocabulary only raise Contributors.
func countRow(slot domain.Slot, segments []string, vocab domain.Vocabulary) domain.FrequencyRow {
	counts := make(map[string]int, vocab.Len())
	for _, c := range vocab.Items() {
		counts[c] = 0
	}
	for _, s := range segments {
		if vocab.Contains(s) {
			counts[s]++
		}
	}
	return domain.FrequencyRow{
		Slot:         slot,
		Counts:       counts,
		Contributors: len(segments),
	}
}

// UncoveredSlots returns the slots in which some contributing segment was
// not part of the vocabulary.
func UncoveredSlots(table domain.FrequencyTable) []domain.Slot {
	var out []domain.Slot
	for _, r := range table.Rows {
		if r.Total() < r.Contributors {
			out = append(out, r.Slot)
		}
	}
	return out
}
