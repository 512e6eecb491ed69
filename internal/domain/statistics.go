package domain

// UnattestedSentinel is how an unattested surprisal is written in output tables.
const UnattestedSentinel = -1.0

// FrequencyRow counts every vocabulary configuration in one slot.
type FrequencyRow struct {
	Slot   Slot
	Counts map[string]int
	// Contributors is the number of syllables that supplied a segment to
	// this slot, including segments outside the vocabulary.
	Contributors int
}

// Count returns the count for c (0 when c is not a column of the row).
func (r FrequencyRow) Count(c string) int { return r.Counts[c] }

// Total sums all counts in the row.
func (r FrequencyRow) Total() int {
	total := 0
	for _, c := range r.Counts {
		total += c
	}
	return total
}

// FrequencyTable is the ordered row sequence built by the tabulator.
type FrequencyTable struct {
	Vocabulary Vocabulary
	Rows       []FrequencyRow
}

// Row returns the row for slot s.
func (t FrequencyTable) Row(s Slot) (FrequencyRow, bool) {
	for _, r := range t.Rows {
		if r.Slot == s {
			return r, true
		}
	}
	return FrequencyRow{}, false
}

// Surprisal is the information content of a configuration in a slot, in bits.
// A configuration never seen in its slot is Unattested and has no value.
type Surprisal struct {
	bits    float64
	defined bool
}

// Defined returns a surprisal of bits.
func Defined(bits float64) Surprisal { return Surprisal{bits: bits, defined: true} }

// Unattested returns the undefined surprisal.
func Unattested() Surprisal { return Surprisal{} }

// Bits returns the value and whether it is defined.
func (s Surprisal) Bits() (float64, bool) { return s.bits, s.defined }

// IsDefined reports whether the configuration was attested.
func (s Surprisal) IsDefined() bool { return s.defined }

// OrSentinel returns the value, or UnattestedSentinel. Only output code should call it.
func (s Surprisal) OrSentinel() float64 {
	if !s.defined {
		return UnattestedSentinel
	}
	return s.bits
}

// SurprisalRow holds the surprisal of every vocabulary configuration in one slot.
type SurprisalRow struct {
	Slot   Slot
	Values map[string]Surprisal
}

// Lookup returns the surprisal of c and whether c is a column of the row.
func (r SurprisalRow) Lookup(c string) (Surprisal, bool) {
	s, ok := r.Values[c]
	return s, ok
}

// SurprisalTable is the ordered set of surprisal rows, indexed by slot.
type SurprisalTable struct {
	Vocabulary Vocabulary
	Rows       []SurprisalRow
	index      map[Slot]int
}

// NewSurprisalTable indexes rows by slot.
func NewSurprisalTable(vocab Vocabulary, rows []SurprisalRow) SurprisalTable {
	index := make(map[Slot]int, len(rows))
	for i, r := range rows {
		index[r.Slot] = i
	}
	return SurprisalTable{Vocabulary: vocab, Rows: rows, index: index}
}

// Row returns the row for slot s.
func (t SurprisalTable) Row(s Slot) (SurprisalRow, bool) {
	i, ok := t.index[s]
	if !ok {
		return SurprisalRow{}, false
	}
	return t.Rows[i], true
}

// EntropyRow is the Shannon entropy of one slot's distribution, in bits.
type EntropyRow struct {
	Slot Slot
	Bits float64
}

// LexicalScore is the mean surprisal of one lexicon entry.
type LexicalScore struct {
	Lexeme        string
	MeanSurprisal float64
}

// Analysis bundles everything computed from one lexicon.
type Analysis struct {
	Vocabulary  Vocabulary
	Frequencies FrequencyTable
	Entropies   []EntropyRow
	Surprisals  SurprisalTable
	Scores      []LexicalScore
}
