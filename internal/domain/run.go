package domain

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisRun describes one stored statistics run.
type AnalysisRun struct {
	ID              uuid.UUID `db:"id"`
	Label           string    `db:"label"`
	LexiconChecksum string    `db:"lexicon_checksum"`
	VowelClass      string    `db:"vowel_class"`
	WordCount       int       `db:"word_count"`
	VocabularySize  int       `db:"vocabulary_size"`
	SlotCount       int       `db:"slot_count"`
	CreatedAt       time.Time `db:"created_at"`
}

// FrequencyCell is one (slot, configuration) count of a stored run.
type FrequencyCell struct {
	RunID         uuid.UUID
	SlotLabel     string
	SlotPosition  int
	Configuration string
	Count         int
}

// SurprisalCell is one (slot, configuration) surprisal of a stored run.
// Bits is nil when the configuration is unattested in the slot.
type SurprisalCell struct {
	RunID         uuid.UUID
	SlotLabel     string
	SlotPosition  int
	Configuration string
	Bits          *float64
}

// EntropyRecord is the entropy of one slot of a stored run.
type EntropyRecord struct {
	RunID        uuid.UUID `db:"run_id"`
	SlotLabel    string    `db:"slot_label"`
	SlotPosition int       `db:"slot_position"`
	Bits         float64   `db:"bits"`
}

// LexicalScoreRecord is the mean surprisal of one word of a stored run.
type LexicalScoreRecord struct {
	RunID         uuid.UUID `db:"run_id"`
	Position      int       `db:"position"`
	Lexeme        string    `db:"lexeme"`
	MeanSurprisal float64   `db:"mean_surprisal"`
}

// FrequencyCells flattens the frequency table for storage.
func (a Analysis) FrequencyCells(runID uuid.UUID) []FrequencyCell {
	items := a.Frequencies.Vocabulary.Items()
	cells := make([]FrequencyCell, 0, len(a.Frequencies.Rows)*len(items))
	for pos, row := range a.Frequencies.Rows {
		for _, c := range items {
			cells = append(cells, FrequencyCell{
				RunID:         runID,
				SlotLabel:     row.Slot.Label(),
				SlotPosition:  pos,
				Configuration: c,
				Count:         row.Count(c),
			})
		}
	}
	return cells
}

// SurprisalCells flattens the surprisal table for storage.
func (a Analysis) SurprisalCells(runID uuid.UUID) []SurprisalCell {
	items := a.Surprisals.Vocabulary.Items()
	cells := make([]SurprisalCell, 0, len(a.Surprisals.Rows)*len(items))
	for pos, row := range a.Surprisals.Rows {
		for _, c := range items {
			cell := SurprisalCell{
				RunID:         runID,
				SlotLabel:     row.Slot.Label(),
				SlotPosition:  pos,
				Configuration: c,
			}
			if bits, ok := row.Values[c].Bits(); ok {
				cell.Bits = &bits
			}
			cells = append(cells, cell)
		}
	}
	return cells
}

// EntropyRecords flattens the entropy rows for storage.
func (a Analysis) EntropyRecords(runID uuid.UUID) []EntropyRecord {
	out := make([]EntropyRecord, len(a.Entropies))
	for i, e := range a.Entropies {
		out[i] = EntropyRecord{
			RunID:        runID,
			SlotLabel:    e.Slot.Label(),
			SlotPosition: i,
			Bits:         e.Bits,
		}
	}
	return out
}

// ScoreRecords flattens the lexical scores for storage.
func (a Analysis) ScoreRecords(runID uuid.UUID) []LexicalScoreRecord {
	out := make([]LexicalScoreRecord, len(a.Scores))
	for i, s := range a.Scores {
		out[i] = LexicalScoreRecord{
			RunID:         runID,
			Position:      i,
			Lexeme:        s.Lexeme,
			MeanSurprisal: s.MeanSurprisal,
		}
	}
	return out
}
