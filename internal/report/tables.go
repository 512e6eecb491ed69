// Package report renders an Analysis as CSV tables and a YAML manifest.
package report

import (
	"strconv"

	"github.com/kroot-kaytetye/kroot-anonymous/internal/domain"
)

// Output file names.
const (
	FrequenciesFile  = "phonotactic_fqs.csv"
	EntropiesFile    = "phonological_entropy.csv"
	SurprisalsFile   = "positional_surprisals.csv"
	LexicalFile      = "lexical_surprisals.csv"
	ConfigsFile      = "phon_configs.txt"
	ManifestFile     = "manifest.yaml"
	slotLabelColumn  = "syllable"
	entropySlotLabel = "syl"
)

// FrequencyRecords renders the frequency table, one row per slot and one
// column per vocabulary configuration.
func FrequencyRecords(t domain.FrequencyTable) [][]string {
	items := t.Vocabulary.Items()
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, append([]string{slotLabelColumn}, items...))
	for _, r := range t.Rows {
		rec := make([]string, 0, len(items)+1)
		rec = append(rec, r.Slot.Label())
		for _, c := range items {
			rec = append(rec, strconv.Itoa(r.Count(c)))
		}
		records = append(records, rec)
	}
	return records
}

// EntropyRecords renders one row per slot.
func EntropyRecords(rows []domain.EntropyRow) [][]string {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, []string{entropySlotLabel, "entropy"})
	for _, r := range rows {
		records = append(records, []string{r.Slot.Label(), FormatFloat(r.Bits)})
	}
	return records
}

// SurprisalRecords renders the surprisal table in the shape of the
// frequency table. Unattested cells hold the sentinel.
func SurprisalRecords(t domain.SurprisalTable) [][]string {
	items := t.Vocabulary.Items()
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, append([]string{slotLabelColumn}, items...))
	for _, r := range t.Rows {
		rec := make([]string, 0, len(items)+1)
		rec = append(rec, r.Slot.Label())
		for _, c := range items {
			s, _ := r.Lookup(c)
			rec = append(rec, FormatFloat(s.OrSentinel()))
		}
		records = append(records, rec)
	}
	return records
}

// LexicalRecords renders one row per scored word, in lexicon order.
func LexicalRecords(scores []domain.LexicalScore) [][]string {
	records := make([][]string, 0, len(scores)+1)
	records = append(records, []string{"lexeme", "mean_surprisal"})
	for _, s := range scores {
		records = append(records, []string{s.Lexeme, FormatFloat(s.MeanSurprisal)})
	}
	return records
}

// FormatFloat writes the shortest decimal that parses back to f.
func FormatFloat(f float64) string {
	if f == 0 {
		f = 0 // no "-0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
