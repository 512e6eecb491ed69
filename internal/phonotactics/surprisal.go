package phonotactics

import (
	"math"

	"github.com/kroot-kaytetye/kroot-anonymous/internal/domain"
)

// SurprisalRowOf returns -log2(count/total) for every configuration of the
// row. Configurations with a zero count, and all configurations of an empty
// row, are Unattested.
func SurprisalRowOf(row domain.FrequencyRow) domain.SurprisalRow {
	total := row.Total()
	values := make(map[string]domain.Surprisal, len(row.Counts))
	for c, n := range row.Counts {
		if total == 0 || n == 0 {
			values[c] = domain.Unattested()
			continue
		}
		bits := -math.Log2(float64(n) / float64(total))
		if bits == 0 {
			bits = 0 // drop the sign of -0
		}
		values[c] = domain.Defined(bits)
	}
	return domain.SurprisalRow{Slot: row.Slot, Values: values}
}

// Surprisals converts every frequency row, keeping row order.
func Surprisals(table domain.FrequencyTable) domain.SurprisalTable {
	rows := make([]domain.SurprisalRow, len(table.Rows))
	for i, r := range table.Rows {
		rows[i] = SurprisalRowOf(r)
	}
	return domain.NewSurprisalTable(table.Vocabulary, rows)
}
