package phonotactics

import (
	"maps"
	"math"
	"slices"

	"github.com/kroot-kaytetye/kroot-anonymous/internal/domain"
)

// Entropy returns the Shannon entropy, in bits, of the row's distribution.
// An empty row has entropy 0.
func Entropy(row domain.FrequencyRow) float64 {
	total := row.Total()
	if total == 0 {
		return 0
	}

	var h float64
	// Fixed summation order keeps results reproducible across runs.
	for _, c := range slices.Sorted(maps.Keys(row.Counts)) {
		n := row.Counts[c]
		if n == 0 {
			continue
		}
		p := float64(n) / float64(total)
		h += p * -math.Log2(p)
	}
	return h
}

// Entropies computes Entropy for every row, in table order.
func Entropies(table domain.FrequencyTable) []domain.EntropyRow {
	out := make([]domain.EntropyRow, len(table.Rows))
	for i, r := range table.Rows {
		out[i] = domain.EntropyRow{Slot: r.Slot, Bits: Entropy(r)}
	}
	return out
}
