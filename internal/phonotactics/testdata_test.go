package phonotactics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kroot-kaytetye/kroot-anonymous/internal/domain"
)

// sampleWords is a small Kaytetye sample covering short and long nuclei,
// complex onsets and words of one to three syllables.
var sampleWords = []string{
	"ɐ.ɰə",
	"ɐ.ṯə.ɾə",
	"ɐ.ṯim.pə",
	"ə.ḻə",
	"ku.nə",
	"pɐɾ.cə",
	"ɐ.ʈwi:",
}

// sampleConfigs is a hand-written vocabulary for sampleWords. "p" appears
// twice on purpose.
var sampleConfigs = []string{
	"0", "ɐ", "ɰ", "ə", "ṯ", "i", "ɾ", "m", "p", "ḻ", "k", "u", "n", "p", "c", "ʈw", "i:",
}

const epsilon = 1e-12

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	vc, err := NewVowelClass(DefaultVowels)
	require.NoError(t, err)
	return New(vc)
}

func sampleLexicon(t *testing.T) domain.Lexicon {
	t.Helper()
	lex, err := domain.ParseLexicon(sampleWords, domain.DefaultSyllableDelimiter)
	require.NoError(t, err)
	return lex
}

func sampleVocabulary() domain.Vocabulary {
	return domain.NewVocabulary(sampleConfigs...)
}

// bits is the surprisal of probability p.
func bits(p float64) float64 { return -math.Log2(p) }

// shannon is the entropy of the distribution ps.
func shannon(ps ...float64) float64 {
	var h float64
	for _, p := range ps {
		h += p * bits(p)
	}
	return h
}
