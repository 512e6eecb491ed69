package phonotactics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kroot-kaytetye/kroot-anonymous/internal/domain"
)

func mean(ps ...float64) float64 {
	var sum float64
	for _, p := range ps {
		sum += bits(p)
	}
	return sum / float64(len(ps))
}

func TestScoreLexicon_Sample(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(t)
	lex := sampleLexicon(t)
	freq, err := a.Tabulate(lex, sampleVocabulary())
	require.NoError(t, err)

	scores, err := a.ScoreLexicon(lex, Surprisals(freq))
	require.NoError(t, err)
	require.Len(t, scores, len(lex))

	threeSyllables := mean(5.0/7, 5.0/7, 6.0/7, 2.0/7, 0.5, 0.5, 0.5, 6.0/7)
	want := []float64{
		mean(5.0/7, 5.0/7, 6.0/7, 1.0/7, 6.0/7),
		threeSyllables,
		threeSyllables,
		mean(5.0/7, 1.0/7, 6.0/7, 1.0/7, 6.0/7),
		mean(1.0/7, 1.0/7, 6.0/7, 1.0/7, 6.0/7),
		mean(1.0/7, 5.0/7, 1.0/7, 1.0/7, 6.0/7),
		mean(5.0/7, 5.0/7, 6.0/7, 1.0/7, 1.0/7),
	}
	for i, w := range want {
		assert.Equal(t, sampleWords[i], scores[i].Lexeme)
		assert.InDelta(t, w, scores[i].MeanSurprisal, epsilon, scores[i].Lexeme)
	}
}

func TestScore_SingleSyllable(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(t)
	lex, err := domain.ParseLexicon([]string{"pɐ", "ku"}, ".")
	require.NoError(t, err)
	vocab, err := a.Extract(lex)
	require.NoError(t, err)
	freq, err := a.Tabulate(lex, vocab)
	require.NoError(t, err)

	// Divisor is 3*1-1: onset and final nucleus, final coda adds 0 bits.
	got, err := a.Score(lex[0], Surprisals(freq))
	require.NoError(t, err)
	assert.InDelta(t, (bits(0.5)+bits(0.5))/2, got, epsilon)
}

func TestScore_Unresolved(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(t)
	lex := sampleLexicon(t)
	freq, err := a.Tabulate(lex, sampleVocabulary())
	require.NoError(t, err)
	sample := Surprisals(freq)
	empty := domain.NewSurprisalTable(sampleVocabulary(), nil)

	tests := []struct {
		name   string
		table  domain.SurprisalTable
		word   string
		slot   domain.Slot
		config string
	}{
		{name: "configuration outside vocabulary", table: sample, word: "ɐ.ŋə", slot: domain.IndexedSlot(1, domain.Onset), config: "ŋ"},
		{name: "unattested in slot", table: sample, word: "ɰɐ.ə", slot: domain.IndexedSlot(0, domain.Onset), config: "ɰ"},
		{name: "slot never filled", table: sample, word: "ɐ.ṯə.ɾə.ə", slot: domain.IndexedSlot(2, domain.Nucleus), config: "ə"},
		{name: "row missing", table: empty, word: "pɐ", slot: domain.IndexedSlot(0, domain.Onset), config: "p"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w, err := domain.ParseWord(tt.word, ".")
			require.NoError(t, err)

			_, err = a.Score(w, tt.table)
			require.ErrorIs(t, err, domain.ErrUnresolvedConfiguration)

			var unresolved *domain.UnresolvedError
			require.True(t, errors.As(err, &unresolved))
			assert.Equal(t, tt.slot, unresolved.Slot)
			assert.Equal(t, tt.config, unresolved.Configuration)
			assert.Equal(t, tt.word, unresolved.Word)
		})
	}
}

func TestScore_Malformed(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(t)
	freq, err := a.Tabulate(sampleLexicon(t), sampleVocabulary())
	require.NoError(t, err)

	w, err := domain.ParseWord("ɐ.ptk", ".")
	require.NoError(t, err)
	_, err = a.Score(w, Surprisals(freq))
	assert.ErrorIs(t, err, domain.ErrMalformedSyllable)
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(t)
	lex := sampleLexicon(t)
	vocab, err := a.Extract(lex)
	require.NoError(t, err)

	got, err := a.Analyze(lex, vocab)
	require.NoError(t, err)

	assert.Len(t, got.Frequencies.Rows, 11)
	assert.Len(t, got.Entropies, 11)
	assert.Len(t, got.Surprisals.Rows, 11)
	assert.Len(t, got.Scores, len(lex))
	assert.Equal(t, vocab.Items(), got.Vocabulary.Items())
	for _, s := range got.Scores {
		assert.GreaterOrEqual(t, s.MeanSurprisal, 0.0)
	}
}

func TestAnalyze_AllOrNothing(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(t)
	lex := sampleLexicon(t)
	vocab := domain.NewVocabulary("0", "ɐ", "ə")

	got, err := a.Analyze(lex, vocab)
	require.ErrorIs(t, err, domain.ErrUnresolvedConfiguration)
	assert.Empty(t, got.Scores)
	assert.Empty(t, got.Frequencies.Rows)
}

func TestAnalyze_SingleWord(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(t)
	lex, err := domain.ParseLexicon([]string{"ɐ.ʈwi:"}, domain.DefaultSyllableDelimiter)
	require.NoError(t, err)
	vocab, err := a.Extract(lex)
	require.NoError(t, err)

	got, err := a.Analyze(lex, vocab)
	require.NoError(t, err)

	require.NotEmpty(t, got.Entropies)
	for _, e := range got.Entropies {
		assert.InDelta(t, 0, e.Bits, epsilon, e.Slot.Label())
	}
	require.Len(t, got.Scores, 1)
	assert.Equal(t, "ɐ.ʈwi:", got.Scores[0].Lexeme)
	assert.InDelta(t, 0, got.Scores[0].MeanSurprisal, epsilon)
}

func TestAnalyze_EmptyVocabularyUnresolved(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(t)
	_, err := a.Analyze(sampleLexicon(t), domain.NewVocabulary())

	var ue *domain.UnresolvedError
	require.ErrorAs(t, err, &ue)
	assert.ErrorIs(t, err, domain.ErrUnresolvedConfiguration)
}
