package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/kroot-kaytetye/kroot-anonymous/internal/domain"
	"github.com/kroot-kaytetye/kroot-anonymous/internal/phonotactics"
	"github.com/kroot-kaytetye/kroot-anonymous/internal/report"
)

var sampleWords = []string{"ɐ.ɰə", "ɐ.ṯə.ɾə", "ɐ.ṯim.pə", "ə.ḻə", "ku.nə", "pɐɾ.cə", "ɐ.ʈwi:"}

// mockStore records calls to verify pipeline behavior.
type mockStore struct {
	mu sync.Mutex

	run      *domain.AnalysisRun
	rows     map[string]int
	batches  map[string]int
	scoreErr error
	callLog  []string
}

func newMockStore() *mockStore {
	return &mockStore{rows: make(map[string]int), batches: make(map[string]int)}
}

func (m *mockStore) logCall(name string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callLog = append(m.callLog, name)
	m.rows[name] += n
	m.batches[name]++
}

func (m *mockStore) CreateRun(_ context.Context, run *domain.AnalysisRun) error {
	m.logCall("CreateRun", 1)
	m.run = run
	return nil
}

func (m *mockStore) BulkInsertFrequencies(_ context.Context, cells []domain.FrequencyCell) (int, error) {
	m.logCall("BulkInsertFrequencies", len(cells))
	return len(cells), nil
}

func (m *mockStore) BulkInsertEntropies(_ context.Context, rows []domain.EntropyRecord) (int, error) {
	m.logCall("BulkInsertEntropies", len(rows))
	return len(rows), nil
}

func (m *mockStore) BulkInsertSurprisals(_ context.Context, cells []domain.SurprisalCell) (int, error) {
	m.logCall("BulkInsertSurprisals", len(cells))
	return len(cells), nil
}

func (m *mockStore) BulkInsertScores(_ context.Context, scores []domain.LexicalScoreRecord) (int, error) {
	m.logCall("BulkInsertScores", len(scores))
	if m.scoreErr != nil {
		return 0, m.scoreErr
	}
	return len(scores), nil
}

// mockTx runs fn directly and remembers whether it committed.
type mockTx struct {
	calls     int
	committed bool
}

func (m *mockTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	m.committed = true
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAnalyzer(t *testing.T) *phonotactics.Analyzer {
	t.Helper()
	vc, err := phonotactics.NewVowelClass("ɐəiu:")
	require.NoError(t, err)
	return phonotactics.New(vc)
}

func writeFile(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func testConfig() Config {
	return Config{Delimiter: ".", Manifest: true, BatchSize: 500}
}

func TestPipeline_Run_ExtractedVocabulary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	lexPath := writeFile(t, dir, "lexicon.txt", sampleWords...)

	p := NewPipeline(testLogger(), testAnalyzer(t), nil, nil, testConfig())
	res, err := p.Run(context.Background(), Input{Lexicon: []string{lexPath}})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, res.RunID)
	assert.Equal(t, dir, res.OutputDir)
	assert.Len(t, res.Analysis.Scores, len(sampleWords))
	assert.Empty(t, res.Uncovered)
	assert.ElementsMatch(t, []string{
		report.FrequenciesFile, report.EntropiesFile, report.SurprisalsFile, report.LexicalFile,
		report.ConfigsFile, report.ManifestFile,
	}, res.Files)
	for _, f := range res.Files {
		assert.FileExists(t, filepath.Join(dir, f))
	}

	for _, ph := range []string{PhaseLoad, PhaseAnalyze, PhaseExport, PhaseStore, PhasePublish} {
		r, ok := res.Phases[ph]
		require.True(t, ok, ph)
		assert.NoError(t, r.Err, ph)
	}
	assert.Equal(t, len(sampleWords), res.Phases[PhaseLoad].Rows)
	assert.Equal(t, 1, res.Phases[PhaseStore].Skipped)
	assert.Equal(t, 6, res.Phases[PhasePublish].Rows)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 7, "lexicon plus six outputs, no staging directory")

	data, err := os.ReadFile(filepath.Join(dir, report.ManifestFile))
	require.NoError(t, err)
	var m report.Manifest
	require.NoError(t, yaml.Unmarshal(data, &m))
	assert.Equal(t, res.RunID.String(), m.RunID)
	assert.Equal(t, "extracted", m.VocabularySource)
	assert.Equal(t, len(sampleWords), m.Words)
	assert.Equal(t, 11, m.Slots)
	assert.Len(t, m.LexiconChecksum, 64)
}

func TestPipeline_Run_VocabularyFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	lexPath := writeFile(t, dir, "lexicon.txt", "pɐ", "ku")
	vocabPath := writeFile(t, dir, "configs.txt", "0", "k", "p", "u", "ɐ", "ŋ")
	out := filepath.Join(dir, "out")

	cfg := testConfig()
	cfg.OutputDir = out
	cfg.Manifest = false

	res, err := NewPipeline(testLogger(), testAnalyzer(t), nil, nil, cfg).
		Run(context.Background(), Input{Lexicon: []string{lexPath}, Vocabulary: vocabPath})
	require.NoError(t, err)

	assert.Equal(t, 6, res.Analysis.Vocabulary.Len())
	assert.Len(t, res.Files, 4)
	assert.NoFileExists(t, filepath.Join(out, report.ConfigsFile))
	assert.NoFileExists(t, filepath.Join(out, report.ManifestFile))
}

func TestPipeline_Run_UnscorableWord(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	lexPath := writeFile(t, dir, "lexicon.txt", "pɐ", "kɐ")
	vocabPath := writeFile(t, dir, "configs.txt", "0", "p", "ɐ")

	_, err := NewPipeline(testLogger(), testAnalyzer(t), nil, nil, testConfig()).
		Run(context.Background(), Input{Lexicon: []string{lexPath}, Vocabulary: vocabPath})

	// kɐ cannot be scored: its onset is not a column.
	require.ErrorIs(t, err, domain.ErrUnresolvedConfiguration)
	assert.NoFileExists(t, filepath.Join(dir, report.FrequenciesFile))
}

func TestPipeline_Run_MalformedWritesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	lexPath := writeFile(t, dir, "lexicon.txt", "pɐ", "ptk")
	store := newMockStore()

	cfg := testConfig()
	cfg.Store = true
	res, err := NewPipeline(testLogger(), testAnalyzer(t), store, &mockTx{}, cfg).
		Run(context.Background(), Input{Lexicon: []string{lexPath}})

	require.ErrorIs(t, err, domain.ErrMalformedSyllable)
	assert.Contains(t, err.Error(), PhaseLoad)
	assert.Empty(t, res.Files)
	assert.Empty(t, store.callLog)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only the lexicon should remain")
}

func TestPipeline_Run_Store(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	lexPath := writeFile(t, dir, "lexicon.txt", sampleWords...)
	store := newMockStore()
	tx := &mockTx{}

	cfg := testConfig()
	cfg.Store = true
	cfg.BatchSize = 50
	cfg.Label = "kaytetye"

	res, err := NewPipeline(testLogger(), testAnalyzer(t), store, tx, cfg).
		Run(context.Background(), Input{Lexicon: []string{lexPath}})
	require.NoError(t, err)

	assert.Equal(t, 1, tx.calls)
	assert.True(t, tx.committed)
	require.NotNil(t, store.run)
	assert.Equal(t, res.RunID, store.run.ID)
	assert.Equal(t, "kaytetye", store.run.Label)
	assert.Equal(t, len(sampleWords), store.run.WordCount)
	assert.Equal(t, 11, store.run.SlotCount)

	cells := len(res.Analysis.Frequencies.Rows) * res.Analysis.Vocabulary.Len()
	assert.Equal(t, cells, store.rows["BulkInsertFrequencies"])
	assert.Equal(t, cells, store.rows["BulkInsertSurprisals"])
	assert.Equal(t, 11, store.rows["BulkInsertEntropies"])
	assert.Equal(t, len(sampleWords), store.rows["BulkInsertScores"])
	assert.Equal(t, (cells+49)/50, store.batches["BulkInsertFrequencies"])

	assert.Equal(t, "CreateRun", store.callLog[0])
	assert.Equal(t, "BulkInsertScores", store.callLog[len(store.callLog)-1])
	assert.Equal(t, 2*cells+11+len(sampleWords), res.Phases[PhaseStore].Rows)
	assert.FileExists(t, filepath.Join(dir, report.LexicalFile))
}

func TestPipeline_Run_StoreFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	lexPath := writeFile(t, dir, "lexicon.txt", sampleWords...)
	store := newMockStore()
	store.scoreErr = errors.New("connection reset")
	tx := &mockTx{}

	cfg := testConfig()
	cfg.Store = true
	res, err := NewPipeline(testLogger(), testAnalyzer(t), store, tx, cfg).
		Run(context.Background(), Input{Lexicon: []string{lexPath}})

	require.ErrorIs(t, err, store.scoreErr)
	assert.False(t, tx.committed)
	assert.Error(t, res.Phases[PhaseStore].Err)
	assert.NotContains(t, res.Phases, PhasePublish)
	assert.Empty(t, res.Files)

	for _, name := range []string{
		report.FrequenciesFile, report.EntropiesFile, report.SurprisalsFile,
		report.LexicalFile, report.ConfigsFile, report.ManifestFile,
	} {
		assert.NoFileExists(t, filepath.Join(dir, name))
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "staged outputs must be discarded")
	assert.Equal(t, "lexicon.txt", entries[0].Name())
}

func TestPipeline_Run_StoreFailureKeepsPreviousOutputs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	lexPath := writeFile(t, dir, "lexicon.txt", sampleWords...)
	writeFile(t, dir, report.LexicalFile, "lexeme,mean_surprisal", "old,1")
	store := newMockStore()
	store.scoreErr = errors.New("connection reset")

	cfg := testConfig()
	cfg.Store = true
	_, err := NewPipeline(testLogger(), testAnalyzer(t), store, &mockTx{}, cfg).
		Run(context.Background(), Input{Lexicon: []string{lexPath}})
	require.Error(t, err)

	data, err := os.ReadFile(filepath.Join(dir, report.LexicalFile))
	require.NoError(t, err)
	assert.Equal(t, "lexeme,mean_surprisal\nold,1\n", string(data))
}

func TestPipeline_Run_DryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	lexPath := writeFile(t, dir, "lexicon.txt", sampleWords...)
	store := newMockStore()

	cfg := testConfig()
	cfg.Store = true
	cfg.DryRun = true
	res, err := NewPipeline(testLogger(), testAnalyzer(t), store, &mockTx{}, cfg).
		Run(context.Background(), Input{Lexicon: []string{lexPath}})
	require.NoError(t, err)

	assert.Len(t, res.Analysis.Scores, len(sampleWords))
	assert.Empty(t, res.Files)
	assert.Empty(t, store.callLog)
	assert.NoFileExists(t, filepath.Join(dir, report.FrequenciesFile))
}

func TestPipeline_Run_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	lexPath := writeFile(t, dir, "lexicon.txt", sampleWords...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPipeline(testLogger(), testAnalyzer(t), nil, nil, testConfig()).
		Run(ctx, Input{Lexicon: []string{lexPath}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestPipeline_Run_NoLexicon(t *testing.T) {
	t.Parallel()

	_, err := NewPipeline(testLogger(), testAnalyzer(t), nil, nil, testConfig()).
		Run(context.Background(), Input{})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestPipeline_ExtractConfigs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	lexPath := writeFile(t, dir, "lexicon.txt", "pɐ", "ku.nə", "pɐ")
	out := filepath.Join(dir, "configs", "phon_configs.txt")

	vocab, err := NewPipeline(testLogger(), testAnalyzer(t), nil, nil, testConfig()).
		ExtractConfigs(context.Background(), []string{lexPath}, out)
	require.NoError(t, err)

	want := []string{"0", "k", "n", "p", "u", "ɐ", "ə"}
	assert.Equal(t, want, vocab.Items())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(want, "\n")+"\n", string(data))
}

func TestPipeline_RunDataDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, DataLexiconFile, "id,words", "1,pata", "2,kuka", "3,pi")
	writeFile(t, dir, DataRulesFile,
		"type,original,result",
		"phon,a,ɐ",
		`syl,([ɐiu])([ptk]),\1.\2`,
		"note,x,y",
	)

	res, err := NewPipeline(testLogger(), testAnalyzer(t), nil, nil, testConfig()).
		RunDataDir(context.Background(), dir)
	require.NoError(t, err)

	out := filepath.Join(dir, DataOutputDir)
	assert.Equal(t, out, res.OutputDir)

	syls, err := os.ReadFile(filepath.Join(out, PhonSylsFile))
	require.NoError(t, err)
	assert.Equal(t, "pɐ.tɐ\nku.kɐ\npi\n", string(syls))

	for _, f := range []string{TranscribedFile, PhonFile, report.LexicalFile, report.ConfigsFile} {
		assert.FileExists(t, filepath.Join(out, f))
	}
	require.Len(t, res.Analysis.Scores, 3)
	assert.Equal(t, "pɐ.tɐ", res.Analysis.Scores[0].Lexeme)
}

func TestPipeline_RunDataDir_Store(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, DataLexiconFile, "id,words", "1,pata", "2,kuka")
	writeFile(t, dir, DataRulesFile,
		"type,original,result",
		"phon,a,ɐ",
		`syl,([ɐiu])([ptk]),\1.\2`,
	)
	store := newMockStore()
	tx := &mockTx{}

	cfg := testConfig()
	cfg.Store = true
	cfg.Label = "data-dir"
	res, err := NewPipeline(testLogger(), testAnalyzer(t), store, tx, cfg).
		RunDataDir(context.Background(), dir)
	require.NoError(t, err)

	assert.True(t, tx.committed)
	require.NotNil(t, store.run)
	assert.Equal(t, res.RunID, store.run.ID)
	assert.Equal(t, "data-dir", store.run.Label)
	assert.Equal(t, 2, store.rows["BulkInsertScores"])
	assert.Positive(t, res.Phases[PhaseStore].Rows)
}

func TestPipeline_RunDataDir_Missing(t *testing.T) {
	t.Parallel()

	_, err := NewPipeline(testLogger(), testAnalyzer(t), nil, nil, testConfig()).
		RunDataDir(context.Background(), t.TempDir())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestBatchProcess(t *testing.T) {
	t.Parallel()

	var sizes []int
	total, err := batchProcess([]int{1, 2, 3, 4, 5}, 2, func(b []int) (int, error) {
		sizes = append(sizes, len(b))
		return len(b), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Equal(t, []int{2, 2, 1}, sizes)

	boom := errors.New("boom")
	calls := 0
	total, err = batchProcess([]int{1, 2, 3}, 1, func(b []int) (int, error) {
		calls++
		if calls == 2 {
			return 0, boom
		}
		return len(b), nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, total)

	total, err = batchProcess[int](nil, 0, nil)
	assert.NoError(t, err)
	assert.Zero(t, total)
}
