package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kroot-kaytetye/kroot-anonymous/internal/app"
	"github.com/kroot-kaytetye/kroot-anonymous/internal/domain"
	"github.com/kroot-kaytetye/kroot-anonymous/internal/lexio"
	"github.com/kroot-kaytetye/kroot-anonymous/internal/phonotactics"
	"github.com/kroot-kaytetye/kroot-anonymous/internal/report"
	"github.com/kroot-kaytetye/kroot-anonymous/pkg/ctxutil"
)

// Phase names in execution order.
const (
	PhaseLoad    = "load"
	PhaseAnalyze = "analyze"
	PhaseExport  = "export"
	PhaseStore   = "store"
	PhasePublish = "publish"
)

const extractedSource = "extracted"

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Rows     int
	Skipped  int
	Duration time.Duration
	Err      error
}

// Input names the files a run reads.
type Input struct {
	// Lexicon holds resolved lexicon file paths, concatenated in order.
	Lexicon []string
	// Vocabulary is optional; when empty the vocabulary is extracted.
	Vocabulary string
}

// Result is the outcome of a completed run.
type Result struct {
	RunID     uuid.UUID
	OutputDir string
	Analysis  domain.Analysis
	Files     []string
	Uncovered []domain.Slot
	Phases    map[string]PhaseResult
}

// Pipeline runs the load, analyze, export, store and publish phases.
type Pipeline struct {
	log      *slog.Logger
	analyzer *phonotactics.Analyzer
	store    RunStore
	tx       TxRunner
	cfg      Config
	now      func() time.Time
}

// NewPipeline creates a Pipeline. store and tx may be nil when runs are not
// persisted.
func NewPipeline(log *slog.Logger, analyzer *phonotactics.Analyzer, store RunStore, tx TxRunner, cfg Config) *Pipeline {
	return &Pipeline{
		log:      log,
		analyzer: analyzer,
		store:    store,
		tx:       tx,
		cfg:      cfg,
		now:      time.Now,
	}
}

// loaded is what the load phase hands to later phases.
type loaded struct {
	lines     []string
	lexicon   domain.Lexicon
	vocab     domain.Vocabulary
	vocabFrom string
}

// Run executes every phase in order. Export stages the output files and
// publish moves them into the output directory once the store phase has
// committed, so a failed run leaves the output directory as it was.
func (p *Pipeline) Run(ctx context.Context, in Input) (Result, error) {
	res := Result{
		RunID:  uuid.New(),
		Phases: make(map[string]PhaseResult),
	}
	ctx = ctxutil.WithRunID(ctx, res.RunID)

	res.OutputDir = p.cfg.OutputDir
	if res.OutputDir == "" {
		res.OutputDir = lexio.DefaultOutputDir(in.Lexicon)
	}

	var src loaded
	if err := p.phase(ctx, &res, PhaseLoad, func(ctx context.Context) PhaseResult {
		var r PhaseResult
		src, r = p.load(ctx, in)
		return r
	}); err != nil {
		return res, err
	}

	if err := p.phase(ctx, &res, PhaseAnalyze, func(ctx context.Context) PhaseResult {
		a, err := p.analyzer.Analyze(src.lexicon, src.vocab)
		if err != nil {
			return PhaseResult{Err: err}
		}
		res.Analysis = a
		res.Uncovered = phonotactics.UncoveredSlots(a.Frequencies)
		for _, s := range res.Uncovered {
			p.log.WarnContext(ctx, "slot has segments outside the vocabulary",
				slog.String("slot", s.Label()),
			)
		}
		return PhaseResult{Rows: len(a.Scores)}
	}); err != nil {
		return res, err
	}

	var staged *report.Staging
	defer func() {
		if staged != nil {
			staged.Discard()
		}
	}()

	if err := p.phase(ctx, &res, PhaseExport, func(ctx context.Context) PhaseResult {
		var r PhaseResult
		staged, r = p.export(ctx, in, src, &res)
		return r
	}); err != nil {
		return res, err
	}

	if err := p.phase(ctx, &res, PhaseStore, func(ctx context.Context) PhaseResult {
		return p.persist(ctx, src, res.RunID, res.Analysis)
	}); err != nil {
		return res, err
	}

	if err := p.phase(ctx, &res, PhasePublish, func(ctx context.Context) PhaseResult {
		if staged == nil {
			return PhaseResult{Skipped: 1}
		}
		files, err := staged.Publish()
		if err != nil {
			return PhaseResult{Err: err}
		}
		res.Files = files
		return PhaseResult{Rows: len(files)}
	}); err != nil {
		return res, err
	}

	p.log.InfoContext(ctx, "run completed",
		slog.String("output_dir", res.OutputDir),
		slog.Int("words", len(res.Analysis.Scores)),
		slog.Int("files", len(res.Files)),
	)
	return res, nil
}

// phase runs fn with phase-scoped logging and records its result.
func (p *Pipeline) phase(ctx context.Context, res *Result, name string, fn func(context.Context) PhaseResult) error {
	ctx = ctxutil.WithPhase(ctx, name)
	if err := ctx.Err(); err != nil {
		res.Phases[name] = PhaseResult{Err: err}
		return fmt.Errorf("%s: %w", name, err)
	}

	start := time.Now()
	p.log.DebugContext(ctx, "starting phase")

	r := fn(ctx)
	r.Duration = time.Since(start)
	res.Phases[name] = r

	if r.Err != nil {
		p.log.ErrorContext(ctx, "phase failed",
			slog.String("error", r.Err.Error()),
			slog.Duration("duration", r.Duration),
		)
		return fmt.Errorf("%s: %w", name, r.Err)
	}
	p.log.InfoContext(ctx, "phase completed",
		slog.Int("rows", r.Rows),
		slog.Int("skipped", r.Skipped),
		slog.Duration("duration", r.Duration),
	)
	return nil
}

func (p *Pipeline) load(ctx context.Context, in Input) (loaded, PhaseResult) {
	if len(in.Lexicon) == 0 {
		return loaded{}, PhaseResult{Err: domain.NewValidationError("lexicon", "at least one file is required")}
	}

	parsed, err := lexio.ReadLines(in.Lexicon...)
	if err != nil {
		return loaded{}, PhaseResult{Err: err}
	}
	lex, err := domain.ParseLexicon(parsed.Lines, p.cfg.Delimiter)
	if err != nil {
		return loaded{}, PhaseResult{Err: err}
	}
	p.log.InfoContext(ctx, "lexicon parsed",
		slog.Int("files", parsed.Stats.Files),
		slog.Int("words", len(lex)),
		slog.Int("blank_lines", parsed.Stats.BlankLines),
	)

	out := loaded{lines: parsed.Lines, lexicon: lex}
	if in.Vocabulary != "" {
		out.vocab, err = lexio.ReadVocabulary(in.Vocabulary)
		out.vocabFrom = in.Vocabulary
	} else {
		out.vocab, err = p.analyzer.Extract(lex)
		out.vocabFrom = extractedSource
	}
	if err != nil {
		return loaded{}, PhaseResult{Err: fmt.Errorf("vocabulary: %w", err)}
	}
	p.log.InfoContext(ctx, "vocabulary ready",
		slog.String("source", out.vocabFrom),
		slog.Int("configurations", out.vocab.Len()),
	)

	return out, PhaseResult{Rows: len(lex), Skipped: parsed.Stats.BlankLines}
}

// export renders every output file into a staging directory inside the
// output directory. Nothing is visible until the publish phase.
func (p *Pipeline) export(ctx context.Context, in Input, l loaded, res *Result) (*report.Staging, PhaseResult) {
	if p.cfg.DryRun {
		return nil, PhaseResult{Skipped: 4}
	}

	st, err := report.Stage(res.OutputDir)
	if err != nil {
		return nil, PhaseResult{Err: err}
	}
	if err := p.stage(ctx, st, in, l, res); err != nil {
		st.Discard()
		return nil, PhaseResult{Err: err}
	}
	return st, PhaseResult{Rows: len(st.Names())}
}

func (p *Pipeline) stage(ctx context.Context, st *report.Staging, in Input, l loaded, res *Result) error {
	if err := st.WriteTables(ctx, res.Analysis); err != nil {
		return err
	}

	if l.vocabFrom == extractedSource {
		if err := lexio.WriteLines(st.Path(report.ConfigsFile), l.vocab.Items()); err != nil {
			return err
		}
		st.Add(report.ConfigsFile)
	}

	if p.cfg.Manifest {
		if err := report.WriteManifest(st.Dir(), p.manifest(in, l, res, st.Names())); err != nil {
			return err
		}
		st.Add(report.ManifestFile)
	}
	return nil
}

func (p *Pipeline) manifest(in Input, l loaded, res *Result, files []string) report.Manifest {
	uncovered := make([]string, len(res.Uncovered))
	for i, s := range res.Uncovered {
		uncovered[i] = s.Label()
	}
	return report.Manifest{
		RunID:            res.RunID.String(),
		Label:            p.cfg.Label,
		CreatedAt:        p.now().UTC(),
		Version:          app.BuildVersion(),
		Inputs:           in.Lexicon,
		LexiconChecksum:  lexio.Checksum(l.lines),
		VowelClass:       p.analyzer.Vowels().String(),
		Words:            len(l.lexicon),
		Vocabulary:       l.vocab.Len(),
		VocabularySource: l.vocabFrom,
		Slots:            len(res.Analysis.Frequencies.Rows),
		UncoveredSlots:   uncovered,
		Files:            files,
	}
}

// persist stores the run header and every table in one transaction.
func (p *Pipeline) persist(ctx context.Context, l loaded, runID uuid.UUID, a domain.Analysis) PhaseResult {
	if !p.cfg.Store || p.store == nil || p.tx == nil {
		return PhaseResult{Skipped: 1}
	}
	if p.cfg.DryRun {
		return PhaseResult{Skipped: 1}
	}

	run := domain.AnalysisRun{
		ID:              runID,
		Label:           p.cfg.Label,
		LexiconChecksum: lexio.Checksum(l.lines),
		VowelClass:      p.analyzer.Vowels().String(),
		WordCount:       len(l.lexicon),
		VocabularySize:  a.Vocabulary.Len(),
		SlotCount:       len(a.Frequencies.Rows),
	}

	var result PhaseResult
	err := p.tx.RunInTx(ctx, func(ctx context.Context) error {
		result = PhaseResult{}
		if err := p.store.CreateRun(ctx, &run); err != nil {
			return fmt.Errorf("create run: %w", err)
		}

		n, err := batchProcess(a.FrequencyCells(runID), p.cfg.BatchSize, func(batch []domain.FrequencyCell) (int, error) {
			return p.store.BulkInsertFrequencies(ctx, batch)
		})
		if err != nil {
			return fmt.Errorf("insert frequencies: %w", err)
		}
		result.Rows += n

		n, err = batchProcess(a.EntropyRecords(runID), p.cfg.BatchSize, func(batch []domain.EntropyRecord) (int, error) {
			return p.store.BulkInsertEntropies(ctx, batch)
		})
		if err != nil {
			return fmt.Errorf("insert entropies: %w", err)
		}
		result.Rows += n

		n, err = batchProcess(a.SurprisalCells(runID), p.cfg.BatchSize, func(batch []domain.SurprisalCell) (int, error) {
			return p.store.BulkInsertSurprisals(ctx, batch)
		})
		if err != nil {
			return fmt.Errorf("insert surprisals: %w", err)
		}
		result.Rows += n

		n, err = batchProcess(a.ScoreRecords(runID), p.cfg.BatchSize, func(batch []domain.LexicalScoreRecord) (int, error) {
			return p.store.BulkInsertScores(ctx, batch)
		})
		if err != nil {
			return fmt.Errorf("insert scores: %w", err)
		}
		result.Rows += n
		return nil
	})
	if err != nil {
		return PhaseResult{Err: err}
	}
	return result
}

// batchProcess splits items into chunks of batchSize and calls fn for each.
func batchProcess[T any](items []T, batchSize int, fn func([]T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
