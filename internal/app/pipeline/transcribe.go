package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kroot-kaytetye/kroot-anonymous/internal/lexio"
	"github.com/kroot-kaytetye/kroot-anonymous/internal/orthography"
)

// Transcription outputs and the layout of a data directory.
const (
	TranscribedFile = "output.csv"
	PhonFile        = "phon.txt"
	PhonSylsFile    = "phon_syls.txt"

	DataLexiconFile = "kroot.csv"
	DataRulesFile   = "rules.csv"
	DataOutputDir   = "outputs"

	DefaultWordsColumn = "words"
)

// TranscribeInput names the files a transcription reads and where it writes.
type TranscribeInput struct {
	Words  string
	Rules  string
	Column string
	OutDir string
}

// TranscribeResult reports what a transcription produced.
type TranscribeResult struct {
	Words        int
	IgnoredRules int
	// PhonSyls is the path of the syllabified phonemic lexicon.
	PhonSyls string
}

// Transcribe converts the orthographic words column of in.Words to phonemic
// forms. It writes the input table extended with phon and phon_syl columns,
// plus one file per form with one word per line.
func Transcribe(ctx context.Context, log *slog.Logger, in TranscribeInput) (TranscribeResult, error) {
	if in.Column == "" {
		in.Column = DefaultWordsColumn
	}

	rules, err := orthography.LoadRules(in.Rules)
	if err != nil {
		return TranscribeResult{}, err
	}
	tr, err := orthography.NewTranscriber(rules)
	if err != nil {
		return TranscribeResult{}, err
	}

	table, col, err := lexio.ReadWordsCSV(in.Words, in.Column)
	if err != nil {
		return TranscribeResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return TranscribeResult{}, err
	}

	out := tr.TranscribeAll(table.Values(col))
	phons := make([]string, len(out))
	syls := make([]string, len(out))
	for i, t := range out {
		phons[i] = t.Phon
		syls[i] = t.PhonSyl
	}

	if err := table.AddColumn("phon", phons); err != nil {
		return TranscribeResult{}, err
	}
	if err := table.AddColumn("phon_syl", syls); err != nil {
		return TranscribeResult{}, err
	}

	if err := lexio.WriteTable(filepath.Join(in.OutDir, TranscribedFile), table); err != nil {
		return TranscribeResult{}, err
	}
	if err := lexio.WriteLines(filepath.Join(in.OutDir, PhonFile), phons); err != nil {
		return TranscribeResult{}, err
	}
	sylPath := filepath.Join(in.OutDir, PhonSylsFile)
	if err := lexio.WriteLines(sylPath, syls); err != nil {
		return TranscribeResult{}, err
	}

	log.InfoContext(ctx, "words transcribed",
		slog.Int("words", len(out)),
		slog.Int("phon_rules", len(rules.Phon)),
		slog.Int("syl_rules", len(rules.Syl)),
		slog.Int("ignored_rules", rules.Ignored),
		slog.String("out_dir", in.OutDir),
	)
	return TranscribeResult{Words: len(out), IgnoredRules: rules.Ignored, PhonSyls: sylPath}, nil
}

// RunDataDir is the end-to-end driver: it transcribes dir/kroot.csv with
// dir/rules.csv and analyzes the result, writing everything under
// dir/outputs.
func (p *Pipeline) RunDataDir(ctx context.Context, dir string) (Result, error) {
	for _, name := range []string{DataLexiconFile, DataRulesFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return Result{}, fmt.Errorf("data dir: %w", err)
		}
	}

	outDir := filepath.Join(dir, DataOutputDir)
	tr, err := Transcribe(ctx, p.log, TranscribeInput{
		Words:  filepath.Join(dir, DataLexiconFile),
		Rules:  filepath.Join(dir, DataRulesFile),
		Column: DefaultWordsColumn,
		OutDir: outDir,
	})
	if err != nil {
		return Result{}, fmt.Errorf("transcribe: %w", err)
	}

	run := *p
	run.cfg.OutputDir = outDir
	return run.Run(ctx, Input{Lexicon: []string{tr.PhonSyls}})
}
