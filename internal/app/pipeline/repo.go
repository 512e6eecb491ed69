// Package pipeline orchestrates a phonotactic statistics run: load the
// lexicon, analyze it, export the tables and optionally store the run.
package pipeline

import (
	"context"

	"github.com/kroot-kaytetye/kroot-anonymous/internal/domain"
)

// RunStore defines the batch repository contract consumed by the pipeline.
// All methods use only domain types. Implemented by analysisrun.Repo.
type RunStore interface {
	CreateRun(ctx context.Context, run *domain.AnalysisRun) error
	BulkInsertFrequencies(ctx context.Context, cells []domain.FrequencyCell) (int, error)
	BulkInsertEntropies(ctx context.Context, rows []domain.EntropyRecord) (int, error)
	BulkInsertSurprisals(ctx context.Context, cells []domain.SurprisalCell) (int, error)
	BulkInsertScores(ctx context.Context, scores []domain.LexicalScoreRecord) (int, error)
}

// TxRunner runs fn inside one transaction. Implemented by postgres.TxManager.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
