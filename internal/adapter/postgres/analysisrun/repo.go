// Package analysisrun stores phonotactic statistics runs in PostgreSQL.
package analysisrun

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/kroot-kaytetye/kroot-anonymous/internal/adapter/postgres"
	"github.com/kroot-kaytetye/kroot-anonymous/internal/domain"
)

const entity = "analysis_run"

var runColumns = []string{
	"id", "label", "lexicon_checksum", "vowel_class",
	"word_count", "vocabulary_size", "slot_count", "created_at",
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides persistence for analysis runs and their tables.
type Repo struct {
	db postgres.Querier
}

// New creates a Repo. db is usually a *pgxpool.Pool; inside
// TxManager.RunInTx the transaction from context is used instead.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// CreateRun inserts the run header and fills run.CreatedAt from the database.
func (r *Repo) CreateRun(ctx context.Context, run *domain.AnalysisRun) error {
	if run.ID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	err := q.QueryRow(ctx,
		`INSERT INTO analysis_runs (id, label, lexicon_checksum, vowel_class, word_count, vocabulary_size, slot_count)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`,
		run.ID, run.Label, run.LexiconChecksum, run.VowelClass,
		run.WordCount, run.VocabularySize, run.SlotCount,
	).Scan(&run.CreatedAt)
	if err != nil {
		return postgres.MapError(err, entity, run.ID)
	}
	return nil
}

// GetRun returns a run header by id.
func (r *Repo) GetRun(ctx context.Context, id uuid.UUID) (*domain.AnalysisRun, error) {
	query, args, err := psql.Select(runColumns...).
		From("analysis_runs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var run domain.AnalysisRun
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &run, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		}
		return nil, postgres.MapError(err, entity, id)
	}
	return &run, nil
}

// ListRuns returns the most recent runs first. checksum, when non-empty,
// restricts the list to runs over the same lexicon.
func (r *Repo) ListRuns(ctx context.Context, limit int, checksum string) ([]domain.AnalysisRun, error) {
	if limit <= 0 {
		return nil, domain.NewValidationError("limit", "must be positive")
	}

	b := psql.Select(runColumns...).
		From("analysis_runs").
		OrderBy("created_at DESC", "id").
		Limit(uint64(limit))
	if checksum != "" {
		b = b.Where(squirrel.Eq{"lexicon_checksum": checksum})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var runs []domain.AnalysisRun
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &runs, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, "list")
	}
	return runs, nil
}

// GetLexicalScores returns the stored word scores of a run in input order.
func (r *Repo) GetLexicalScores(ctx context.Context, runID uuid.UUID) ([]domain.LexicalScoreRecord, error) {
	query, args, err := psql.Select("run_id", "position", "lexeme", "mean_surprisal").
		From("run_lexical_scores").
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var scores []domain.LexicalScoreRecord
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &scores, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, runID)
	}
	return scores, nil
}

// GetEntropies returns the stored entropy table of a run in slot order.
// Stored labels are parsed back into slots; a label that does not round-trip
// means the row was not written by this program.
func (r *Repo) GetEntropies(ctx context.Context, runID uuid.UUID) ([]domain.EntropyRow, error) {
	query, args, err := psql.Select("run_id", "slot_label", "slot_position", "bits").
		From("run_entropies").
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("slot_position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var recs []domain.EntropyRecord
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &recs, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, runID)
	}

	rows := make([]domain.EntropyRow, len(recs))
	for i, rec := range recs {
		slot, err := domain.ParseSlot(rec.SlotLabel)
		if err != nil {
			return nil, fmt.Errorf("%s %s: entropy row %d: %w", entity, runID, rec.SlotPosition, err)
		}
		if slot.Label() != rec.SlotLabel {
			return nil, fmt.Errorf("%s %s: %w", entity, runID,
				domain.NewValidationError("slot", fmt.Sprintf("non-canonical label %q", rec.SlotLabel)))
		}
		rows[i] = domain.EntropyRow{Slot: slot, Bits: rec.Bits}
	}
	return rows, nil
}

// DeleteRun removes a run; its tables go with it via ON DELETE CASCADE.
func (r *Repo) DeleteRun(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Delete("analysis_runs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}
