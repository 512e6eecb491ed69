package analysisrun

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	postgres "github.com/kroot-kaytetye/kroot-anonymous/internal/adapter/postgres"
	"github.com/kroot-kaytetye/kroot-anonymous/internal/domain"
)

// BulkInsertFrequencies inserts frequency cells using pgx.Batch.
// Returns the number of inserted rows.
func (r *Repo) BulkInsertFrequencies(ctx context.Context, cells []domain.FrequencyCell) (int, error) {
	if len(cells) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, c := range cells {
		batch.Queue(
			`INSERT INTO run_frequencies (run_id, slot_label, slot_position, configuration, count)
			 VALUES ($1, $2, $3, $4, $5)`,
			c.RunID, c.SlotLabel, c.SlotPosition, c.Configuration, c.Count,
		)
	}

	return r.sendBatchExec(ctx, batch)
}

// BulkInsertEntropies inserts per-slot entropies using pgx.Batch.
func (r *Repo) BulkInsertEntropies(ctx context.Context, rows []domain.EntropyRecord) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, e := range rows {
		batch.Queue(
			`INSERT INTO run_entropies (run_id, slot_label, slot_position, bits)
			 VALUES ($1, $2, $3, $4)`,
			e.RunID, e.SlotLabel, e.SlotPosition, e.Bits,
		)
	}

	return r.sendBatchExec(ctx, batch)
}

// BulkInsertSurprisals inserts surprisal cells using pgx.Batch.
// Unattested cells are stored with NULL bits.
func (r *Repo) BulkInsertSurprisals(ctx context.Context, cells []domain.SurprisalCell) (int, error) {
	if len(cells) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, c := range cells {
		batch.Queue(
			`INSERT INTO run_surprisals (run_id, slot_label, slot_position, configuration, bits)
			 VALUES ($1, $2, $3, $4, $5)`,
			c.RunID, c.SlotLabel, c.SlotPosition, c.Configuration, c.Bits,
		)
	}

	return r.sendBatchExec(ctx, batch)
}

// BulkInsertScores inserts lexical scores using pgx.Batch.
func (r *Repo) BulkInsertScores(ctx context.Context, scores []domain.LexicalScoreRecord) (int, error) {
	if len(scores) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, s := range scores {
		batch.Queue(
			`INSERT INTO run_lexical_scores (run_id, position, lexeme, mean_surprisal)
			 VALUES ($1, $2, $3, $4)`,
			s.RunID, s.Position, s.Lexeme, s.MeanSurprisal,
		)
	}

	return r.sendBatchExec(ctx, batch)
}

func (r *Repo) sendBatchExec(ctx context.Context, batch *pgx.Batch) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return inserted, postgres.MapError(fmt.Errorf("batch exec: %w", err), entity, "batch")
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}
