package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/kroot-kaytetye/kroot-anonymous/internal/domain"
)

type pendingFile struct {
	name    string
	records [][]string
}

// WriteTables writes the four statistics tables into dir and publishes
// them. On failure the previous contents of dir are restored.
func WriteTables(ctx context.Context, dir string, a domain.Analysis) ([]string, error) {
	st, err := Stage(dir)
	if err != nil {
		return nil, err
	}
	defer st.Discard()

	if err := st.WriteTables(ctx, a); err != nil {
		return nil, err
	}
	return st.Publish()
}

// WriteTables renders the four statistics tables concurrently into the
// staging directory. Nothing is visible in the destination until Publish.
func (s *Staging) WriteTables(ctx context.Context, a domain.Analysis) error {
	files := []pendingFile{
		{name: FrequenciesFile, records: FrequencyRecords(a.Frequencies)},
		{name: EntropiesFile, records: EntropyRecords(a.Entropies)},
		{name: SurprisalsFile, records: SurprisalRecords(a.Surprisals)},
		{name: LexicalFile, records: LexicalRecords(a.Scores)},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, f := range files {
		g.Go(func() error {
			if err := writeCSV(gctx, s.Path(f.name), f.records); err != nil {
				return fmt.Errorf("write %s: %w", f.name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, f := range files {
		s.Add(f.name)
	}
	return nil
}

func writeCSV(ctx context.Context, path string, records [][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
