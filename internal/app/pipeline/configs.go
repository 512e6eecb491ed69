package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kroot-kaytetye/kroot-anonymous/internal/domain"
	"github.com/kroot-kaytetye/kroot-anonymous/internal/lexio"
)

// ExtractConfigs reads the lexicon files and writes the sorted set of
// segmental configurations to out, one per line.
func (p *Pipeline) ExtractConfigs(ctx context.Context, lexicon []string, out string) (domain.Vocabulary, error) {
	lex, stats, err := lexio.ReadLexicon(p.cfg.Delimiter, lexicon...)
	if err != nil {
		return domain.Vocabulary{}, err
	}

	vocab, err := p.analyzer.Extract(lex)
	if err != nil {
		return domain.Vocabulary{}, err
	}

	if p.cfg.DryRun {
		p.log.InfoContext(ctx, "dry run, configurations not written", slog.Int("configurations", vocab.Len()))
		return vocab, nil
	}
	if err := lexio.WriteLines(out, vocab.Items()); err != nil {
		return domain.Vocabulary{}, fmt.Errorf("write configurations: %w", err)
	}

	p.log.InfoContext(ctx, "configurations extracted",
		slog.Int("words", len(lex)),
		slog.Int("files", stats.Files),
		slog.Int("configurations", vocab.Len()),
		slog.String("out", out),
	)
	return vocab, nil
}
