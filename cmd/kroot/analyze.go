package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kroot-kaytetye/kroot-anonymous/internal/adapter/postgres"
	"github.com/kroot-kaytetye/kroot-anonymous/internal/adapter/postgres/analysisrun"
	"github.com/kroot-kaytetye/kroot-anonymous/internal/app"
	"github.com/kroot-kaytetye/kroot-anonymous/internal/app/pipeline"
	"github.com/kroot-kaytetye/kroot-anonymous/internal/config"
	"github.com/kroot-kaytetye/kroot-anonymous/internal/lexio"
	"github.com/kroot-kaytetye/kroot-anonymous/internal/report"
)

// Compile-time interface assertions.
var (
	_ pipeline.RunStore = (*analysisrun.Repo)(nil)
	_ pipeline.TxRunner = (*postgres.TxManager)(nil)
)

// openStore connects to the database when runs are to be stored. The
// returned close func is never nil.
func openStore(ctx context.Context, cfg *config.Config, enabled bool) (pipeline.RunStore, pipeline.TxRunner, func(), error) {
	if !enabled {
		return nil, nil, func() {}, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open store: %w", err)
	}
	return analysisrun.New(pool), postgres.NewTxManager(pool), pool.Close, nil
}

func configsCmd(g *globalFlags) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "configs <lexicon>...",
		Short: "Extract the segmental configurations of a lexicon",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.bootstrap()
			if err != nil {
				return err
			}
			paths, err := lexio.ResolveInputs(args)
			if err != nil {
				return err
			}
			analyzer, err := app.NewAnalyzer(env.Config.Phonology)
			if err != nil {
				return err
			}

			if out == "" {
				out = filepath.Join(lexio.DefaultOutputDir(paths), report.ConfigsFile)
			}
			p := pipeline.NewPipeline(env.Log, analyzer, nil, nil, pipeline.ConfigFrom(env.Config))
			vocab, err := p.ExtractConfigs(cmd.Context(), paths, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d configurations written to %s\n", vocab.Len(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: phon_configs.txt next to the lexicon)")
	return cmd
}

func analyzeCmd(g *globalFlags) *cobra.Command {
	var (
		vocabPath string
		outDir    string
		store     bool
		label     string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <lexicon>...",
		Short: "Compute frequency, entropy and surprisal tables for a lexicon",
		Long: `Lexicon arguments are files or doublestar glob patterns; matching files
are concatenated in argument order. Without --configs the vocabulary is
extracted from the lexicon and written to phon_configs.txt.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.bootstrap()
			if err != nil {
				return err
			}
			cfg := env.Config
			if cmd.Flags().Changed("store") {
				cfg.Store.Enabled = store
			}
			if label != "" {
				cfg.Store.Label = label
			}
			if outDir != "" {
				cfg.Output.Dir = outDir
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			paths, err := lexio.ResolveInputs(args)
			if err != nil {
				return err
			}
			analyzer, err := app.NewAnalyzer(cfg.Phonology)
			if err != nil {
				return err
			}

			pcfg := pipeline.ConfigFrom(cfg)
			pcfg.DryRun = dryRun

			repo, txm, closeStore, err := openStore(cmd.Context(), cfg, pcfg.Store && !dryRun)
			if err != nil {
				return err
			}
			defer closeStore()

			res, err := pipeline.NewPipeline(env.Log, analyzer, repo, txm, pcfg).
				Run(cmd.Context(), pipeline.Input{Lexicon: paths, Vocabulary: vocabPath})
			if err != nil {
				return err
			}

			if len(res.Uncovered) > 0 {
				env.Log.Warn("vocabulary does not cover every slot", slog.Int("slots", len(res.Uncovered)))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d words, %d files in %s\n",
				res.RunID, len(res.Analysis.Scores), len(res.Files), res.OutputDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&vocabPath, "configs", "", "vocabulary file, one configuration per line (default: extract)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default: directory of the first lexicon)")
	cmd.Flags().BoolVar(&store, "store", false, "store the run in the database")
	cmd.Flags().StringVar(&label, "label", "", "label recorded with the run")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "analyze without writing files or database rows")
	return cmd
}
