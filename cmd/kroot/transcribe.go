package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kroot-kaytetye/kroot-anonymous/internal/app"
	"github.com/kroot-kaytetye/kroot-anonymous/internal/app/pipeline"
	"github.com/kroot-kaytetye/kroot-anonymous/internal/lexio"
)

func transcribeCmd(g *globalFlags) *cobra.Command {
	in := pipeline.TranscribeInput{}

	cmd := &cobra.Command{
		Use:   "transcribe <words.csv>",
		Short: "Convert orthographic words to syllabified phonemic forms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.bootstrap()
			if err != nil {
				return err
			}
			in.Words = args[0]
			if in.OutDir == "" {
				in.OutDir = lexio.DefaultOutputDir(args)
			}

			res, err := pipeline.Transcribe(cmd.Context(), env.Log, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d words transcribed to %s\n", res.Words, in.OutDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Rules, "rules", "", "rules file (CSV or YAML)")
	cmd.Flags().StringVar(&in.Column, "column", pipeline.DefaultWordsColumn, "column holding the orthographic words")
	cmd.Flags().StringVarP(&in.OutDir, "out", "o", "", "output directory (default: directory of the input)")
	_ = cmd.MarkFlagRequired("rules")
	return cmd
}

func runCmd(g *globalFlags) *cobra.Command {
	var (
		store bool
		label string
	)

	cmd := &cobra.Command{
		Use:   "run <data-dir>",
		Short: "Transcribe data-dir/kroot.csv with rules.csv and analyze the result",
		Long: `run is the end-to-end driver. data-dir must hold kroot.csv (with a words
column) and rules.csv; every output lands in data-dir/outputs. With
store.enabled (or --store) the analysis is also stored in the database.`,
		Args: cobra.ExactArgs(1),
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
			if err := cfg.Validate(); err != nil {
				return err
			}

			analyzer, err := app.NewAnalyzer(cfg.Phonology)
			if err != nil {
				return err
			}

			pcfg := pipeline.ConfigFrom(cfg)
			repo, txm, closeStore, err := openStore(cmd.Context(), cfg, pcfg.Store)
			if err != nil {
				return err
			}
			defer closeStore()

			res, err := pipeline.NewPipeline(env.Log, analyzer, repo, txm, pcfg).
				RunDataDir(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "documents were produced in %s\n", res.OutputDir)
			if res.Phases[pipeline.PhaseStore].Rows > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "run %s stored\n", res.RunID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&store, "store", false, "store the run in the database")
	cmd.Flags().StringVar(&label, "label", "", "label recorded with the run")
	return cmd
}
