package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kroot-kaytetye/kroot-anonymous/internal/adapter/postgres"
	"github.com/kroot-kaytetye/kroot-anonymous/internal/adapter/postgres/analysisrun"
	"github.com/kroot-kaytetye/kroot-anonymous/internal/domain"
	"github.com/kroot-kaytetye/kroot-anonymous/internal/report"
)

func runsCmd(g *globalFlags) *cobra.Command {
	var (
		limit    int
		checksum string
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List stored runs, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := g.bootstrap()
			if err != nil {
				return err
			}
			if env.Config.Database.DSN == "" {
				return domain.NewValidationError("database.dsn", "required to list runs")
			}

			pool, err := postgres.NewPool(cmd.Context(), env.Config.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			runs, err := analysisrun.New(pool).ListRuns(cmd.Context(), limit, checksum)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCREATED\tLABEL\tWORDS\tCONFIGS\tCHECKSUM")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.12s\n",
					r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Label,
					r.WordCount, r.VocabularySize, r.LexiconChecksum)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs")
	cmd.Flags().StringVar(&checksum, "checksum", "", "only runs over the lexicon with this checksum")
	cmd.AddCommand(runsShowCmd(g))
	return cmd
}

func runsShowCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print the entropies and lexical surprisals of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return domain.NewValidationError("run-id", err.Error())
			}

			env, err := g.bootstrap()
			if err != nil {
				return err
			}
			if env.Config.Database.DSN == "" {
				return domain.NewValidationError("database.dsn", "required to show a run")
			}

			pool, err := postgres.NewPool(cmd.Context(), env.Config.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			repo := analysisrun.New(pool)
			run, err := repo.GetRun(cmd.Context(), id)
			if err != nil {
				return err
			}
			entropies, err := repo.GetEntropies(cmd.Context(), id)
			if err != nil {
				return err
			}
			scores, err := repo.GetLexicalScores(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run %s (%s) created %s\n", run.ID, run.Label, run.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "vowels %s, %d words, %d configurations, %d slots\n\n",
				run.VowelClass, run.WordCount, run.VocabularySize, run.SlotCount)

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SLOT\tENTROPY")
			for _, e := range entropies {
				fmt.Fprintf(w, "%s\t%s\n", e.Slot, report.FormatFloat(e.Bits))
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "LEXEME\tMEAN_SURPRISAL")
			for _, s := range scores {
				fmt.Fprintf(w, "%s\t%s\n", s.Lexeme, report.FormatFloat(s.MeanSurprisal))
			}
			return w.Flush()
		},
	}
}

func migrateCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := g.bootstrap()
			if err != nil {
				return err
			}
			if env.Config.Database.DSN == "" {
				return domain.NewValidationError("database.dsn", "required to migrate")
			}

			applied, err := postgres.Migrate(cmd.Context(), env.Config.Database.DSN)
			if err != nil {
				return err
			}
			for _, m := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "applied %d %s\n", m.Version, m.Source)
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "database is up to date")
			}
			return nil
		},
	}
}
