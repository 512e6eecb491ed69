// Command kroot computes positional phonotactic statistics for a
// syllabified lexicon: segment frequencies, entropies and surprisals per
// syllable slot, and the mean surprisal of every word.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kroot-kaytetye/kroot-anonymous/internal/app"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func (g *globalFlags) bootstrap() (*app.Env, error) {
	return app.Bootstrap(g.configPath, app.LogOverrides{Level: g.logLevel, Format: g.logFormat})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "kroot",
		Short: "Positional phonotactic statistics for syllabified lexicons",
		Long: `kroot reads a lexicon of syllabified words and computes, for every
syllable slot (onset, nucleus, coda by position, plus the word-final nucleus
and coda), the frequency of each segmental configuration, the entropy of the
slot and the surprisal of each configuration. Every word is then scored by
its mean positional surprisal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "config file path (YAML; default $KROOT_CONFIG or ./kroot.yaml)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&g.logFormat, "log-format", "", "log format (json, text)")

	cmd.AddCommand(
		configsCmd(g),
		analyzeCmd(g),
		transcribeCmd(g),
		runCmd(g),
		runsCmd(g),
		migrateCmd(g),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kroot %s\n", app.BuildVersion())
		},
	}
}
