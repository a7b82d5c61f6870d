package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd creates the root command for domino-infer. It is called once
// in main, mirroring the teacher's cmd/ocpd/cmd.NewRootCmd shape (a single
// constructor that wires flags, config, and subcommands).
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "domino-infer",
		Short: "Bayesian hand inference for 2v2 double-six dominoes",
	}

	root.PersistentFlags().String("config", "", "config file (YAML) with dispatcher overrides")
	root.PersistentFlags().Int64("tau-exact", 0, "override: workload-bound threshold for exact enumeration (0 = use default)")
	root.PersistentFlags().Float64("alpha-floor", 0, "override: minimum rejection acceptance rate (0 = use default)")
	root.PersistentFlags().Int("target-samples", 0, "override: Monte Carlo target sample count (0 = use default)")
	root.PersistentFlags().Uint64("seed", 0, "override: master RNG seed (0 = use default)")
	root.PersistentFlags().Bool("verbose", false, "log the dispatcher's back-end decision trace")

	cobra.OnInitialize(func() {
		if cfgFile, _ := root.PersistentFlags().GetString("config"); cfgFile != "" {
			viper.SetConfigFile(cfgFile)
			_ = viper.ReadInConfig()
		}
		_ = viper.BindPFlags(root.PersistentFlags())
	})

	root.AddCommand(newReplayCmd())
	return root
}

// newLogger returns a console-writer zerolog.Logger at debug level when
// verbose is set, or the disabled zerolog.Nop() logger otherwise — the core
// stays silent unless the CLI caller opts in (SPEC_FULL.md Ambient Stack).
func newLogger(verbose bool) zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
