package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/automata/internal/cli"
)

// opts is filled from the persistent flags before any command runs.
var opts cli.Options

var rootCmd = &cobra.Command{
	Use:   "automata",
	Short: "Automata simulates finite, pushdown and Turing machines",
	Long: `Automata loads transition tables from plain text, YAML or JSON files and
simulates them as DFA, NFA (with epsilon moves), pushdown automata or Turing machines.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		envFallback(flags.Changed("dir"), &opts.Dir, "AUTOMATA_DIR")
		envFallback(flags.Changed("redis"), &opts.Redis, "AUTOMATA_REDIS")
		envFallback(flags.Changed("log-level"), &opts.LogLevel, "AUTOMATA_LOG_LEVEL")
		return nil
	},
}

func envFallback(changed bool, target *string, key string) {
	if changed {
		return
	}
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*target = v
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.Dir, "dir", ".", "Directory containing machine descriptions")
	flags.StringVar(&opts.Redis, "redis", "", "Redis address to load machines from instead of --dir")
	flags.StringVar(&opts.RedisPrefix, "redis-prefix", "automata:", "Key prefix in the Redis store")
	flags.StringVar(&opts.Kind, "kind", "", "Force the machine kind: dfa, nfa, pda or turing")
	flags.IntVar(&opts.MaxSteps, "max-steps", 100000, "Step budget per run (negative for unbounded)")
	flags.IntVar(&opts.TapePadding, "tape-padding", 100, "Blank cells appended to a Turing tape")
	flags.StringVar(&opts.LogLevel, "log-level", "", "Log level on stderr: debug, info, warn or error")
	flags.BoolVar(&opts.Debug, "debug", false, "Enable debug logging of every run")
}
