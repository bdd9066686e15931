// Package commands implements the eggmath command line
package commands

import (
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/eggmath/internal/cli/ui"
	"github.com/conduit-lang/eggmath/internal/rules"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "eggmath",
		Short: "Simplify math expressions by equality saturation",
		Long: `eggmath - algebraic simplification by equality saturation

eggmath reads math expressions written as s-expressions, grows an e-graph
of equivalent forms using a corpus of rewrite rules, and prints the
cheapest equivalent it found. Constants are folded exactly as rationals;
transcendental functions and named constants such as PI stay symbolic.

Configuration is read from eggmath.yml and EGGMATH_* environment variables.`,
		Example: `  eggmath optimize "(* (+ x 0) 1)"
  eggmath optimize --groups id-reduce-fp-safe,counting "(+ 1 2)"
  eggmath rules commutativity
  eggmath serve --port 8080`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.noColor {
				color.NoColor = true
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Config file (default: ./eggmath.yml)")
	rootCmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Show per-iteration detail and debug logs")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(newOptimizeCommand(g))
	rootCmd.AddCommand(newRulesCommand(g))
	rootCmd.AddCommand(newVocabCommand())
	rootCmd.AddCommand(newServeCommand(g))
	rootCmd.AddCommand(newTokenCommand(g))
	rootCmd.AddCommand(newWatchCommand(g))

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			kv := ui.NewKeyValueTable(cmd.OutOrStdout(), color.NoColor)
			kv.AddRow("eggmath version", Version)
			kv.AddRow("Git commit", GitCommit)
			kv.AddRow("Build date", BuildDate)
			kv.AddRow("Go version", goVer)
			kv.Render()
		},
	}
}

// Execute runs the root command and renders any error
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		ui.DescribeError(err, groupNames(), color.NoColor).Write(rootCmd.ErrOrStderr())
		return err
	}
	return nil
}

// groupNames feeds spelling suggestions for unknown groups
func groupNames() []string {
	c, err := rules.Default()
	if err != nil {
		return nil
	}
	return c.Names()
}
