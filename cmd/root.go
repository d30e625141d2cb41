package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "storyboard-scorer",
	Short: "Score business-plan storyboards for quality and investment readiness",
	Long: `storyboard-scorer evaluates a business-plan storyboard (problem, solution, customer,
revenue, risks and any custom sections) with a rule-based quality engine and an optional
LLM "Shark Tank" judge.

When no judge is configured, or the judge fails or times out, a deterministic local
heuristic stands in so a complete report is always produced.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.storyboard-scorer/config.json)")
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}

// newLogger returns a stderr logger; debug level when verbose.
func newLogger() (logger *slog.Logger) {
	level := slog.LevelWarn
	if getVerbose() {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return logger
}
