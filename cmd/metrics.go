package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nikogura/storyboard-scorer/pkg/plan"
	"github.com/nikogura/storyboard-scorer/pkg/scorer"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var metricsJSON bool

//nolint:gochecknoglobals // Cobra boilerplate
var metricsCmd = &cobra.Command{
	Use:   "metrics [plan-file-or-url]",
	Short: "Print word-count and completion statistics for a storyboard",
	Args:  cobra.ExactArgs(1),
	RunE:  runMetrics,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(metricsCmd)
	metricsCmd.Flags().BoolVar(&metricsJSON, "json", false, "Print metrics as JSON")
}

func runMetrics(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var doc plan.Document
	doc, err = plan.Fetch(ctx, args[0])
	if err != nil {
		return err
	}

	m := scorer.ComputeMetrics(doc)

	if metricsJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		err = enc.Encode(m)
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Sections:            %d (%d marked complete)\n", m.SectionCount, m.CompletedSections)
	fmt.Fprintf(out, "Total words:         %d\n", m.TotalWords)
	fmt.Fprintf(out, "Avg words/section:   %d\n", round(m.AverageWordsPerSection))
	fmt.Fprintf(out, "Completion:          %d%%\n", round(m.CompletionRate))
	if !m.LastUpdated.IsZero() {
		fmt.Fprintf(out, "Last updated:        %s\n", m.LastUpdated.Format(time.RFC3339))
	}

	return err
}
