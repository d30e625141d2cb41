package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/nikogura/storyboard-scorer/pkg/config"
	"github.com/nikogura/storyboard-scorer/pkg/plan"
	"github.com/nikogura/storyboard-scorer/pkg/scorer"
	"github.com/nikogura/storyboard-scorer/pkg/sharktank"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//nolint:gochecknoglobals // Cobra boilerplate
var (
	scoreJSON    bool
	scoreOffline bool
	scoreOutput  string
)

//nolint:gochecknoglobals // Cobra boilerplate
var scoreCmd = &cobra.Command{
	Use:   "score [plan-file-or-url]",
	Short: "Score a storyboard and print its quality report",
	Long: `Scores a business-plan storyboard.

The plan may be JSON, YAML or Markdown (one heading per section; prefix a heading
with "[x]" to mark the section complete), read from disk or fetched over HTTP(S).

Examples:
  # Score a plan and print a summary
  storyboard-scorer score ./cold-storage.json

  # Skip the remote judge and use the local heuristic
  storyboard-scorer score ./cold-storage.md --offline

  # Print the full report as JSON and keep a copy
  storyboard-scorer score ./cold-storage.yaml --json --output report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the full report as JSON")
	scoreCmd.Flags().BoolVar(&scoreOffline, "offline", false, "Do not call the remote judge; use the local heuristic")
	scoreCmd.Flags().StringVarP(&scoreOutput, "output", "o", "", "Write the report JSON to this file")
}

func runScore(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	var doc plan.Document
	doc, err = plan.Fetch(ctx, args[0])
	if err != nil {
		return err
	}

	log := newLogger()

	var scr *scorer.Scorer
	scr, _, err = buildScorer(ctx, cfg, scoreOffline, log)
	if err != nil {
		return err
	}

	var report scorer.Report
	report, err = scr.ScorePlan(ctx, doc)
	if err != nil {
		err = errors.Wrap(err, "scoring failed")
		return err
	}

	if scoreOutput != "" {
		err = writeReport(scoreOutput, report)
		if err != nil {
			return err
		}
		if getVerbose() {
			fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", scoreOutput)
		}
	}

	if scoreJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		err = enc.Encode(report)
		return err
	}

	printReport(cmd, doc, report)
	return err
}

func printReport(cmd *cobra.Command, doc plan.Document, report scorer.Report) {
	out := cmd.OutOrStdout()
	titleCaser := cases.Title(language.English)

	title := doc.Title
	if title == "" {
		title = doc.ID
	}

	fmt.Fprintf(out, "%s\n", title)
	fmt.Fprintf(out, "  Overall Score: %d/100 (%s)\n", round(report.Overall), titleCaser.String(string(report.ReadinessLevel)))
	fmt.Fprintf(out, "  Completeness: %d  Quality: %d  Structure: %d  Content: %d\n",
		round(report.Completeness), round(report.Quality), round(report.Structure), round(report.Content))

	if getVerbose() {
		fmt.Fprintln(out, "\n  Rules:")
		for _, o := range report.RuleResults {
			fmt.Fprintf(out, "    %-22s %3d  %-6s %s\n", o.RuleID, round(o.Result.Score), o.Result.Severity, o.Result.Message)
		}
	}

	fmt.Fprintln(out, "\n  Sections:")
	for _, s := range report.Breakdown {
		line := fmt.Sprintf("    %-28s %3d", s.SectionTitle, round(s.Score))
		if len(s.Issues) > 0 {
			line += "  " + strings.Join(s.Issues, "; ")
		}
		fmt.Fprintln(out, line)
	}

	fmt.Fprintln(out, "\n  Recommendations:")
	for _, r := range report.Recommendations {
		fmt.Fprintf(out, "    - %s\n", r)
	}

	if ext := report.ExternalScore; ext != nil {
		source := "judge"
		if ext.Source == sharktank.SourceFallback {
			source = "local heuristic"
		}
		fmt.Fprintf(out, "\n  Investment Readiness (%s): %d/100 (%s)\n", source, round(ext.Overall), titleCaser.String(string(ext.ReadinessLevel)))
		fmt.Fprintf(out, "    %s\n", ext.DetailedFeedback.InvestmentReadiness)
	}
}

func round(v float64) int {
	return int(math.Round(v))
}

func writeReport(path string, report scorer.Report) (err error) {
	var data []byte
	data, err = json.MarshalIndent(report, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal report")
		return err
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		err = errors.Wrapf(err, "failed to write report file: %s", path)
		return err
	}

	return err
}
