package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nikogura/storyboard-scorer/pkg/config"
	"github.com/nikogura/storyboard-scorer/pkg/feedback"
	"github.com/nikogura/storyboard-scorer/pkg/plan"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var (
	feedbackJSON     bool
	feedbackOffline  bool
	feedbackSection  string
	feedbackLanguage string
)

//nolint:gochecknoglobals // Cobra boilerplate
var feedbackCmd = &cobra.Command{
	Use:   "feedback [plan-file-or-url]",
	Short: "Get mentor feedback on each section of a storyboard",
	Long: `Asks the configured model for short, encouraging feedback on each non-empty section.
Without credentials (or with --offline) fixed messages are printed instead.

Examples:
  # Feedback on every section
  storyboard-scorer feedback ./cold-storage.md

  # One section, in Hindi
  storyboard-scorer feedback ./cold-storage.json --section s2 --language hi`,
	Args: cobra.ExactArgs(1),
	RunE: runFeedback,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(feedbackCmd)
	feedbackCmd.Flags().BoolVar(&feedbackJSON, "json", false, "Print feedback as JSON")
	feedbackCmd.Flags().BoolVar(&feedbackOffline, "offline", false, "Do not call the model")
	feedbackCmd.Flags().StringVar(&feedbackSection, "section", "", "Only this section id")
	feedbackCmd.Flags().StringVar(&feedbackLanguage, "language", "en", "Language for the feedback")
}

func runFeedback(cmd *cobra.Command, args []string) (err error) {
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

	var svc *feedback.Service
	svc, err = buildFeedback(ctx, cfg, feedbackOffline, newLogger())
	if err != nil {
		return err
	}

	results := make([]feedback.Feedback, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		if feedbackSection != "" && s.ID != feedbackSection {
			continue
		}
		if strings.TrimSpace(s.Content) == "" {
			continue
		}

		var fb feedback.Feedback
		fb, err = svc.Generate(ctx, feedback.RequestFor(s, feedbackLanguage))
		if err != nil {
			err = errors.Wrapf(err, "feedback for section %s", s.ID)
			return err
		}
		results = append(results, fb)
	}

	if feedbackSection != "" && len(results) == 0 {
		err = errors.Errorf("section %q not found or empty", feedbackSection)
		return err
	}

	if feedbackJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		err = enc.Encode(results)
		return err
	}

	out := cmd.OutOrStdout()
	for i, fb := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "[%s] %s\n", fb.SectionID, fb.Content)
		for _, sug := range fb.Suggestions {
			fmt.Fprintf(out, "  - %s\n", sug)
		}
	}

	return err
}
