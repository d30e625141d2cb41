package sharktank

import (
	"context"

	"github.com/nikogura/storyboard-scorer/pkg/plan"
	"github.com/nikogura/storyboard-scorer/pkg/readiness"
)

// Source records where a Score came from.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

// Score is a multi-dimensional investment-readiness assessment, every number in [0, 100].
type Score struct {
	Overall              float64         `json:"overall"`
	Uniqueness           float64         `json:"uniqueness"`
	Feasibility          float64         `json:"feasibility"`
	MarketPotential      float64         `json:"marketPotential"`
	Scalability          float64         `json:"scalability"`
	TeamExecution        float64         `json:"teamExecution"`
	FinancialViability   float64         `json:"financialViability"`
	Innovation           float64         `json:"innovation"`
	CompetitiveAdvantage float64         `json:"competitiveAdvantage"`
	RiskAssessment       float64         `json:"riskAssessment"`
	ReadinessLevel       readiness.Level `json:"readinessLevel"`
	DetailedFeedback     Feedback        `json:"detailedFeedback"`
	CategoryBreakdown    []CategoryScore `json:"categoryBreakdown"`
	Source               Source          `json:"source"`
}

// Feedback is the judge's narrative.
type Feedback struct {
	Strengths           []string `json:"strengths"`
	Weaknesses          []string `json:"weaknesses"`
	Recommendations     []string `json:"recommendations"`
	InvestmentReadiness string   `json:"investmentReadiness"`
}

// CategoryScore is one row of the judge's per-category breakdown.
type CategoryScore struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// Evaluator produces an investment-readiness score for a plan. Implementations may be slow and
// may fail; callers are expected to wrap them with Resilient.
type Evaluator interface {
	Evaluate(ctx context.Context, doc plan.Document) (score Score, err error)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(ctx context.Context, doc plan.Document) (Score, error)

// Evaluate calls f.
func (f EvaluatorFunc) Evaluate(ctx context.Context, doc plan.Document) (score Score, err error) {
	score, err = f(ctx, doc)
	return score, err
}
