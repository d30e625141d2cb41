package sharktank

import (
	"context"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/nikogura/storyboard-scorer/pkg/plan"
	"github.com/nikogura/storyboard-scorer/pkg/readiness"
)

const (
	// substantialChars is the trimmed length a section must exceed to count toward the heuristic.
	substantialChars = 50
	// fallbackCap keeps heuristic scores below anything a real judge would call excellent.
	fallbackCap = 70
)

// Dimension multipliers applied to the heuristic base score.
const (
	UniquenessFactor           = 0.9
	FeasibilityFactor          = 0.8
	MarketPotentialFactor      = 0.7
	ScalabilityFactor          = 0.6
	TeamExecutionFactor        = 0.8
	FinancialViabilityFactor   = 0.7
	InnovationFactor           = 0.9
	CompetitiveAdvantageFactor = 0.6
	RiskAssessmentFactor       = 0.7
)

// Fallback is the deterministic local evaluator used when no remote judge is usable.
type Fallback struct{}

// Evaluate never fails.
func (Fallback) Evaluate(_ context.Context, doc plan.Document) (score Score, err error) {
	score = FallbackScore(doc)
	return score, err
}

// BaseScore returns min(completionRate * 0.8, 70), where completionRate is the percentage of
// sections whose trimmed content exceeds 50 characters.
func BaseScore(doc plan.Document) (base float64) {
	total := len(doc.Sections)
	if total == 0 {
		return base
	}

	substantial := 0
	for _, s := range doc.Sections {
		if utf8.RuneCountInString(strings.TrimSpace(s.Content)) > substantialChars {
			substantial++
		}
	}

	rate := float64(substantial) / float64(total) * 100
	base = math.Min(rate*0.8, fallbackCap)
	return base
}

// FallbackScore derives every dimension as a fixed fraction of BaseScore, rounded to whole points.
func FallbackScore(doc plan.Document) (score Score) {
	base := BaseScore(doc)

	score = Score{
		Overall:              math.Round(base),
		Uniqueness:           math.Round(base * UniquenessFactor),
		Feasibility:          math.Round(base * FeasibilityFactor),
		MarketPotential:      math.Round(base * MarketPotentialFactor),
		Scalability:          math.Round(base * ScalabilityFactor),
		TeamExecution:        math.Round(base * TeamExecutionFactor),
		FinancialViability:   math.Round(base * FinancialViabilityFactor),
		Innovation:           math.Round(base * InnovationFactor),
		CompetitiveAdvantage: math.Round(base * CompetitiveAdvantageFactor),
		RiskAssessment:       math.Round(base * RiskAssessmentFactor),
		ReadinessLevel:       readiness.Classify(base, readiness.DefaultThresholds()),
		DetailedFeedback: Feedback{
			Strengths:           []string{"Good progress on business plan development"},
			Weaknesses:          []string{"Needs more detailed analysis"},
			Recommendations:     []string{"Complete all sections with detailed content", "Conduct market research"},
			InvestmentReadiness: "Plan needs more development before investment consideration",
		},
		CategoryBreakdown: []CategoryScore{
			{
				Category: "Overall Assessment",
				Score:    math.Round(base),
				Feedback: "Basic business plan structure in place, needs more detailed content and analysis",
			},
		},
		Source: SourceFallback,
	}

	return score
}
