package scorer

import (
	"math"

	"github.com/nikogura/storyboard-scorer/pkg/plan"
)

// Outcome pairs a rule with the result it produced.
type Outcome struct {
	RuleID   string   `json:"ruleId"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Weight   float64  `json:"weight"`
	Result   Result   `json:"result"`
}

// CategoryScores holds the four category scores and the overall score derived from them.
type CategoryScores struct {
	Overall      float64 `json:"overall"`
	Completeness float64 `json:"completeness"`
	Quality      float64 `json:"quality"`
	Structure    float64 `json:"structure"`
	Content      float64 `json:"content"`
}

// EvaluateRules runs every rule against the document.
func EvaluateRules(rules []Rule, doc plan.Document, c Criteria) (outcomes []Outcome) {
	outcomes = make([]Outcome, 0, len(rules))
	for _, r := range rules {
		outcomes = append(outcomes, Outcome{
			RuleID:   r.ID,
			Name:     r.Name,
			Category: r.Category,
			Weight:   r.Weight,
			Result:   r.Evaluate(doc, c),
		})
	}
	return outcomes
}

// Aggregate computes the weighted mean of each category and the unweighted mean of the four
// categories. A category without rules scores 0 and still counts toward the overall mean.
func Aggregate(outcomes []Outcome) (scores CategoryScores) {
	scores.Completeness = CategoryScore(outcomes, CategoryCompleteness)
	scores.Quality = CategoryScore(outcomes, CategoryQuality)
	scores.Structure = CategoryScore(outcomes, CategoryStructure)
	scores.Content = CategoryScore(outcomes, CategoryContent)
	scores.Overall = (scores.Completeness + scores.Quality + scores.Structure + scores.Content) / 4
	return scores
}

// CategoryScore is sum(score*weight)/sum(weight) over the rules in one category.
func CategoryScore(outcomes []Outcome, category Category) (score float64) {
	var totalWeight, weighted float64
	for _, o := range outcomes {
		if o.Category != category {
			continue
		}
		totalWeight += o.Weight
		weighted += clamp(o.Result.Score) * o.Weight
	}

	if totalWeight <= 0 {
		return score
	}
	score = weighted / totalWeight
	return score
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
