package scorer

// Recommendation texts.
const (
	RecommendHighPriority = "Address high-priority issues first"
	RecommendBasics       = "Focus on completing all sections with basic content"
	RecommendDetail       = "Improve content quality and detail"
	RecommendPolish       = "Polish and refine your business plan"
	RecommendReady        = "Your business plan is ready for review!"
)

// Recommend derives the ordered, de-duplicated recommendation list from the rule outcomes and
// the overall score.
func Recommend(outcomes []Outcome, overall float64) (recommendations []string) {
	var all []string

	for _, o := range outcomes {
		if o.Result.Severity == SeverityHigh {
			all = append(all, RecommendHighPriority)
			break
		}
	}

	for _, o := range outcomes {
		if o.Result.Score < 50 {
			all = append(all, o.Result.Suggestions...)
		}
	}

	switch {
	case overall < 50:
		all = append(all, RecommendBasics)
	case overall < 70:
		all = append(all, RecommendDetail)
	case overall < 90:
		all = append(all, RecommendPolish)
	default:
		all = append(all, RecommendReady)
	}

	recommendations = dedupe(all)
	return recommendations
}

func dedupe(items []string) (out []string) {
	out = make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
