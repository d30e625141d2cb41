package scorer

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/nikogura/storyboard-scorer/pkg/plan"
	"github.com/pkg/errors"
)

// Category groups rules for aggregation.
type Category string

const (
	CategoryCompleteness Category = "completeness"
	CategoryQuality      Category = "quality"
	CategoryStructure    Category = "structure"
	CategoryContent      Category = "content"
)

// Categories lists every category in report order.
func Categories() (cats []Category) {
	cats = []Category{CategoryCompleteness, CategoryQuality, CategoryStructure, CategoryContent}
	return cats
}

// Severity ranks how urgently a failing rule should be addressed.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Result is the outcome of one rule against one document.
type Result struct {
	IsValid     bool     `json:"isValid"`
	Score       float64  `json:"score"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
	Severity    Severity `json:"severity"`
}

// Evaluator scores one aspect of a document. It must be pure.
type Evaluator func(doc plan.Document, c Criteria) Result

// Rule is a weighted, independent scoring rule.
type Rule struct {
	ID          string
	Name        string
	Description string
	Category    Category
	Weight      float64 // (0, 1], relative importance inside its category
	Evaluate    Evaluator
}

var (
	demographicsPattern = regexp.MustCompile(`\b(age|gender|income|location|education)\b`)
	needsPattern        = regexp.MustCompile(`\b(need|want|problem|pain|desire)\b`)
	marketSizePattern   = regexp.MustCompile(`\b(market|size|population|customers|users)\b`)

	revenueModelPattern      = regexp.MustCompile(`\b(subscription|one-time|commission|advertising|freemium)\b`)
	pricingPattern           = regexp.MustCompile(`\b(price|cost|fee|charge|rate)\b`)
	revenueProjectionPattern = regexp.MustCompile(`\b(revenue|income|profit|earnings|forecast)\b`)
)

// DefaultRules returns the canonical rule set.
func DefaultRules() (rules []Rule) {
	rules = []Rule{
		{
			ID:          "section_completeness",
			Name:        "Section Completeness",
			Description: "All required sections are present and have content",
			Category:    CategoryCompleteness,
			Weight:      0.3,
			Evaluate:    evaluateSectionCompleteness,
		},
		{
			ID:          "word_count",
			Name:        "Adequate Content",
			Description: "Each section has sufficient content",
			Category:    CategoryContent,
			Weight:      0.2,
			Evaluate:    evaluateWordCount,
		},
		{
			ID:          "problem_solution_fit",
			Name:        "Problem-Solution Fit",
			Description: "Solution directly addresses the identified problem",
			Category:    CategoryQuality,
			Weight:      0.25,
			Evaluate:    evaluateProblemSolutionFit,
		},
		{
			ID:          "customer_focus",
			Name:        "Customer Focus",
			Description: "Clear identification of target customers",
			Category:    CategoryQuality,
			Weight:      0.15,
			Evaluate: keywordRule(plan.KindCustomer, "Customer", "Customer section completeness",
				"Add customer demographics, needs, and market size",
				demographicsPattern, needsPattern, marketSizePattern),
		},
		{
			ID:          "revenue_clarity",
			Name:        "Revenue Clarity",
			Description: "Clear and realistic revenue model",
			Category:    CategoryQuality,
			Weight:      0.1,
			Evaluate: keywordRule(plan.KindRevenue, "Revenue", "Revenue model clarity",
				"Specify revenue model, pricing, and projections",
				revenueModelPattern, pricingPattern, revenueProjectionPattern),
		},
	}
	return rules
}

// StructureRules returns optional rules for the structure category. They are kept out of the
// default set because enabling them changes every overall score.
func StructureRules() (rules []Rule) {
	rules = []Rule{
		{
			ID:          "required_sections",
			Name:        "Required Sections",
			Description: "Every required section type is present with content",
			Category:    CategoryStructure,
			Weight:      0.5,
			Evaluate:    evaluateRequiredSections,
		},
		{
			ID:          "section_length",
			Name:        "Section Length",
			Description: "No section exceeds the maximum word count",
			Category:    CategoryStructure,
			Weight:      0.5,
			Evaluate:    evaluateSectionLength,
		},
	}
	return rules
}

// ValidateRules checks a rule set before it is used for scoring.
func ValidateRules(rules []Rule) (err error) {
	seen := make(map[string]bool, len(rules))
	known := make(map[Category]bool)
	for _, c := range Categories() {
		known[c] = true
	}

	for i, r := range rules {
		if r.ID == "" {
			err = errors.Errorf("rule at index %d missing id", i)
			return err
		}
		if seen[r.ID] {
			err = errors.Errorf("duplicate rule id: %s", r.ID)
			return err
		}
		seen[r.ID] = true

		if !known[r.Category] {
			err = errors.Errorf("rule %s has unknown category %q", r.ID, r.Category)
			return err
		}
		if r.Weight <= 0 || r.Weight > 1 {
			err = errors.Errorf("rule %s weight %v outside (0, 1]", r.ID, r.Weight)
			return err
		}
		if r.Evaluate == nil {
			err = errors.Errorf("rule %s has no evaluator", r.ID)
			return err
		}
	}

	return err
}

func severityFor(score, high, medium float64) (sev Severity) {
	switch {
	case score < high:
		sev = SeverityHigh
	case score < medium:
		sev = SeverityMedium
	default:
		sev = SeverityLow
	}
	return sev
}

func suggestIf(failing bool, suggestions ...string) (out []string) {
	out = []string{}
	if failing {
		out = append(out, suggestions...)
	}
	return out
}

func percent(part, total int) (score float64) {
	if total == 0 {
		return score
	}
	score = float64(part) / float64(total) * 100
	return score
}

func evaluateSectionCompleteness(doc plan.Document, _ Criteria) (res Result) {
	completed := 0
	for _, s := range doc.Sections {
		if s.IsCompleted {
			completed++
		}
	}
	total := len(doc.Sections)
	score := percent(completed, total)

	res = Result{
		IsValid:     score >= 80,
		Score:       score,
		Message:     fmt.Sprintf("%d/%d sections completed", completed, total),
		Suggestions: suggestIf(score < 80, "Complete all required sections"),
		Severity:    severityFor(score, 50, 80),
	}
	return res
}

func evaluateWordCount(doc plan.Document, c Criteria) (res Result) {
	adequate := 0
	for _, s := range doc.Sections {
		if s.WordCount() >= c.MinWordsPerSection {
			adequate++
		}
	}
	total := len(doc.Sections)
	score := percent(adequate, total)

	res = Result{
		IsValid:     score >= 70,
		Score:       score,
		Message:     fmt.Sprintf("%d/%d sections have adequate content", adequate, total),
		Suggestions: suggestIf(score < 70, "Add more detail to each section"),
		Severity:    severityFor(score, 50, 70),
	}
	return res
}

func evaluateProblemSolutionFit(doc plan.Document, _ Criteria) (res Result) {
	problem, _ := doc.FindKind(plan.KindProblem)
	solution, _ := doc.FindKind(plan.KindSolution)

	problemWords := strings.Fields(strings.ToLower(problem.Content))
	solutionWords := strings.Fields(strings.ToLower(solution.Content))

	if len(problemWords) == 0 || len(solutionWords) == 0 {
		res = Result{
			IsValid:     false,
			Score:       0,
			Message:     "Problem and solution sections are required",
			Suggestions: []string{"Complete both problem and solution sections"},
			Severity:    SeverityHigh,
		}
		return res
	}

	inSolution := make(map[string]bool, len(solutionWords))
	for _, w := range solutionWords {
		inSolution[w] = true
	}

	// Repeated problem words count once per occurrence.
	common := 0
	for _, w := range problemWords {
		if inSolution[w] {
			common++
		}
	}

	longest := max(len(problemWords), len(solutionWords))
	score := math.Min(float64(common)/float64(longest)*100, 100)

	res = Result{
		IsValid:     score >= 30,
		Score:       score,
		Message:     fmt.Sprintf("Problem-solution alignment: %d%%", int(math.Round(score))),
		Suggestions: suggestIf(score < 30, "Ensure your solution directly addresses the problem"),
		Severity:    severityFor(score, 20, 30),
	}
	return res
}

// keywordRule scores a section by how many keyword groups it mentions, a third of the score each.
func keywordRule(kind plan.Kind, label, summary, advice string, groups ...*regexp.Regexp) (eval Evaluator) {
	eval = func(doc plan.Document, _ Criteria) (res Result) {
		section, _ := doc.FindKind(kind)
		if strings.TrimSpace(section.Content) == "" {
			res = Result{
				IsValid:     false,
				Score:       0,
				Message:     label + " section is required",
				Suggestions: []string{"Complete the " + strings.ToLower(label) + " section"},
				Severity:    SeverityHigh,
			}
			return res
		}

		content := strings.ToLower(section.Content)
		matched := 0
		for _, g := range groups {
			if g.MatchString(content) {
				matched++
			}
		}
		score := percent(matched, len(groups))

		res = Result{
			IsValid:     score >= 60,
			Score:       score,
			Message:     fmt.Sprintf("%s: %d%%", summary, int(math.Round(score))),
			Suggestions: suggestIf(score < 60, advice),
			Severity:    severityFor(score, 40, 60),
		}
		return res
	}
	return eval
}

func evaluateRequiredSections(doc plan.Document, c Criteria) (res Result) {
	if len(doc.Sections) == 0 {
		res = Result{
			Score:       0,
			Message:     "No sections present",
			Suggestions: []string{"Add the required sections"},
			Severity:    SeverityHigh,
		}
		return res
	}

	present := 0
	var missing []string
	for _, kind := range c.RequiredSections {
		section, found := doc.FindKind(kind)
		if found && strings.TrimSpace(section.Content) != "" {
			present++
			continue
		}
		missing = append(missing, string(kind))
	}

	score := 100.0
	if len(c.RequiredSections) > 0 {
		score = percent(present, len(c.RequiredSections))
	}

	suggestions := []string{}
	for _, kind := range missing {
		suggestions = append(suggestions, fmt.Sprintf("Add content to the %s section", kind))
	}

	res = Result{
		IsValid:     len(missing) == 0,
		Score:       score,
		Message:     fmt.Sprintf("%d/%d required sections present", present, len(c.RequiredSections)),
		Suggestions: suggestions,
		Severity:    severityFor(score, 50, 80),
	}
	return res
}

func evaluateSectionLength(doc plan.Document, c Criteria) (res Result) {
	within := 0
	for _, s := range doc.Sections {
		if s.WordCount() <= c.MaxWordsPerSection {
			within++
		}
	}
	total := len(doc.Sections)
	score := percent(within, total)

	res = Result{
		IsValid:     total > 0 && within == total,
		Score:       score,
		Message:     fmt.Sprintf("%d/%d sections within %d words", within, total, c.MaxWordsPerSection),
		Suggestions: suggestIf(within < total || total == 0, fmt.Sprintf("Keep each section under %d words", c.MaxWordsPerSection)),
		Severity:    severityFor(score, 50, 90),
	}
	return res
}
