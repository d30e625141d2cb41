package sharktank

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/nikogura/storyboard-scorer/pkg/readiness"
	"github.com/pkg/errors"
)

// PlaceholderReadiness fills a missing investment-readiness narrative.
const PlaceholderReadiness = "Needs evaluation"

// ErrInvalidResponse marks a judge reply that is not a JSON object.
var ErrInvalidResponse = errors.New("invalid response format from evaluator")

// Parse decodes a judge reply. Only a reply that is not a JSON object is an error. A field with
// the wrong type falls back to its default: numbers to 0, lists to empty, the narrative to
// PlaceholderReadiness. Numbers are clamped to [0, 100] and readiness is re-derived from the
// clamped overall score rather than trusted from the reply.
func Parse(text string) (score Score, err error) {
	cleaned := StripCodeFences(text)
	if !strings.HasPrefix(cleaned, "{") {
		err = errors.Wrapf(ErrInvalidResponse, "expected a JSON object: %s", truncate(cleaned, 200))
		return score, err
	}

	var fields map[string]json.RawMessage
	err = json.Unmarshal([]byte(cleaned), &fields)
	if err != nil {
		err = errors.Wrapf(ErrInvalidResponse, "%s: %s", err.Error(), truncate(cleaned, 200))
		return score, err
	}

	score = Score{
		Overall:              Clamp(number(fields["overall"])),
		Uniqueness:           Clamp(number(fields["uniqueness"])),
		Feasibility:          Clamp(number(fields["feasibility"])),
		MarketPotential:      Clamp(number(fields["marketPotential"])),
		Scalability:          Clamp(number(fields["scalability"])),
		TeamExecution:        Clamp(number(fields["teamExecution"])),
		FinancialViability:   Clamp(number(fields["financialViability"])),
		Innovation:           Clamp(number(fields["innovation"])),
		CompetitiveAdvantage: Clamp(number(fields["competitiveAdvantage"])),
		RiskAssessment:       Clamp(number(fields["riskAssessment"])),
		DetailedFeedback: Feedback{
			Strengths:           []string{},
			Weaknesses:          []string{},
			Recommendations:     []string{},
			InvestmentReadiness: PlaceholderReadiness,
		},
		CategoryBreakdown: []CategoryScore{},
		Source:            SourceRemote,
	}
	score.ReadinessLevel = readiness.Classify(score.Overall, readiness.DefaultThresholds())

	var fb map[string]json.RawMessage
	if json.Unmarshal(fields["detailedFeedback"], &fb) == nil {
		score.DetailedFeedback.Strengths = stringList(fb["strengths"])
		score.DetailedFeedback.Weaknesses = stringList(fb["weaknesses"])
		score.DetailedFeedback.Recommendations = stringList(fb["recommendations"])
		if narrative := str(fb["investmentReadiness"]); strings.TrimSpace(narrative) != "" {
			score.DetailedFeedback.InvestmentReadiness = narrative
		}
	}

	var rows []json.RawMessage
	if json.Unmarshal(fields["categoryBreakdown"], &rows) == nil {
		for _, row := range rows {
			var cols map[string]json.RawMessage
			if json.Unmarshal(row, &cols) != nil || cols == nil {
				continue
			}
			score.CategoryBreakdown = append(score.CategoryBreakdown, CategoryScore{
				Category: str(cols["category"]),
				Score:    Clamp(number(cols["score"])),
				Feedback: str(cols["feedback"]),
			})
		}
	}

	return score, err
}

// number reads a JSON number or a numeric string. Anything else is 0.
func number(raw json.RawMessage) (v float64) {
	if json.Unmarshal(raw, &v) == nil {
		return v
	}

	var s string
	if json.Unmarshal(raw, &s) == nil {
		parsed, perr := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if perr == nil {
			v = parsed
		}
	}
	return v
}

// stringList keeps the string elements of a JSON array. A non-array yields an empty list.
func stringList(raw json.RawMessage) (list []string) {
	list = []string{}

	var items []json.RawMessage
	if json.Unmarshal(raw, &items) != nil {
		return list
	}

	for _, item := range items {
		var s string
		if json.Unmarshal(item, &s) == nil {
			list = append(list, s)
		}
	}
	return list
}

func str(raw json.RawMessage) (s string) {
	if json.Unmarshal(raw, &s) != nil {
		s = ""
	}
	return s
}

// Clamp bounds v to [0, 100]. NaN becomes 0.
func Clamp(v float64) (out float64) {
	out = math.Max(0, math.Min(100, v))
	if math.IsNaN(out) {
		out = 0
	}
	return out
}

// StripCodeFences removes a surrounding ```json ... ``` (or bare ```) fence from a model reply.
func StripCodeFences(text string) (cleaned string) {
	cleaned = strings.TrimSpace(text)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}

	// Drop the opening fence line, including any language tag.
	newline := strings.IndexByte(cleaned, '\n')
	if newline == -1 {
		cleaned = ""
		return cleaned
	}
	cleaned = cleaned[newline+1:]

	cleaned = strings.TrimRight(cleaned, " \r\n")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	return cleaned
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
