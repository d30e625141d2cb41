package llm

import (
	"fmt"
	"strings"

	"github.com/nikogura/storyboard-scorer/pkg/plan"
)

// judgeSystemPrompt frames the model as a Shark Tank judge.
const judgeSystemPrompt = `You are a Shark Tank judge evaluating a business plan. You must provide scores (0-100) for each category and detailed feedback. Be critical but constructive. Focus on real-world business viability, market potential, and execution feasibility.`

const notProvided = "Not provided"

// sectionText returns the content of the first section of a kind, or a placeholder.
func sectionText(doc plan.Document, kind plan.Kind) (text string) {
	text = notProvided
	section, found := doc.FindKind(kind)
	if found && strings.TrimSpace(section.Content) != "" {
		text = section.Content
	}
	return text
}

// customSections lists any custom sections so the judge sees the whole storyboard.
func customSections(doc plan.Document) (text string) {
	var b strings.Builder
	for _, s := range doc.Sections {
		if s.Kind != plan.KindCustom || strings.TrimSpace(s.Content) == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", s.Title, s.Content)
	}
	text = b.String()
	return text
}

// buildEvaluationPrompt creates the judge prompt for one storyboard.
func buildEvaluationPrompt(doc plan.Document) (prompt string) {
	extra := customSections(doc)
	if extra != "" {
		extra = "\nADDITIONAL SECTIONS:\n" + extra
	}

	prompt = fmt.Sprintf(`Evaluate this business plan as a Shark Tank judge. Provide scores (0-100) and detailed feedback for each category.

BUSINESS PLAN DETAILS:
Title: %s
Problem: %s
Solution: %s
Target Customer: %s
Revenue Model: %s
Risks: %s
%s
EVALUATION CRITERIA:
1. UNIQUENESS (0-100): How unique and innovative is this idea? Is it solving a real problem in a new way?
2. FEASIBILITY (0-100): How realistic is it to execute this business? Consider resources, skills, and market conditions.
3. MARKET POTENTIAL (0-100): How large is the addressable market? Is there real demand for this solution?
4. SCALABILITY (0-100): Can this business grow significantly? What are the growth limitations?
5. TEAM EXECUTION (0-100): Based on the plan quality, how well can the team execute? (Assess based on plan detail and thoughtfulness)
6. FINANCIAL VIABILITY (0-100): Is the revenue model realistic? Are the financial projections sound?
7. INNOVATION (0-100): How innovative is the approach? Does it bring something new to the market?
8. COMPETITIVE ADVANTAGE (0-100): What makes this better than existing solutions? What's the moat?
9. RISK ASSESSMENT (0-100): How well have risks been identified and addressed?

RESPONSE FORMAT (JSON):
{
  "overall": 75,
  "uniqueness": 80,
  "feasibility": 70,
  "marketPotential": 85,
  "scalability": 60,
  "teamExecution": 75,
  "financialViability": 70,
  "innovation": 80,
  "competitiveAdvantage": 65,
  "riskAssessment": 70,
  "readinessLevel": "good",
  "detailedFeedback": {
    "strengths": ["Clear problem identification", "Innovative solution approach"],
    "weaknesses": ["Limited market research", "Unclear revenue projections"],
    "recommendations": ["Conduct market validation", "Develop detailed financial model"],
    "investmentReadiness": "Needs more work on financial projections and market validation before seeking investment"
  },
  "categoryBreakdown": [
    {
      "category": "Uniqueness",
      "score": 80,
      "feedback": "The solution addresses a real problem in a novel way, but needs more differentiation from competitors"
    }
  ]
}

Return ONLY valid JSON (no markdown, no commentary).

Be critical but fair. Consider this is for rural entrepreneurs, so adjust expectations accordingly but maintain business standards.`,
		doc.Title,
		sectionText(doc, plan.KindProblem),
		sectionText(doc, plan.KindSolution),
		sectionText(doc, plan.KindCustomer),
		sectionText(doc, plan.KindRevenue),
		sectionText(doc, plan.KindRisks),
		extra,
	)

	return prompt
}
