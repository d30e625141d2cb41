package scorer

import (
	"fmt"

	"github.com/nikogura/storyboard-scorer/pkg/plan"
)

// SectionScore is the per-section breakdown shown next to each storyboard card.
type SectionScore struct {
	SectionID    string   `json:"sectionId"`
	SectionTitle string   `json:"section"`
	Score        float64  `json:"score"`
	Issues       []string `json:"issues"`
	Suggestions  []string `json:"suggestions"`
}

// AnalyzeSections scores each section on its own, independent of the rule set:
// 50 for being marked complete, 30 for reaching the minimum word count, 20 for having any words.
func AnalyzeSections(doc plan.Document, c Criteria) (breakdown []SectionScore) {
	breakdown = make([]SectionScore, 0, len(doc.Sections))

	for _, section := range doc.Sections {
		words := section.WordCount()
		score := 0.0
		issues := []string{}
		suggestions := []string{}

		if section.IsCompleted {
			score += 50
		} else {
			issues = append(issues, "Section not marked as complete")
		}

		if words >= c.MinWordsPerSection {
			score += 30
		} else {
			issues = append(issues, "Insufficient content")
			suggestions = append(suggestions, fmt.Sprintf("Add at least %d words", c.MinWordsPerSection))
		}

		if words > 0 {
			score += 20
		} else {
			issues = append(issues, "No content")
			suggestions = append(suggestions, "Add content to this section")
		}

		breakdown = append(breakdown, SectionScore{
			SectionID:    section.ID,
			SectionTitle: section.Title,
			Score:        min(score, 100),
			Issues:       issues,
			Suggestions:  suggestions,
		})
	}

	return breakdown
}
