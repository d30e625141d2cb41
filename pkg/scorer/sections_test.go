package scorer

import (
	"testing"

	"github.com/nikogura/storyboard-scorer/pkg/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSections(t *testing.T) {
	doc := plan.Document{Sections: []plan.Section{
		{ID: "full", Kind: plan.KindProblem, Title: "Problem", Content: filler(60), IsCompleted: true, Order: 0},
		{ID: "short", Kind: plan.KindSolution, Title: "Solution", Content: filler(10), Order: 1},
		{ID: "empty", Kind: plan.KindCustomer, Title: "Customer", Order: 2},
		{ID: "ticked", Kind: plan.KindRevenue, Title: "Revenue", IsCompleted: true, Order: 3},
		{ID: "long", Kind: plan.KindRisks, Title: "Risks", Content: filler(80), Order: 4},
	}}

	breakdown := AnalyzeSections(doc, DefaultCriteria())
	require.Len(t, breakdown, 5)

	tests := []struct {
		id          string
		score       float64
		issues      []string
		suggestions []string
	}{
		{"full", 100, []string{}, []string{}},
		{"short", 20, []string{"Section not marked as complete", "Insufficient content"}, []string{"Add at least 50 words"}},
		{"empty", 0, []string{"Section not marked as complete", "Insufficient content", "No content"}, []string{"Add at least 50 words", "Add content to this section"}},
		{"ticked", 50, []string{"Insufficient content", "No content"}, []string{"Add at least 50 words", "Add content to this section"}},
		{"long", 50, []string{"Section not marked as complete"}, []string{}},
	}

	for i, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got := breakdown[i]
			assert.Equal(t, tt.id, got.SectionID)
			assert.Equal(t, doc.Sections[i].Title, got.SectionTitle)
			assert.InDelta(t, tt.score, got.Score, 1e-9)
			assert.Equal(t, tt.issues, got.Issues)
			assert.Equal(t, tt.suggestions, got.Suggestions)
		})
	}
}

func TestAnalyzeSectionsMinimumFromCriteria(t *testing.T) {
	doc := plan.Document{Sections: []plan.Section{{ID: "a", Kind: plan.KindProblem, Content: filler(10), Order: 0}}}

	c := DefaultCriteria()
	c.MinWordsPerSection = 10

	breakdown := AnalyzeSections(doc, c)
	assert.InDelta(t, 50, breakdown[0].Score, 1e-9)
}

func TestAnalyzeSectionsMonotonic(t *testing.T) {
	c := DefaultCriteria()
	base := plan.Section{ID: "a", Kind: plan.KindProblem, Content: filler(5)}

	score := func(s plan.Section) float64 {
		return AnalyzeSections(plan.Document{Sections: []plan.Section{s}}, c)[0].Score
	}

	before := score(base)

	completed := base
	completed.IsCompleted = true
	assert.GreaterOrEqual(t, score(completed), before)

	longer := base
	longer.Content = filler(60)
	assert.GreaterOrEqual(t, score(longer), before)
}

func TestAnalyzeSectionsEmptyDocument(t *testing.T) {
	breakdown := AnalyzeSections(plan.Document{}, DefaultCriteria())
	assert.NotNil(t, breakdown)
	assert.Empty(t, breakdown)
}
