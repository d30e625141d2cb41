package scorer

import (
	"strings"

	"github.com/nikogura/storyboard-scorer/pkg/plan"
)

// filler returns n copies of a word no rule keyword matches.
func filler(n int) string {
	return strings.TrimSpace(strings.Repeat("lorem ", n))
}

// withWords pads text with filler up to n words.
func withWords(text string, n int) string {
	have := plan.WordCount(text)
	if have >= n {
		return text
	}
	return text + " " + filler(n-have)
}

// strongPlan has every standard section completed with 60 words and every keyword group covered.
func strongPlan() plan.Document {
	body := filler(60)
	return plan.Document{
		ID:    "strong",
		Title: "Strong Plan",
		Sections: []plan.Section{
			{ID: "s1", Kind: plan.KindProblem, Title: "Problem", Content: body, IsCompleted: true, Order: 0},
			{ID: "s2", Kind: plan.KindSolution, Title: "Solution", Content: body, IsCompleted: true, Order: 1},
			{ID: "s3", Kind: plan.KindCustomer, Title: "Customer", Content: withWords("age need market", 60), IsCompleted: true, Order: 2},
			{ID: "s4", Kind: plan.KindRevenue, Title: "Revenue", Content: withWords("subscription price revenue", 60), IsCompleted: true, Order: 3},
			{ID: "s5", Kind: plan.KindRisks, Title: "Risks", Content: body, IsCompleted: true, Order: 4},
		},
		CompletionPercentage: 100,
	}
}

// coldStoragePlan is a realistic, partially finished storyboard.
func coldStoragePlan() plan.Document {
	return plan.Document{
		ID:    "cold-storage",
		Title: "Village Cold Storage Co-op",
		Sections: []plan.Section{
			{
				ID: "problem", Kind: plan.KindProblem, Title: "Problem", Order: 0, IsCompleted: true,
				Content: "Small farmers in our district lose up to a third of their vegetables after harvest because " +
					"there is no cold storage nearby and traders pay low prices for produce that must be sold the same day.",
			},
			{
				ID: "solution", Kind: plan.KindSolution, Title: "Solution", Order: 1, IsCompleted: true,
				Content: "A solar powered cold storage room shared by farmers in the district lets them keep vegetables " +
					"fresh after harvest and sell to traders when prices are better instead of the same day.",
			},
			{
				ID: "customer", Kind: plan.KindCustomer, Title: "Target Customer", Order: 2, IsCompleted: true,
				Content: "Smallholder farmers aged 25 to 60 with low income in a 20 km radius. They need a way to store " +
					"produce. The market is about 1,200 households.",
			},
			{
				ID: "revenue", Kind: plan.KindRevenue, Title: "Revenue Model", Order: 3,
				Content: "A monthly subscription per crate slot, with a small fee for drop-in storage.",
			},
			{
				ID: "risks", Kind: plan.KindRisks, Title: "Risks", Order: 4,
			},
		},
		CompletionPercentage: 60,
	}
}
