package sharktank

import (
	"testing"

	"github.com/nikogura/storyboard-scorer/pkg/readiness"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const judgeReply = `{
  "overall": 82,
  "uniqueness": 90,
  "feasibility": 75,
  "marketPotential": 85,
  "scalability": 60,
  "teamExecution": 70,
  "financialViability": 65,
  "innovation": 88,
  "competitiveAdvantage": 72,
  "riskAssessment": 55,
  "readinessLevel": "ready",
  "detailedFeedback": {
    "strengths": ["Clear problem"],
    "weaknesses": ["Thin financials"],
    "recommendations": ["Validate pricing"],
    "investmentReadiness": "Promising after a pilot"
  },
  "categoryBreakdown": [
    {"category": "Uniqueness", "score": 90, "feedback": "Novel for the region"}
  ]
}`

func TestParse(t *testing.T) {
	score, err := Parse(judgeReply)
	require.NoError(t, err)

	assert.InDelta(t, 82, score.Overall, 1e-9)
	assert.InDelta(t, 90, score.Uniqueness, 1e-9)
	assert.InDelta(t, 55, score.RiskAssessment, 1e-9)
	assert.Equal(t, []string{"Clear problem"}, score.DetailedFeedback.Strengths)
	assert.Equal(t, "Promising after a pilot", score.DetailedFeedback.InvestmentReadiness)
	require.Len(t, score.CategoryBreakdown, 1)
	assert.Equal(t, "Uniqueness", score.CategoryBreakdown[0].Category)
	assert.Equal(t, SourceRemote, score.Source)
}

func TestParseDerivesReadinessFromOverall(t *testing.T) {
	// The reply claims "ready" but 82 classifies as excellent.
	score, err := Parse(judgeReply)
	require.NoError(t, err)
	assert.Equal(t, readiness.Excellent, score.ReadinessLevel)
}

func TestParseClampsScores(t *testing.T) {
	reply := `{"overall": 140, "uniqueness": -5, "feasibility": 100.5,
		"categoryBreakdown": [{"category": "Risk", "score": 250, "feedback": "x"}]}`

	score, err := Parse(reply)
	require.NoError(t, err)

	assert.InDelta(t, 100, score.Overall, 1e-9)
	assert.Zero(t, score.Uniqueness)
	assert.InDelta(t, 100, score.Feasibility, 1e-9)
	assert.InDelta(t, 100, score.CategoryBreakdown[0].Score, 1e-9)
	assert.Equal(t, readiness.Ready, score.ReadinessLevel)
}

func TestParseDefaults(t *testing.T) {
	score, err := Parse(`{"overall": 45}`)
	require.NoError(t, err)

	assert.NotNil(t, score.DetailedFeedback.Strengths)
	assert.Empty(t, score.DetailedFeedback.Strengths)
	assert.NotNil(t, score.DetailedFeedback.Weaknesses)
	assert.NotNil(t, score.DetailedFeedback.Recommendations)
	assert.Equal(t, PlaceholderReadiness, score.DetailedFeedback.InvestmentReadiness)
	assert.NotNil(t, score.CategoryBreakdown)
	assert.Empty(t, score.CategoryBreakdown)
	assert.Zero(t, score.MarketPotential)
	assert.Equal(t, readiness.Developing, score.ReadinessLevel)
}

func TestParseDefaultsWrongFieldTypes(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		check func(t *testing.T, score Score)
	}{
		{
			name:  "strengths is a string",
			reply: `{"overall": 85, "detailedFeedback": {"strengths": "Clear problem", "weaknesses": ["Thin financials"]}}`,
			check: func(t *testing.T, score Score) {
				assert.InDelta(t, 85, score.Overall, 1e-9)
				assert.NotNil(t, score.DetailedFeedback.Strengths)
				assert.Empty(t, score.DetailedFeedback.Strengths)
				assert.Equal(t, []string{"Thin financials"}, score.DetailedFeedback.Weaknesses)
			},
		},
		{
			name:  "breakdown is an object",
			reply: `{"overall": 70, "uniqueness": 64, "categoryBreakdown": {"category": "Uniqueness", "score": 64}}`,
			check: func(t *testing.T, score Score) {
				assert.InDelta(t, 70, score.Overall, 1e-9)
				assert.InDelta(t, 64, score.Uniqueness, 1e-9)
				assert.NotNil(t, score.CategoryBreakdown)
				assert.Empty(t, score.CategoryBreakdown)
			},
		},
		{
			name:  "numeric string",
			reply: `{"overall": "85", "feasibility": 40}`,
			check: func(t *testing.T, score Score) {
				assert.InDelta(t, 85, score.Overall, 1e-9)
				assert.InDelta(t, 40, score.Feasibility, 1e-9)
				assert.Equal(t, readiness.Excellent, score.ReadinessLevel)
			},
		},
		{
			name:  "non-numeric string",
			reply: `{"overall": "eighty", "innovation": 55}`,
			check: func(t *testing.T, score Score) {
				assert.Zero(t, score.Overall)
				assert.InDelta(t, 55, score.Innovation, 1e-9)
			},
		},
		{
			name:  "narrative is not a string",
			reply: `{"overall": 50, "detailedFeedback": {"investmentReadiness": 3, "recommendations": ["Pilot first", 7]}}`,
			check: func(t *testing.T, score Score) {
				assert.Equal(t, PlaceholderReadiness, score.DetailedFeedback.InvestmentReadiness)
				assert.Equal(t, []string{"Pilot first"}, score.DetailedFeedback.Recommendations)
			},
		},
		{
			name:  "feedback is a list",
			reply: `{"overall": 50, "detailedFeedback": ["good"]}`,
			check: func(t *testing.T, score Score) {
				assert.Empty(t, score.DetailedFeedback.Strengths)
				assert.Equal(t, PlaceholderReadiness, score.DetailedFeedback.InvestmentReadiness)
			},
		},
		{
			name:  "malformed breakdown rows are skipped",
			reply: `{"overall": 50, "categoryBreakdown": ["Uniqueness", {"category": "Risk", "score": "90", "feedback": 1}]}`,
			check: func(t *testing.T, score Score) {
				require.Len(t, score.CategoryBreakdown, 1)
				assert.Equal(t, "Risk", score.CategoryBreakdown[0].Category)
				assert.InDelta(t, 90, score.CategoryBreakdown[0].Score, 1e-9)
				assert.Empty(t, score.CategoryBreakdown[0].Feedback)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := Parse(tt.reply)
			require.NoError(t, err)
			assert.Equal(t, SourceRemote, score.Source)
			tt.check(t, score)
		})
	}
}

func TestParseBlankNarrativeUsesPlaceholder(t *testing.T) {
	score, err := Parse(`{"overall": 10, "detailedFeedback": {"investmentReadiness": "  "}}`)
	require.NoError(t, err)
	assert.Equal(t, PlaceholderReadiness, score.DetailedFeedback.InvestmentReadiness)
}

func TestParseCodeFences(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"json fence", "```json\n" + judgeReply + "\n```"},
		{"bare fence", "```\n" + judgeReply + "\n```\n"},
		{"surrounding whitespace", "\n\n  " + judgeReply + "  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := Parse(tt.reply)
			require.NoError(t, err)
			assert.InDelta(t, 82, score.Overall, 1e-9)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"prose", "I think this plan is great!"},
		{"truncated", `{"overall": 80, "uniqueness": `},
		{"array", `[1, 2, 3]`},
		{"null", "null"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.reply)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidResponse))
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFences(`{"a":1}`))
	assert.Equal(t, "", StripCodeFences("```"))
}
