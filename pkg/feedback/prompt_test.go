package feedback

import (
	"testing"
	"time"

	"github.com/nikogura/storyboard-scorer/pkg/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	req := Request{
		SectionID:        "c",
		SectionType:      plan.KindCustomer,
		Content:          "Smallholder farmers",
		PreviousFeedback: []Feedback{{Content: "Add ages"}, {Content: "Add income"}},
		Language:         "hi",
	}

	prompt := buildPrompt(req)

	assert.Contains(t, prompt, `section about "customer"`)
	assert.Contains(t, prompt, `Content: "Smallholder farmers"`)
	assert.Contains(t, prompt, "Previous feedback given: Add ages, Add income")
	assert.Contains(t, prompt, "Return ONLY valid JSON")
	assert.Contains(t, prompt, "Respond in hi language.")

	plain := buildPrompt(Request{SectionID: "c", SectionType: plan.KindCustomer, Content: "x", Language: "en"})
	assert.NotContains(t, plain, "Previous feedback")
	assert.NotContains(t, plain, "Respond in")
}

func TestParseReply(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	req := Request{SectionID: "s", SectionType: plan.KindSolution}

	tests := []struct {
		name        string
		reply       string
		content     string
		suggestions []string
		positive    bool
	}{
		{
			name:        "json with suggestions",
			reply:       `{"feedback": "Well done so far.", "suggestions": ["Compare with ice boxes"]}`,
			content:     "Well done so far.",
			suggestions: []string{"Compare with ice boxes"},
			positive:    true,
		},
		{
			name:        "fenced json, suggestions from the text",
			reply:       "```json\n{\"feedback\": \"Consider pricing.\\n1. Compare costs\\n- Ask farmers\"}\n```",
			content:     "Consider pricing.\n1. Compare costs\n- Ask farmers",
			suggestions: []string{"Compare costs", "Ask farmers"},
		},
		{
			name:        "plain text",
			reply:       "Excellent idea!\n• Add a pilot village",
			content:     "Excellent idea!\n• Add a pilot village",
			suggestions: []string{"Add a pilot village"},
			positive:    true,
		},
		{
			name:        "suggestions of the wrong type",
			reply:       `{"feedback": "Try naming competitors.", "suggestions": "none"}`,
			content:     "Try naming competitors.",
			suggestions: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, err := parseReply(tt.reply, req, now)
			require.NoError(t, err)
			assert.Equal(t, tt.content, fb.Content)
			assert.Equal(t, tt.suggestions, fb.Suggestions)
			assert.Equal(t, tt.positive, fb.IsPositive)
			if tt.positive {
				assert.Equal(t, TypeEncouragement, fb.Type)
			} else {
				assert.Equal(t, TypeSuggestion, fb.Type)
			}
			assert.Equal(t, now, fb.Timestamp)
		})
	}
}

func TestParseReplyEmpty(t *testing.T) {
	for _, reply := range []string{"", "   ", `{"feedback": 3}`, `{"suggestions": ["x"]}`} {
		_, err := parseReply(reply, Request{SectionID: "s"}, time.Now())
		assert.ErrorIs(t, err, ErrEmptyFeedback, reply)
	}
}
