package feedback

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/nikogura/storyboard-scorer/pkg/sharktank"
	"github.com/pkg/errors"
)

// mentorSystemPrompt frames the model as an encouraging mentor.
const mentorSystemPrompt = `You are an encouraging business mentor helping rural entrepreneurs develop their business plans.
Always start with positive reinforcement, then provide constructive suggestions.
Use simple, encouraging language that builds confidence.
Focus on strengths first, then gently suggest improvements.`

// ErrEmptyFeedback is returned when the model answers with no usable text.
var ErrEmptyFeedback = errors.New("mentor reply contained no feedback")

//nolint:gochecknoglobals // compiled once
var listItem = regexp.MustCompile(`^(\d+\.|[-*•])\s*`)

//nolint:gochecknoglobals // fixed lookup table
var positiveMarkers = []string{"great", "excellent", "good", "well done"}

// buildPrompt asks for one short piece of feedback as a JSON object.
func buildPrompt(req Request) (prompt string) {
	var b strings.Builder

	fmt.Fprintf(&b, "Please provide encouraging feedback for a business plan section about %q.\n\n", string(req.SectionType))
	fmt.Fprintf(&b, "Content: %q\n\n", req.Content)

	if len(req.PreviousFeedback) > 0 {
		previous := make([]string, 0, len(req.PreviousFeedback))
		for _, f := range req.PreviousFeedback {
			previous = append(previous, f.Content)
		}
		fmt.Fprintf(&b, "Previous feedback given: %s\n\n", strings.Join(previous, ", "))
	}

	b.WriteString("Please provide:\n")
	b.WriteString("1. Start with something positive about their work\n")
	b.WriteString("2. Give 1-2 specific suggestions for improvement\n")
	b.WriteString("3. End with encouragement\n")
	b.WriteString("Keep it brief (under 100 words) and encouraging. Use simple language.\n\n")
	b.WriteString(`Return ONLY valid JSON: {"feedback": "<your feedback>", "suggestions": ["<suggestion>", "..."]}`)

	if req.Language != "" && req.Language != "en" {
		fmt.Fprintf(&b, "\n\nRespond in %s language.", req.Language)
	}

	prompt = b.String()
	return prompt
}

// parseReply turns a mentor reply into feedback. A JSON object supplies the feedback text and
// suggestions; any other reply is taken as plain text with numbered or bulleted lines as
// suggestions.
func parseReply(text string, req Request, now time.Time) (fb Feedback, err error) {
	content := sharktank.StripCodeFences(text)
	var suggestions []string

	var reply struct {
		Feedback    json.RawMessage `json:"feedback"`
		Suggestions json.RawMessage `json:"suggestions"`
	}
	if strings.HasPrefix(content, "{") && json.Unmarshal([]byte(content), &reply) == nil {
		content = ""
		_ = json.Unmarshal(reply.Feedback, &content)
		if json.Unmarshal(reply.Suggestions, &suggestions) != nil {
			suggestions = nil
		}
	}

	content = strings.TrimSpace(content)
	if content == "" {
		err = ErrEmptyFeedback
		return fb, err
	}

	if len(suggestions) == 0 {
		suggestions = extractSuggestions(content)
	}

	positive := isPositive(content)
	kind := TypeSuggestion
	if positive {
		kind = TypeEncouragement
	}

	fb = Feedback{
		ID:          newID(),
		SectionID:   req.SectionID,
		Content:     content,
		Type:        kind,
		Confidence:  remoteConfidence,
		Timestamp:   now,
		IsPositive:  positive,
		Suggestions: suggestions,
		Remote:      true,
	}
	return fb, err
}

func isPositive(content string) (ok bool) {
	lower := strings.ToLower(content)
	for _, m := range positiveMarkers {
		if strings.Contains(lower, m) {
			ok = true
			return ok
		}
	}
	return ok
}

// extractSuggestions collects numbered and bulleted lines.
func extractSuggestions(content string) (suggestions []string) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !listItem.MatchString(line) {
			continue
		}
		item := strings.TrimSpace(listItem.ReplaceAllString(line, ""))
		if item != "" {
			suggestions = append(suggestions, item)
		}
	}
	return suggestions
}
