package feedback

import (
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/nikogura/storyboard-scorer/pkg/plan"
	"github.com/pkg/errors"
)

// Type classifies the tone of a piece of mentor feedback.
type Type string

const (
	TypeEncouragement Type = "encouragement"
	TypeSuggestion    Type = "suggestion"
	TypeImprovement   Type = "improvement"
	TypeCelebration   Type = "celebration"
)

const (
	remoteConfidence   = 0.8
	fallbackConfidence = 0.6
	offlineConfidence  = 0.5
)

// ErrInvalidRequest is returned for a request without a section id.
var ErrInvalidRequest = errors.New("invalid feedback request")

// Feedback is one mentor comment on one section.
type Feedback struct {
	ID          string    `json:"id"`
	SectionID   string    `json:"sectionId"`
	Content     string    `json:"content"`
	Type        Type      `json:"type"`
	Confidence  float64   `json:"confidence"`
	Timestamp   time.Time `json:"timestamp"`
	IsPositive  bool      `json:"isPositive"`
	Suggestions []string  `json:"suggestions,omitempty"`
	Remote      bool      `json:"remote"`
}

// Request asks for feedback on the current content of a section.
type Request struct {
	SectionID        string     `json:"sectionId"`
	SectionType      plan.Kind  `json:"sectionType"`
	Content          string     `json:"content"`
	PreviousFeedback []Feedback `json:"previousFeedback,omitempty"`
	Language         string     `json:"language,omitempty"`
}

// Validate checks the request can be answered and keyed.
func (r Request) Validate() (err error) {
	if strings.TrimSpace(r.SectionID) == "" {
		err = errors.Wrap(ErrInvalidRequest, "sectionId is required")
		return err
	}
	return err
}

// RequestFor builds a request from a storyboard section.
func RequestFor(s plan.Section, language string) (req Request) {
	req = Request{
		SectionID:   s.ID,
		SectionType: s.Kind,
		Content:     s.Content,
		Language:    language,
	}
	return req
}

// CacheKey is "<section id>-<xxhash64 of content>".
func CacheKey(sectionID, content string) (key string) {
	key = sectionID + "-" + strconv.FormatUint(xxhash.Sum64String(content), 16)
	return key
}

// fallbackMessages are shown when the mentor model is unavailable or fails.
//
//nolint:gochecknoglobals // fixed lookup table
var fallbackMessages = map[plan.Kind]string{
	plan.KindProblem:  "Great start on identifying the problem! Consider adding more specific details about who experiences this problem and how often.",
	plan.KindSolution: "Nice work on your solution! Try to explain how your solution is different from existing alternatives.",
	plan.KindCustomer: "Good thinking about your customers! Consider adding more details about their demographics and needs.",
	plan.KindRevenue:  "Good start on your revenue model! Think about different ways you could make money from your business.",
	plan.KindRisks:    "Smart to think about risks! Consider adding specific strategies for how you'll address each risk.",
}

const genericFallback = "Keep up the great work! Your business plan is taking shape nicely."

// offlineMessages are used when remote calls are switched off.
//
//nolint:gochecknoglobals // fixed lookup table
var offlineMessages = []string{
	"Great progress! Keep working on this section.",
	"You're doing well! Consider adding more details.",
	"Nice work! Think about how this connects to other parts of your plan.",
	"Good start! Try to be more specific about your ideas.",
	"Excellent thinking! Consider the practical aspects of your idea.",
}

// FallbackMessage returns the fixed encouragement for a section kind.
func FallbackMessage(kind plan.Kind) (msg string) {
	msg, ok := fallbackMessages[kind]
	if !ok {
		msg = genericFallback
	}
	return msg
}

// Fallback is the deterministic feedback for a request.
func Fallback(req Request, now time.Time) (fb Feedback) {
	fb = Feedback{
		ID:         newID(),
		SectionID:  req.SectionID,
		Content:    FallbackMessage(req.SectionType),
		Type:       TypeEncouragement,
		Confidence: fallbackConfidence,
		Timestamp:  now,
		IsPositive: true,
	}
	return fb
}

// Offline picks one of the offline messages. The same content always gets the same message.
func Offline(req Request, now time.Time) (fb Feedback) {
	idx := xxhash.Sum64String(req.Content) % uint64(len(offlineMessages))
	fb = Feedback{
		ID:         newID(),
		SectionID:  req.SectionID,
		Content:    offlineMessages[idx],
		Type:       TypeEncouragement,
		Confidence: offlineConfidence,
		Timestamp:  now,
		IsPositive: true,
	}
	return fb
}

func newID() (id string) {
	id = "feedback-" + uuid.NewString()
	return id
}
