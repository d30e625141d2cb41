package scorer

import (
	"context"
	"log/slog"
	"sync"

	"github.com/nikogura/storyboard-scorer/pkg/plan"
	"github.com/nikogura/storyboard-scorer/pkg/readiness"
	"github.com/nikogura/storyboard-scorer/pkg/sharktank"
	"github.com/pkg/errors"
)

// Report is the composite quality report for one evaluation. It is a derived view and is never
// the source of truth for the plan.
type Report struct {
	DocumentID      string           `json:"documentId"`
	Overall         float64          `json:"overall"`
	Completeness    float64          `json:"completeness"`
	Quality         float64          `json:"quality"`
	Structure       float64          `json:"structure"`
	Content         float64          `json:"content"`
	Breakdown       []SectionScore   `json:"breakdown"`
	Recommendations []string         `json:"recommendations"`
	ReadinessLevel  readiness.Level  `json:"readinessLevel"`
	RuleResults     []Outcome        `json:"ruleResults"`
	ExternalScore   *sharktank.Score `json:"sharkTankScore,omitempty"`
}

// Options configures a Scorer. Zero values select the defaults.
type Options struct {
	Rules     []Rule
	Criteria  *Criteria
	Evaluator sharktank.Evaluator // nil disables the external score
	Logger    *slog.Logger
}

// Scorer runs the quality pipeline. It is safe for concurrent use.
type Scorer struct {
	rules     []Rule
	evaluator sharktank.Evaluator
	log       *slog.Logger

	mu       sync.RWMutex
	criteria Criteria
}

// NewScorer validates the rule set and criteria and builds a scorer.
func NewScorer(opts Options) (scorer *Scorer, err error) {
	rules := opts.Rules
	if rules == nil {
		rules = DefaultRules()
	}

	err = ValidateRules(rules)
	if err != nil {
		err = errors.Wrap(err, "invalid rule set")
		return scorer, err
	}

	criteria := DefaultCriteria()
	if opts.Criteria != nil {
		criteria = opts.Criteria.clone()
	}

	err = criteria.Validate()
	if err != nil {
		err = errors.Wrap(err, "invalid validation criteria")
		return scorer, err
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	scorer = &Scorer{
		rules:     append([]Rule(nil), rules...),
		evaluator: opts.Evaluator,
		log:       log,
		criteria:  criteria,
	}
	return scorer, err
}

// Criteria returns a copy of the criteria currently in effect.
func (s *Scorer) Criteria() (c Criteria) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c = s.criteria.clone()
	return c
}

// UpdateCriteria merges a partial update. The update is rejected whole if the result is invalid.
func (s *Scorer) UpdateCriteria(p CriteriaPatch) (c Criteria, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := s.criteria.Apply(p)
	err = merged.Validate()
	if err != nil {
		err = errors.Wrap(err, "criteria update rejected")
		c = s.criteria.clone()
		return c, err
	}

	s.criteria = merged
	c = merged.clone()
	return c, err
}

// Rules returns the rule set in evaluation order.
func (s *Scorer) Rules() (rules []Rule) {
	rules = append([]Rule(nil), s.rules...)
	return rules
}

// ScorePlan scores a snapshot of doc and always produces a complete report. The only error is a
// caller context that was already done before scoring began.
func (s *Scorer) ScorePlan(ctx context.Context, doc plan.Document) (report Report, err error) {
	err = ctx.Err()
	if err != nil {
		err = errors.Wrap(err, "scoring cancelled")
		return report, err
	}

	snap := doc.Snapshot()
	criteria := s.Criteria()

	outcomes := EvaluateRules(s.rules, snap, criteria)
	scores := Aggregate(outcomes)

	report = Report{
		DocumentID:      snap.ID,
		Overall:         scores.Overall,
		Completeness:    scores.Completeness,
		Quality:         scores.Quality,
		Structure:       scores.Structure,
		Content:         scores.Content,
		ReadinessLevel:  readiness.Classify(scores.Overall, criteria.Thresholds),
		Breakdown:       AnalyzeSections(snap, criteria),
		Recommendations: Recommend(outcomes, scores.Overall),
		RuleResults:     outcomes,
	}

	s.log.Debug("rule scoring complete",
		"document", snap.ID,
		"overall", scores.Overall,
		"readiness", string(report.ReadinessLevel),
	)

	if s.evaluator == nil {
		return report, err
	}

	external, evalErr := s.evaluator.Evaluate(ctx, snap)
	if evalErr != nil {
		s.log.Info("external score omitted", "document", snap.ID, "error", evalErr)
		return report, err
	}
	report.ExternalScore = &external

	return report, err
}

// ComputeMetrics returns word-count statistics for doc.
func (s *Scorer) ComputeMetrics(doc plan.Document) (m Metrics) {
	m = ComputeMetrics(doc)
	return m
}
