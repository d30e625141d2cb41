package llm

import (
	"context"

	"github.com/nikogura/storyboard-scorer/pkg/plan"
	"github.com/nikogura/storyboard-scorer/pkg/sharktank"
	"github.com/pkg/errors"
)

// Evaluator asks a remote model to judge a storyboard.
type Evaluator struct {
	completer Completer
}

// NewEvaluator creates a new evaluator instance.
func NewEvaluator(completer Completer) (evaluator *Evaluator, err error) {
	if completer == nil {
		err = ErrNoCredentials
		return evaluator, err
	}

	evaluator = &Evaluator{
		completer: completer,
	}
	return evaluator, err
}

// Evaluate runs the judge and parses its reply. Transport failures and malformed replies are
// both returned as errors for the caller to recover from.
func (e *Evaluator) Evaluate(ctx context.Context, doc plan.Document) (score sharktank.Score, err error) {
	prompt := buildEvaluationPrompt(doc)

	var responseText string
	responseText, err = e.completer.Complete(ctx, judgeSystemPrompt, prompt)
	if err != nil {
		err = errors.Wrap(err, "evaluation request failed")
		return score, err
	}

	score, err = sharktank.Parse(responseText)
	if err != nil {
		err = errors.Wrap(err, "failed to parse evaluation response")
		return score, err
	}

	return score, err
}
