package sharktank

import (
	"context"
	"log/slog"
	"time"

	"github.com/nikogura/storyboard-scorer/pkg/plan"
	"github.com/pkg/errors"
)

// DefaultTimeout bounds a single remote evaluation.
const DefaultTimeout = 10 * time.Second

// Policy decides what happens when the remote judge fails.
type Policy string

const (
	// PolicyFallback substitutes the deterministic heuristic score.
	PolicyFallback Policy = "fallback"
	// PolicyOmit reports the failure so the caller can leave the score out.
	PolicyOmit Policy = "omit"
)

// ErrUnavailable is returned under PolicyOmit when no remote score could be produced.
var ErrUnavailable = errors.New("external evaluation unavailable")

// Resilient bounds a remote evaluator with a timeout and recovers from every failure.
type Resilient struct {
	remote  Evaluator
	timeout time.Duration
	policy  Policy
	log     *slog.Logger
}

// NewResilient wraps remote. A nil remote means no credentials were configured and every call
// goes straight to the fallback (or ErrUnavailable under PolicyOmit).
func NewResilient(remote Evaluator, timeout time.Duration, policy Policy, log *slog.Logger) (r *Resilient) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if policy != PolicyOmit {
		policy = PolicyFallback
	}
	if log == nil {
		log = slog.Default()
	}

	r = &Resilient{
		remote:  remote,
		timeout: timeout,
		policy:  policy,
		log:     log,
	}
	return r
}

// Evaluate never returns an error under PolicyFallback.
func (r *Resilient) Evaluate(ctx context.Context, doc plan.Document) (score Score, err error) {
	if r.remote == nil {
		r.log.Debug("remote evaluator not configured", "document", doc.ID, "policy", string(r.policy))
		score, err = r.recover(doc, ErrUnavailable)
		return score, err
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	score, err = r.remote.Evaluate(callCtx, doc)
	if err != nil {
		r.log.Warn("remote evaluation failed",
			"document", doc.ID,
			"timeout", r.timeout.String(),
			"policy", string(r.policy),
			"error", err,
		)
		score, err = r.recover(doc, err)
		return score, err
	}

	return score, err
}

func (r *Resilient) recover(doc plan.Document, cause error) (score Score, err error) {
	if r.policy == PolicyOmit {
		err = ErrUnavailable
		if !errors.Is(cause, ErrUnavailable) {
			err = errors.Wrap(ErrUnavailable, cause.Error())
		}
		return score, err
	}

	score = FallbackScore(doc)
	return score, err
}
