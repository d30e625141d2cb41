package sharktank

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/nikogura/storyboard-scorer/pkg/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func blockingEvaluator() Evaluator {
	return EvaluatorFunc(func(ctx context.Context, _ plan.Document) (Score, error) {
		<-ctx.Done()
		return Score{}, ctx.Err()
	})
}

func TestResilientPassesThroughSuccess(t *testing.T) {
	remote := EvaluatorFunc(func(context.Context, plan.Document) (Score, error) {
		return Score{Overall: 77, Source: SourceRemote}, nil
	})
	r := NewResilient(remote, time.Second, PolicyFallback, quietLogger())

	score, err := r.Evaluate(context.Background(), planWithSubstantial(4, 5))
	require.NoError(t, err)
	assert.InDelta(t, 77, score.Overall, 1e-9)
	assert.Equal(t, SourceRemote, score.Source)
}

func TestResilientTimeoutFallsBack(t *testing.T) {
	r := NewResilient(blockingEvaluator(), 20*time.Millisecond, PolicyFallback, quietLogger())

	start := time.Now()
	score, err := r.Evaluate(context.Background(), planWithSubstantial(4, 5))
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, SourceFallback, score.Source)
	assert.InDelta(t, 64, score.Overall, 1e-9)
}

func TestResilientErrorFallsBack(t *testing.T) {
	remote := EvaluatorFunc(func(context.Context, plan.Document) (Score, error) {
		return Score{}, ErrInvalidResponse
	})
	r := NewResilient(remote, time.Second, PolicyFallback, quietLogger())

	doc := planWithSubstantial(2, 5)
	score, err := r.Evaluate(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, FallbackScore(doc), score)
}

func TestResilientOmitPolicy(t *testing.T) {
	remote := EvaluatorFunc(func(context.Context, plan.Document) (Score, error) {
		return Score{}, errors.New("connection refused")
	})
	r := NewResilient(remote, time.Second, PolicyOmit, quietLogger())

	_, err := r.Evaluate(context.Background(), planWithSubstantial(4, 5))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestResilientNilRemote(t *testing.T) {
	doc := planWithSubstantial(4, 5)

	score, err := NewResilient(nil, 0, PolicyFallback, nil).Evaluate(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, score.Source)

	_, err = NewResilient(nil, 0, PolicyOmit, nil).Evaluate(context.Background(), doc)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestResilientUnknownPolicyFallsBack(t *testing.T) {
	r := NewResilient(blockingEvaluator(), 10*time.Millisecond, Policy("retry"), quietLogger())

	score, err := r.Evaluate(context.Background(), planWithSubstantial(1, 5))
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, score.Source)
}
