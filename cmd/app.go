package cmd

import (
	"context"
	"log/slog"

	"github.com/nikogura/storyboard-scorer/pkg/config"
	"github.com/nikogura/storyboard-scorer/pkg/feedback"
	"github.com/nikogura/storyboard-scorer/pkg/llm"
	"github.com/nikogura/storyboard-scorer/pkg/scorer"
	"github.com/nikogura/storyboard-scorer/pkg/sharktank"
	"github.com/pkg/errors"
)

// buildScorer wires the rule engine and the external judge from configuration. The returned
// cache is nil when no remote judge is in use.
func buildScorer(ctx context.Context, cfg config.Config, offline bool, log *slog.Logger) (scr *scorer.Scorer, cache *sharktank.Cached, err error) {
	var remote sharktank.Evaluator

	if !offline {
		remote, cache, err = buildRemote(ctx, cfg, log)
		if err != nil {
			return scr, cache, err
		}
	}

	criteria := cfg.Criteria()
	scr, err = scorer.NewScorer(scorer.Options{
		Rules:     cfg.Rules(),
		Criteria:  &criteria,
		Evaluator: sharktank.NewResilient(remote, cfg.Timeout(), cfg.Evaluator.Policy, log),
		Logger:    log,
	})
	if err != nil {
		err = errors.Wrap(err, "failed to create scorer")
		return scr, cache, err
	}

	return scr, cache, err
}

// buildCompleter returns a nil completer (and no error) when credentials are missing.
func buildCompleter(ctx context.Context, cfg config.Config) (completer llm.Completer, err error) {
	completer, err = llm.NewCompleter(ctx, cfg.Provider, cfg.APIKey(), cfg.Model())
	if err != nil {
		if errors.Is(err, llm.ErrNoCredentials) {
			completer = nil
			err = nil
			return completer, err
		}
		err = errors.Wrap(err, "failed to create evaluator backend")
		return completer, err
	}
	return completer, err
}

// buildRemote returns a nil evaluator (and no error) when credentials are missing, so scoring
// falls back to the local heuristic.
func buildRemote(ctx context.Context, cfg config.Config, log *slog.Logger) (remote sharktank.Evaluator, cache *sharktank.Cached, err error) {
	var completer llm.Completer
	completer, err = buildCompleter(ctx, cfg)
	if err != nil {
		return remote, cache, err
	}
	if completer == nil {
		log.Info("remote evaluator disabled, using local heuristic", "provider", string(cfg.Provider))
		return remote, cache, err
	}

	var evaluator *llm.Evaluator
	evaluator, err = llm.NewEvaluator(completer)
	if err != nil {
		err = errors.Wrap(err, "failed to create evaluator")
		return remote, cache, err
	}

	cache, err = sharktank.NewCached(evaluator, cfg.Evaluator.CacheSize)
	if err != nil {
		return remote, cache, err
	}

	remote = cache
	return remote, cache, err
}

// buildFeedback wires the section mentor. Without credentials it serves the fixed messages.
func buildFeedback(ctx context.Context, cfg config.Config, offline bool, log *slog.Logger) (svc *feedback.Service, err error) {
	var completer llm.Completer
	if !offline {
		completer, err = buildCompleter(ctx, cfg)
		if err != nil {
			return svc, err
		}
	}

	svc, err = feedback.NewService(feedback.Options{
		Completer: completer,
		CacheSize: cfg.Evaluator.CacheSize,
		Timeout:   cfg.Timeout(),
		Offline:   offline,
		Logger:    log,
	})
	if err != nil {
		err = errors.Wrap(err, "failed to create feedback service")
		return svc, err
	}

	return svc, err
}
