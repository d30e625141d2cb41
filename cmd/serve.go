package cmd

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/nikogura/storyboard-scorer/pkg/api"
	"github.com/nikogura/storyboard-scorer/pkg/config"
	"github.com/nikogura/storyboard-scorer/pkg/feedback"
	"github.com/nikogura/storyboard-scorer/pkg/scorer"
	"github.com/nikogura/storyboard-scorer/pkg/sharktank"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var serveAddr string

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scorer over HTTP",
	Long: `Starts an HTTP server exposing:

  GET    /health
  POST   /api/score      storyboard JSON in, quality report out
  POST   /api/metrics    storyboard JSON in, word statistics out
  GET    /api/criteria
  PATCH  /api/criteria   partial criteria update
  POST   /api/feedback   section in, mentor feedback out
  GET    /api/feedback/{sectionID}
  DELETE /api/cache      drop cached judge scores and mentor feedback

Set server.api_key (or STORYBOARD_SCORER_API_KEY) to require a bearer token on /api routes.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	log := newLogger()

	var scr *scorer.Scorer
	var cache *sharktank.Cached
	scr, cache, err = buildScorer(ctx, cfg, false, log)
	if err != nil {
		return err
	}

	var mentor *feedback.Service
	mentor, err = buildFeedback(ctx, cfg, false, log)
	if err != nil {
		return err
	}

	var clearer api.CacheClearer
	if cache != nil {
		clearer = cache
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewServer(scr, mentor, clearer, log, cfg.Server.APIKey),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	if err != nil {
		err = errors.Wrap(err, "shutdown failed")
		return err
	}

	return err
}
