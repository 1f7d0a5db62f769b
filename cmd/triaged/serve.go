package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/triaged/internal/analytics"
	"github.com/fyrsmithlabs/triaged/internal/cache"
	"github.com/fyrsmithlabs/triaged/internal/calibrate"
	"github.com/fyrsmithlabs/triaged/internal/config"
	"github.com/fyrsmithlabs/triaged/internal/detectors"
	"github.com/fyrsmithlabs/triaged/internal/extraction"
	"github.com/fyrsmithlabs/triaged/internal/followup"
	"github.com/fyrsmithlabs/triaged/internal/httpapi"
	"github.com/fyrsmithlabs/triaged/internal/logging"
	"github.com/fyrsmithlabs/triaged/internal/pipeline"
	"github.com/fyrsmithlabs/triaged/internal/textscan"
	"github.com/fyrsmithlabs/triaged/internal/triage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the triaged HTTP server",
	Long: `Start the ops HTTP server with the full pipeline wired up.

Endpoints:
  GET  /health
  GET  /metrics
  POST /api/v1/analyze
  POST /api/v1/feedback
  GET  /api/v1/dashboard`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	extCache := cache.New(
		cache.WithCapacity(cfg.Cache.Capacity),
		cache.WithDefaultTTL(cfg.Cache.DefaultTTL),
		cache.WithJanitorInterval(cfg.Cache.JanitorInterval),
	)
	defer extCache.Close()

	svc := analytics.NewService(
		analytics.WithAlpha(cfg.Analytics.Alpha),
		analytics.WithRingSize(cfg.Analytics.RingSize),
	)

	pipe := pipeline.NewPipeline(
		extraction.NewExtractor(extraction.WithNegationOptions(
			textscan.WithNegationWindowWords(cfg.Pipeline.NegationWindowWords),
			textscan.WithNegationWindowChars(cfg.Pipeline.NegationWindowChars),
		)),
		triage.NewEngine(),
		calibrate.NewCalibrator(),
		followup.NewSelector(),
		logger,
		pipeline.WithDetectors(detectors.All()...),
		pipeline.WithCache(extCache),
		pipeline.WithRecorder(svc),
	)

	srv, err := httpapi.NewServer(pipe, svc, logger, &httpapi.Config{
		Host:          cfg.Server.Host,
		Port:          cfg.Server.Port,
		FeedbackRPS:   cfg.Server.FeedbackRPS,
		FeedbackBurst: cfg.Server.FeedbackBurst,
	})
	if err != nil {
		return fmt.Errorf("creating http server: %w", err)
	}

	// Hot-reload runtime-tunable settings when the config file changes.
	if configPath != "" {
		watcher, err := config.Watch(configPath,
			func(next *config.Config) {
				srv.SetFeedbackLimit(next.Server.FeedbackRPS, next.Server.FeedbackBurst)
				logger.Info(ctx, "config reloaded",
					zap.Float64("feedback_rps", next.Server.FeedbackRPS),
					zap.Int("feedback_burst", next.Server.FeedbackBurst),
				)
			},
			func(err error) {
				logger.Warn(ctx, "config reload failed, keeping previous config", zap.Error(err))
			},
		)
		if err != nil {
			return fmt.Errorf("watching config file: %w", err)
		}
		defer watcher.Stop()
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-sigCh:
		logger.Info(ctx, "received signal, shutting down", zap.String("signal", sig.String()))
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}
