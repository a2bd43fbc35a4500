package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/market-radar/app/api"
	"github.com/lysyi3m/market-radar/app/cfg"
	"github.com/lysyi3m/market-radar/app/feed"
	"github.com/lysyi3m/market-radar/app/metrics"
	"github.com/lysyi3m/market-radar/app/radar"
	"github.com/lysyi3m/market-radar/app/scorer"
	"github.com/lysyi3m/market-radar/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		return
	}

	setupLogger(appCfg.Debug)

	if err := run(appCfg); err != nil {
		slog.Error("Market Radar failed", "error", err)
		os.Exit(1)
	}
}

func run(appCfg *cfg.Cfg) error {
	sources, err := feed.LoadSources(appCfg.SourcesFile)
	if err != nil {
		return fmt.Errorf("failed to load sources: %w", err)
	}
	slog.Info("Sources loaded", "feeds", len(sources.Feeds), "models", len(sources.Models))

	m := metrics.New()

	httpClient := &http.Client{Timeout: appCfg.FetchTimeout}
	fetcher := feed.NewHTTPFetcher(httpClient, feed.NewParser(), appCfg.UserAgent)
	collector := feed.NewCollector(fetcher, feed.NewContentExtractor(fetcher), m, appCfg.WorkerCount, appCfg.FetchTimeout)

	client, err := scorer.NewOpenRouterClient(scorer.ClientConfig{
		APIKey:  appCfg.APIKey,
		BaseURL: appCfg.BaseURL,
		Referer: appCfg.Referer,
		Title:   appCfg.AppTitle,
		Timeout: appCfg.ScoreTimeout,
	})
	if err != nil {
		return err
	}

	s, err := scorer.NewScorer(client, sources.Models, m)
	if err != nil {
		return err
	}

	// One scoring call per candidate model in the worst case, plus slack.
	taskTimeout := appCfg.ScoreTimeout + 5*time.Second
	if appCfg.Fallback {
		taskTimeout = time.Duration(len(sources.Models))*appCfg.ScoreTimeout + 5*time.Second
	}
	pool := tasks.NewPool(appCfg.WorkerCount, taskTimeout)

	pipeline := radar.NewPipeline(collector, s, pool, sources.Feeds, appCfg.Fallback)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if appCfg.Serve {
		return serve(ctx, appCfg, pipeline, m, sources.Models)
	}

	slog.Info("Scanning feeds", "minutes", appCfg.Minutes, "model", s.DefaultModel(), "fallback", appCfg.Fallback)
	report := pipeline.Run(ctx, appCfg.Minutes)

	return radar.WriteReport(os.Stdout, report)
}

func serve(ctx context.Context, appCfg *cfg.Cfg, pipeline *radar.Pipeline, m *metrics.Metrics, models []string) error {
	generator := radar.NewGenerator(radar.GeneratorOptions{
		BaseURL: appCfg.PublicURL,
		Version: appCfg.Version,
	})
	handler := api.NewHandler(pipeline, generator, m, models, appCfg.Minutes, appCfg.MinScore, appCfg.Version)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      api.NewServer(handler, appCfg.APIAccessKey),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port, "version", appCfg.Version)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-serverErrChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown error: %w", err)
	}

	slog.Info("HTTP server stopped")
	return nil
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
