package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baxromumarov/seo-auditor/internal/api"
	"github.com/baxromumarov/seo-auditor/internal/config"
	"github.com/baxromumarov/seo-auditor/internal/core"
	"github.com/baxromumarov/seo-auditor/internal/httpx"
	"github.com/baxromumarov/seo-auditor/internal/observability"
	"github.com/baxromumarov/seo-auditor/internal/store"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := cfg.NewFetcher()
	robots := httpx.NewPoliteClient(cfg.UserAgent, cfg.FetchTimeout)

	opts := []core.AuditOption{
		core.WithRobots(robots),
		core.WithAnalytics(observability.NewAnalyticsLog(cfg.AnalyticsLogPath)),
		core.WithBatchLimit(cfg.BatchLimit),
	}

	// Audit history is optional; without a database the API still works.
	var history api.AuditLister
	if cfg.DatabaseURL != "" {
		dbStore, err := store.NewStore(cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to store", "error", err)
			os.Exit(1)
		}
		defer dbStore.Close()

		if err := dbStore.RunMigrations(cfg.SchemaPath); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		opts = append(opts, core.WithStore(dbStore))
		history = dbStore

		core.NewSchedulerService(dbStore, cfg.Retention()).Start(ctx)
	} else {
		slog.Info("DATABASE_URL not set; audit history disabled")
	}

	audits := core.NewAuditService(fetcher, observability.NewStats(), opts...)
	srv := api.NewServer(cfg, audits, history)

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "port", cfg.Port)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
