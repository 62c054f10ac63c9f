package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/standards-dev/propdash/internal/adapters/http/api"
	"github.com/standards-dev/propdash/internal/adapters/repository"
	service "github.com/standards-dev/propdash/internal/app"
	"github.com/standards-dev/propdash/internal/config"
	"github.com/standards-dev/propdash/internal/domain/scoring"
	"github.com/standards-dev/propdash/internal/domain/window"
	"github.com/standards-dev/propdash/pkg/logger"
	"github.com/standards-dev/propdash/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
	hoursPerDay               = 24
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics;
	// we collect our own custom system metrics instead.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Rollup store: pooled, created once per process, closed at shutdown.
	store, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to open rollup store", logger.Error(err))
		return
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error(ctx, "failed to close rollup store", logger.Error(err))
		}
	}()

	svc := service.New(store,
		service.WithLogger(log.Named("service")),
		service.WithDefaultLimit(cfg.DefaultLimit),
		service.WithMaxLimit(cfg.MaxLimit),
		service.WithRequestTimeout(time.Duration(cfg.RequestTimeoutMS)*time.Millisecond),
		service.WithLookbackPolicy(window.LookbackPolicy{
			Weekly:  time.Duration(cfg.WeeklyLookbackDays) * hoursPerDay * time.Hour,
			Monthly: time.Duration(cfg.MonthlyLookbackDays) * hoursPerDay * time.Hour,
			Yearly:  time.Duration(cfg.YearlyLookbackDays) * hoursPerDay * time.Hour,
		}),
		service.WithScorer(scoring.New(scoring.WithWeights(scoring.Weights{
			Commits:  cfg.CommitWeight,
			PRs:      cfg.PRWeight,
			Reviews:  cfg.ReviewWeight,
			Comments: cfg.CommentWeight,
			Issues:   cfg.IssueWeight,
		}))),
	)

	go startSystemMetricsUpdater(ctx)

	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// openStore selects the store backend. A configured DSN means Postgres;
// otherwise the in-memory store serves as a zero-config dev mode.
func openStore(ctx context.Context, cfg *config.Config, log logger.Logger) (repository.Store, error) {
	if cfg.PostgresDSN != "" {
		log.Info(ctx, "using postgres rollup store")
		return repository.NewPostgresStore(ctx, cfg.PostgresDSN)
	}
	log.Info(ctx, "no postgres_dsn configured; using in-memory rollup store")
	return repository.NewMemStore(), nil
}

// startSystemMetricsUpdater starts a background goroutine that updates
// system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
