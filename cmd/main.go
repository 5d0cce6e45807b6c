package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/cors"

	"github.com/fairway/pickem/internal/adapters/http/api"
	"github.com/fairway/pickem/internal/adapters/http/docs"
	"github.com/fairway/pickem/internal/adapters/kv"
	service "github.com/fairway/pickem/internal/app"
	"github.com/fairway/pickem/internal/config"
	"github.com/fairway/pickem/internal/domain/model"
	"github.com/fairway/pickem/internal/domain/schedule"
	"github.com/fairway/pickem/pkg/logger"
	"github.com/fairway/pickem/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	// Disable default Go metrics collection; we collect our own.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Local development convenience; a missing .env file is not an error.
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input).
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	loc, err := schedule.Location(cfg.Timezone)
	if err != nil {
		log.Error(ctx, "unknown timezone", logger.String("timezone", cfg.Timezone), logger.Error(err))
		return
	}

	store, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		log.Error(ctx, "failed to open store", logger.String("backend", cfg.StoreBackend), logger.Error(err))
		return
	}
	defer cleanup()

	svc := service.New(
		service.WithStore(store),
		service.WithLogger(log),
		service.WithLocation(loc),
		service.WithRoster(cfg.Roster),
		service.WithSeason(cfg.Season),
		service.WithDefaultSettings(model.Settings{
			CurrentWeek:  1,
			AutoReveal:   cfg.AutoReveal,
			RevealDow:    cfg.RevealDow,
			RevealHour:   cfg.RevealHour,
			RevealMinute: cfg.RevealMinute,
		}),
	)

	go startSystemMetricsUpdater(ctx)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	docs.Register(ctx, mux)

	apiServer := api.NewServer(svc, svc, cfg.AdminKey)
	apiServer.Register(ctx, mux, svc)

	// Browser clients submit from a static page on another origin.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", api.AdminKeyHeader},
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           corsHandler.Handler(mux),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
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

// buildStore opens the configured key-value backend. The returned cleanup
// closes the NATS connection when one was opened.
func buildStore(ctx context.Context, cfg *config.Config) (kv.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreNATS:
		nc, err := nats.Connect(cfg.NATSURL)
		if err != nil {
			return nil, func() {}, err
		}
		js, err := jetstream.New(nc)
		if err != nil {
			nc.Close()
			return nil, func() {}, err
		}
		store, err := kv.NewNATS(ctx, js, cfg.NATSBucket)
		if err != nil {
			nc.Close()
			return nil, func() {}, err
		}
		return store, nc.Close, nil
	default:
		return kv.NewMemory(), func() {}, nil
	}
}

// startSystemMetricsUpdater periodically refreshes system-level gauges.
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

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
