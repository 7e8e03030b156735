package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"sherialink/internal/dashboard/aggregate"
	dashboardhandler "sherialink/internal/dashboard/handler"
	dashboardservice "sherialink/internal/dashboard/service"
	intakehandler "sherialink/internal/intake/handler"
	"sherialink/internal/intake/password"
	intakeservice "sherialink/internal/intake/service"
	"sherialink/internal/notify"
	"sherialink/internal/platform/config"
	"sherialink/internal/platform/httpserver"
	"sherialink/internal/platform/logger"
	"sherialink/internal/platform/metrics"
	"sherialink/internal/platform/redis"
	recordshandler "sherialink/internal/records/handler"
	recordsservice "sherialink/internal/records/service"
	"sherialink/internal/recordstore"
	httptransport "sherialink/internal/transport/http"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// run wires dependencies and blocks until ctx is canceled or the server fails.
func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	m := metrics.New(prometheus.DefaultRegisterer)

	store := recordstore.New(cfg.RecordStore, recordstore.WithMetrics(m))
	gateway := notify.New(cfg.Gateway)
	if cfg.Gateway.APIKey == "" {
		log.Warn("SMS gateway API key not set; case confirmations will not be sent")
	}

	var (
		cache       dashboardservice.SnapshotCache = dashboardservice.NoopCache{}
		cacheHealth httptransport.HealthCheck
	)
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		// the cache is optional; run without it rather than refuse to start
		log.Warn("dashboard cache unavailable, continuing without it", "error", err)
	} else if redisClient != nil {
		defer redisClient.Close()
		cache = dashboardservice.NewRedisCache(redisClient.Client, cfg.Dashboard.CacheTTL)
		cacheHealth = redisClient.Health
	}

	dashboard := dashboardservice.New(store, log,
		dashboardservice.WithCache(cache),
		dashboardservice.WithMetrics(m),
		dashboardservice.WithEngine(aggregate.NewEngine(aggregate.WithMetrics(m))),
	)
	intakeOpts := []intakeservice.Option{
		intakeservice.WithMetrics(m),
		intakeservice.WithCacheInvalidator(dashboard),
	}
	if cfg.RecordStore.HashPasswords {
		intakeOpts = append(intakeOpts, intakeservice.WithHasher(password.NewHasher(bcrypt.DefaultCost)))
	}
	intake := intakeservice.New(store, gateway, notify.NewMessageBuilder(cfg.Display.USSDCode), log, intakeOpts...)
	records := recordsservice.New(store, log, recordsservice.WithCacheInvalidator(dashboard))

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		Metrics:        m,
		Gatherer:       prometheus.DefaultGatherer,
		RequestTimeout: cfg.Server.RequestTimeout,
		Display:        cfg.Display,
		Environment:    cfg.Gateway.Environment,
		CacheHealth:    cacheHealth,
		Handlers: []httptransport.Registrar{
			intakehandler.New(intake, log),
			dashboardhandler.New(dashboard, log),
			recordshandler.New(records, log),
		},
	})

	srv := httpserver.New(cfg.Server.Addr, router, cfg.Server.RequestTimeout)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting sherialink", "addr", cfg.Server.Addr, "gateway_environment", cfg.Gateway.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
