package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/angelmondragon/stylin-backend/api/controllers"
	"github.com/angelmondragon/stylin-backend/api/routes"
	"github.com/angelmondragon/stylin-backend/internal/catalog"
	"github.com/angelmondragon/stylin-backend/internal/checkout"
	"github.com/angelmondragon/stylin-backend/internal/cron"
	"github.com/angelmondragon/stylin-backend/internal/events"
	"github.com/angelmondragon/stylin-backend/internal/session"
	"github.com/angelmondragon/stylin-backend/internal/swipe"
	"github.com/angelmondragon/stylin-backend/pkg/config"
	"github.com/angelmondragon/stylin-backend/pkg/db"
	"github.com/angelmondragon/stylin-backend/pkg/logger"
	"github.com/angelmondragon/stylin-backend/pkg/metrics"
	"github.com/angelmondragon/stylin-backend/pkg/migrate"
	"github.com/angelmondragon/stylin-backend/pkg/redis"
)

const sweepLockKeyFormat = "stylin:session-sweep:lock:%s"

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	var closers []func() error
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			err = multierr.Append(err, closers[i]())
		}
	}()

	ready := map[string]controllers.Pinger{}

	var catalogSource catalog.Source
	if cfg.DB.Enabled() {
		dbClient, dbErr := db.New(ctx, cfg.DB, logg)
		if dbErr != nil {
			return fmt.Errorf("bootstrap database: %w", dbErr)
		}
		closers = append(closers, dbClient.Close)
		ready["db"] = dbClient

		if migErr := migrate.MaybeRun(ctx, cfg, logg, dbClient); migErr != nil {
			return fmt.Errorf("run catalog migrations: %w", migErr)
		}
		catalogSource = catalog.NewRepository(dbClient.DB())
	}

	cat, err := catalog.Load(ctx, catalogSource, logg)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	var (
		idempotency redis.IdempotencyStore
		sequence    checkout.Sequence
		sweepLock   cron.Lock
	)
	if cfg.Redis.Enabled() {
		redisClient, redisErr := redis.New(ctx, cfg.Redis, logg)
		if redisErr != nil {
			return fmt.Errorf("bootstrap redis: %w", redisErr)
		}
		closers = append(closers, redisClient.Close)
		ready["redis"] = redisClient
		idempotency = redisClient
		sequence = redisClient

		lock, lockErr := cron.NewRedisLock(redisClient, fmt.Sprintf(sweepLockKeyFormat, envOrLocal(cfg.App.Env)), 0)
		if lockErr != nil {
			return fmt.Errorf("create sweep lock: %w", lockErr)
		}
		sweepLock = lock
	} else {
		logg.Warn(ctx, "redis not configured; idempotent checkout and shared order numbers disabled")
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Events.Enabled() {
		kafkaPublisher, pubErr := events.NewKafkaPublisher(cfg.Events, logg)
		if pubErr != nil {
			return fmt.Errorf("create event publisher: %w", pubErr)
		}
		publisher = kafkaPublisher
	}
	closers = append(closers, publisher.Close)

	reg := prometheus.DefaultRegisterer
	sessions, err := session.NewRegistry(session.RegistryParams{
		Catalog: cat,
		Thresholds: swipe.Thresholds{
			Horizontal:  cfg.Swipe.HorizontalThreshold,
			Vertical:    cfg.Swipe.VerticalThreshold,
			TossDamping: cfg.Swipe.TossDamping,
			ScreenWidth: cfg.Swipe.ScreenWidth,
		},
		TapSlop:      cfg.Swipe.TapSlop,
		IdleTTL:      cfg.Sessions.IdleTTL,
		Logger:       logg,
		Publisher:    publisher,
		StoreMetrics: metrics.NewStoreMetrics(reg),
		SwipeMetrics: metrics.NewSwipeMetrics(reg),
	})
	if err != nil {
		return fmt.Errorf("create session registry: %w", err)
	}

	pricer, err := checkout.NewPricer(cfg.Checkout.TaxRate, cfg.Checkout.Currency)
	if err != nil {
		return fmt.Errorf("create pricer: %w", err)
	}
	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		Pricer:    pricer,
		Sequence:  sequence,
		Publisher: publisher,
		Logger:    logg,
	})
	if err != nil {
		return fmt.Errorf("create checkout service: %w", err)
	}

	sweepJob, err := cron.NewSessionSweepJob(cron.SessionSweepJobParams{Logger: logg, Sessions: sessions})
	if err != nil {
		return fmt.Errorf("create session sweep job: %w", err)
	}
	scheduler, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(sweepJob),
		Lock:     sweepLock,
		Metrics:  metrics.NewJobMetrics(reg),
		Interval: cfg.Sessions.SweepInterval,
	})
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"products": cat.Len(),
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			Catalog:     cat,
			Sessions:    sessions,
			Checkout:    checkoutService,
			Idempotency: idempotency,
			Gatherer:    prometheus.DefaultGatherer,
			Ready:       ready,
		}),
	}

	errs := make(chan error, 2)
	go func() {
		if runErr := scheduler.Run(ctx); runErr != nil && !errors.Is(runErr, context.Canceled) {
			errs <- fmt.Errorf("scheduler: %w", runErr)
		}
	}()
	go func() {
		logg.Info(ctx, "starting api server")
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errs <- fmt.Errorf("http server: %w", serveErr)
		}
	}()

	select {
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
	case err = <-errs:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	err = multierr.Append(err, server.Shutdown(shutdownCtx))
	logg.Info(ctx, "api server shut down")
	return err
}

func envOrLocal(env string) string {
	if env == "" {
		return "local"
	}
	return env
}
