// cmd/review-server/main.go
package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"review-engine/internal/alias"
	"review-engine/internal/auth"
	"review-engine/internal/cache"
	"review-engine/internal/common/aws"
	"review-engine/internal/common/config"
	"review-engine/internal/common/database"
	"review-engine/internal/common/logger"
	"review-engine/internal/common/observability"
	"review-engine/internal/engine"
	"review-engine/internal/notify"
	"review-engine/internal/server"
	storepg "review-engine/internal/store/postgres"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting review server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	if err := storepg.Migrate(ctx, pg); err != nil {
		zapLog.Fatal("schema migration failed", zap.Error(err))
	}

	// --- Init Redis with retry (optional; progress reports recompute on miss) ---
	var redis *database.RedisClient
	if cfg.Database.Redis.Address != "" {
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		zapLog.Info("Redis connected successfully")
	} else {
		zapLog.Info("Redis not configured, progress caching disabled")
	}

	// --- Stores ---
	applicants := storepg.NewApplicantStore(pg)
	teams := storepg.NewTeamStore(pg)
	reviews := storepg.NewReviewStore(pg)
	columns := storepg.NewColumnStore(pg)
	users := storepg.NewUserStore(pg)
	generationLock := storepg.NewGenerationLock(pg)

	// --- Engine ---
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	generator := engine.NewGenerator(engine.GeneratorConfig{
		BatchSize:    cfg.Assignment.BatchSize,
		WriteRetries: cfg.Assignment.WriteRetries,
	}, teams, applicants, reviews, log)

	aggregator := engine.NewAggregator(applicants, reviews, users, log)
	recorder := engine.NewRecorder(reviews, applicants, log)
	packager := engine.NewPackager(reviews, applicants, columns)

	importer, err := engine.NewImporter(columns, applicants, alias.NewGenerator(rng), cfg.Assignment.BatchSize, log)
	if err != nil {
		zapLog.Fatal("importer init failed", zap.Error(err))
	}

	// --- Progress cache ---
	var progressCache *cache.ProgressCache
	if redis != nil {
		progressCache = cache.NewProgressCache(redis,
			time.Duration(cfg.Progress.CacheTTL)*time.Second, log)
	}

	// --- Assignment notifications (optional) ---
	var notifier *notify.AssignmentNotifier
	if cfg.Notifications.Email.Enabled {
		sesClient, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client failed", zap.Error(err))
		}
		notifier = notify.NewAssignmentNotifier(sesClient, users, cfg.Notifications.Email.FromEmail, log)
		zapLog.Info("Assignment email notifications enabled")
	}

	tokens := auth.NewTokenService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.ExpirationHours)

	srv := server.New(server.Deps{
		Config:         cfg,
		Logger:         log,
		Tokens:         tokens,
		Users:          users,
		Teams:          teams,
		Columns:        columns,
		Reviews:        reviews,
		Generator:      generator,
		Aggregator:     aggregator,
		Recorder:       recorder,
		Packager:       packager,
		Importer:       importer,
		GenerationLock: generationLock,
		ProgressCache:  progressCache,
		Notifier:       notifier,
		Observability:  obs,
	})

	// --- Metrics Server ---
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		addr := fmt.Sprintf(":%d", cfg.Server.MetricsPort)
		zapLog.Info("Metrics server listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			zapLog.Error("Metrics server failed", zap.Error(err))
		}
	}()

	// --- API Server ---
	go func() {
		if err := srv.Start(); err != nil {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down http server", zap.Error(err))
	}

	zapLog.Info("Review server stopped gracefully")
}
