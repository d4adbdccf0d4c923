package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/anshc022/suraksha-ai-service/internal/analysis/anomaly"
	"github.com/anshc022/suraksha-ai-service/internal/analysis/pattern"
	"github.com/anshc022/suraksha-ai-service/internal/analysis/risk"
	"github.com/anshc022/suraksha-ai-service/internal/api"
	"github.com/anshc022/suraksha-ai-service/internal/cache"
	"github.com/anshc022/suraksha-ai-service/internal/config"
	"github.com/anshc022/suraksha-ai-service/internal/database"
	"github.com/anshc022/suraksha-ai-service/internal/gateway"
	"github.com/anshc022/suraksha-ai-service/internal/logging"
	"github.com/anshc022/suraksha-ai-service/internal/middleware"
	"github.com/anshc022/suraksha-ai-service/internal/repository"
	"github.com/anshc022/suraksha-ai-service/internal/service"
	"github.com/anshc022/suraksha-ai-service/internal/validation"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("server stopped")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(database.Config{
		Path:         cfg.Database.Path,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	gw := gateway.New(repository.NewStore(db), gateway.Config{
		Timeout:          cfg.Gateway.Timeout(),
		QueueSize:        cfg.Gateway.WriteQueueSize,
		MaxFailures:      cfg.Gateway.BreakerMaxFailures,
		OpenTimeout:      cfg.Gateway.BreakerOpenTimeout,
		HalfOpenRequests: cfg.Gateway.BreakerHalfOpenReqs,
	})

	profiles, redisClient := profileCache(ctx, cfg.Redis)
	if redisClient != nil {
		defer redisClient.Close()
	}

	if err := validation.RegisterGin(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	services := api.Services{
		Risk: service.NewRiskService(risk.NewEngine(gw, risk.Config{
			RadiusKm: cfg.Analysis.RiskPredictionRadiusKm,
			Parallel: cfg.Gateway.RouteFetchParallel,
		})),
		Anomaly: service.NewAnomalyService(anomaly.NewEngine(gw, profiles, anomaly.Config{
			SpeedThresholdKmh: cfg.Analysis.MovementSpeedThreshold,
			HistoryHours:      cfg.Analysis.ProfileHistoryHours,
		})),
		Pattern: service.NewPatternService(pattern.NewEngine(gw, pattern.Config{
			HotspotRadiusKm:        cfg.Analysis.HotspotRadiusKm,
			MinIncidentsForHotspot: cfg.Analysis.MinIncidentsForHotspot,
		})),
		Threat: service.NewThreatService(),
	}

	var opts api.Options
	if cfg.RateLimit.Enabled {
		opts.Limiter = middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		defer opts.Limiter.Stop()
	}

	gin.SetMode(cfg.Server.Mode)
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewRouter(services, opts),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to serve: %w", err)
		}
	case <-ctx.Done():
		logging.Info().Msg("shutdown requested")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Err(err).Msg("http shutdown incomplete")
	}
	if err := gw.Close(shutdownCtx); err != nil {
		logging.Err(err).Msg("pending writes dropped on shutdown")
	}

	logging.Info().Msg("server stopped")
	return nil
}

// profileCache builds the in-process tier and, when configured, a Redis tier
// behind it. A Redis that cannot be reached is logged and skipped.
func profileCache(ctx context.Context, cfg config.RedisConfig) (*cache.TieredProfileCache, *redis.Client) {
	memory := cache.NewMemoryProfileCache()
	if !cfg.Enabled() {
		return cache.NewTieredProfileCache(memory), nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := cache.NewRedisClient(pingCtx, cache.RedisOptions{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		logging.Warn().Err(err).Msg("redis unavailable, using in-process profile cache only")
		return cache.NewTieredProfileCache(memory), nil
	}

	logging.Info().Str("addr", cfg.Addr).Msg("redis profile cache enabled")
	return cache.NewTieredProfileCache(memory, cache.NewRedisProfileCache(client, cfg.ProfileTTL)), client
}
