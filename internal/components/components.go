package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cseshield/internal/api"
	"cseshield/internal/config"
	"cseshield/internal/domain"
	"cseshield/internal/redis"
	"cseshield/internal/service"
	"cseshield/internal/storage/postgres"
	"cseshield/internal/workers"
)

type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Postgres   *postgres.Postgres
	Redis      *redis.Redis
	Refresher  *workers.SnapshotRefresher
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	logger.Info("Initializing Postgres")

	storage, err := postgres.NewPostgres(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to init postgres",
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	logger.Info("Initializing Redis")
	redisClient, err := redis.NewRedis(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}

	snapshotCache := redis.NewIncidentCache(redisClient)

	zoneCfg := domain.ZoneConfig{
		ClusterRadiusMeters: cfg.Zones.ClusterRadiusMeters,
		MinMembersForZone:   cfg.Zones.MinMembersForZone,
		ScoringEnabled:      cfg.Zones.ScoringEnabled,
		ScoringRadiusKm:     cfg.Zones.ScoringRadiusKm,
	}

	reportSvc := service.NewReportService(storage.Incidents(), snapshotCache, logger)
	redZoneSvc := service.NewRedZoneService(storage.Incidents(), snapshotCache, logger, zoneCfg)
	adminSvc := service.NewAdminService(storage.Incidents(), snapshotCache, logger)
	statsSvc := service.NewStatsService(storage.Stats())

	srv := service.NewService(reportSvc, redZoneSvc, adminSvc, statsSvc)

	refresher := workers.NewSnapshotRefresher(
		storage.Incidents(),
		snapshotCache,
		logger,
		cfg.Zones.RefreshInterval,
		cfg.Zones.SnapshotTTL,
	)

	httpServer := api.NewServer(cfg, logger, srv)
	logger.Info("Initialized server")

	return &Components{
		logger:     logger,
		HttpServer: httpServer,
		Postgres:   storage,
		Redis:      redisClient,
		Refresher:  refresher,
	}, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("shutting down components")

	c.Postgres.Pool.Close()
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("all components stopped",
		slog.Duration("latency", time.Since(start)))
}
