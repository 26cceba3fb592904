// Package factory wires the application together from configuration.
package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/edgewalker/leagueops/internal/cache"
	"github.com/edgewalker/leagueops/internal/config"
	"github.com/edgewalker/leagueops/internal/dependencies/clock"
	"github.com/edgewalker/leagueops/internal/notify"
	"github.com/edgewalker/leagueops/internal/services/auth"
	"github.com/edgewalker/leagueops/internal/services/logbook"
	"github.com/edgewalker/leagueops/internal/services/roster"
	"github.com/edgewalker/leagueops/internal/sse"
	"github.com/edgewalker/leagueops/internal/storage"
	"github.com/edgewalker/leagueops/internal/storage/memory"
	"github.com/edgewalker/leagueops/internal/storage/postgres"
	redisstorage "github.com/edgewalker/leagueops/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Store
	Cache   cache.Cache

	// External dependencies
	Clock    clock.Clock
	Notifier notify.Notifier

	// Services
	RosterService  *roster.Service
	LogbookService *logbook.Service
	AuthService    *auth.Service
	Hub            *sse.Hub
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Store
	switch cfg.StorageType {
	case "", StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisStore, err := redisstorage.New(redisCfg)
		if err != nil {
			return nil, fmt.Errorf("create redis storage: %w", err)
		}
		store = redisStore
	case StorageTypePostgres:
		if err := postgres.RunMigrations(cfg.DSN(), logger); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		pgStore, err := postgres.New(ctx, cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("create postgres storage: %w", err)
		}
		store = pgStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'postgres'")
	}

	fileCache, err := cache.NewFileCache(cfg.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("create local cache: %w", err)
	}

	// Change notifications ride redis pub/sub when enabled; otherwise
	// this instance runs standalone.
	var notifier notify.Notifier = notify.Noop{}
	if cfg.NotifyViaRedis {
		redisNotifier, err := notify.NewRedis(ctx, cfg.RedisURL, logger)
		if err != nil {
			return nil, fmt.Errorf("create notifier: %w", err)
		}
		notifier = redisNotifier
	}

	clk := clock.New()

	authService, err := auth.New(clk, auth.Config{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("create auth service: %w", err)
	}

	rosterService := roster.New(store, fileCache, notifier, clk, logger)
	logbookService := logbook.New(store, fileCache, notifier, logger)
	hub := sse.NewHub(logger)

	return &App{
		Storage:        store,
		Cache:          fileCache,
		Clock:          clk,
		Notifier:       notifier,
		RosterService:  rosterService,
		LogbookService: logbookService,
		AuthService:    authService,
		Hub:            hub,
	}, nil
}

// Close releases the app's external connections
func (a *App) Close() error {
	err := a.Notifier.Close()
	if storeErr := a.Storage.Close(); storeErr != nil {
		err = storeErr
	}
	return err
}
