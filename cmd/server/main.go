package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/edgewalker/leagueops/internal/api"
	"github.com/edgewalker/leagueops/internal/config"
	"github.com/edgewalker/leagueops/internal/factory"
	"github.com/edgewalker/leagueops/internal/notify"
	"github.com/edgewalker/leagueops/internal/sse"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create application factory
	app, err := factory.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = app.Close() }()

	// Load the roster, seeding the remote store or falling back to the
	// local cache as connectivity allows
	app.RosterService.Load(ctx)

	// Run the SSE hub and forward cross-process change events to it
	go app.Hub.Run()
	go forwardEvents(ctx, app, logger)

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		RosterService:  app.RosterService,
		LogbookService: app.LogbookService,
		Hub:            app.Hub,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.APIHost
	serverConfig.Port = cfg.APIPort
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), serverConfig.ShutdownTimeout)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	app.Hub.Close()
	logger.Info("server stopped")
}

// forwardEvents subscribes to the notifier and turns cross-process change
// events into a refetch plus an SSE broadcast. With the no-op notifier the
// subscription channel closes immediately and this returns.
func forwardEvents(ctx context.Context, app *factory.App, logger *slog.Logger) {
	events, err := app.Notifier.Subscribe(ctx)
	if err != nil {
		logger.Warn("could not subscribe to change events", slog.String("error", err.Error()))
		return
	}

	for ev := range events {
		switch ev.Kind {
		case notify.EventChange:
			app.RosterService.Refetch(ctx)
			app.Hub.BroadcastEvent(sse.EventSnapshotChanged, ev.Table)
		case notify.EventLogsCleared:
			app.Hub.BroadcastEvent(sse.EventLogsCleared, "")
		}
	}
}
