package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/edgewalker/leagueops/internal/api/handler"
	"github.com/edgewalker/leagueops/internal/api/middleware"
	basemiddleware "github.com/edgewalker/leagueops/internal/middleware"
	"github.com/edgewalker/leagueops/internal/services/auth"
	"github.com/edgewalker/leagueops/internal/services/logbook"
	"github.com/edgewalker/leagueops/internal/services/roster"
	"github.com/edgewalker/leagueops/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	RosterService  *roster.Service
	LogbookService *logbook.Service
	Hub            *sse.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	sessionHandler := handler.NewSessionHandler(cfg.AuthService)
	playerHandler := handler.NewPlayerHandler(cfg.RosterService)
	gameHandler := handler.NewGameHandler(cfg.RosterService)
	leagueHandler := handler.NewLeagueHandler(cfg.RosterService)
	logsHandler := handler.NewLogsHandler(cfg.RosterService, cfg.LogbookService)
	publicHandler := handler.NewPublicHandler(cfg.RosterService, cfg.LogbookService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := basemiddleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Public surface: read-only view, connectivity, events, login
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/status", leagueHandler.Status).Methods(http.MethodGet)
	api.HandleFunc("/public/snapshot", publicHandler.Snapshot).Methods(http.MethodGet)
	api.HandleFunc("/session/login", sessionHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		sse.ServeSSE(w, r, cfg.Hub)
	}).Methods(http.MethodGet)

	// Admin surface, gated by the shared credential
	admin := api.PathPrefix("/").Subrouter()
	admin.Use(authMiddleware)

	admin.HandleFunc("/session/logout", sessionHandler.Logout).Methods(http.MethodPost)
	admin.HandleFunc("/session/credential", sessionHandler.UpdateCredential).Methods(http.MethodPut)

	admin.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/players", playerHandler.Add).Methods(http.MethodPost)
	admin.HandleFunc("/players/{name}", playerHandler.Edit).Methods(http.MethodPut)
	admin.HandleFunc("/players/{name}", playerHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/players/{name}/team", playerHandler.AssignTeam).Methods(http.MethodPut)
	admin.HandleFunc("/players/{name}/payment", playerHandler.SetPayment).Methods(http.MethodPut)

	admin.HandleFunc("/scores", leagueHandler.Scores).Methods(http.MethodGet)
	admin.HandleFunc("/scores/{team}/adjust", leagueHandler.AdjustScore).Methods(http.MethodPost)

	admin.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/games", gameHandler.Add).Methods(http.MethodPost)
	admin.HandleFunc("/games", gameHandler.Clear).Methods(http.MethodDelete)
	admin.HandleFunc("/games/{id}", gameHandler.Edit).Methods(http.MethodPut)
	admin.HandleFunc("/games/{id}", gameHandler.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/league/reset", leagueHandler.Reset).Methods(http.MethodPost)
	admin.HandleFunc("/league/probe", leagueHandler.Probe).Methods(http.MethodPost)

	admin.HandleFunc("/logs", logsHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/logs", logsHandler.Save).Methods(http.MethodPost)
	admin.HandleFunc("/logs", logsHandler.Clear).Methods(http.MethodDelete)
	admin.HandleFunc("/logs/{date}", logsHandler.Get).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
