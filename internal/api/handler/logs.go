package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/edgewalker/leagueops/internal/api/request"
	"github.com/edgewalker/leagueops/internal/api/response"
	"github.com/edgewalker/leagueops/internal/services/logbook"
	"github.com/edgewalker/leagueops/internal/services/roster"
)

// LogsHandler handles the league log book
type LogsHandler struct {
	roster  *roster.Service
	logbook *logbook.Service
}

// NewLogsHandler creates a new logs handler
func NewLogsHandler(rosterService *roster.Service, logbookService *logbook.Service) *LogsHandler {
	return &LogsHandler{
		roster:  rosterService,
		logbook: logbookService,
	}
}

// Save handles POST /api/v1/logs: snapshot today's league state under the
// given date.
func (h *LogsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req request.SaveLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Date == "" {
		WriteError(w, NewInvalidRequestError("date is required"))
		return
	}

	snap := h.roster.Snapshot()
	if err := h.logbook.Save(r.Context(), req.Date, snap); err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, map[string]string{"date": req.Date})
}

// List handles GET /api/v1/logs
func (h *LogsHandler) List(w http.ResponseWriter, r *http.Request) {
	dates, err := h.logbook.ListDates(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.LogDates{Dates: dates})
}

// Get handles GET /api/v1/logs/{date}
func (h *LogsHandler) Get(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	snap, err := h.logbook.Get(r.Context(), date)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SnapshotFromModel(snap, snap.AddedSeq))
}

// Clear handles DELETE /api/v1/logs?scope=remote|local|both
func (h *LogsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	var err error
	switch scope := r.URL.Query().Get("scope"); scope {
	case "", "both":
		err = h.logbook.ClearBoth(r.Context())
	case "remote":
		err = h.logbook.ClearRemote(r.Context())
	case "local":
		err = h.logbook.ClearLocal()
	default:
		WriteError(w, NewInvalidRequestError("scope must be remote, local or both"))
		return
	}
	if err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}
