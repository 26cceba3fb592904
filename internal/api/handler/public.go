package handler

import (
	"net/http"

	"github.com/edgewalker/leagueops/internal/api/response"
	"github.com/edgewalker/leagueops/internal/services/logbook"
	"github.com/edgewalker/leagueops/internal/services/roster"
)

// PublicHandler serves the read-only league view. No auth; no mutation.
type PublicHandler struct {
	roster  *roster.Service
	logbook *logbook.Service
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(rosterService *roster.Service, logbookService *logbook.Service) *PublicHandler {
	return &PublicHandler{
		roster:  rosterService,
		logbook: logbookService,
	}
}

// Snapshot handles GET /api/v1/public/snapshot. With ?log=YYYY-MM-DD it
// serves that historical log instead of the live state; ?sort=name lists
// players alphabetically.
func (h *PublicHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	if date := r.URL.Query().Get("log"); date != "" {
		snap, err := h.logbook.Get(r.Context(), date)
		if err != nil {
			WriteError(w, err)
			return
		}
		response.JSON(w, http.StatusOK, response.SnapshotFromModel(snap, snap.AddedSeq))
		return
	}

	mode := roster.SortAdded
	if r.URL.Query().Get("sort") == "name" {
		mode = roster.SortName
	}
	snap := h.roster.Snapshot()
	response.JSON(w, http.StatusOK, response.SnapshotFromModel(snap, h.roster.PlayerNames(mode)))
}
