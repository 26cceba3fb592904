package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/edgewalker/leagueops/internal/api/request"
	"github.com/edgewalker/leagueops/internal/api/response"
	"github.com/edgewalker/leagueops/internal/model"
	"github.com/edgewalker/leagueops/internal/services/roster"
)

// LeagueHandler handles standings, connectivity and the league reset
type LeagueHandler struct {
	roster *roster.Service
}

// NewLeagueHandler creates a new league handler
func NewLeagueHandler(rosterService *roster.Service) *LeagueHandler {
	return &LeagueHandler{
		roster: rosterService,
	}
}

// Scores handles GET /api/v1/scores
func (h *LeagueHandler) Scores(w http.ResponseWriter, r *http.Request) {
	snap := h.roster.Snapshot()
	scores := make([]response.TeamScore, 0, len(snap.Scores))
	for _, t := range model.Teams() {
		rec := snap.Scores[t]
		scores = append(scores, response.TeamScore{
			Team:   string(t),
			Wins:   rec.Wins,
			Losses: rec.Losses,
		})
	}
	response.JSON(w, http.StatusOK, scores)
}

// AdjustScore handles POST /api/v1/scores/{team}/adjust
func (h *LeagueHandler) AdjustScore(w http.ResponseWriter, r *http.Request) {
	var req request.AdjustScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	team, err := model.ParseTeamLetter(mux.Vars(r)["team"])
	if err != nil {
		WriteError(w, err)
		return
	}
	if team == "" {
		WriteError(w, model.ErrInvalidTeam)
		return
	}

	kind, err := model.ParseScoreKind(req.Kind)
	if err != nil {
		WriteError(w, err)
		return
	}

	delta := req.Delta
	if delta == 0 {
		delta = 1
	}

	if err := h.roster.AdjustScore(r.Context(), team, kind, delta); err != nil {
		WriteError(w, err)
		return
	}

	rec := h.roster.Snapshot().Scores[team]
	response.JSON(w, http.StatusOK, response.TeamScore{
		Team:   string(team),
		Wins:   rec.Wins,
		Losses: rec.Losses,
	})
}

// Reset handles POST /api/v1/league/reset
func (h *LeagueHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.roster.Reset(r.Context()); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Probe handles POST /api/v1/league/probe, the explicit connectivity retry
func (h *LeagueHandler) Probe(w http.ResponseWriter, r *http.Request) {
	h.roster.Probe(r.Context())
	conn, msg := h.roster.Status()
	response.JSON(w, http.StatusOK, response.StatusResponse{
		Connectivity: string(conn),
		Error:        msg,
	})
}

// Status handles GET /api/v1/status
func (h *LeagueHandler) Status(w http.ResponseWriter, r *http.Request) {
	conn, msg := h.roster.Status()
	response.JSON(w, http.StatusOK, response.StatusResponse{
		Connectivity: string(conn),
		Error:        msg,
	})
}
