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

// PlayerHandler handles roster endpoints
type PlayerHandler struct {
	roster *roster.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(rosterService *roster.Service) *PlayerHandler {
	return &PlayerHandler{
		roster: rosterService,
	}
}

func playerInput(req request.PlayerRequest) roster.PlayerInput {
	return roster.PlayerInput{
		Name:      req.Name,
		Jersey:    req.Jersey,
		Position:  req.Position,
		IsCaptain: req.IsCaptain,
		ExtraTags: req.Tags,
	}
}

// List handles GET /api/v1/players?sort=added|name
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	mode := roster.SortAdded
	if r.URL.Query().Get("sort") == "name" {
		mode = roster.SortName
	}

	snap := h.roster.Snapshot()
	players := make([]response.Player, 0, len(snap.Players))
	for _, name := range h.roster.PlayerNames(mode) {
		players = append(players, response.PlayerFromSnapshot(snap, name))
	}
	response.JSON(w, http.StatusOK, players)
}

// Add handles POST /api/v1/players
func (h *PlayerHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req request.PlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	stored, err := h.roster.AddPlayer(r.Context(), playerInput(req))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromSnapshot(h.roster.Snapshot(), stored))
}

// Edit handles PUT /api/v1/players/{name}
func (h *PlayerHandler) Edit(w http.ResponseWriter, r *http.Request) {
	oldStored := mux.Vars(r)["name"]

	var req request.PlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	next, err := h.roster.EditPlayer(r.Context(), oldStored, playerInput(req))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromSnapshot(h.roster.Snapshot(), next))
}

// Delete handles DELETE /api/v1/players/{name}
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.roster.DeletePlayer(r.Context(), mux.Vars(r)["name"]); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// AssignTeam handles PUT /api/v1/players/{name}/team
func (h *PlayerHandler) AssignTeam(w http.ResponseWriter, r *http.Request) {
	var req request.AssignTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	team, err := model.ParseTeamLetter(req.Team)
	if err != nil {
		WriteError(w, err)
		return
	}

	stored := mux.Vars(r)["name"]
	if err := h.roster.AssignTeam(r.Context(), stored, team); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromSnapshot(h.roster.Snapshot(), stored))
}

// SetPayment handles PUT /api/v1/players/{name}/payment
func (h *PlayerHandler) SetPayment(w http.ResponseWriter, r *http.Request) {
	var req request.SetPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	method, err := model.ParsePaymentMethod(req.Method)
	if err != nil {
		WriteError(w, err)
		return
	}

	stored := mux.Vars(r)["name"]
	if err := h.roster.SetPayment(r.Context(), stored, req.Paid, method); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromSnapshot(h.roster.Snapshot(), stored))
}
