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

// GameHandler handles schedule endpoints
type GameHandler struct {
	roster *roster.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(rosterService *roster.Service) *GameHandler {
	return &GameHandler{
		roster: rosterService,
	}
}

func gameFromRequest(req request.GameRequest) (model.Game, error) {
	teamA, err := model.ParseTeamLetter(req.TeamA)
	if err != nil {
		return model.Game{}, err
	}
	teamB, err := model.ParseTeamLetter(req.TeamB)
	if err != nil {
		return model.Game{}, err
	}
	return model.Game{
		Title:    req.Title,
		TeamA:    teamA,
		TeamB:    teamB,
		Date:     req.Date,
		Time:     req.Time,
		Location: req.Location,
		ScoreA:   req.ScoreA,
		ScoreB:   req.ScoreB,
	}, nil
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	snap := h.roster.Snapshot()
	games := make([]response.Game, 0, len(snap.Games))
	for _, g := range snap.Games {
		games = append(games, response.GameFromModel(g))
	}
	response.JSON(w, http.StatusOK, games)
}

// Add handles POST /api/v1/games
func (h *GameHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req request.GameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	game, err := gameFromRequest(req)
	if err != nil {
		WriteError(w, err)
		return
	}

	added, err := h.roster.AddGame(r.Context(), game)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(added))
}

// Edit handles PUT /api/v1/games/{id}
func (h *GameHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req request.GameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	game, err := gameFromRequest(req)
	if err != nil {
		WriteError(w, err)
		return
	}
	game.ID = model.GameID(mux.Vars(r)["id"])

	if err := h.roster.EditGame(r.Context(), game); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(game))
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])
	if err := h.roster.DeleteGame(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Clear handles DELETE /api/v1/games
func (h *GameHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.roster.ClearGames(r.Context()); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}
