package response

import (
	"time"

	"github.com/edgewalker/leagueops/internal/model"
	"github.com/edgewalker/leagueops/internal/nametag"
	"github.com/edgewalker/leagueops/internal/services/auth"
)

// AuthResponse is the response for the login endpoint
type AuthResponse struct {
	Username     string    `json:"username"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Username:     s.Username,
		SessionToken: s.Token,
		ExpiresAt:    s.ExpiresAt,
	}
}

// StatusResponse reports connectivity with the remote store
type StatusResponse struct {
	Connectivity string `json:"connectivity"`
	Error        string `json:"error,omitempty"`
}

// Player is a decoded player in API responses. StoredName is the durable
// key; the rest is the decoded view of it plus league state.
type Player struct {
	StoredName    string   `json:"stored_name"`
	Name          string   `json:"name"`
	Jersey        string   `json:"jersey,omitempty"`
	Position      string   `json:"position,omitempty"`
	IsCaptain     bool     `json:"is_captain,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Display       string   `json:"display"`
	Team          string   `json:"team,omitempty"`
	Paid          bool     `json:"paid"`
	PaymentMethod string   `json:"payment_method,omitempty"`
}

// PlayerFromSnapshot decodes one stored name against snapshot state
func PlayerFromSnapshot(snap *model.Snapshot, stored string) Player {
	d := nametag.Decode(stored)
	name, jersey := nametag.SplitJersey(d.BaseWithJersey)
	method, paid := snap.Paid[stored]
	return Player{
		StoredName:    stored,
		Name:          name,
		Jersey:        jersey,
		Position:      nametag.Position(d.Tags),
		IsCaptain:     d.IsCaptain,
		Tags:          d.Tags,
		Display:       nametag.Display(stored),
		Team:          string(snap.TeamOf(stored)),
		Paid:          paid,
		PaymentMethod: string(method),
	}
}

// TeamScore is one team's standing
type TeamScore struct {
	Team   string `json:"team"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

// Game is a game in API responses, with its derived result attached
type Game struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	TeamA    string `json:"team_a,omitempty"`
	TeamB    string `json:"team_b,omitempty"`
	Date     string `json:"gdate,omitempty"`
	Time     string `json:"gtime,omitempty"`
	Location string `json:"location,omitempty"`
	ScoreA   int    `json:"score_a"`
	ScoreB   int    `json:"score_b"`
	Winner   string `json:"winner"`
}

// GameFromModel converts a model.Game to a response Game
func GameFromModel(g model.Game) Game {
	return Game{
		ID:       string(g.ID),
		Title:    g.Title,
		TeamA:    string(g.TeamA),
		TeamB:    string(g.TeamB),
		Date:     g.Date,
		Time:     g.Time,
		Location: g.Location,
		ScoreA:   g.ScoreA,
		ScoreB:   g.ScoreB,
		Winner:   g.WinnerLabel(),
	}
}

// Snapshot is the full league view
type Snapshot struct {
	Players []Player            `json:"players"`
	Teams   map[string][]string `json:"teams"`
	Scores  []TeamScore         `json:"scores"`
	Games   []Game              `json:"games"`
	SavedAt time.Time           `json:"saved_at"`
}

// SnapshotFromModel renders a snapshot, listing players in the given order
func SnapshotFromModel(snap *model.Snapshot, order []string) Snapshot {
	out := Snapshot{
		Teams:   make(map[string][]string, len(snap.Teams)),
		SavedAt: snap.SavedAt,
	}
	for _, name := range order {
		out.Players = append(out.Players, PlayerFromSnapshot(snap, name))
	}
	for _, t := range model.Teams() {
		out.Teams[string(t)] = append([]string(nil), snap.Teams[t]...)
		rec := snap.Scores[t]
		out.Scores = append(out.Scores, TeamScore{
			Team:   string(t),
			Wins:   rec.Wins,
			Losses: rec.Losses,
		})
	}
	for _, g := range snap.Games {
		out.Games = append(out.Games, GameFromModel(g))
	}
	return out
}

// LogDates is the response listing saved league log dates, newest first
type LogDates struct {
	Dates []string `json:"dates"`
}
