package storage

import (
	"context"

	"github.com/edgewalker/leagueops/internal/model"
)

// Store is the remote store of record: four tables (players, team_scores,
// games, league_logs) with per-key upsert and delete. Every write is an
// idempotent upsert or delete keyed by entity identity, so replays and
// out-of-order completions converge on the same final state.
type Store interface {
	// Ping is the lightweight connectivity probe used to decide
	// online/local mode.
	Ping(ctx context.Context) error

	// FetchAll reads the full remote state in one round. Players are
	// ordered by name, games by title.
	FetchAll(ctx context.Context) (*model.RemoteData, error)

	// Player operations (key = encoded stored name)
	UpsertPlayer(ctx context.Context, row model.PlayerRow) error
	DeletePlayer(ctx context.Context, storedName string) error
	DeleteAllPlayers(ctx context.Context) error

	// Team score operations (key = team letter)
	UpsertTeamScore(ctx context.Context, team model.TeamLetter, rec model.TeamRecord) error

	// Game operations (key = client-generated game id)
	UpsertGame(ctx context.Context, game model.Game) error
	DeleteGame(ctx context.Context, id model.GameID) error
	DeleteAllGames(ctx context.Context) error

	// League log operations (key = ISO date); historical snapshots.
	SaveLog(ctx context.Context, date string, snap *model.Snapshot) error
	GetLog(ctx context.Context, date string) (*model.Snapshot, error)
	ListLogDates(ctx context.Context) ([]string, error)
	ClearLogs(ctx context.Context) error

	Close() error
}
