package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/edgewalker/leagueops/internal/model"
	"github.com/edgewalker/leagueops/internal/storage/postgres"
	"github.com/edgewalker/leagueops/internal/testutil"
)

// Integration test against a real database. Skipped unless
// LEAGUEOPS_TEST_DATABASE_URL points at a disposable postgres instance.
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("LEAGUEOPS_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("LEAGUEOPS_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	require.NoError(t, postgres.RunMigrations(dsn, testutil.NopLogger()))

	store, err := postgres.New(ctx, dsn)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.DeleteAllPlayers(ctx))
	require.NoError(t, store.DeleteAllGames(ctx))
	require.NoError(t, store.ClearLogs(ctx))

	require.NoError(t, store.Ping(ctx))

	require.NoError(t, store.UpsertPlayer(ctx, model.PlayerRow{
		FullName: "Jordan #7 (PF, CAPTAIN)",
		Team:     "A",
		Paid:     true,
	}))
	require.NoError(t, store.UpsertTeamScore(ctx, "A", model.TeamRecord{Wins: 2, Losses: 1}))
	require.NoError(t, store.UpsertGame(ctx, model.Game{
		ID: "g1", Title: "Game 1", TeamA: "A", TeamB: "B",
		Date: "2026-08-30", Location: "Gym 1", ScoreA: 21, ScoreB: 18,
	}))

	data, err := store.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, data.Players, 1)
	require.Equal(t, model.TeamLetter("A"), data.Players[0].Team)
	require.Len(t, data.Scores, 1)
	require.Equal(t, 2, data.Scores[0].Wins)
	require.Len(t, data.Games, 1)
	require.Equal(t, model.GameID("g1"), data.Games[0].ID)

	snap := model.NewSnapshot()
	snap.Players = append(snap.Players, "Jordan #7 (PF, CAPTAIN)")
	require.NoError(t, store.SaveLog(ctx, "2026-08-30", snap))

	got, err := store.GetLog(ctx, "2026-08-30")
	require.NoError(t, err)
	require.Equal(t, snap.Players, got.Players)

	dates, err := store.ListLogDates(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"2026-08-30"}, dates)

	_, err = store.GetLog(ctx, "1999-01-01")
	require.ErrorIs(t, err, model.ErrLogNotFound)

	require.NoError(t, store.DeletePlayer(ctx, "Jordan #7 (PF, CAPTAIN)"))
	require.NoError(t, store.DeleteGame(ctx, "g1"))
	require.NoError(t, store.ClearLogs(ctx))
}
