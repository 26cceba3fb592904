package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/edgewalker/leagueops/internal/model"
)

type StoreSuite struct {
	suite.Suite
	mini  *miniredis.Miniredis
	store *Store
	ctx   context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.store = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StoreSuite) TearDownTest() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

func (s *StoreSuite) TestPing() {
	s.NoError(s.store.Ping(s.ctx))
}

func (s *StoreSuite) TestUpsertAndFetchPlayers() {
	s.Require().NoError(s.store.UpsertPlayer(s.ctx, model.PlayerRow{FullName: "Zoe", Team: "B"}))
	s.Require().NoError(s.store.UpsertPlayer(s.ctx, model.PlayerRow{
		FullName:      "Alex #23 (PG)",
		Paid:          true,
		PaymentMethod: model.PaymentGCash,
	}))

	data, err := s.store.FetchAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(data.Players, 2)
	s.Equal("Alex #23 (PG)", data.Players[0].FullName)
	s.Equal(model.PaymentGCash, data.Players[0].PaymentMethod)
	s.Equal(model.TeamLetter("B"), data.Players[1].Team)
}

func (s *StoreSuite) TestUpsertPlayerReplaces() {
	s.Require().NoError(s.store.UpsertPlayer(s.ctx, model.PlayerRow{FullName: "Alex", Team: "A"}))
	s.Require().NoError(s.store.UpsertPlayer(s.ctx, model.PlayerRow{FullName: "Alex", Team: "C", Paid: true}))

	data, err := s.store.FetchAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(data.Players, 1)
	s.Equal(model.TeamLetter("C"), data.Players[0].Team)
	s.True(data.Players[0].Paid)
}

func (s *StoreSuite) TestDeletePlayer() {
	s.Require().NoError(s.store.UpsertPlayer(s.ctx, model.PlayerRow{FullName: "Alex"}))
	s.Require().NoError(s.store.DeletePlayer(s.ctx, "Alex"))

	data, err := s.store.FetchAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(data.Players)
}

func (s *StoreSuite) TestDeleteAllPlayers() {
	s.Require().NoError(s.store.UpsertPlayer(s.ctx, model.PlayerRow{FullName: "Alex"}))
	s.Require().NoError(s.store.UpsertPlayer(s.ctx, model.PlayerRow{FullName: "Zoe"}))
	s.Require().NoError(s.store.DeleteAllPlayers(s.ctx))

	data, err := s.store.FetchAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(data.Players)
}

func (s *StoreSuite) TestTeamScores() {
	s.Require().NoError(s.store.UpsertTeamScore(s.ctx, "D", model.TeamRecord{Wins: 2, Losses: 1}))
	s.Require().NoError(s.store.UpsertTeamScore(s.ctx, "A", model.TeamRecord{Wins: 1}))

	data, err := s.store.FetchAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(data.Scores, 2)
	s.Equal(model.ScoreRow{Team: "A", Wins: 1}, data.Scores[0])
	s.Equal(model.ScoreRow{Team: "D", Wins: 2, Losses: 1}, data.Scores[1])
}

func (s *StoreSuite) TestGames() {
	g := model.Game{ID: "g1", Title: "Opener", TeamA: "A", TeamB: "B", Date: "2025-06-01", ScoreA: 15, ScoreB: 12}
	s.Require().NoError(s.store.UpsertGame(s.ctx, g))

	data, err := s.store.FetchAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(data.Games, 1)
	s.Equal(g, data.Games[0])

	s.Require().NoError(s.store.DeleteGame(s.ctx, "g1"))
	data, err = s.store.FetchAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(data.Games)
}

func (s *StoreSuite) TestDeleteAllGames() {
	s.Require().NoError(s.store.UpsertGame(s.ctx, model.Game{ID: "g1", Title: "A"}))
	s.Require().NoError(s.store.UpsertGame(s.ctx, model.Game{ID: "g2", Title: "B"}))
	s.Require().NoError(s.store.DeleteAllGames(s.ctx))

	data, err := s.store.FetchAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(data.Games)
}

func (s *StoreSuite) TestLogs() {
	snap := model.NewSnapshot()
	snap.Players = []string{"Alex #23 (PG)"}

	s.Require().NoError(s.store.SaveLog(s.ctx, "2025-06-01", snap))
	s.Require().NoError(s.store.SaveLog(s.ctx, "2025-06-08", snap))

	dates, err := s.store.ListLogDates(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"2025-06-08", "2025-06-01"}, dates)

	got, err := s.store.GetLog(s.ctx, "2025-06-08")
	s.Require().NoError(err)
	s.Equal([]string{"Alex #23 (PG)"}, got.Players)

	_, err = s.store.GetLog(s.ctx, "2024-01-01")
	s.ErrorIs(err, model.ErrLogNotFound)

	s.Require().NoError(s.store.ClearLogs(s.ctx))
	dates, err = s.store.ListLogDates(s.ctx)
	s.Require().NoError(err)
	s.Empty(dates)
}

func (s *StoreSuite) TestFetchAllEmpty() {
	data, err := s.store.FetchAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(data.Players)
	s.Empty(data.Scores)
	s.Empty(data.Games)
}
