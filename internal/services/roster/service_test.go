package roster

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/edgewalker/leagueops/internal/cache"
	"github.com/edgewalker/leagueops/internal/dependencies/mocks"
	"github.com/edgewalker/leagueops/internal/model"
	"github.com/edgewalker/leagueops/internal/notify"
	"github.com/edgewalker/leagueops/internal/storage"
	"github.com/edgewalker/leagueops/internal/storage/memory"
	"github.com/edgewalker/leagueops/internal/testutil"
)

// flakyStore wraps a store and fails every call once Fail is set.
type flakyStore struct {
	storage.Store
	Fail bool
}

var errStoreDown = errors.New("store down")

func (f *flakyStore) Ping(ctx context.Context) error {
	if f.Fail {
		return errStoreDown
	}
	return f.Store.Ping(ctx)
}

func (f *flakyStore) FetchAll(ctx context.Context) (*model.RemoteData, error) {
	if f.Fail {
		return nil, errStoreDown
	}
	return f.Store.FetchAll(ctx)
}

func (f *flakyStore) UpsertPlayer(ctx context.Context, row model.PlayerRow) error {
	if f.Fail {
		return errStoreDown
	}
	return f.Store.UpsertPlayer(ctx, row)
}

func (f *flakyStore) UpsertGame(ctx context.Context, game model.Game) error {
	if f.Fail {
		return errStoreDown
	}
	return f.Store.UpsertGame(ctx, game)
}

type ServiceSuite struct {
	suite.Suite
	store   *flakyStore
	remote  *memory.Store
	cache   *cache.FileCache
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.remote = memory.New()
	s.store = &flakyStore{Store: s.remote}
	c, err := cache.NewFileCache(s.T().TempDir())
	s.Require().NoError(err)
	s.cache = c
	s.clock = mocks.NewMockClock(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))
	s.service = New(s.store, s.cache, notify.Noop{}, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) load() {
	s.service.Load(s.ctx)
}

// Load and connectivity

func (s *ServiceSuite) TestLoadEmptyEverywhere() {
	s.load()

	conn, msg := s.service.Status()
	s.Equal(model.ConnOnline, conn)
	s.Empty(msg)
	s.Empty(s.service.Snapshot().Players)
}

func (s *ServiceSuite) TestLoadFallsBackToCacheWhenRemoteDown() {
	snap := model.NewSnapshot()
	snap.Players = []string{"Jordan #7 (PF, CAPTAIN)"}
	snap.AddedSeq = []string{"Jordan #7 (PF, CAPTAIN)"}
	s.Require().NoError(s.cache.SaveSnapshot(snap))

	s.store.Fail = true
	s.load()

	conn, msg := s.service.Status()
	s.Equal(model.ConnLocal, conn)
	s.NotEmpty(msg)
	s.Equal([]string{"Jordan #7 (PF, CAPTAIN)"}, s.service.Snapshot().Players)
}

func (s *ServiceSuite) TestLoadAdoptsRemoteOverCache() {
	// Non-empty remote wins; local-only differences are discarded.
	local := model.NewSnapshot()
	local.Players = []string{"Local Only"}
	local.AddedSeq = []string{"Local Only"}
	s.Require().NoError(s.cache.SaveSnapshot(local))

	s.Require().NoError(s.remote.UpsertPlayer(s.ctx, model.PlayerRow{FullName: "Remote Player"}))

	s.load()

	snap := s.service.Snapshot()
	s.Equal([]string{"Remote Player"}, snap.Players)

	data, err := s.remote.FetchAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(data.Players, 1)
	s.Equal("Remote Player", data.Players[0].FullName)
}

func (s *ServiceSuite) TestLoadSeedsEmptyRemoteFromCache() {
	local := model.NewSnapshot()
	local.Players = []string{"Cached One", "Cached Two"}
	local.AddedSeq = append([]string(nil), local.Players...)
	local.Teams["B"] = []string{"Cached Two"}
	local.Scores["B"] = model.TeamRecord{Wins: 4, Losses: 2}
	s.Require().NoError(s.cache.SaveSnapshot(local))

	s.load()

	conn, _ := s.service.Status()
	s.Equal(model.ConnOnline, conn)

	data, err := s.remote.FetchAll(s.ctx)
	s.Require().NoError(err)
	s.Len(data.Players, 2)

	snap := s.service.Snapshot()
	s.ElementsMatch([]string{"Cached One", "Cached Two"}, snap.Players)
	s.Equal(model.TeamLetter("B"), snap.TeamOf("Cached Two"))
	s.Equal(model.TeamRecord{Wins: 4, Losses: 2}, snap.Scores["B"])
}

func (s *ServiceSuite) TestLoadWritesThroughToCache() {
	s.Require().NoError(s.remote.UpsertPlayer(s.ctx, model.PlayerRow{FullName: "Remote Player"}))
	s.load()

	cached, ok := s.cache.LoadSnapshot()
	s.Require().True(ok)
	s.Equal([]string{"Remote Player"}, cached.Players)
}

func (s *ServiceSuite) TestProbeRecoversFromLocalMode() {
	s.store.Fail = true
	s.load()
	conn, _ := s.service.Status()
	s.Require().Equal(model.ConnLocal, conn)

	s.store.Fail = false
	s.Equal(model.ConnOnline, s.service.Probe(s.ctx))
	conn, msg := s.service.Status()
	s.Equal(model.ConnOnline, conn)
	s.Empty(msg)
}

// Player mutations

func (s *ServiceSuite) TestAddPlayerEncodesAndMirrors() {
	s.load()

	stored, err := s.service.AddPlayer(s.ctx, PlayerInput{
		Name: "Jordan", Jersey: "7", Position: "pf", IsCaptain: true,
	})
	s.Require().NoError(err)
	s.Equal("Jordan #7 (PF, CAPTAIN)", stored)

	data, err := s.remote.FetchAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(data.Players, 1)
	s.Equal(stored, data.Players[0].FullName)
}

func (s *ServiceSuite) TestAddPlayerRejectsDuplicate() {
	s.load()
	_, err := s.service.AddPlayer(s.ctx, PlayerInput{Name: "Jordan"})
	s.Require().NoError(err)

	_, err = s.service.AddPlayer(s.ctx, PlayerInput{Name: "Jordan"})
	s.ErrorIs(err, model.ErrPlayerExists)
}

func (s *ServiceSuite) TestAddPlayerRejectsBadPosition() {
	s.load()
	_, err := s.service.AddPlayer(s.ctx, PlayerInput{Name: "Jordan", Position: "QB"})
	s.Error(err)
}

func (s *ServiceSuite) TestEditPlayerRenameCarriesTeamAndPayment() {
	s.load()
	stored, err := s.service.AddPlayer(s.ctx, PlayerInput{Name: "Jordan"})
	s.Require().NoError(err)
	s.Require().NoError(s.service.AssignTeam(s.ctx, stored, "A"))
	s.Require().NoError(s.service.SetPayment(s.ctx, stored, true, model.PaymentGCash))

	next, err := s.service.EditPlayer(s.ctx, stored, PlayerInput{
		Name: "Jordan", Jersey: "23", Position: "SG",
	})
	s.Require().NoError(err)
	s.Equal("Jordan #23 (SG)", next)

	snap := s.service.Snapshot()
	s.False(snap.HasPlayer(stored))
	s.True(snap.HasPlayer(next))
	s.Equal(model.TeamLetter("A"), snap.TeamOf(next))
	s.Equal(model.PaymentGCash, snap.Paid[next])

	// The old key is gone from the remote table too.
	data, err := s.remote.FetchAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(data.Players, 1)
	s.Equal(next, data.Players[0].FullName)
}

func (s *ServiceSuite) TestEditPlayerSameKeyDoesNotDeleteRow() {
	s.load()
	stored, err := s.service.AddPlayer(s.ctx, PlayerInput{Name: "Jordan", Jersey: "7"})
	s.Require().NoError(err)

	next, err := s.service.EditPlayer(s.ctx, stored, PlayerInput{Name: "Jordan", Jersey: "7"})
	s.Require().NoError(err)
	s.Equal(stored, next)

	data, err := s.remote.FetchAll(s.ctx)
	s.Require().NoError(err)
	s.Len(data.Players, 1)
}

func (s *ServiceSuite) TestEditPlayerUnknown() {
	s.load()
	_, err := s.service.EditPlayer(s.ctx, "Ghost", PlayerInput{Name: "Ghost"})
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestDeletePlayerRemovesEverywhere() {
	s.load()
	stored, err := s.service.AddPlayer(s.ctx, PlayerInput{Name: "Jordan"})
	s.Require().NoError(err)
	s.Require().NoError(s.service.AssignTeam(s.ctx, stored, "C"))
	s.Require().NoError(s.service.SetPayment(s.ctx, stored, true, ""))

	s.Require().NoError(s.service.DeletePlayer(s.ctx, stored))

	snap := s.service.Snapshot()
	s.False(snap.HasPlayer(stored))
	s.Empty(snap.Teams["C"])
	s.NotContains(snap.Paid, stored)

	data, err := s.remote.FetchAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(data.Players)
}

func (s *ServiceSuite) TestAssignTeamMovesPlayer() {
	s.load()
	stored, err := s.service.AddPlayer(s.ctx, PlayerInput{Name: "Jordan"})
	s.Require().NoError(err)

	s.Require().NoError(s.service.AssignTeam(s.ctx, stored, "A"))
	s.Require().NoError(s.service.AssignTeam(s.ctx, stored, "B"))

	snap := s.service.Snapshot()
	s.Empty(snap.Teams["A"])
	s.Equal([]string{stored}, snap.Teams["B"])
}

func (s *ServiceSuite) TestAssignTeamEmptyUnassigns() {
	s.load()
	stored, err := s.service.AddPlayer(s.ctx, PlayerInput{Name: "Jordan"})
	s.Require().NoError(err)
	s.Require().NoError(s.service.AssignTeam(s.ctx, stored, "A"))

	s.Require().NoError(s.service.AssignTeam(s.ctx, stored, ""))
	s.Equal(model.TeamLetter(""), s.service.Snapshot().TeamOf(stored))
}

func (s *ServiceSuite) TestSetPaymentDefaultsToCash() {
	s.load()
	stored, err := s.service.AddPlayer(s.ctx, PlayerInput{Name: "Jordan"})
	s.Require().NoError(err)

	s.Require().NoError(s.service.SetPayment(s.ctx, stored, true, ""))
	s.Equal(model.PaymentCash, s.service.Snapshot().Paid[stored])

	s.Require().NoError(s.service.SetPayment(s.ctx, stored, false, ""))
	s.NotContains(s.service.Snapshot().Paid, stored)
}

func (s *ServiceSuite) TestPlayerNamesSortModes() {
	s.load()
	for _, name := range []string{"Zed", "Alice #9 (PG)", "Mike"} {
		_, err := s.service.AddPlayer(s.ctx, PlayerInput{Name: name})
		s.Require().NoError(err)
	}

	s.Equal([]string{"Zed", "Alice #9 (PG)", "Mike"}, s.service.PlayerNames(SortAdded))
	s.Equal([]string{"Alice #9 (PG)", "Mike", "Zed"}, s.service.PlayerNames(SortName))
}

// Scores and games

func (s *ServiceSuite) TestAdjustScoreClampsAtZero() {
	s.load()
	s.Require().NoError(s.service.AdjustScore(s.ctx, "A", model.ScoreWin, -5))
	s.Equal(model.TeamRecord{}, s.service.Snapshot().Scores["A"])

	s.Require().NoError(s.service.AdjustScore(s.ctx, "A", model.ScoreWin, 2))
	s.Require().NoError(s.service.AdjustScore(s.ctx, "A", model.ScoreLose, 1))
	s.Equal(model.TeamRecord{Wins: 2, Losses: 1}, s.service.Snapshot().Scores["A"])
}

func (s *ServiceSuite) TestAdjustScoreRejectsBadInput() {
	s.load()
	s.ErrorIs(s.service.AdjustScore(s.ctx, "Z", model.ScoreWin, 1), model.ErrInvalidTeam)
	s.ErrorIs(s.service.AdjustScore(s.ctx, "A", "draw", 1), model.ErrInvalidScoreKind)
}

func (s *ServiceSuite) TestAddGameFillsDefaults() {
	s.load()
	g, err := s.service.AddGame(s.ctx, model.Game{})
	s.Require().NoError(err)

	s.NotEmpty(g.ID)
	s.Equal("Game 1", g.Title)
	s.Equal("2026-08-30", g.Date)
	s.Equal("Gym 1", g.Location)

	g2, err := s.service.AddGame(s.ctx, model.Game{})
	s.Require().NoError(err)
	s.Equal("Game 2", g2.Title)
}

func (s *ServiceSuite) TestAddDecidedGameAwardsResult() {
	s.load()
	_, err := s.service.AddGame(s.ctx, model.Game{
		TeamA: "A", TeamB: "B", ScoreA: 21, ScoreB: 15,
	})
	s.Require().NoError(err)

	snap := s.service.Snapshot()
	s.Equal(model.TeamRecord{Wins: 1}, snap.Scores["A"])
	s.Equal(model.TeamRecord{Losses: 1}, snap.Scores["B"])
}

func (s *ServiceSuite) TestEditGamePropagatesOutcomeChange() {
	s.load()
	g, err := s.service.AddGame(s.ctx, model.Game{
		TeamA: "A", TeamB: "B", ScoreA: 21, ScoreB: 15,
	})
	s.Require().NoError(err)

	// Flip the winner.
	g.ScoreA, g.ScoreB = 15, 21
	s.Require().NoError(s.service.EditGame(s.ctx, g))

	snap := s.service.Snapshot()
	s.Equal(model.TeamRecord{Wins: 0, Losses: 1}, snap.Scores["A"])
	s.Equal(model.TeamRecord{Wins: 1, Losses: 0}, snap.Scores["B"])

	// Tie it; both sides give the result back.
	g.ScoreB = 15
	s.Require().NoError(s.service.EditGame(s.ctx, g))

	snap = s.service.Snapshot()
	s.Equal(model.TeamRecord{}, snap.Scores["A"])
	s.Equal(model.TeamRecord{}, snap.Scores["B"])
}

func (s *ServiceSuite) TestEditGameSameOutcomeNoDelta() {
	s.load()
	g, err := s.service.AddGame(s.ctx, model.Game{
		TeamA: "A", TeamB: "B", ScoreA: 21, ScoreB: 15,
	})
	s.Require().NoError(err)

	g.ScoreA = 30
	s.Require().NoError(s.service.EditGame(s.ctx, g))

	snap := s.service.Snapshot()
	s.Equal(model.TeamRecord{Wins: 1}, snap.Scores["A"])
	s.Equal(model.TeamRecord{Losses: 1}, snap.Scores["B"])
}

func (s *ServiceSuite) TestDeleteGameRefundsResult() {
	s.load()
	g, err := s.service.AddGame(s.ctx, model.Game{
		TeamA: "A", TeamB: "B", ScoreA: 21, ScoreB: 15,
	})
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeleteGame(s.ctx, g.ID))

	snap := s.service.Snapshot()
	s.Empty(snap.Games)
	s.Equal(model.TeamRecord{}, snap.Scores["A"])
	s.Equal(model.TeamRecord{}, snap.Scores["B"])

	data, err := s.remote.FetchAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(data.Games)
}

func (s *ServiceSuite) TestDeleteGameUnknown() {
	s.load()
	s.ErrorIs(s.service.DeleteGame(s.ctx, "missing"), model.ErrGameNotFound)
}

func (s *ServiceSuite) TestClearGamesRefundsEverything() {
	s.load()
	_, err := s.service.AddGame(s.ctx, model.Game{TeamA: "A", TeamB: "B", ScoreA: 10, ScoreB: 5})
	s.Require().NoError(err)
	_, err = s.service.AddGame(s.ctx, model.Game{TeamA: "C", TeamB: "D", ScoreA: 7, ScoreB: 9})
	s.Require().NoError(err)

	s.Require().NoError(s.service.ClearGames(s.ctx))

	snap := s.service.Snapshot()
	s.Empty(snap.Games)
	for _, t := range model.Teams() {
		s.Equal(model.TeamRecord{}, snap.Scores[t])
	}
}

// Reset

func (s *ServiceSuite) TestResetIsIdempotent() {
	s.load()
	stored, err := s.service.AddPlayer(s.ctx, PlayerInput{Name: "Jordan"})
	s.Require().NoError(err)
	s.Require().NoError(s.service.AssignTeam(s.ctx, stored, "A"))
	_, err = s.service.AddGame(s.ctx, model.Game{TeamA: "A", TeamB: "B", ScoreA: 1})
	s.Require().NoError(err)

	s.Require().NoError(s.service.Reset(s.ctx))
	first := s.service.Snapshot()

	s.Require().NoError(s.service.Reset(s.ctx))
	second := s.service.Snapshot()

	s.Empty(first.Players)
	s.Empty(first.Games)
	s.Equal(first.Players, second.Players)
	s.Equal(first.Games, second.Games)
	for _, t := range model.Teams() {
		s.Equal(model.TeamRecord{}, first.Scores[t])
		s.Equal(model.TeamRecord{}, second.Scores[t])
	}

	data, err := s.remote.FetchAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(data.Players)
	s.Empty(data.Games)
}

// Degradation

func (s *ServiceSuite) TestFailedRemoteWriteKeepsLocalMutation() {
	s.load()
	conn, _ := s.service.Status()
	s.Require().Equal(model.ConnOnline, conn)

	s.store.Fail = true
	stored, err := s.service.AddPlayer(s.ctx, PlayerInput{Name: "Jordan"})
	s.Require().NoError(err)

	// The mutation stands locally; connectivity flips to local.
	s.True(s.service.Snapshot().HasPlayer(stored))
	conn, msg := s.service.Status()
	s.Equal(model.ConnLocal, conn)
	s.NotEmpty(msg)

	// Later mutations skip the remote entirely and still succeed.
	_, err = s.service.AddPlayer(s.ctx, PlayerInput{Name: "Pippen"})
	s.NoError(err)
}

func (s *ServiceSuite) TestMutationsPersistToCacheInLocalMode() {
	s.store.Fail = true
	s.load()

	stored, err := s.service.AddPlayer(s.ctx, PlayerInput{Name: "Jordan"})
	s.Require().NoError(err)

	cached, ok := s.cache.LoadSnapshot()
	s.Require().True(ok)
	s.True(cached.HasPlayer(stored))
	s.Equal(s.clock.CurrentTime, cached.SavedAt.UTC())
}

func (s *ServiceSuite) TestRefetchReplacesSnapshot() {
	s.load()
	_, err := s.service.AddPlayer(s.ctx, PlayerInput{Name: "Jordan"})
	s.Require().NoError(err)

	// Another instance writes directly to the remote store.
	s.Require().NoError(s.remote.UpsertPlayer(s.ctx, model.PlayerRow{FullName: "Elsewhere"}))

	s.service.Refetch(s.ctx)
	s.True(s.service.Snapshot().HasPlayer("Elsewhere"))
}

func (s *ServiceSuite) TestRefetchNoopInLocalMode() {
	s.store.Fail = true
	s.load()
	s.store.Fail = false

	s.Require().NoError(s.remote.UpsertPlayer(s.ctx, model.PlayerRow{FullName: "Elsewhere"}))
	s.service.Refetch(s.ctx)

	// No silent recovery; an explicit probe is required.
	s.False(s.service.Snapshot().HasPlayer("Elsewhere"))
	conn, _ := s.service.Status()
	s.Equal(model.ConnLocal, conn)
}
