package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/edgewalker/leagueops/internal/model"
	"github.com/edgewalker/leagueops/internal/storage"
)

// Store is an in-memory implementation of the storage interface. It backs
// tests and standalone deployments with no external database.
type Store struct {
	mu sync.RWMutex

	players map[string]model.PlayerRow
	scores  map[model.TeamLetter]model.TeamRecord
	games   map[model.GameID]model.Game
	logs    map[string]*model.Snapshot
}

// New creates a new in-memory store instance.
func New() *Store {
	return &Store{
		players: make(map[string]model.PlayerRow),
		scores:  make(map[model.TeamLetter]model.TeamRecord),
		games:   make(map[model.GameID]model.Game),
		logs:    make(map[string]*model.Snapshot),
	}
}

// Ensure Store implements the interface
var _ storage.Store = (*Store)(nil)

func (s *Store) Ping(ctx context.Context) error {
	return nil
}

func (s *Store) FetchAll(ctx context.Context) (*model.RemoteData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data := &model.RemoteData{}
	for _, row := range s.players {
		data.Players = append(data.Players, row)
	}
	sort.Slice(data.Players, func(i, j int) bool {
		return data.Players[i].FullName < data.Players[j].FullName
	})
	for team, rec := range s.scores {
		data.Scores = append(data.Scores, model.ScoreRow{Team: team, Wins: rec.Wins, Losses: rec.Losses})
	}
	sort.Slice(data.Scores, func(i, j int) bool {
		return data.Scores[i].Team < data.Scores[j].Team
	})
	for _, g := range s.games {
		data.Games = append(data.Games, g)
	}
	sort.Slice(data.Games, func(i, j int) bool {
		if data.Games[i].Title != data.Games[j].Title {
			return data.Games[i].Title < data.Games[j].Title
		}
		return data.Games[i].ID < data.Games[j].ID
	})
	return data, nil
}

// Player operations

func (s *Store) UpsertPlayer(ctx context.Context, row model.PlayerRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[row.FullName] = row
	return nil
}

func (s *Store) DeletePlayer(ctx context.Context, storedName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, storedName)
	return nil
}

func (s *Store) DeleteAllPlayers(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = make(map[string]model.PlayerRow)
	return nil
}

// Team score operations

func (s *Store) UpsertTeamScore(ctx context.Context, team model.TeamLetter, rec model.TeamRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[team] = rec
	return nil
}

// Game operations

func (s *Store) UpsertGame(ctx context.Context, game model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game
	return nil
}

func (s *Store) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

func (s *Store) DeleteAllGames(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games = make(map[model.GameID]model.Game)
	return nil
}

// League log operations

func (s *Store) SaveLog(ctx context.Context, date string, snap *model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs[date] = snap.Clone()
	return nil
}

func (s *Store) GetLog(ctx context.Context, date string) (*model.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.logs[date]
	if !ok {
		return nil, model.ErrLogNotFound
	}
	return snap.Clone(), nil
}

func (s *Store) ListLogDates(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dates := make([]string, 0, len(s.logs))
	for d := range s.logs {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}

func (s *Store) ClearLogs(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = make(map[string]*model.Snapshot)
	return nil
}

func (s *Store) Close() error {
	return nil
}
