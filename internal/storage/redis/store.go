package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/edgewalker/leagueops/internal/model"
	"github.com/edgewalker/leagueops/internal/storage"
)

// Store is a Redis-backed implementation of the storage interface. Rows are
// JSON values under prefixed keys with SET indexes for enumeration; team
// scores live in a single hash keyed by letter.
type Store struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis store instance
func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Store{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Store {
	return &Store{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Ensure Store implements the interface
var _ storage.Store = (*Store)(nil)

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) FetchAll(ctx context.Context) (*model.RemoteData, error) {
	data := &model.RemoteData{}

	names, err := s.client.SMembers(ctx, playersIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		raw, err := s.client.Get(ctx, playerKey(name)).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Index entry without a row; skip it.
				continue
			}
			return nil, err
		}
		var row model.PlayerRow
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, err
		}
		data.Players = append(data.Players, row)
	}
	sort.Slice(data.Players, func(i, j int) bool {
		return data.Players[i].FullName < data.Players[j].FullName
	})

	scores, err := s.client.HGetAll(ctx, scoresKey()).Result()
	if err != nil {
		return nil, err
	}
	for team, raw := range scores {
		var rec model.TeamRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, err
		}
		data.Scores = append(data.Scores, model.ScoreRow{
			Team:   model.TeamLetter(team),
			Wins:   rec.Wins,
			Losses: rec.Losses,
		})
	}
	sort.Slice(data.Scores, func(i, j int) bool {
		return data.Scores[i].Team < data.Scores[j].Team
	})

	ids, err := s.client.SMembers(ctx, gamesIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		raw, err := s.client.Get(ctx, gameKey(model.GameID(id))).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, err
		}
		var g model.Game
		if err := json.Unmarshal(raw, &g); err != nil {
			return nil, err
		}
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
	data, err := json.Marshal(row)
	if err != nil {
		return err
	}

	// Pipeline for atomic row write + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerKey(row.FullName), data, 0)
	pipe.SAdd(ctx, playersIndexKey(), row.FullName)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) DeletePlayer(ctx context.Context, storedName string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, playerKey(storedName))
	pipe.SRem(ctx, playersIndexKey(), storedName)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) DeleteAllPlayers(ctx context.Context) error {
	names, err := s.client.SMembers(ctx, playersIndexKey()).Result()
	if err != nil {
		return err
	}
	pipe := s.client.Pipeline()
	for _, name := range names {
		pipe.Del(ctx, playerKey(name))
	}
	pipe.Del(ctx, playersIndexKey())
	_, err = pipe.Exec(ctx)
	return err
}

// Team score operations

func (s *Store) UpsertTeamScore(ctx context.Context, team model.TeamLetter, rec model.TeamRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.client.HSet(ctx, scoresKey(), string(team), data).Err()
}

// Game operations

func (s *Store) UpsertGame(ctx context.Context, game model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, gameKey(game.ID), data, 0)
	pipe.SAdd(ctx, gamesIndexKey(), string(game.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) DeleteGame(ctx context.Context, id model.GameID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, gameKey(id))
	pipe.SRem(ctx, gamesIndexKey(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) DeleteAllGames(ctx context.Context) error {
	ids, err := s.client.SMembers(ctx, gamesIndexKey()).Result()
	if err != nil {
		return err
	}
	pipe := s.client.Pipeline()
	for _, id := range ids {
		pipe.Del(ctx, gameKey(model.GameID(id)))
	}
	pipe.Del(ctx, gamesIndexKey())
	_, err = pipe.Exec(ctx)
	return err
}

// League log operations

func (s *Store) SaveLog(ctx context.Context, date string, snap *model.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, logKey(date), data, 0)
	pipe.SAdd(ctx, logsIndexKey(), date)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) GetLog(ctx context.Context, date string) (*model.Snapshot, error) {
	raw, err := s.client.Get(ctx, logKey(date)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrLogNotFound
		}
		return nil, err
	}

	var snap model.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	snap.Normalize()
	return &snap, nil
}

func (s *Store) ListLogDates(ctx context.Context) ([]string, error) {
	dates, err := s.client.SMembers(ctx, logsIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	// Newest first
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}

func (s *Store) ClearLogs(ctx context.Context) error {
	dates, err := s.client.SMembers(ctx, logsIndexKey()).Result()
	if err != nil {
		return err
	}
	pipe := s.client.Pipeline()
	for _, d := range dates {
		pipe.Del(ctx, logKey(d))
	}
	pipe.Del(ctx, logsIndexKey())
	_, err = pipe.Exec(ctx)
	return err
}
