// Package postgres implements the league store on PostgreSQL via pgx.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edgewalker/leagueops/internal/model"
	"github.com/edgewalker/leagueops/internal/storage"
)

type Store struct {
	pool *pgxpool.Pool
}

var _ storage.Store = (*Store)(nil)

// New connects a pool to the given DSN and verifies it with a ping.
func New(ctx context.Context, dsn string) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	poolCfg.MaxConns = 20
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// NewWithPool wraps an existing pool, for tests and shared wiring.
func NewWithPool(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

func (s *Store) FetchAll(ctx context.Context) (*model.RemoteData, error) {
	data := &model.RemoteData{}

	rows, err := s.pool.Query(ctx,
		`SELECT full_name, COALESCE(team, ''), paid, COALESCE(payment_method, '')
		 FROM players ORDER BY full_name`)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	for rows.Next() {
		var p model.PlayerRow
		if err := rows.Scan(&p.FullName, &p.Team, &p.Paid, &p.PaymentMethod); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan player: %w", err)
		}
		data.Players = append(data.Players, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read players: %w", err)
	}

	rows, err = s.pool.Query(ctx,
		`SELECT team, wins, losses FROM team_scores ORDER BY team`)
	if err != nil {
		return nil, fmt.Errorf("query team scores: %w", err)
	}
	for rows.Next() {
		var sc model.ScoreRow
		if err := rows.Scan(&sc.Team, &sc.Wins, &sc.Losses); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan team score: %w", err)
		}
		data.Scores = append(data.Scores, sc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read team scores: %w", err)
	}

	rows, err = s.pool.Query(ctx,
		`SELECT id, title, COALESCE(team_a, ''), COALESCE(team_b, ''),
		        COALESCE(gdate, ''), COALESCE(gtime, ''), COALESCE(location, ''),
		        score_a, score_b
		 FROM games ORDER BY title, id`)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	for rows.Next() {
		var g model.Game
		if err := rows.Scan(&g.ID, &g.Title, &g.TeamA, &g.TeamB,
			&g.Date, &g.Time, &g.Location, &g.ScoreA, &g.ScoreB); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan game: %w", err)
		}
		data.Games = append(data.Games, g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read games: %w", err)
	}

	return data, nil
}

func (s *Store) UpsertPlayer(ctx context.Context, row model.PlayerRow) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO players (full_name, team, paid, payment_method)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (full_name) DO UPDATE
		 SET team = EXCLUDED.team,
		     paid = EXCLUDED.paid,
		     payment_method = EXCLUDED.payment_method`,
		row.FullName, string(row.Team), row.Paid, string(row.PaymentMethod))
	if err != nil {
		return fmt.Errorf("upsert player: %w", err)
	}
	return nil
}

func (s *Store) DeletePlayer(ctx context.Context, storedName string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM players WHERE full_name = $1`, storedName)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	return nil
}

func (s *Store) DeleteAllPlayers(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM players`)
	if err != nil {
		return fmt.Errorf("delete all players: %w", err)
	}
	return nil
}

func (s *Store) UpsertTeamScore(ctx context.Context, team model.TeamLetter, rec model.TeamRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO team_scores (team, wins, losses)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (team) DO UPDATE
		 SET wins = EXCLUDED.wins, losses = EXCLUDED.losses`,
		string(team), rec.Wins, rec.Losses)
	if err != nil {
		return fmt.Errorf("upsert team score: %w", err)
	}
	return nil
}

func (s *Store) UpsertGame(ctx context.Context, game model.Game) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO games (id, title, team_a, team_b, gdate, gtime, location, score_a, score_b)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO UPDATE
		 SET title = EXCLUDED.title,
		     team_a = EXCLUDED.team_a,
		     team_b = EXCLUDED.team_b,
		     gdate = EXCLUDED.gdate,
		     gtime = EXCLUDED.gtime,
		     location = EXCLUDED.location,
		     score_a = EXCLUDED.score_a,
		     score_b = EXCLUDED.score_b`,
		string(game.ID), game.Title, string(game.TeamA), string(game.TeamB),
		game.Date, game.Time, game.Location, game.ScoreA, game.ScoreB)
	if err != nil {
		return fmt.Errorf("upsert game: %w", err)
	}
	return nil
}

func (s *Store) DeleteGame(ctx context.Context, id model.GameID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM games WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	return nil
}

func (s *Store) DeleteAllGames(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM games`)
	if err != nil {
		return fmt.Errorf("delete all games: %w", err)
	}
	return nil
}

func (s *Store) SaveLog(ctx context.Context, date string, snap *model.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal log payload: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO league_logs (log_date, payload)
		 VALUES ($1, $2)
		 ON CONFLICT (log_date) DO UPDATE SET payload = EXCLUDED.payload`,
		date, payload)
	if err != nil {
		return fmt.Errorf("save log: %w", err)
	}
	return nil
}

func (s *Store) GetLog(ctx context.Context, date string) (*model.Snapshot, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload FROM league_logs WHERE log_date = $1`, date).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrLogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get log: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal log payload: %w", err)
	}
	snap.Normalize()
	return &snap, nil
}

func (s *Store) ListLogDates(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT log_date FROM league_logs ORDER BY log_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("query log dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan log date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read log dates: %w", err)
	}
	return dates, nil
}

func (s *Store) ClearLogs(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM league_logs`)
	if err != nil {
		return fmt.Errorf("clear logs: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
