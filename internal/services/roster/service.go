// Package roster holds the authoritative league snapshot and keeps it
// reconciled between the local cache and the remote store of record.
package roster

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/edgewalker/leagueops/internal/cache"
	"github.com/edgewalker/leagueops/internal/dependencies/clock"
	"github.com/edgewalker/leagueops/internal/model"
	"github.com/edgewalker/leagueops/internal/nametag"
	"github.com/edgewalker/leagueops/internal/notify"
	"github.com/edgewalker/leagueops/internal/storage"
)

const defaultLocation = "Gym 1"

// PlayerInput is the editable form of a player. Compose rules apply: the
// name is required, the position (if any) must be a real playing position.
type PlayerInput struct {
	Name      string
	Jersey    string
	Position  string
	IsCaptain bool
	ExtraTags []string
}

// SortMode selects player listing order.
type SortMode string

const (
	// SortAdded lists players in first-added order.
	SortAdded SortMode = "added"
	// SortName lists players alphabetically by decoded base name.
	SortName SortMode = "name"
)

// Service is the state reconciler. It applies every mutation to the
// in-memory snapshot first, writes through to the local cache, and mirrors
// the write to the remote store when online. A failed remote write flips
// connectivity to local and never rolls the local mutation back.
//
// All state is guarded by one mutex; mutations, refetches, and reads
// serialize, so a refetch replaces the snapshot wholesale without tearing
// an in-flight mutation.
type Service struct {
	store    storage.Store
	cache    cache.Cache
	notifier notify.Notifier
	clock    clock.Clock
	logger   *slog.Logger

	mu      sync.Mutex
	snap    *model.Snapshot
	conn    model.Connectivity
	connErr string
}

// New creates a reconciler in the checking state with an empty snapshot.
// Call Load before serving.
func New(
	store storage.Store,
	c cache.Cache,
	notifier notify.Notifier,
	clk clock.Clock,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:    store,
		cache:    c,
		notifier: notifier,
		clock:    clk,
		logger:   logger,
		snap:     model.NewSnapshot(),
		conn:     model.ConnChecking,
	}
}

// Load establishes the canonical snapshot: read the cache, probe the
// remote, and adopt whichever side wins. An empty remote paired with a
// non-empty cache is the first-run case and seeds the remote from the
// cache; an unreachable remote degrades to the cache and local mode.
// Load never fails; the outcome is reported through Status.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cached, ok := s.cache.LoadSnapshot()
	if !ok {
		cached = model.NewSnapshot()
	}

	if err := s.store.Ping(ctx); err != nil {
		s.degradeLocked("probe", err)
		s.snap = cached
		s.writeLocalLocked()
		return
	}

	data, err := s.store.FetchAll(ctx)
	if err != nil {
		s.degradeLocked("fetch", err)
		s.snap = cached
		s.writeLocalLocked()
		return
	}

	if len(data.Players) == 0 && len(cached.Players) > 0 {
		s.logger.Info("remote store empty, seeding from local cache",
			slog.Int("players", len(cached.Players)),
		)
		if err := s.seed(ctx, cached); err != nil {
			s.degradeLocked("seed", err)
			s.snap = cached
			s.writeLocalLocked()
			return
		}
		data, err = s.store.FetchAll(ctx)
		if err != nil {
			s.degradeLocked("fetch after seed", err)
			s.snap = cached
			s.writeLocalLocked()
			return
		}
	}

	s.conn = model.ConnOnline
	s.connErr = ""
	s.snap = snapshotFromRemote(data, cached.AddedSeq)
	s.writeLocalLocked()
	s.logger.Info("loaded league state",
		slog.Int("players", len(s.snap.Players)),
		slog.Int("games", len(s.snap.Games)),
		slog.String("connectivity", string(s.conn)),
	)
}

// seed pushes the cached players and team scores to an empty remote store.
// Games and logs are not seeded; the remote schedule starts clean.
func (s *Service) seed(ctx context.Context, snap *model.Snapshot) error {
	for _, name := range snap.AddedSeq {
		row := playerRow(snap, name)
		if err := s.store.UpsertPlayer(ctx, row); err != nil {
			return fmt.Errorf("seed player %q: %w", name, err)
		}
	}
	for _, t := range model.Teams() {
		if err := s.store.UpsertTeamScore(ctx, t, snap.Scores[t]); err != nil {
			return fmt.Errorf("seed score %s: %w", t, err)
		}
	}
	return nil
}

// Refetch replaces the snapshot with the remote state. It is driven by
// change notifications from other instances and is a no-op in local mode.
func (s *Service) Refetch(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != model.ConnOnline {
		return
	}
	data, err := s.store.FetchAll(ctx)
	if err != nil {
		s.degradeLocked("refetch", err)
		return
	}
	s.snap = snapshotFromRemote(data, s.snap.AddedSeq)
	s.writeLocalLocked()
}

// Probe retries the remote connection. This is the only path from local
// back to online; nothing recovers silently.
func (s *Service) Probe(ctx context.Context) model.Connectivity {
	s.mu.Lock()
	if err := s.store.Ping(ctx); err != nil {
		s.degradeLocked("probe", err)
		s.mu.Unlock()
		return model.ConnLocal
	}

	data, err := s.store.FetchAll(ctx)
	if err != nil {
		s.degradeLocked("probe fetch", err)
		s.mu.Unlock()
		return model.ConnLocal
	}

	s.conn = model.ConnOnline
	s.connErr = ""
	s.snap = snapshotFromRemote(data, s.snap.AddedSeq)
	s.writeLocalLocked()
	s.mu.Unlock()
	return model.ConnOnline
}

// Snapshot returns a deep copy of the canonical snapshot.
func (s *Service) Snapshot() *model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// Status reports the connectivity state and the last remote error message.
func (s *Service) Status() (model.Connectivity, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn, s.connErr
}

// PlayerNames lists stored names in the requested order.
func (s *Service) PlayerNames(mode SortMode) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := append([]string(nil), s.snap.AddedSeq...)
	if mode == SortName {
		keys := make(map[string]string, len(names))
		for _, n := range names {
			keys[n] = strings.ToLower(nametag.Decode(n).BaseWithJersey)
		}
		sort.SliceStable(names, func(i, j int) bool { return keys[names[i]] < keys[names[j]] })
	}
	return names
}

// AddPlayer registers a new player and returns the stored (encoded) name,
// which is the player's durable key from here on.
func (s *Service) AddPlayer(ctx context.Context, in PlayerInput) (string, error) {
	stored, err := nametag.Compose(in.Name, in.Jersey, in.Position, in.IsCaptain, in.ExtraTags)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap.HasPlayer(stored) {
		return "", model.ErrPlayerExists
	}
	s.snap.Players = append(s.snap.Players, stored)
	s.snap.AddedSeq = append(s.snap.AddedSeq, stored)
	s.writeLocalLocked()

	s.remoteWriteLocked(ctx, "players", func() error {
		return s.store.UpsertPlayer(ctx, playerRow(s.snap, stored))
	})
	return stored, nil
}

// EditPlayer re-encodes a player under new fields. The stored name is the
// durable key, so a rename is an upsert of the new key and a delete of the
// old one; team membership and payment follow the player across the rename.
func (s *Service) EditPlayer(ctx context.Context, oldStored string, in PlayerInput) (string, error) {
	next, err := nametag.Compose(in.Name, in.Jersey, in.Position, in.IsCaptain, in.ExtraTags)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.snap.HasPlayer(oldStored) {
		return "", model.ErrPlayerNotFound
	}
	if next != oldStored && s.snap.HasPlayer(next) {
		return "", model.ErrPlayerExists
	}

	if next != oldStored {
		renameInPlace(s.snap.Players, oldStored, next)
		renameInPlace(s.snap.AddedSeq, oldStored, next)
		for t, names := range s.snap.Teams {
			renameInPlace(names, oldStored, next)
			s.snap.Teams[t] = names
		}
		if m, ok := s.snap.Paid[oldStored]; ok {
			delete(s.snap.Paid, oldStored)
			s.snap.Paid[next] = m
		}
	}
	s.writeLocalLocked()

	s.remoteWriteLocked(ctx, "players", func() error {
		if err := s.store.UpsertPlayer(ctx, playerRow(s.snap, next)); err != nil {
			return err
		}
		if next != oldStored {
			return s.store.DeletePlayer(ctx, oldStored)
		}
		return nil
	})
	return next, nil
}

// DeletePlayer removes a player everywhere: the roster, their team, and the
// payment map.
func (s *Service) DeletePlayer(ctx context.Context, stored string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.snap.HasPlayer(stored) {
		return model.ErrPlayerNotFound
	}
	s.snap.Players = removeName(s.snap.Players, stored)
	s.snap.AddedSeq = removeName(s.snap.AddedSeq, stored)
	for t, names := range s.snap.Teams {
		s.snap.Teams[t] = removeName(names, stored)
	}
	delete(s.snap.Paid, stored)
	s.writeLocalLocked()

	s.remoteWriteLocked(ctx, "players", func() error {
		return s.store.DeletePlayer(ctx, stored)
	})
	return nil
}

// AssignTeam moves a player onto a team, or off all teams when team is
// empty. A player is on at most one team at a time.
func (s *Service) AssignTeam(ctx context.Context, stored string, team model.TeamLetter) error {
	if team != "" && !team.Valid() {
		return model.ErrInvalidTeam
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.snap.HasPlayer(stored) {
		return model.ErrPlayerNotFound
	}
	for t, names := range s.snap.Teams {
		s.snap.Teams[t] = removeName(names, stored)
	}
	if team != "" {
		s.snap.Teams[team] = append(s.snap.Teams[team], stored)
	}
	s.writeLocalLocked()

	s.remoteWriteLocked(ctx, "players", func() error {
		return s.store.UpsertPlayer(ctx, playerRow(s.snap, stored))
	})
	return nil
}

// SetPayment records how a player paid, or clears their payment. A paid
// player with no stated method defaults to cash.
func (s *Service) SetPayment(ctx context.Context, stored string, paid bool, method model.PaymentMethod) error {
	if method != "" && method != model.PaymentCash && method != model.PaymentGCash {
		return model.ErrInvalidPayment
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.snap.HasPlayer(stored) {
		return model.ErrPlayerNotFound
	}
	if paid {
		if method == "" {
			method = model.PaymentCash
		}
		s.snap.Paid[stored] = method
	} else {
		delete(s.snap.Paid, stored)
	}
	s.writeLocalLocked()

	s.remoteWriteLocked(ctx, "players", func() error {
		return s.store.UpsertPlayer(ctx, playerRow(s.snap, stored))
	})
	return nil
}

// AdjustScore applies a quick win or loss adjustment to a team's record.
// Counters floor at zero.
func (s *Service) AdjustScore(ctx context.Context, team model.TeamLetter, kind model.ScoreKind, delta int) error {
	if !team.Valid() {
		return model.ErrInvalidTeam
	}
	if kind != model.ScoreWin && kind != model.ScoreLose {
		return model.ErrInvalidScoreKind
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.snap.Scores[team]
	if kind == model.ScoreWin {
		rec = rec.Add(delta, 0)
	} else {
		rec = rec.Add(0, delta)
	}
	s.snap.Scores[team] = rec
	s.writeLocalLocked()

	s.remoteWriteLocked(ctx, "team_scores", func() error {
		return s.store.UpsertTeamScore(ctx, team, rec)
	})
	return nil
}

// AddGame schedules a game, filling defaults: a fresh id, "Game N" title,
// today's date, and the default location. If the game arrives already
// decided, the standings are adjusted as for any decided result.
func (s *Service) AddGame(ctx context.Context, g model.Game) (model.Game, error) {
	if err := validateGameTeams(g); err != nil {
		return model.Game{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if g.ID == "" {
		g.ID = model.GameID(uuid.NewString())
	}
	if strings.TrimSpace(g.Title) == "" {
		g.Title = fmt.Sprintf("Game %d", len(s.snap.Games)+1)
	}
	if g.Date == "" {
		g.Date = s.clock.Now().Format("2006-01-02")
	}
	if g.Location == "" {
		g.Location = defaultLocation
	}

	s.snap.Games = append(s.snap.Games, g)
	deltas := model.ScoreDeltas(model.Game{}, g)
	s.applyDeltasLocked(deltas)
	s.writeLocalLocked()

	s.remoteWriteLocked(ctx, "games", func() error {
		if err := s.store.UpsertGame(ctx, g); err != nil {
			return err
		}
		return s.pushScores(ctx, deltas)
	})
	return g, nil
}

// EditGame replaces a game and propagates the outcome change to the
// affected teams' records.
func (s *Service) EditGame(ctx context.Context, g model.Game) error {
	if err := validateGameTeams(g); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, old := range s.snap.Games {
		if old.ID == g.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.ErrGameNotFound
	}

	before := s.snap.Games[idx]
	s.snap.Games[idx] = g
	deltas := model.ScoreDeltas(before, g)
	s.applyDeltasLocked(deltas)
	s.writeLocalLocked()

	s.remoteWriteLocked(ctx, "games", func() error {
		if err := s.store.UpsertGame(ctx, g); err != nil {
			return err
		}
		return s.pushScores(ctx, deltas)
	})
	return nil
}

// DeleteGame removes a game; a decided game gives back the win and loss it
// awarded.
func (s *Service) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, g := range s.snap.Games {
		if g.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.ErrGameNotFound
	}

	deltas := model.DeletionDeltas(s.snap.Games[idx])
	s.snap.Games = append(s.snap.Games[:idx], s.snap.Games[idx+1:]...)
	s.applyDeltasLocked(deltas)
	s.writeLocalLocked()

	s.remoteWriteLocked(ctx, "games", func() error {
		if err := s.store.DeleteGame(ctx, id); err != nil {
			return err
		}
		return s.pushScores(ctx, deltas)
	})
	return nil
}

// ClearGames deletes the whole schedule, refunding every decided result.
func (s *Service) ClearGames(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deltas []model.ScoreDelta
	for _, g := range s.snap.Games {
		deltas = append(deltas, model.DeletionDeltas(g)...)
	}
	s.snap.Games = nil
	s.applyDeltasLocked(deltas)
	s.writeLocalLocked()

	s.remoteWriteLocked(ctx, "games", func() error {
		if err := s.store.DeleteAllGames(ctx); err != nil {
			return err
		}
		return s.pushScores(ctx, deltas)
	})
	return nil
}

// Reset wipes the league back to an empty snapshot: no players, no games,
// every team at 0-0. Calling it twice yields the same empty snapshot.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap = model.NewSnapshot()
	s.writeLocalLocked()

	s.remoteWriteLocked(ctx, "players", func() error {
		if err := s.store.DeleteAllPlayers(ctx); err != nil {
			return err
		}
		if err := s.store.DeleteAllGames(ctx); err != nil {
			return err
		}
		for _, t := range model.Teams() {
			if err := s.store.UpsertTeamScore(ctx, t, model.TeamRecord{}); err != nil {
				return err
			}
		}
		return nil
	})
	return nil
}

// --- internals, all called with s.mu held ---

// writeLocalLocked stamps and persists the snapshot. A cache write failure
// is logged and otherwise ignored; the in-memory snapshot stays canonical.
func (s *Service) writeLocalLocked() {
	s.snap.SavedAt = s.clock.Now()
	if err := s.cache.SaveSnapshot(s.snap.Clone()); err != nil {
		s.logger.Warn("local cache write failed", slog.String("error", err.Error()))
	}
}

// remoteWriteLocked mirrors a local mutation to the remote store when
// online. Failure flips connectivity to local and keeps the local state;
// success publishes a change notification for other instances.
func (s *Service) remoteWriteLocked(ctx context.Context, table string, fn func() error) {
	if s.conn != model.ConnOnline {
		return
	}
	if err := fn(); err != nil {
		s.degradeLocked("write "+table, err)
		return
	}
	if err := s.notifier.PublishChange(ctx, table); err != nil {
		s.logger.Warn("change notification failed",
			slog.String("table", table),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) degradeLocked(op string, err error) {
	s.conn = model.ConnLocal
	s.connErr = err.Error()
	s.logger.Warn("remote store unavailable, operating locally",
		slog.String("op", op),
		slog.String("error", err.Error()),
	)
}

func (s *Service) applyDeltasLocked(deltas []model.ScoreDelta) {
	for _, d := range deltas {
		if !d.Team.Valid() {
			continue
		}
		s.snap.Scores[d.Team] = s.snap.Scores[d.Team].Add(d.Wins, d.Losses)
	}
}

// pushScores upserts the current record of every team a delta touched.
func (s *Service) pushScores(ctx context.Context, deltas []model.ScoreDelta) error {
	pushed := make(map[model.TeamLetter]bool)
	for _, d := range deltas {
		if !d.Team.Valid() || pushed[d.Team] {
			continue
		}
		pushed[d.Team] = true
		if err := s.store.UpsertTeamScore(ctx, d.Team, s.snap.Scores[d.Team]); err != nil {
			return err
		}
	}
	return nil
}

// playerRow builds the remote row for one player from snapshot state.
func playerRow(snap *model.Snapshot, stored string) model.PlayerRow {
	method, paid := snap.Paid[stored]
	return model.PlayerRow{
		FullName:      stored,
		Team:          snap.TeamOf(stored),
		Paid:          paid,
		PaymentMethod: method,
	}
}

// snapshotFromRemote rebuilds a snapshot from fetched rows, carrying over
// the previous first-added ordering for the names that survive.
func snapshotFromRemote(data *model.RemoteData, prevSeq []string) *model.Snapshot {
	snap := model.NewSnapshot()
	for _, row := range data.Players {
		snap.Players = append(snap.Players, row.FullName)
		if row.Team.Valid() {
			snap.Teams[row.Team] = append(snap.Teams[row.Team], row.FullName)
		}
		if row.Paid {
			method := row.PaymentMethod
			if method == "" {
				method = model.PaymentCash
			}
			snap.Paid[row.FullName] = method
		}
	}
	for _, sc := range data.Scores {
		if sc.Team.Valid() {
			snap.Scores[sc.Team] = model.TeamRecord{Wins: sc.Wins, Losses: sc.Losses}
		}
	}
	snap.Games = append([]model.Game(nil), data.Games...)
	snap.AddedSeq = model.EnsureSeq(snap.Players, prevSeq)
	return snap
}

func validateGameTeams(g model.Game) error {
	if g.TeamA != "" && !g.TeamA.Valid() {
		return model.ErrInvalidTeam
	}
	if g.TeamB != "" && !g.TeamB.Valid() {
		return model.ErrInvalidTeam
	}
	return nil
}

func renameInPlace(names []string, old, next string) {
	for i, n := range names {
		if n == old {
			names[i] = next
		}
	}
}

func removeName(names []string, target string) []string {
	out := names[:0]
	for _, n := range names {
		if n != target {
			out = append(out, n)
		}
	}
	return out
}
