// Package logbook manages date-keyed historical snapshots ("league logs").
// Every save lands in the local cache; the remote table is best-effort, so
// the log book keeps working with the remote store gone.
package logbook

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/edgewalker/leagueops/internal/cache"
	"github.com/edgewalker/leagueops/internal/model"
	"github.com/edgewalker/leagueops/internal/notify"
	"github.com/edgewalker/leagueops/internal/storage"
)

const dateLayout = "2006-01-02"

// Service reads and writes the league log book.
type Service struct {
	store    storage.Store
	cache    cache.Cache
	notifier notify.Notifier
	logger   *slog.Logger
}

// New creates a log book over the given store and cache.
func New(store storage.Store, c cache.Cache, notifier notify.Notifier, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		cache:    c,
		notifier: notifier,
		logger:   logger,
	}
}

// ValidateDate checks an ISO log date.
func ValidateDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return model.ErrInvalidDate
	}
	return nil
}

// Save stores a snapshot under the given date, overwriting any log already
// there. The local copy always lands; the remote write is best-effort.
func (s *Service) Save(ctx context.Context, date string, snap *model.Snapshot) error {
	if err := ValidateDate(date); err != nil {
		return err
	}

	logs := s.cache.LoadLogs()
	logs[date] = snap.Clone()
	if err := s.cache.SaveLogs(logs); err != nil {
		return err
	}

	if err := s.store.SaveLog(ctx, date, snap); err != nil {
		s.logger.Warn("remote log save failed, kept local copy",
			slog.String("date", date),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// Get returns the log for a date, preferring the remote copy and falling
// back to the local one.
func (s *Service) Get(ctx context.Context, date string) (*model.Snapshot, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}

	snap, err := s.store.GetLog(ctx, date)
	if err == nil {
		return snap, nil
	}
	if !errors.Is(err, model.ErrLogNotFound) {
		s.logger.Warn("remote log read failed, trying local copy",
			slog.String("date", date),
			slog.String("error", err.Error()),
		)
	}

	if local, ok := s.cache.LoadLogs()[date]; ok {
		return local.Clone(), nil
	}
	return nil, model.ErrLogNotFound
}

// ListDates returns every known log date, remote and local merged,
// newest first.
func (s *Service) ListDates(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)

	remote, err := s.store.ListLogDates(ctx)
	if err != nil {
		s.logger.Warn("remote log listing failed, using local dates only",
			slog.String("error", err.Error()),
		)
	}
	for _, d := range remote {
		seen[d] = true
	}
	for d := range s.cache.LoadLogs() {
		seen[d] = true
	}

	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}

// ClearRemote wipes the remote log table and tells other sessions.
func (s *Service) ClearRemote(ctx context.Context) error {
	if err := s.store.ClearLogs(ctx); err != nil {
		return err
	}
	if err := s.notifier.PublishLogsCleared(ctx); err != nil {
		s.logger.Warn("logs-cleared broadcast failed", slog.String("error", err.Error()))
	}
	return nil
}

// ClearLocal wipes the locally cached logs.
func (s *Service) ClearLocal() error {
	return s.cache.SaveLogs(make(map[string]*model.Snapshot))
}

// ClearBoth wipes remote and local logs together.
func (s *Service) ClearBoth(ctx context.Context) error {
	if err := s.ClearRemote(ctx); err != nil {
		return err
	}
	return s.ClearLocal()
}
